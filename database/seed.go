package database

import (
	"errors"
	"os"

	"rental-booking/constants"
	"rental-booking/logger"
	"rental-booking/models/branch"
	"rental-booking/models/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed makes sure a super admin and a default branch exist so a fresh
// deployment is usable. Runs after migrations; safe to call repeatedly.
func Seed(db *gorm.DB) error {
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@rental.com"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin1234"
	}

	var existing user.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := user.User{
			Email:    adminEmail,
			Password: string(hashed),
			FullName: "Super Admin",
			Role:     constants.RoleSuperAdmin,
			IsActive: true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		logger.Success("Created Super Admin: " + admin.Email)
	} else if err != nil {
		return err
	}

	var branchCount int64
	if err := db.Model(&branch.Branch{}).Count(&branchCount).Error; err != nil {
		return err
	}
	if branchCount == 0 {
		address := "Bangkok, Thailand"
		phone := "02-123-4567"
		hq := branch.Branch{
			Name:     "Headquarters (HQ)",
			Address:  &address,
			Phone:    &phone,
			IsActive: true,
		}
		if err := db.Create(&hq).Error; err != nil {
			return err
		}
		logger.Success("Created Default Branch: HQ")
	}

	return nil
}
