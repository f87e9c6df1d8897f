package user

import (
	"errors"
	"fmt"

	"rental-booking/logger"
	userModel "rental-booking/models/user"
	"rental-booking/types"
	userTypes "rental-booking/types/user"
	"rental-booking/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserController manages admin-console accounts.
type UserController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{DB: db, Logger: asyncLogger}
}

// Index lists accounts with their branch; password hashes never serialize.
func (uc *UserController) Index(c *fiber.Ctx) error {
	var users []userModel.User
	if err := uc.DB.Preload("Branch").Order("created_at DESC").Find(&users).Error; err != nil {
		logger.Error("Failed to list users", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

// Show returns one account.
func (uc *UserController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	var account userModel.User
	if err := uc.DB.Preload("Branch").First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "User not found",
			})
		}
		logger.Error("Failed to load user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User retrieved successfully",
		Data:    account,
	})
}

// Store creates an account with a bcrypt-hashed password.
func (uc *UserController) Store(c *fiber.Ctx) error {
	var req userTypes.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var count int64
	if err := uc.DB.Model(&userModel.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		logger.Error("Failed to check email uniqueness", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Email is already in use",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	account := userModel.User{
		Email:    req.Email,
		Password: string(hashed),
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
		BranchID: req.BranchID,
	}
	if err := uc.DB.Create(&account).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User created: " + account.Email)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User created successfully",
		Data:    account,
	})
}

// Update changes profile fields; only non-nil fields apply.
func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	var req userTypes.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var account userModel.User
	if err := uc.DB.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "User not found",
			})
		}
		logger.Error("Failed to load user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if req.Email != nil && *req.Email != account.Email {
		var count int64
		if err := uc.DB.Model(&userModel.User{}).Where("email = ? AND id <> ?", *req.Email, account.ID).Count(&count).Error; err != nil {
			logger.Error("Failed to check email uniqueness", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Database error",
			})
		}
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Email is already in use",
			})
		}
		account.Email = *req.Email
	}
	if req.FullName != nil {
		account.FullName = *req.FullName
	}
	if req.Role != nil {
		account.Role = *req.Role
	}
	if req.BranchID != nil {
		account.BranchID = req.BranchID
	}

	if err := uc.DB.Save(&account).Error; err != nil {
		logger.Error("Failed to update user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update user",
		})
	}

	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User updated: " + account.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User updated successfully",
		Data:    account,
	})
}

// UpdatePassword sets a new password for the account.
func (uc *UserController) UpdatePassword(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	var req userTypes.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update password",
		})
	}

	result := uc.DB.Model(&userModel.User{}).Where("id = ?", id).Update("password", string(hashed))
	if result.Error != nil {
		logger.Error("Failed to update password", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update password",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "User not found",
		})
	}

	logger.Success(fmt.Sprintf("Password updated for user %d", id))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Password updated successfully",
	})
}

// ToggleStatus flips the account's active flag. Deactivated accounts fail
// login but keep their history.
func (uc *UserController) ToggleStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	var account userModel.User
	if err := uc.DB.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "User not found",
			})
		}
		logger.Error("Failed to load user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	account.IsActive = !account.IsActive
	if err := uc.DB.Save(&account).Error; err != nil {
		logger.Error("Failed to toggle user status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to toggle user status",
		})
	}

	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("User %s active=%t", account.Email, account.IsActive))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User status updated successfully",
		Data:    account,
	})
}
