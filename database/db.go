package database

import (
	"fmt"
	"os"

	"rental-booking/logger"
	"rental-booking/models/branch"
	"rental-booking/models/customer"
	"rental-booking/models/log"
	"rental-booking/models/payment"
	"rental-booking/models/product"
	"rental-booking/models/rental"
	"rental-booking/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&branch.Branch{},
		&user.User{},
		&customer.Customer{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&product.Product{},
		&product.ProductImage{},
		&rental.RentalOrder{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		&rental.StatusHistory{},
		&payment.Payment{},
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Customer indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_customers_line_user_id ON customers(line_user_id)").Error; err != nil {
		return fmt.Errorf("failed to create customer line_user_id index: %w", err)
	}

	// Rental order indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_rental_orders_rental_ref ON rental_orders(rental_ref)").Error; err != nil {
		return fmt.Errorf("failed to create rental_orders rental_ref index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_rental_orders_product_status ON rental_orders(product_id, status)").Error; err != nil {
		return fmt.Errorf("failed to create rental_orders product/status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_rental_orders_dates ON rental_orders(start_date, end_date)").Error; err != nil {
		return fmt.Errorf("failed to create rental_orders date index: %w", err)
	}

	// Status history indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_rental_status_histories_order ON rental_status_histories(rental_order_id, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create status history index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
