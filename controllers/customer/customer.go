package customer

import (
	"errors"
	"time"

	"rental-booking/logger"
	customerModel "rental-booking/models/customer"
	rentalModel "rental-booking/models/rental"
	"rental-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerController exposes the admin views over LINE-linked customers.
type CustomerController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewCustomerController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *CustomerController {
	return &CustomerController{DB: db, Logger: asyncLogger}
}

// CustomerStats is the per-customer rollup shown on the admin list. Total
// spend counts every order except the failure exits.
type CustomerStats struct {
	TotalRentals     int64           `json:"total_rentals"`
	ActiveRentals    int64           `json:"active_rentals"`
	CompletedRentals int64           `json:"completed_rentals"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	LastRental       *time.Time      `json:"last_rental"`
}

type customerWithStats struct {
	customerModel.Customer
	Stats CustomerStats `json:"stats"`
}

// Index lists customers newest first with rental rollups. Completed spend
// counts RETURNED orders only.
func (cc *CustomerController) Index(c *fiber.Ctx) error {
	var customers []customerModel.Customer
	if err := cc.DB.Order("created_at DESC").Find(&customers).Error; err != nil {
		logger.Error("Failed to list customers", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	result := make([]customerWithStats, 0, len(customers))
	for _, cust := range customers {
		stats, err := cc.statsFor(cust.ID)
		if err != nil {
			logger.Error("Failed to compute customer stats", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Database error",
			})
		}
		result = append(result, customerWithStats{Customer: cust, Stats: *stats})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Customers retrieved successfully",
		Data:    result,
	})
}

// Show returns one customer with their full order history and rollup.
func (cc *CustomerController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid customer id",
		})
	}

	var cust customerModel.Customer
	err = cc.DB.First(&cust, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Customer not found",
			})
		}
		logger.Error("Failed to load customer", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var orders []rentalModel.RentalOrder
	err = cc.DB.
		Preload("Product").
		Preload("Product.Images").
		Preload("Branch").
		Where("customer_id = ?", cust.ID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to load customer orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	stats, err := cc.statsFor(cust.ID)
	if err != nil {
		logger.Error("Failed to compute customer stats", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Customer retrieved successfully",
		Data: fiber.Map{
			"customer": cust,
			"orders":   orders,
			"stats":    stats,
		},
	})
}

func (cc *CustomerController) statsFor(customerID uint) (*CustomerStats, error) {
	var stats CustomerStats

	err := cc.DB.Model(&rentalModel.RentalOrder{}).
		Where("customer_id = ?", customerID).
		Count(&stats.TotalRentals).Error
	if err != nil {
		return nil, err
	}

	err = cc.DB.Model(&rentalModel.RentalOrder{}).
		Where("customer_id = ? AND status IN ?", customerID, rentalModel.BookedStatuses()).
		Count(&stats.ActiveRentals).Error
	if err != nil {
		return nil, err
	}

	err = cc.DB.Model(&rentalModel.RentalOrder{}).
		Where("customer_id = ? AND status = ?", customerID, rentalModel.StatusReturned).
		Count(&stats.CompletedRentals).Error
	if err != nil {
		return nil, err
	}

	var spend decimal.NullDecimal
	err = cc.DB.Model(&rentalModel.RentalOrder{}).
		Where("customer_id = ? AND status NOT IN ?", customerID, []rentalModel.Status{
			rentalModel.StatusCancelled,
			rentalModel.StatusRejected,
		}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&spend).Error
	if err != nil {
		return nil, err
	}
	stats.TotalSpent = decimal.Zero
	if spend.Valid {
		stats.TotalSpent = spend.Decimal
	}

	var last rentalModel.RentalOrder
	err = cc.DB.
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		First(&last).Error
	if err == nil {
		stats.LastRental = &last.CreatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &stats, nil
}
