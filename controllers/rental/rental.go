package rental

import (
	"errors"
	"fmt"
	"time"

	"rental-booking/apperrors"
	"rental-booking/logger"
	rentalModel "rental-booking/models/rental"
	rentalService "rental-booking/services/rental"
	"rental-booking/types"
	rentalTypes "rental-booking/types/rental"
	"rental-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RentalController handles booking-related HTTP requests
type RentalController struct {
	DB      *gorm.DB
	Service *rentalService.Service
	Logger  *logger.AsyncLogger
}

// NewRentalController creates a new rental controller
func NewRentalController(db *gorm.DB, svc *rentalService.Service, asyncLogger *logger.AsyncLogger) *RentalController {
	return &RentalController{
		DB:      db,
		Service: svc,
		Logger:  asyncLogger,
	}
}

// Store creates a new rental order from the LIFF booking form.
func (rc *RentalController) Store(c *fiber.Ctx) error {
	var req rentalTypes.RentalCreateRequest
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

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	order, err := rc.Service.Create(c.Context(), rentalService.CreateOrderInput{
		ProductID:   req.ProductID,
		StartDate:   startDate,
		EndDate:     endDate,
		LineUserID:  req.LineUserID,
		DisplayName: req.DisplayName,
		PictureURL:  req.PictureURL,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		return rc.respondServiceError(c, err, "Failed to create rental order")
	}

	// Load the complete order with relationships for the response.
	var created rentalModel.RentalOrder
	if err := rc.DB.Preload("Customer").Preload("Product").Preload("Product.Images").Preload("Branch").
		First(&created, order.ID).Error; err != nil {
		logger.Error("Failed to load created rental order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Order created but failed to retrieve complete data",
		})
	}

	logger.Success(fmt.Sprintf("Rental order created: %s", created.RentalRef))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Rental order created successfully",
		Data:    created,
	})
}

// Index lists all rental orders, newest first (admin view).
func (rc *RentalController) Index(c *fiber.Ctx) error {
	var orders []rentalModel.RentalOrder
	err := rc.DB.
		Preload("Customer").
		Preload("Product").
		Preload("Product.Images").
		Preload("Branch").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list rental orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Rental orders retrieved successfully",
		Data:    orders,
	})
}

// Show returns one rental order with relations and its status history.
func (rc *RentalController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var order rentalModel.RentalOrder
	err = rc.DB.
		Preload("Customer").
		Preload("Product").
		Preload("Product.Images").
		Preload("Branch").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
			})
		}
		logger.Error("Failed to load rental order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Rental order retrieved successfully",
		Data:    order,
	})
}

// UpdateStatus applies an admin-driven status transition. The actor label
// comes from the validated token, never from the request body.
func (rc *RentalController) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req rentalTypes.UpdateStatusRequest
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

	claims, ok := utils.GetClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}
	actor := utils.ActorFromClaims(claims)

	order, err := rc.Service.UpdateStatus(c.Context(), uint(id), rentalModel.Status(req.Status), req.Note, actor)
	if err != nil {
		return rc.respondServiceError(c, err, "Failed to update order status")
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	rc.Logger.Log(logEntry)

	logger.Success(fmt.Sprintf("Order %s moved to %s by %s", order.RentalRef, order.Status, actor))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Order status updated successfully",
		Data:    order,
	})
}

// History returns the order's append-only status ledger, oldest first.
func (rc *RentalController) History(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	history, err := rc.Service.History(c.Context(), uint(id))
	if err != nil {
		return rc.respondServiceError(c, err, "Failed to load status history")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status history retrieved successfully",
		Data:    history,
	})
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
func (rc *RentalController) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, apperrors.ErrProductNotFound),
		errors.Is(err, apperrors.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, apperrors.ErrProductUnavailable),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrInvalidDateRange):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, apperrors.ErrStatusConflict):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: err.Error(),
		})
	default:
		logger.Error(fallback, err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: fallback,
		})
	}
}
