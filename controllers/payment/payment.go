package payment

import (
	"errors"
	"fmt"
	"io"
	"time"

	"rental-booking/apperrors"
	"rental-booking/logger"
	paymentModel "rental-booking/models/payment"
	paymentService "rental-booking/services/payment"
	"rental-booking/services/slipparser"
	"rental-booking/services/storage"
	"rental-booking/types"
	paymentTypes "rental-booking/types/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxSlipBytes = 10 * 1024 * 1024

// PaymentController handles slip uploads and payment lookups.
type PaymentController struct {
	DB         *gorm.DB
	Service    *paymentService.Service
	Storage    *storage.Service
	SlipParser *slipparser.Service
	Logger     *logger.AsyncLogger
}

func NewPaymentController(db *gorm.DB, svc *paymentService.Service, store *storage.Service, parser *slipparser.Service, asyncLogger *logger.AsyncLogger) *PaymentController {
	return &PaymentController{
		DB:         db,
		Service:    svc,
		Storage:    store,
		SlipParser: parser,
		Logger:     asyncLogger,
	}
}

// Store accepts the multipart slip upload, records the payment and kicks
// off background slip verification when the OCR is configured.
func (pc *PaymentController) Store(c *fiber.Ctx) error {
	var req paymentTypes.PaymentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse payment form", err)
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "amount must be a valid decimal number",
		})
	}

	transferDate, err := time.Parse(time.RFC3339, req.TransferDate)
	if err != nil {
		transferDate, _ = time.Parse("2006-01-02", req.TransferDate)
	}

	fileHeader, err := c.FormFile("slip")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "slip image file is required",
		})
	}
	if fileHeader.Size > maxSlipBytes {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "slip image must not exceed 10MB",
		})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !storage.IsValidImageType(mimeType) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "slip must be a JPEG, PNG or WebP image",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded slip", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded slip", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}

	slipURL, err := pc.Storage.Save(fileBytes, fileHeader.Filename)
	if err != nil {
		logger.Error("Failed to store slip image", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to store slip image",
		})
	}

	pay, err := pc.Service.Create(c.Context(), paymentService.CreateInput{
		RentalOrderID: req.RentalOrderID,
		Amount:        amount,
		BankName:      req.BankName,
		TransferDate:  transferDate,
		SlipURL:       slipURL,
	})
	if err != nil {
		// The slip file is orphaned if the payment was rejected.
		if removeErr := pc.Storage.Remove(slipURL); removeErr != nil {
			logger.Warning(fmt.Sprintf("Failed to remove orphaned slip %s: %v", slipURL, removeErr))
		}
		switch {
		case errors.Is(err, apperrors.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: err.Error(),
			})
		case errors.Is(err, apperrors.ErrOrderNotPending):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
			})
		default:
			logger.Error("Failed to create payment", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to create payment",
			})
		}
	}

	if pc.SlipParser.Enabled() {
		pc.SlipParser.VerifyAsync(pay.ID, amount, fileBytes, mimeType)
	}

	logger.Success(fmt.Sprintf("Payment recorded for order %d", req.RentalOrderID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Payment submitted successfully",
		Data:    pay,
	})
}

// Index lists payments newest first with their orders (admin view).
func (pc *PaymentController) Index(c *fiber.Ctx) error {
	var payments []paymentModel.Payment
	err := pc.DB.
		Preload("RentalOrder").
		Preload("RentalOrder.Customer").
		Preload("RentalOrder.Product").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		logger.Error("Failed to list payments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payments retrieved successfully",
		Data:    payments,
	})
}

// Show returns the payment attached to one rental order.
func (pc *PaymentController) Show(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("orderId")
	if err != nil || orderID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var pay paymentModel.Payment
	err = pc.DB.Where("rental_order_id = ?", orderID).First(&pay).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Payment not found",
			})
		}
		logger.Error("Failed to load payment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment retrieved successfully",
		Data:    pay,
	})
}
