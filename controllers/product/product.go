package product

import (
	"errors"
	"fmt"
	"io"
	"time"

	"rental-booking/apperrors"
	"rental-booking/logger"
	productModel "rental-booking/models/product"
	"rental-booking/services/availability"
	"rental-booking/services/storage"
	"rental-booking/types"
	productTypes "rental-booking/types/product"
	rentalTypes "rental-booking/types/rental"
	"rental-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxImageBytes = 10 * 1024 * 1024

// ProductController manages the rental catalog and its availability views.
type ProductController struct {
	DB      *gorm.DB
	Checker *availability.Checker
	Storage *storage.Service
	Logger  *logger.AsyncLogger
}

func NewProductController(db *gorm.DB, checker *availability.Checker, store *storage.Service, asyncLogger *logger.AsyncLogger) *ProductController {
	return &ProductController{
		DB:      db,
		Checker: checker,
		Storage: store,
		Logger:  asyncLogger,
	}
}

// Index lists products with branch and images. The public catalog passes
// ?status=AVAILABLE; the admin console omits it to see everything.
func (pc *ProductController) Index(c *fiber.Ctx) error {
	query := pc.DB.Preload("Branch").Preload("Images").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		if !productModel.Status(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid product status filter",
			})
		}
		query = query.Where("status = ?", status)
	}
	if branchID := c.QueryInt("branch_id"); branchID > 0 {
		query = query.Where("branch_id = ?", branchID)
	}

	var products []productModel.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to list products", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Products retrieved successfully",
		Data:    products,
	})
}

// Show returns a single product with branch and images.
func (pc *ProductController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	var prod productModel.Product
	err = pc.DB.Preload("Branch").Preload("Images").First(&prod, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Product not found",
			})
		}
		logger.Error("Failed to load product", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product retrieved successfully",
		Data:    prod,
	})
}

// Store creates a product. Accepts multipart with optional "images" files;
// the first uploaded image becomes the main one.
func (pc *ProductController) Store(c *fiber.Ctx) error {
	var req productTypes.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse product form", err)
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

	price, err := decimal.NewFromString(req.PricePerDay)
	if err != nil || price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "price_per_day must be a non-negative decimal",
		})
	}
	deposit, err := decimal.NewFromString(req.Deposit)
	if err != nil || deposit.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "deposit must be a non-negative decimal",
		})
	}

	status := productModel.StatusAvailable
	if req.Status != "" {
		status = productModel.Status(req.Status)
		if !status.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid product status",
			})
		}
	}

	prod := productModel.Product{
		Name:        req.Name,
		PricePerDay: price,
		Deposit:     deposit,
		Status:      status,
		BranchID:    req.BranchID,
	}
	if req.Description != "" {
		prod.Description = &req.Description
	}

	if err := pc.DB.Create(&prod).Error; err != nil {
		logger.Error("Failed to create product", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create product",
		})
	}

	if err := pc.attachImages(c, &prod); err != nil {
		logger.Warning(fmt.Sprintf("Product %d created but image upload failed: %v", prod.ID, err))
	}

	pc.DB.Preload("Branch").Preload("Images").First(&prod, prod.ID)

	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Product created: %s", prod.Name))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Product created successfully",
		Data:    prod,
	})
}

// Update modifies product fields; only fields present in the form change.
func (pc *ProductController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	var prod productModel.Product
	if err := pc.DB.First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Product not found",
			})
		}
		logger.Error("Failed to load product", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var req productTypes.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Name != "" {
		prod.Name = req.Name
	}
	if req.Description != "" {
		prod.Description = &req.Description
	}
	if req.PricePerDay != "" {
		price, err := decimal.NewFromString(req.PricePerDay)
		if err != nil || price.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "price_per_day must be a non-negative decimal",
			})
		}
		prod.PricePerDay = price
	}
	if req.Deposit != "" {
		deposit, err := decimal.NewFromString(req.Deposit)
		if err != nil || deposit.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "deposit must be a non-negative decimal",
			})
		}
		prod.Deposit = deposit
	}
	if req.Status != "" {
		status := productModel.Status(req.Status)
		if !status.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid product status",
			})
		}
		prod.Status = status
	}
	if req.BranchID != 0 {
		prod.BranchID = req.BranchID
	}

	if err := pc.DB.Save(&prod).Error; err != nil {
		logger.Error("Failed to update product", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update product",
		})
	}

	if err := pc.attachImages(c, &prod); err != nil {
		logger.Warning(fmt.Sprintf("Product %d updated but image upload failed: %v", prod.ID, err))
	}

	pc.DB.Preload("Branch").Preload("Images").First(&prod, prod.ID)

	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Product updated: %s", prod.Name))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product updated successfully",
		Data:    prod,
	})
}

// Destroy removes a product and its image files. Products referenced by
// orders cannot be deleted; mark them UNAVAILABLE instead.
func (pc *ProductController) Destroy(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	var prod productModel.Product
	if err := pc.DB.Preload("Images").First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Product not found",
			})
		}
		logger.Error("Failed to load product", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var orderCount int64
	if err := pc.DB.Table("rental_orders").Where("product_id = ?", prod.ID).Count(&orderCount).Error; err != nil {
		logger.Error("Failed to count product orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
	if orderCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Product has rental orders and cannot be deleted; set it to UNAVAILABLE instead",
		})
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", prod.ID).Delete(&productModel.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&prod).Error
	})
	if err != nil {
		logger.Error("Failed to delete product", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete product",
		})
	}

	for _, img := range prod.Images {
		if err := pc.Storage.Remove(img.URL); err != nil {
			logger.Warning(fmt.Sprintf("Failed to remove image file %s: %v", img.URL, err))
		}
	}

	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Product deleted: %s", prod.Name))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product deleted successfully",
	})
}

// CheckAvailability answers whether the product is free over
// ?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD.
func (pc *ProductController) CheckAvailability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	var q rentalTypes.AvailabilityQuery
	if err := c.QueryParser(&q); err != nil || q.StartDate == "" || q.EndDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "start_date and end_date query parameters are required",
		})
	}

	start, err := time.Parse("2006-01-02", q.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	end, err := time.Parse("2006-01-02", q.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "end_date must be YYYY-MM-DD",
		})
	}

	result, err := pc.Checker.Check(c.Context(), uint(id), start, end)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: err.Error(),
			})
		case errors.Is(err, apperrors.ErrInvalidDateRange):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
			})
		default:
			logger.Error("Availability check failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Availability check failed",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Availability checked successfully",
		Data:    result,
	})
}

// Calendar returns every active booking span for the product.
func (pc *ProductController) Calendar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	result, err := pc.Checker.Calendar(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, apperrors.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: err.Error(),
			})
		}
		logger.Error("Calendar lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Calendar lookup failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Calendar retrieved successfully",
		Data:    result,
	})
}

// attachImages stores any uploaded "images" files for the product.
func (pc *ProductController) attachImages(c *fiber.Ctx, prod *productModel.Product) error {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil
	}

	var mainCount int64
	if err := pc.DB.Model(&productModel.ProductImage{}).
		Where("product_id = ? AND is_main = ?", prod.ID, true).
		Count(&mainCount).Error; err != nil {
		return err
	}
	hasMain := mainCount > 0

	for i, fileHeader := range files {
		if fileHeader.Size > maxImageBytes {
			return fmt.Errorf("image %s exceeds 10MB", fileHeader.Filename)
		}
		mimeType := fileHeader.Header.Get("Content-Type")
		if !storage.IsValidImageType(mimeType) {
			return fmt.Errorf("image %s is not a supported type", fileHeader.Filename)
		}

		file, err := fileHeader.Open()
		if err != nil {
			return err
		}
		fileBytes, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return err
		}

		url, err := pc.Storage.Save(fileBytes, fileHeader.Filename)
		if err != nil {
			return err
		}

		img := productModel.ProductImage{
			ProductID: prod.ID,
			URL:       url,
			IsMain:    !hasMain && i == 0,
		}
		if err := pc.DB.Create(&img).Error; err != nil {
			return err
		}
	}
	return nil
}
