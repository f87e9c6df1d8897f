package branch

import (
	"errors"

	"rental-booking/logger"
	branchModel "rental-booking/models/branch"
	"rental-booking/types"
	branchTypes "rental-booking/types/branch"
	"rental-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BranchController manages pickup/return locations.
type BranchController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewBranchController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BranchController {
	return &BranchController{DB: db, Logger: asyncLogger}
}

// Index lists branches; pass ?active=true for the public subset.
func (bc *BranchController) Index(c *fiber.Ctx) error {
	query := bc.DB.Order("created_at ASC")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var branches []branchModel.Branch
	if err := query.Find(&branches).Error; err != nil {
		logger.Error("Failed to list branches", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Branches retrieved successfully",
		Data:    branches,
	})
}

// Show returns one branch.
func (bc *BranchController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid branch id",
		})
	}

	var b branchModel.Branch
	if err := bc.DB.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Branch not found",
			})
		}
		logger.Error("Failed to load branch", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Branch retrieved successfully",
		Data:    b,
	})
}

// Store creates a branch.
func (bc *BranchController) Store(c *fiber.Ctx) error {
	var req branchTypes.BranchRequest
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

	b := branchModel.Branch{
		Name:     req.Name,
		IsActive: true,
	}
	if req.Address != "" {
		b.Address = &req.Address
	}
	if req.Phone != "" {
		b.Phone = &req.Phone
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := bc.DB.Create(&b).Error; err != nil {
		logger.Error("Failed to create branch", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create branch",
		})
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Branch created: " + b.Name)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Branch created successfully",
		Data:    b,
	})
}

// Update modifies a branch; empty fields keep their current values.
func (bc *BranchController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid branch id",
		})
	}

	var b branchModel.Branch
	if err := bc.DB.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Branch not found",
			})
		}
		logger.Error("Failed to load branch", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var req branchTypes.BranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Name != "" {
		b.Name = req.Name
	}
	if req.Address != "" {
		b.Address = &req.Address
	}
	if req.Phone != "" {
		b.Phone = &req.Phone
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := bc.DB.Save(&b).Error; err != nil {
		logger.Error("Failed to update branch", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update branch",
		})
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Branch updated: " + b.Name)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Branch updated successfully",
		Data:    b,
	})
}

// Destroy deletes a branch that has no products or orders attached.
func (bc *BranchController) Destroy(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid branch id",
		})
	}

	var b branchModel.Branch
	if err := bc.DB.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Branch not found",
			})
		}
		logger.Error("Failed to load branch", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var productCount, orderCount int64
	if err := bc.DB.Table("products").Where("branch_id = ?", b.ID).Count(&productCount).Error; err != nil {
		logger.Error("Failed to count branch products", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
	if err := bc.DB.Table("rental_orders").Where("branch_id = ?", b.ID).Count(&orderCount).Error; err != nil {
		logger.Error("Failed to count branch orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
	if productCount > 0 || orderCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Branch has products or orders and cannot be deleted; deactivate it instead",
		})
	}

	if err := bc.DB.Delete(&b).Error; err != nil {
		logger.Error("Failed to delete branch", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete branch",
		})
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Branch deleted: " + b.Name)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Branch deleted successfully",
	})
}
