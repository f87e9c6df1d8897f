package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"rental-booking/logger"
	userModel "rental-booking/models/user"
	"rental-booking/types"
	"rental-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, loggerInstance: asyncLogger}
}

// Login authenticates an admin-console user by email and password and
// issues an HS256 access token carrying {sub, email, role, branch_id}.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	var account userModel.User
	err := h.db.Where("email = ?", req.Email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid email or password",
				Status:  fiber.StatusUnauthorized,
			})
		}
		logger.Error("Database error during login", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !account.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Account is disabled",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := h.issueToken(&account)
	if err != nil {
		logger.Error("Failed to sign access token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to issue token",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success("User logged in: " + account.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data: types.LoginResponse{
			AccessToken: token,
			User: types.LoginUser{
				ID:       account.ID,
				FullName: account.FullName,
				Email:    account.Email,
				Role:     account.Role,
				BranchID: account.BranchID,
			},
		},
	})
}

func (h *AuthController) issueToken(account *userModel.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", account.ID),
		"email": account.Email,
		"role":  account.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	if account.BranchID != nil {
		claims["branch_id"] = *account.BranchID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
