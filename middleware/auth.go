package middleware

import (
	"fmt"
	"os"
	"strings"

	"rental-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyJWT validates a bearer token signed with the shared HMAC secret and
// returns its claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

// IsAuthenticated extracts and validates the bearer token, stores the
// claims in c.Locals("user"), and optionally enforces a role allow-list.
func IsAuthenticated(roles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Authorization token required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid authorization header format",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := VerifyJWT(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals("user", claims)

		if len(roles) > 0 {
			role, _ := claims["role"].(string)
			allowed := false
			for _, r := range roles {
				if r == role {
					allowed = true
					break
				}
			}
			if !allowed {
				return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
					Message: "Insufficient permissions",
					Status:  fiber.StatusForbidden,
				})
			}
		}

		return c.Next()
	}
}

// RequireRoles creates a middleware allowing only the given roles.
func RequireRoles(roles ...string) fiber.Handler {
	return IsAuthenticated(roles)
}

// RequireAuthentication only requires a valid token without a role check.
func RequireAuthentication() fiber.Handler {
	return IsAuthenticated(nil)
}
