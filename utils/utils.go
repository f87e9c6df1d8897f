package utils

import (
	"time"

	"rental-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetClaims returns the validated JWT claims the auth middleware stored.
func GetClaims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	return claims, ok
}

// ActorFromClaims derives the actor label recorded in the status ledger:
// the admin's email when present, otherwise the subject id.
func ActorFromClaims(claims jwt.MapClaims) string {
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	return "unknown"
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
// This function handles file uploads, large content, and creates safe copies of all data
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Create deep copies of all data to prevent memory reference issues
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	// Deep copy headers
	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

const maxLoggedBodyBytes = 8 * 1024

// sanitizeRequestBody keeps logged bodies small and skips binary uploads.
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := string(c.Request().Header.ContentType())
	if len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		return "[multipart form data omitted]"
	}

	body := c.Body()
	if len(body) > maxLoggedBodyBytes {
		return string(append([]byte(nil), body[:maxLoggedBodyBytes]...)) + "...[truncated]"
	}
	return string(append([]byte(nil), body...))
}
