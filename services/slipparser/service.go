// Package slipparser extracts structured fields from uploaded bank-transfer
// slips with the Gemini Vision API and cross-checks them against the
// payment the customer entered. Verification runs off the request path;
// parse failures only downgrade the payment's parse status, never the
// payment itself.
package slipparser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"rental-booking/logger"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// Store is the slice of the data store the parser writes results to.
type Store interface {
	UpdateParseResult(ctx context.Context, paymentID uint, bankName *string, amount *decimal.Decimal, status string) error
}

type Service struct {
	store Store
	model string
}

func NewService(store Store) *Service {
	return &Service{store: store, model: "gemini-2.5-flash-lite"}
}

// Enabled reports whether a Gemini API key is configured. Without one the
// payment flow simply skips verification.
func (s *Service) Enabled() bool {
	return os.Getenv("GEMINI_API_KEY") != ""
}

// ParsedSlip is what Gemini extracts from the slip image.
type ParsedSlip struct {
	BankName     string `json:"bank_name"`
	Amount       string `json:"amount"`
	TransferDate string `json:"transfer_date"`
}

// VerifyAsync parses the slip on a background goroutine and records the
// result on the payment row: "verified" when the parsed amount matches the
// declared one, "mismatch" when it does not, "failed" when parsing errored.
func (s *Service) VerifyAsync(paymentID uint, declaredAmount decimal.Decimal, imageBytes []byte, mimeType string) {
	go func() {
		ctx := context.Background()

		parsed, err := s.Parse(ctx, imageBytes, mimeType)
		if err != nil {
			logger.Error(fmt.Sprintf("Slip parsing failed for payment %d", paymentID), err)
			if err := s.store.UpdateParseResult(ctx, paymentID, nil, nil, "failed"); err != nil {
				logger.Error(fmt.Sprintf("Failed to record parse failure for payment %d", paymentID), err)
			}
			return
		}

		status := "verified"
		var parsedAmount *decimal.Decimal
		if amt, err := decimal.NewFromString(parsed.Amount); err == nil {
			parsedAmount = &amt
			if !amt.Equal(declaredAmount) {
				status = "mismatch"
				logger.Warning(fmt.Sprintf("Slip amount %s does not match declared %s for payment %d",
					amt.String(), declaredAmount.String(), paymentID))
			}
		} else {
			status = "failed"
		}

		var bank *string
		if parsed.BankName != "" {
			bank = &parsed.BankName
		}

		if err := s.store.UpdateParseResult(ctx, paymentID, bank, parsedAmount, status); err != nil {
			logger.Error(fmt.Sprintf("Failed to save slip parse result for payment %d", paymentID), err)
			return
		}
		logger.Success(fmt.Sprintf("Slip parse result saved for payment %d: %s", paymentID, status))
	}()
}

// Parse sends the slip image to Gemini and decodes the structured reply.
func (s *Service) Parse(ctx context.Context, imageBytes []byte, mimeType string) (*ParsedSlip, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := `Analyze this bank transfer slip image and extract the following information. Return ONLY valid JSON.

			Extract these fields from the image. If a field is missing or unclear, use an empty string.

			Required JSON format:
			{
			"bank_name": string,      // Bank name or short code (e.g. KBANK, SCB)
			"amount": string,         // Transferred amount as a plain decimal, no currency symbol or separators
			"transfer_date": string   // Transfer date/time as printed on the slip
			}`

	content := &genai.Content{
		Parts: []*genai.Part{
			&genai.Part{Text: prompt},
			&genai.Part{InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     imageBytes,
			}},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		s.model,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with OCR: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated by OCR")
	}

	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("empty response from OCR")
	}

	jsonText := extractJSONFromMarkdown(responseText)

	var parsed ParsedSlip
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}

	return &parsed, nil
}

// extractJSONFromMarkdown extracts JSON content from markdown code blocks
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			return strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	return text
}
