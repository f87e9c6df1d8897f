package rental

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() RentalCreateRequest {
	return RentalCreateRequest{
		ProductID:   7,
		StartDate:   "2025-04-01",
		EndDate:     "2025-04-03",
		LineUserID:  "U1234567890abcdef",
		FirstName:   "Somchai",
		LastName:    "Jaidee",
		PhoneNumber: "0812345678",
	}
}

func TestRentalCreateRequestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validRequest().Validate())
	})

	t.Run("MissingProduct", func(t *testing.T) {
		req := validRequest()
		req.ProductID = 0
		assert.Error(t, req.Validate())
	})

	t.Run("MissingLineIdentity", func(t *testing.T) {
		req := validRequest()
		req.LineUserID = ""
		assert.Error(t, req.Validate())
	})

	t.Run("BadDateFormat", func(t *testing.T) {
		req := validRequest()
		req.StartDate = "01/04/2025"
		assert.Error(t, req.Validate())

		req = validRequest()
		req.EndDate = "2025-4-3"
		assert.Error(t, req.Validate())
	})
}

func TestUpdateStatusRequestValidate(t *testing.T) {
	assert.Error(t, UpdateStatusRequest{}.Validate())
	assert.NoError(t, UpdateStatusRequest{Status: "APPROVED"}.Validate())
}
