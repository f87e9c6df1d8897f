package availability

import (
	"context"
	"testing"
	"time"

	"rental-booking/apperrors"
	"rental-booking/models/product"
	"rental-booking/models/rental"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ProductByID(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *mockRepo) OrdersByStatus(ctx context.Context, productID uint, statuses []rental.Status) ([]rental.RentalOrder, error) {
	args := m.Called(ctx, productID, statuses)
	return args.Get(0).([]rental.RentalOrder), args.Error(1)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestChecker_Check(t *testing.T) {
	ctx := context.Background()
	prod := &product.Product{ID: 7, Name: "Canon EOS R6", Status: product.StatusAvailable}

	t.Run("AvailableWhenNoBookedOrders", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ProductByID", ctx, uint(7)).Return(prod, nil)
		repo.On("OrdersByStatus", ctx, uint(7), rental.BookedStatuses()).
			Return([]rental.RentalOrder{}, nil)

		result, err := NewChecker(repo).Check(ctx, 7, day(2025, 4, 1), day(2025, 4, 3))
		assert.NoError(t, err)
		assert.True(t, result.IsAvailable)
		assert.Empty(t, result.Conflicts)
	})

	t.Run("OverlappingBookedOrderConflicts", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ProductByID", ctx, uint(7)).Return(prod, nil)
		repo.On("OrdersByStatus", ctx, uint(7), rental.BookedStatuses()).
			Return([]rental.RentalOrder{
				{ID: 1, RentalRef: "ORD-20250401-A1B2C3", StartDate: day(2025, 4, 2), EndDate: day(2025, 4, 5), Status: rental.StatusApproved},
				{ID: 2, RentalRef: "ORD-20250401-D4E5F6", StartDate: day(2025, 4, 20), EndDate: day(2025, 4, 22), Status: rental.StatusInUse},
			}, nil)

		result, err := NewChecker(repo).Check(ctx, 7, day(2025, 4, 1), day(2025, 4, 3))
		assert.NoError(t, err)
		assert.False(t, result.IsAvailable)
		assert.Len(t, result.Conflicts, 1)
		assert.Equal(t, uint(1), result.Conflicts[0].ID)
	})

	t.Run("BoundaryDayConflicts", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ProductByID", ctx, uint(7)).Return(prod, nil)
		repo.On("OrdersByStatus", ctx, uint(7), rental.BookedStatuses()).
			Return([]rental.RentalOrder{
				{ID: 3, StartDate: day(2025, 4, 3), EndDate: day(2025, 4, 6), Status: rental.StatusWaitingDelivery},
			}, nil)

		// Requested range ends exactly where the booking starts.
		result, err := NewChecker(repo).Check(ctx, 7, day(2025, 4, 1), day(2025, 4, 3))
		assert.NoError(t, err)
		assert.False(t, result.IsAvailable)
	})

	t.Run("OnlyBookedStatusesAreQueried", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ProductByID", ctx, uint(7)).Return(prod, nil)
		repo.On("OrdersByStatus", ctx, uint(7), []rental.Status{
			rental.StatusApproved, rental.StatusWaitingDelivery, rental.StatusInUse,
		}).Return([]rental.RentalOrder{}, nil)

		_, err := NewChecker(repo).Check(ctx, 7, day(2025, 4, 1), day(2025, 4, 3))
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ProductNotFound", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ProductByID", ctx, uint(99)).Return(nil, apperrors.ErrProductNotFound)

		_, err := NewChecker(repo).Check(ctx, 99, day(2025, 4, 1), day(2025, 4, 3))
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})

	t.Run("InvalidRange", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ProductByID", ctx, uint(7)).Return(prod, nil)

		_, err := NewChecker(repo).Check(ctx, 7, day(2025, 4, 3), day(2025, 4, 1))
		assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
	})
}

func TestChecker_Calendar(t *testing.T) {
	ctx := context.Background()
	prod := &product.Product{ID: 7, Name: "Canon EOS R6", Status: product.StatusAvailable}

	t.Run("ListsActiveOrdersUnmerged", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ProductByID", ctx, uint(7)).Return(prod, nil)
		repo.On("OrdersByStatus", ctx, uint(7), rental.ActiveStatuses()).
			Return([]rental.RentalOrder{
				{ID: 1, RentalRef: "ORD-20250401-A1B2C3", StartDate: day(2025, 4, 1), EndDate: day(2025, 4, 3), Status: rental.StatusReturned},
				{ID: 2, RentalRef: "ORD-20250402-D4E5F6", StartDate: day(2025, 4, 2), EndDate: day(2025, 4, 4), Status: rental.StatusPendingPayment},
			}, nil)

		result, err := NewChecker(repo).Calendar(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, "Canon EOS R6", result.ProductName)
		assert.Equal(t, 2, result.TotalBookings)
		assert.Len(t, result.BookedDates, 2)
		assert.Equal(t, "ORD-20250401-A1B2C3", result.BookedDates[0].RentalRef)
	})

	t.Run("ProductNotFound", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ProductByID", ctx, uint(99)).Return(nil, apperrors.ErrProductNotFound)

		_, err := NewChecker(repo).Calendar(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})
}
