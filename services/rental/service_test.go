package rental

import (
	"context"
	"regexp"
	"testing"
	"time"

	"rental-booking/apperrors"
	"rental-booking/models/customer"
	"rental-booking/models/product"
	"rental-booking/models/rental"

	"github.com/shopspring/decimal"
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

func (m *mockRepo) OrderByID(ctx context.Context, id uint) (*rental.RentalOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.RentalOrder), args.Error(1)
}

func (m *mockRepo) CreateOrder(ctx context.Context, cust *customer.Customer, order *rental.RentalOrder) error {
	args := m.Called(ctx, cust, order)
	return args.Error(0)
}

func (m *mockRepo) TransitionOrder(ctx context.Context, orderID uint, current, next rental.Status, note, changedBy string) error {
	args := m.Called(ctx, orderID, current, next, note, changedBy)
	return args.Error(0)
}

func (m *mockRepo) HistoryForOrder(ctx context.Context, orderID uint) ([]rental.StatusHistory, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]rental.StatusHistory), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) StatusChanged(order *rental.RentalOrder, note string) {
	m.Called(order, note)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func availableProduct() *product.Product {
	return &product.Product{
		ID:          7,
		Name:        "Canon EOS R6",
		PricePerDay: decimal.RequireFromString("500.00"),
		Deposit:     decimal.RequireFromString("2000.00"),
		Status:      product.StatusAvailable,
		BranchID:    3,
	}
}

func bookingInput() CreateOrderInput {
	return CreateOrderInput{
		ProductID:   7,
		StartDate:   day(2025, 4, 1),
		EndDate:     day(2025, 4, 3),
		LineUserID:  "U1234567890abcdef",
		DisplayName: "somchai",
		FirstName:   "Somchai",
		LastName:    "Jaidee",
		PhoneNumber: "0812345678",
		Address:     "123 Sukhumvit Rd",
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		notifier := new(mockNotifier)
		svc := NewService(repo, notifier)

		repo.On("ProductByID", ctx, uint(7)).Return(availableProduct(), nil)
		repo.On("CreateOrder", ctx, mock.AnythingOfType("*customer.Customer"), mock.AnythingOfType("*rental.RentalOrder")).
			Run(func(args mock.Arguments) {
				cust := args.Get(1).(*customer.Customer)
				order := args.Get(2).(*rental.RentalOrder)
				assert.Equal(t, "U1234567890abcdef", cust.LineUserID)
				assert.Equal(t, "Somchai", cust.FirstName)

				// 3 inclusive days at 500/day.
				assert.True(t, decimal.RequireFromString("1500.00").Equal(order.TotalPrice))
				assert.True(t, decimal.RequireFromString("2000.00").Equal(order.DepositAmount))
				assert.Equal(t, rental.StatusPendingPayment, order.Status)
				assert.Equal(t, uint(7), order.ProductID)
				assert.Equal(t, uint(3), order.BranchID)
			}).
			Return(nil)

		order, err := svc.Create(ctx, bookingInput())
		assert.NoError(t, err)
		assert.NotNil(t, order)
		repo.AssertExpectations(t)
		notifier.AssertNotCalled(t, "StatusChanged")
	})

	t.Run("SameDayRentalBillsOneDay", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		repo.On("ProductByID", ctx, uint(7)).Return(availableProduct(), nil)
		repo.On("CreateOrder", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				order := args.Get(2).(*rental.RentalOrder)
				assert.True(t, decimal.RequireFromString("500.00").Equal(order.TotalPrice))
			}).
			Return(nil)

		in := bookingInput()
		in.EndDate = in.StartDate
		_, err := svc.Create(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("RentalRefFormat", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))
		svc.now = func() time.Time { return day(2025, 4, 1) }

		repo.On("ProductByID", ctx, uint(7)).Return(availableProduct(), nil)
		repo.On("CreateOrder", ctx, mock.Anything, mock.Anything).Return(nil)

		order, err := svc.Create(ctx, bookingInput())
		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^ORD-20250401-[0-9A-F]{6}$`), order.RentalRef)
	})

	t.Run("ProductNotAvailable", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		prod := availableProduct()
		prod.Status = product.StatusMaintenance
		repo.On("ProductByID", ctx, uint(7)).Return(prod, nil)

		_, err := svc.Create(ctx, bookingInput())
		assert.ErrorIs(t, err, apperrors.ErrProductUnavailable)
		repo.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("ProductNotFound", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		repo.On("ProductByID", ctx, uint(7)).Return(nil, apperrors.ErrProductNotFound)

		_, err := svc.Create(ctx, bookingInput())
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})

	t.Run("InvalidDateRange", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		repo.On("ProductByID", ctx, uint(7)).Return(availableProduct(), nil)

		in := bookingInput()
		in.StartDate = day(2025, 4, 5)
		in.EndDate = day(2025, 4, 1)
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
		repo.AssertNotCalled(t, "CreateOrder")
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	order := func(status rental.Status) *rental.RentalOrder {
		return &rental.RentalOrder{
			ID:        11,
			RentalRef: "ORD-20250401-A1B2C3",
			Status:    status,
			Customer:  customer.Customer{LineUserID: "U1234567890abcdef"},
			Product:   product.Product{Name: "Canon EOS R6"},
		}
	}

	t.Run("LegalTransitionWritesLedgerAndNotifies", func(t *testing.T) {
		repo := new(mockRepo)
		notifier := new(mockNotifier)
		svc := NewService(repo, notifier)

		repo.On("OrderByID", ctx, uint(11)).Return(order(rental.StatusWaitingConfirmation), nil)
		repo.On("TransitionOrder", ctx, uint(11), rental.StatusWaitingConfirmation, rental.StatusApproved, "looks good", "admin@rental.com").Return(nil)
		notifier.On("StatusChanged", mock.AnythingOfType("*rental.RentalOrder"), "looks good").
			Run(func(args mock.Arguments) {
				o := args.Get(0).(*rental.RentalOrder)
				assert.Equal(t, rental.StatusApproved, o.Status)
			})

		updated, err := svc.UpdateStatus(ctx, 11, rental.StatusApproved, "looks good", "admin@rental.com")
		assert.NoError(t, err)
		assert.Equal(t, rental.StatusApproved, updated.Status)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("IllegalTransitionRejected", func(t *testing.T) {
		repo := new(mockRepo)
		notifier := new(mockNotifier)
		svc := NewService(repo, notifier)

		repo.On("OrderByID", ctx, uint(11)).Return(order(rental.StatusPendingPayment), nil)

		_, err := svc.UpdateStatus(ctx, 11, rental.StatusApproved, "", "admin@rental.com")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		repo.AssertNotCalled(t, "TransitionOrder")
		notifier.AssertNotCalled(t, "StatusChanged")
	})

	t.Run("TerminalOrderRejectsEverything", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		repo.On("OrderByID", ctx, uint(11)).Return(order(rental.StatusReturned), nil)

		_, err := svc.UpdateStatus(ctx, 11, rental.StatusCancelled, "", "admin@rental.com")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("UnknownStatusRejectedBeforeLookup", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		_, err := svc.UpdateStatus(ctx, 11, rental.Status("SHIPPED"), "", "admin@rental.com")
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
		repo.AssertNotCalled(t, "OrderByID")
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		repo.On("OrderByID", ctx, uint(99)).Return(nil, apperrors.ErrOrderNotFound)

		_, err := svc.UpdateStatus(ctx, 99, rental.StatusApproved, "", "admin@rental.com")
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})

	t.Run("ConcurrentStatusChangeSurfacesConflict", func(t *testing.T) {
		repo := new(mockRepo)
		notifier := new(mockNotifier)
		svc := NewService(repo, notifier)

		// Another admin moved the order between our read and our write; the
		// conditional update matched nothing.
		repo.On("OrderByID", ctx, uint(11)).Return(order(rental.StatusWaitingConfirmation), nil)
		repo.On("TransitionOrder", ctx, uint(11), rental.StatusWaitingConfirmation, rental.StatusApproved, "", "admin@rental.com").
			Return(apperrors.ErrStatusConflict)

		_, err := svc.UpdateStatus(ctx, 11, rental.StatusApproved, "", "admin@rental.com")
		assert.ErrorIs(t, err, apperrors.ErrStatusConflict)
		assert.NotErrorIs(t, err, apperrors.ErrStorage)
		notifier.AssertNotCalled(t, "StatusChanged")
	})
}

func TestService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsLedgerOldestFirst", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		repo.On("OrderByID", ctx, uint(11)).Return(&rental.RentalOrder{ID: 11}, nil)
		repo.On("HistoryForOrder", ctx, uint(11)).Return([]rental.StatusHistory{
			{ID: 1, Status: rental.StatusWaitingConfirmation, ChangedBy: "Customer"},
			{ID: 2, Status: rental.StatusApproved, ChangedBy: "admin@rental.com"},
		}, nil)

		history, err := svc.History(ctx, 11)
		assert.NoError(t, err)
		assert.Len(t, history, 2)
		assert.Equal(t, rental.StatusWaitingConfirmation, history[0].Status)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		repo.On("OrderByID", ctx, uint(99)).Return(nil, apperrors.ErrOrderNotFound)

		_, err := svc.History(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
		repo.AssertNotCalled(t, "HistoryForOrder")
	})
}

func TestNewRentalRef(t *testing.T) {
	ref := newRentalRef(day(2025, 12, 31))
	assert.Regexp(t, regexp.MustCompile(`^ORD-20251231-[0-9A-F]{6}$`), ref)

	// Suffixes are uuid-derived; two refs in the same instant differ.
	assert.NotEqual(t, newRentalRef(day(2025, 12, 31)), newRentalRef(day(2025, 12, 31)))
}
