package payment

import (
	"context"
	"testing"
	"time"

	"rental-booking/apperrors"
	paymentModel "rental-booking/models/payment"
	"rental-booking/models/rental"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) OrderByID(ctx context.Context, id uint) (*rental.RentalOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.RentalOrder), args.Error(1)
}

func (m *mockRepo) CreatePayment(ctx context.Context, pay *paymentModel.Payment, next rental.Status, note, changedBy string) error {
	args := m.Called(ctx, pay, next, note, changedBy)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) StatusChanged(order *rental.RentalOrder, note string) {
	m.Called(order, note)
}

func createInput() CreateInput {
	return CreateInput{
		RentalOrderID: 11,
		Amount:        decimal.RequireFromString("1500.00"),
		BankName:      "KBANK",
		TransferDate:  time.Date(2025, 4, 1, 14, 30, 0, 0, time.UTC),
		SlipURL:       "/uploads/ab12cd34_1743517800.jpg",
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("AutoTransitionsToWaitingConfirmation", func(t *testing.T) {
		repo := new(mockRepo)
		notifier := new(mockNotifier)
		svc := NewService(repo, notifier)

		repo.On("OrderByID", ctx, uint(11)).
			Return(&rental.RentalOrder{ID: 11, Status: rental.StatusPendingPayment}, nil)
		repo.On("CreatePayment", ctx, mock.AnythingOfType("*payment.Payment"),
			rental.StatusWaitingConfirmation, "Customer uploaded payment slip", "Customer").
			Run(func(args mock.Arguments) {
				pay := args.Get(1).(*paymentModel.Payment)
				assert.Equal(t, uint(11), pay.RentalOrderID)
				assert.True(t, decimal.RequireFromString("1500.00").Equal(pay.Amount))
				assert.Equal(t, "KBANK", pay.BankName)
				assert.Equal(t, "pending", pay.ParseStatus)
			}).
			Return(nil)
		notifier.On("StatusChanged", mock.AnythingOfType("*rental.RentalOrder"), "Customer uploaded payment slip").
			Run(func(args mock.Arguments) {
				order := args.Get(0).(*rental.RentalOrder)
				assert.Equal(t, rental.StatusWaitingConfirmation, order.Status)
			})

		pay, err := svc.Create(ctx, createInput())
		assert.NoError(t, err)
		assert.NotNil(t, pay)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("RejectsOrderNotPendingPayment", func(t *testing.T) {
		for _, status := range []rental.Status{
			rental.StatusWaitingConfirmation,
			rental.StatusApproved,
			rental.StatusInUse,
			rental.StatusReturned,
			rental.StatusCancelled,
		} {
			repo := new(mockRepo)
			notifier := new(mockNotifier)
			svc := NewService(repo, notifier)

			repo.On("OrderByID", ctx, uint(11)).
				Return(&rental.RentalOrder{ID: 11, Status: status}, nil)

			_, err := svc.Create(ctx, createInput())
			assert.ErrorIs(t, err, apperrors.ErrOrderNotPending, "status %s should reject payment", status)
			repo.AssertNotCalled(t, "CreatePayment")
			notifier.AssertNotCalled(t, "StatusChanged")
		}
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, new(mockNotifier))

		repo.On("OrderByID", ctx, uint(11)).Return(nil, apperrors.ErrOrderNotFound)

		_, err := svc.Create(ctx, createInput())
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})
}
