// Package payment creates bank-transfer records for orders awaiting
// payment. Creating a payment is the one transition not driven by an admin:
// it moves the order from PENDING_PAYMENT to WAITING_CONFIRMATION.
package payment

import (
	"context"
	"fmt"
	"time"

	"rental-booking/apperrors"
	"rental-booking/models/payment"
	"rental-booking/models/rental"

	"github.com/shopspring/decimal"
)

// The history row written alongside the auto-transition.
const (
	slipNote  = "Customer uploaded payment slip"
	slipActor = "Customer"
)

// Repository persists the payment and the order transition as one
// transaction: payment insert, status update and history append must all
// commit or none of them.
type Repository interface {
	OrderByID(ctx context.Context, id uint) (*rental.RentalOrder, error)
	CreatePayment(ctx context.Context, pay *payment.Payment, next rental.Status, note, changedBy string) error
}

// Notifier mirrors the rental engine's fire-and-forget contract.
type Notifier interface {
	StatusChanged(order *rental.RentalOrder, note string)
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// CreateInput carries the parsed form fields plus the stored slip path.
type CreateInput struct {
	RentalOrderID uint
	Amount        decimal.Decimal
	BankName      string
	TransferDate  time.Time
	SlipURL       string
}

// Create records the payment for an order in PENDING_PAYMENT and
// transitions it to WAITING_CONFIRMATION with a ledger row
// {WAITING_CONFIRMATION, "Customer uploaded payment slip", "Customer"}.
func (s *Service) Create(ctx context.Context, in CreateInput) (*payment.Payment, error) {
	order, err := s.repo.OrderByID(ctx, in.RentalOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != rental.StatusPendingPayment {
		return nil, apperrors.ErrOrderNotPending
	}

	pay := &payment.Payment{
		RentalOrderID: order.ID,
		Amount:        in.Amount,
		BankName:      in.BankName,
		TransferDate:  in.TransferDate,
		SlipURL:       in.SlipURL,
		ParseStatus:   "pending",
	}

	if err := s.repo.CreatePayment(ctx, pay, rental.StatusWaitingConfirmation, slipNote, slipActor); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}

	// WAITING_CONFIRMATION maps to no message today, but the dispatcher owns
	// that decision.
	order.Status = rental.StatusWaitingConfirmation
	s.notifier.StatusChanged(order, slipNote)

	return pay, nil
}
