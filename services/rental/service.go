// Package rental holds the order lifecycle engine: the factory that turns a
// LIFF booking request into a PENDING_PAYMENT order, and the transition
// engine that drives an order through the status workflow with an
// append-only history ledger and LINE notification side effects.
package rental

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rental-booking/apperrors"
	"rental-booking/models/customer"
	"rental-booking/models/product"
	"rental-booking/models/rental"
	"rental-booking/services/daterange"

	"github.com/shopspring/decimal"
)

// Repository is the transactional slice of the store the engine needs.
// CreateOrder must upsert the customer and insert the order as one unit;
// TransitionOrder must update the status and append the history row as one
// unit. Neither may leave partial state behind on failure.
type Repository interface {
	ProductByID(ctx context.Context, id uint) (*product.Product, error)
	OrderByID(ctx context.Context, id uint) (*rental.RentalOrder, error)
	CreateOrder(ctx context.Context, cust *customer.Customer, order *rental.RentalOrder) error
	TransitionOrder(ctx context.Context, orderID uint, current, next rental.Status, note, changedBy string) error
	HistoryForOrder(ctx context.Context, orderID uint) ([]rental.StatusHistory, error)
}

// Notifier receives committed status changes. Implementations must be
// fire-and-forget; the engine never inspects an outcome.
type Notifier interface {
	StatusChanged(order *rental.RentalOrder, note string)
}

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateOrderInput is the booking form plus the LINE profile of the
// customer placing it.
type CreateOrderInput struct {
	ProductID uint
	StartDate time.Time
	EndDate   time.Time

	LineUserID  string
	DisplayName string
	PictureURL  string
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
}

// Create builds a PENDING_PAYMENT order: product must exist and carry the
// AVAILABLE flag, the range must span at least one day, the price is
// price-per-day times inclusive days, and the customer row is upserted by
// LINE identity with the latest profile. Customer upsert and order insert
// commit in one transaction.
//
// The AVAILABLE gate is a static admin flag; Create does not consult the
// availability checker, so two overlapping bookings on the same product can
// both succeed. Callers needing strict exclusion must serialize on the
// product themselves.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (*rental.RentalOrder, error) {
	prod, err := s.repo.ProductByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if prod.Status != product.StatusAvailable {
		return nil, apperrors.ErrProductUnavailable
	}

	days, err := daterange.InclusiveDays(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	totalPrice := prod.PricePerDay.Mul(decimal.NewFromInt(int64(days)))

	cust := &customer.Customer{
		LineUserID:  in.LineUserID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
	}
	if in.DisplayName != "" {
		cust.DisplayName = &in.DisplayName
	}
	if in.PictureURL != "" {
		cust.PictureURL = &in.PictureURL
	}
	if in.Address != "" {
		cust.Address = &in.Address
	}

	order := &rental.RentalOrder{
		RentalRef:     newRentalRef(s.now()),
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		TotalPrice:    totalPrice,
		DepositAmount: prod.Deposit,
		Status:        rental.StatusPendingPayment,
		ProductID:     prod.ID,
		BranchID:      prod.BranchID,
	}

	if err := s.repo.CreateOrder(ctx, cust, order); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return order, nil
}

// UpdateStatus applies an admin-driven transition: it validates the move
// against the transition table, writes the new status together with exactly
// one history row {status, note, changedBy: actor}, and only after the
// commit hands the order to the notifier. A notifier failure can never fail
// or roll back the transition. The write is conditional on the status the
// move was validated against; if another admin changed it in between, the
// call fails with ErrStatusConflict and writes nothing.
func (s *Service) UpdateStatus(ctx context.Context, orderID uint, next rental.Status, note, actor string) (*rental.RentalOrder, error) {
	if !next.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	order, err := s.repo.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, order.Status, next)
	}

	if err := s.repo.TransitionOrder(ctx, order.ID, order.Status, next, note, actor); err != nil {
		if errors.Is(err, apperrors.ErrOrderNotFound) || errors.Is(err, apperrors.ErrStatusConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}

	order.Status = next
	s.notifier.StatusChanged(order, note)
	return order, nil
}

// History returns the order's status ledger, oldest first.
func (s *Service) History(ctx context.Context, orderID uint) ([]rental.StatusHistory, error) {
	if _, err := s.repo.OrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.HistoryForOrder(ctx, orderID)
}

// newRentalRef builds the human-readable booking reference
// ORD-YYYYMMDD-XXXXXX. The suffix is uuid-derived rather than a 4-digit
// random so references stay practically collision-free under load.
func newRentalRef(t time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102"), strings.ToUpper(fmt.Sprintf("%x", id[:3])))
}
