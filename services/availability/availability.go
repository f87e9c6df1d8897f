// Package availability answers whether a product is free for a date range
// and produces the raw busy-range listing the LIFF calendar renders.
package availability

import (
	"context"
	"time"

	"rental-booking/models/product"
	"rental-booking/models/rental"
	"rental-booking/services/daterange"
)

// Repository is the slice of the store the checker needs.
type Repository interface {
	ProductByID(ctx context.Context, id uint) (*product.Product, error)
	OrdersByStatus(ctx context.Context, productID uint, statuses []rental.Status) ([]rental.RentalOrder, error)
}

type Checker struct {
	repo Repository
}

func NewChecker(repo Repository) *Checker {
	return &Checker{repo: repo}
}

// Result is the outcome of a date-range availability check.
type Result struct {
	ProductID   uint                 `json:"product_id"`
	StartDate   time.Time            `json:"start_date"`
	EndDate     time.Time            `json:"end_date"`
	IsAvailable bool                 `json:"is_available"`
	Conflicts   []rental.RentalOrder `json:"conflicts"`
}

// Check reports whether productID is free over [start, end]. Only orders in
// booked statuses (APPROVED, WAITING_DELIVERY, IN_USE) can conflict;
// CANCELLED and REJECTED never block, and PENDING_PAYMENT /
// WAITING_CONFIRMATION are soft holds that do not block either.
func (c *Checker) Check(ctx context.Context, productID uint, start, end time.Time) (*Result, error) {
	if _, err := c.repo.ProductByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := daterange.InclusiveDays(start, end); err != nil {
		return nil, err
	}

	booked, err := c.repo.OrdersByStatus(ctx, productID, rental.BookedStatuses())
	if err != nil {
		return nil, err
	}

	conflicts := make([]rental.RentalOrder, 0)
	for _, order := range booked {
		if daterange.Overlaps(order.StartDate, order.EndDate, start, end) {
			conflicts = append(conflicts, order)
		}
	}

	return &Result{
		ProductID:   productID,
		StartDate:   start,
		EndDate:     end,
		IsAvailable: len(conflicts) == 0,
		Conflicts:   conflicts,
	}, nil
}

// BusyRange is one booked span on a product's calendar.
type BusyRange struct {
	RentalID  uint          `json:"rental_id"`
	RentalRef string        `json:"rental_ref"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Status    rental.Status `json:"status"`
}

// CalendarResult is the bulk busy-range listing for a product.
type CalendarResult struct {
	ProductID     uint           `json:"product_id"`
	ProductName   string         `json:"product_name"`
	Status        product.Status `json:"status"`
	BookedDates   []BusyRange    `json:"booked_dates"`
	TotalBookings int            `json:"total_bookings"`
}

// Calendar lists every order for the product that is not CANCELLED or
// REJECTED, ordered by start date. This is a raw unmerged listing for
// calendar display; no overlap test is applied.
func (c *Checker) Calendar(ctx context.Context, productID uint) (*CalendarResult, error) {
	prod, err := c.repo.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	orders, err := c.repo.OrdersByStatus(ctx, productID, rental.ActiveStatuses())
	if err != nil {
		return nil, err
	}

	booked := make([]BusyRange, 0, len(orders))
	for _, order := range orders {
		booked = append(booked, BusyRange{
			RentalID:  order.ID,
			RentalRef: order.RentalRef,
			StartDate: order.StartDate,
			EndDate:   order.EndDate,
			Status:    order.Status,
		})
	}

	return &CalendarResult{
		ProductID:     prod.ID,
		ProductName:   prod.Name,
		Status:        prod.Status,
		BookedDates:   booked,
		TotalBookings: len(booked),
	}, nil
}
