// Package repository is the GORM/Postgres implementation of the store
// interfaces the services define. All multi-row writes go through
// db.Transaction so an aborted write never leaves an order without its
// history row or a payment without its transition.
package repository

import (
	"context"
	"errors"

	"rental-booking/apperrors"
	"rental-booking/models/customer"
	"rental-booking/models/payment"
	"rental-booking/models/product"
	"rental-booking/models/rental"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ProductByID loads a product with its branch and images.
func (s *Store) ProductByID(ctx context.Context, id uint) (*product.Product, error) {
	var prod product.Product
	err := s.db.WithContext(ctx).
		Preload("Branch").
		Preload("Images").
		First(&prod, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return &prod, nil
}

// OrderByID loads an order with its customer, product and branch.
func (s *Store) OrderByID(ctx context.Context, id uint) (*rental.RentalOrder, error) {
	var order rental.RentalOrder
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Product").
		Preload("Product.Images").
		Preload("Branch").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// OrdersByStatus lists a product's orders in any of the given statuses,
// ordered by start date.
func (s *Store) OrdersByStatus(ctx context.Context, productID uint, statuses []rental.Status) ([]rental.RentalOrder, error) {
	var orders []rental.RentalOrder
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND status IN ?", productID, statuses).
		Order("start_date ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// customerTx is the slice of the transaction the customer upsert runs
// against.
type customerTx interface {
	CustomerByLineID(lineUserID string) (*customer.Customer, bool, error)
	InsertCustomer(cust *customer.Customer) error
	SaveCustomer(cust *customer.Customer) error
}

// upsertCustomer finds or creates the customer row keyed by LINE identity.
// Profile fields are last-write-wins, so a repeat booking refreshes the
// existing row and never produces a second one. The address only changes
// when the new booking carries one.
func upsertCustomer(tx customerTx, cust *customer.Customer) error {
	existing, found, err := tx.CustomerByLineID(cust.LineUserID)
	if err != nil {
		return err
	}
	if !found {
		return tx.InsertCustomer(cust)
	}

	existing.DisplayName = cust.DisplayName
	existing.PictureURL = cust.PictureURL
	existing.FirstName = cust.FirstName
	existing.LastName = cust.LastName
	existing.PhoneNumber = cust.PhoneNumber
	if cust.Address != nil {
		existing.Address = cust.Address
	}
	if err := tx.SaveCustomer(existing); err != nil {
		return err
	}
	*cust = *existing
	return nil
}

type gormCustomerTx struct {
	tx *gorm.DB
}

func (g gormCustomerTx) CustomerByLineID(lineUserID string) (*customer.Customer, bool, error) {
	var existing customer.Customer
	err := g.tx.Where("line_user_id = ?", lineUserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &existing, true, nil
}

func (g gormCustomerTx) InsertCustomer(cust *customer.Customer) error {
	return g.tx.Create(cust).Error
}

func (g gormCustomerTx) SaveCustomer(cust *customer.Customer) error {
	return g.tx.Save(cust).Error
}

// CreateOrder upserts the customer by LINE identity and inserts the order
// in one transaction.
func (s *Store) CreateOrder(ctx context.Context, cust *customer.Customer, order *rental.RentalOrder) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertCustomer(gormCustomerTx{tx: tx}, cust); err != nil {
			return err
		}

		order.CustomerID = cust.ID
		return tx.Create(order).Error
	})
}

// TransitionOrder writes the new status and appends the history row as one
// unit. The update is a compare-and-swap on the expected current status, so
// a transition validated against a stale read fails with ErrStatusConflict
// instead of silently overwriting a concurrent admin's change.
func (s *Store) TransitionOrder(ctx context.Context, orderID uint, current, next rental.Status, note, changedBy string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&rental.RentalOrder{}).
			Where("id = ? AND status = ?", orderID, current).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&rental.RentalOrder{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperrors.ErrOrderNotFound
			}
			return apperrors.ErrStatusConflict
		}

		return tx.Create(&rental.StatusHistory{
			RentalOrderID: orderID,
			Status:        next,
			Note:          note,
			ChangedBy:     changedBy,
		}).Error
	})
}

// HistoryForOrder returns the ledger rows oldest first.
func (s *Store) HistoryForOrder(ctx context.Context, orderID uint) ([]rental.StatusHistory, error) {
	var history []rental.StatusHistory
	err := s.db.WithContext(ctx).
		Where("rental_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// CreatePayment inserts the payment, moves the order to next and appends
// the history row, all in one transaction.
func (s *Store) CreatePayment(ctx context.Context, pay *payment.Payment, next rental.Status, note, changedBy string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pay).Error; err != nil {
			return err
		}
		if err := tx.Model(&rental.RentalOrder{}).Where("id = ?", pay.RentalOrderID).Update("status", next).Error; err != nil {
			return err
		}
		return tx.Create(&rental.StatusHistory{
			RentalOrderID: pay.RentalOrderID,
			Status:        next,
			Note:          note,
			ChangedBy:     changedBy,
		}).Error
	})
}

// UpdateParseResult records the slip parser's outcome on the payment row.
func (s *Store) UpdateParseResult(ctx context.Context, paymentID uint, bankName *string, amount *decimal.Decimal, status string) error {
	updates := map[string]interface{}{
		"parse_status": status,
	}
	if bankName != nil {
		updates["parsed_bank_name"] = *bankName
	}
	if amount != nil {
		updates["parsed_amount"] = *amount
	}
	return s.db.WithContext(ctx).Model(&payment.Payment{}).Where("id = ?", paymentID).Updates(updates).Error
}
