package repository

import (
	"testing"

	"rental-booking/models/customer"

	"github.com/stretchr/testify/assert"
)

// fakeCustomerTx backs the upsert with a map keyed by LINE identity.
type fakeCustomerTx struct {
	rows   map[string]*customer.Customer
	nextID uint
}

func newFakeCustomerTx() *fakeCustomerTx {
	return &fakeCustomerTx{rows: make(map[string]*customer.Customer), nextID: 1}
}

func (f *fakeCustomerTx) CustomerByLineID(lineUserID string) (*customer.Customer, bool, error) {
	row, ok := f.rows[lineUserID]
	if !ok {
		return nil, false, nil
	}
	copied := *row
	return &copied, true, nil
}

func (f *fakeCustomerTx) InsertCustomer(cust *customer.Customer) error {
	cust.ID = f.nextID
	f.nextID++
	copied := *cust
	f.rows[cust.LineUserID] = &copied
	return nil
}

func (f *fakeCustomerTx) SaveCustomer(cust *customer.Customer) error {
	copied := *cust
	f.rows[cust.LineUserID] = &copied
	return nil
}

func strPtr(s string) *string { return &s }

func TestUpsertCustomer(t *testing.T) {
	booking := func(displayName string) *customer.Customer {
		return &customer.Customer{
			LineUserID:  "U1234567890abcdef",
			DisplayName: strPtr(displayName),
			FirstName:   "Somchai",
			LastName:    "Jaidee",
			PhoneNumber: "0812345678",
		}
	}

	t.Run("FirstBookingInsertsRow", func(t *testing.T) {
		tx := newFakeCustomerTx()

		cust := booking("somchai")
		assert.NoError(t, upsertCustomer(tx, cust))
		assert.Equal(t, uint(1), cust.ID)
		assert.Len(t, tx.rows, 1)
	})

	t.Run("RepeatBookingUpdatesInPlace", func(t *testing.T) {
		tx := newFakeCustomerTx()

		first := booking("somchai")
		assert.NoError(t, upsertCustomer(tx, first))

		// Same LINE identity, renamed profile: must refresh the existing
		// row, never create a second one.
		second := booking("somchai ✌️")
		second.PhoneNumber = "0899999999"
		assert.NoError(t, upsertCustomer(tx, second))

		assert.Len(t, tx.rows, 1)
		assert.Equal(t, first.ID, second.ID)

		stored := tx.rows["U1234567890abcdef"]
		assert.Equal(t, "somchai ✌️", *stored.DisplayName)
		assert.Equal(t, "0899999999", stored.PhoneNumber)
	})

	t.Run("AddressKeptWhenNewBookingOmitsIt", func(t *testing.T) {
		tx := newFakeCustomerTx()

		first := booking("somchai")
		first.Address = strPtr("123 Sukhumvit Rd")
		assert.NoError(t, upsertCustomer(tx, first))

		second := booking("somchai")
		assert.NoError(t, upsertCustomer(tx, second))

		stored := tx.rows["U1234567890abcdef"]
		assert.NotNil(t, stored.Address)
		assert.Equal(t, "123 Sukhumvit Rd", *stored.Address)
		assert.Equal(t, "123 Sukhumvit Rd", *second.Address)
	})

	t.Run("AddressOverwrittenWhenProvided", func(t *testing.T) {
		tx := newFakeCustomerTx()

		first := booking("somchai")
		first.Address = strPtr("123 Sukhumvit Rd")
		assert.NoError(t, upsertCustomer(tx, first))

		second := booking("somchai")
		second.Address = strPtr("45 Silom Rd")
		assert.NoError(t, upsertCustomer(tx, second))

		assert.Equal(t, "45 Silom Rd", *tx.rows["U1234567890abcdef"].Address)
	})

	t.Run("DistinctIdentitiesGetDistinctRows", func(t *testing.T) {
		tx := newFakeCustomerTx()

		first := booking("somchai")
		assert.NoError(t, upsertCustomer(tx, first))

		other := booking("malee")
		other.LineUserID = "Ufedcba0987654321"
		assert.NoError(t, upsertCustomer(tx, other))

		assert.Len(t, tx.rows, 2)
		assert.NotEqual(t, first.ID, other.ID)
	})
}
