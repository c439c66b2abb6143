package transaction_models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stayvista/stayvista/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionDefaults(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()
	hotelID := uuid.New()

	txn, err := NewTransaction(bookingID, userID, hotelID, 7500)
	require.NoError(t, err)

	assert.Equal(t, bookingID, txn.BookingID)
	assert.Equal(t, userID, txn.UserID)
	assert.Equal(t, hotelID, txn.HotelID)
	assert.Equal(t, 7500.0, txn.Amount)
	assert.Equal(t, DefaultCurrency, txn.Currency)
	assert.Equal(t, DefaultMethod, txn.Method)
	assert.Equal(t, DefaultGateway, txn.PaymentGateway)
	assert.Equal(t, StatusCaptured, txn.Status)
	assert.NotEqual(t, uuid.Nil, txn.ID)

	assert.True(t, strings.HasPrefix(txn.Reference, "STAY-"), txn.Reference)
	parts := strings.Split(txn.Reference, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 6)
}

func TestReferencesAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		txn, err := NewTransaction(uuid.New(), uuid.New(), uuid.New(), 100)
		require.NoError(t, err)
		_, dup := seen[txn.Reference]
		assert.False(t, dup, "duplicate reference %s", txn.Reference)
		seen[txn.Reference] = struct{}{}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusCaptured, StatusRefunded, StatusFailed} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("settled"))
	assert.False(t, ValidStatus(""))
}

func TestValidMethod(t *testing.T) {
	for _, m := range []string{"manual", "card", "bank", "other"} {
		assert.True(t, ValidMethod(m), m)
	}
	assert.False(t, ValidMethod("upi"))
	assert.False(t, ValidMethod(""))
}

func TestCanViewTransaction(t *testing.T) {
	payerID := uuid.New()
	hotelID := uuid.New()
	txn := &Transaction{UserID: payerID, HotelID: hotelID}

	assert.True(t, CanViewTransaction(utils.AuthUser{ID: payerID}, txn))
	assert.False(t, CanViewTransaction(utils.AuthUser{ID: uuid.New()}, txn))
	assert.True(t, CanViewTransaction(utils.AuthUser{ID: uuid.New(), SuperAdmin: true}, txn))
	assert.True(t, CanViewTransaction(utils.AuthUser{ID: uuid.New(), IsAdmin: true, ManagedHotel: &hotelID}, txn))

	otherHotel := uuid.New()
	assert.False(t, CanViewTransaction(utils.AuthUser{ID: uuid.New(), IsAdmin: true, ManagedHotel: &otherHotel}, txn))
}
