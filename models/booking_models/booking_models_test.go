package booking_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stayvista/stayvista/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGuests(t *testing.T) {
	assert.Equal(t, Guests{Adults: 2, Children: 1}, NormalizeGuests(Guests{Adults: 2, Children: 1}))
	assert.Equal(t, Guests{Adults: 1, Children: 0}, NormalizeGuests(Guests{}))
	assert.Equal(t, Guests{Adults: 1, Children: 0}, NormalizeGuests(Guests{Adults: -3, Children: -1}))
}

func TestDefaultLabel(t *testing.T) {
	assert.Equal(t, "Deluxe Suite #101", DefaultLabel("Deluxe Suite", 101))
}

func TestSelectionPrice(t *testing.T) {
	override := 899.0
	assert.Equal(t, 899.0, SelectionPrice(&override, 1200))
	assert.Equal(t, 1200.0, SelectionPrice(nil, 1200))

	// A zero override is still an override, not "use the room price".
	zero := 0.0
	assert.Equal(t, 0.0, SelectionPrice(&zero, 1200))
}

func TestComputeTotal(t *testing.T) {
	rooms := []BookingRoom{
		{Price: 1000},
		{Price: 1500},
	}

	// Two rooms over three nights: (1000 + 1500) * 3.
	assert.Equal(t, 7500.0, ComputeTotal(rooms, 3))

	assert.Equal(t, 0.0, ComputeTotal(nil, 3))
	assert.Equal(t, 1000.0, ComputeTotal([]BookingRoom{{Price: 1000}}, 1))
}

func TestScopeFilter(t *testing.T) {
	memberID := uuid.New()
	hotelID := uuid.New()
	otherHotel := uuid.New()

	t.Run("member is pinned to own bookings", func(t *testing.T) {
		member := utils.AuthUser{ID: memberID}
		otherUser := uuid.New()

		scoped, err := ScopeFilter(member, BookingFilter{UserID: &otherUser, HotelID: &hotelID})
		require.NoError(t, err)
		require.NotNil(t, scoped.UserID)
		assert.Equal(t, memberID, *scoped.UserID, "requested userId filter is overridden")
	})

	t.Run("hotel admin is pinned to managed hotel", func(t *testing.T) {
		admin := utils.AuthUser{ID: uuid.New(), IsAdmin: true, ManagedHotel: &hotelID}

		scoped, err := ScopeFilter(admin, BookingFilter{HotelID: &otherHotel})
		require.NoError(t, err)
		require.NotNil(t, scoped.HotelID)
		assert.Equal(t, hotelID, *scoped.HotelID)
	})

	t.Run("hotel admin without assignment is rejected", func(t *testing.T) {
		admin := utils.AuthUser{ID: uuid.New(), IsAdmin: true}
		_, err := ScopeFilter(admin, BookingFilter{})
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})

	t.Run("super admin keeps requested filters", func(t *testing.T) {
		super := utils.AuthUser{ID: uuid.New(), SuperAdmin: true}

		scoped, err := ScopeFilter(super, BookingFilter{HotelID: &hotelID})
		require.NoError(t, err)
		assert.Equal(t, &hotelID, scoped.HotelID)
		assert.Nil(t, scoped.UserID)
	})
}

func TestCanViewBooking(t *testing.T) {
	ownerID := uuid.New()
	hotelID := uuid.New()
	booking := &Booking{UserID: ownerID, HotelID: hotelID}

	assert.True(t, CanViewBooking(utils.AuthUser{ID: ownerID}, booking))
	assert.False(t, CanViewBooking(utils.AuthUser{ID: uuid.New()}, booking))
	assert.True(t, CanViewBooking(utils.AuthUser{ID: uuid.New(), SuperAdmin: true}, booking))

	assert.True(t, CanViewBooking(utils.AuthUser{ID: uuid.New(), IsAdmin: true, ManagedHotel: &hotelID}, booking))

	otherHotel := uuid.New()
	assert.False(t, CanViewBooking(utils.AuthUser{ID: uuid.New(), IsAdmin: true, ManagedHotel: &otherHotel}, booking))
	assert.False(t, CanViewBooking(utils.AuthUser{ID: uuid.New(), IsAdmin: true}, booking))
}
