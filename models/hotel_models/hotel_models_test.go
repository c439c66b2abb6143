package hotel_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidHotelType(t *testing.T) {
	for _, v := range HotelTypes {
		assert.True(t, ValidHotelType(v), v)
	}
	assert.False(t, ValidHotelType("castle"))
	assert.False(t, ValidHotelType(""))
	assert.False(t, ValidHotelType("Hotel"))
}

func TestNewHotel(t *testing.T) {
	h, err := NewHotel("Sea Breeze", "resort", "Goa", "Calangute Beach Rd")
	require.NoError(t, err)

	assert.Equal(t, "Sea Breeze", h.Name)
	assert.Equal(t, "resort", h.Type)
	assert.Equal(t, "Goa", h.City)
	assert.NotEmpty(t, h.ID)
	assert.NotNil(t, h.Photos, "photos always marshal as an array")
	assert.False(t, h.CreatedAt.IsZero())
}

func TestNewHotelDefaultsType(t *testing.T) {
	h, err := NewHotel("City Inn", "", "Pune", "MG Road")
	require.NoError(t, err)
	assert.Equal(t, "hotel", h.Type)
}
