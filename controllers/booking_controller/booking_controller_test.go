package booking_controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stayvista/stayvista/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRouter wires the controller behind a middleware that injects a known
// caller identity, standing in for the JWT middleware.
func testRouter(auth *utils.AuthUser) (*gin.Engine, *BookingController) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewBookingController(nil)

	if auth != nil {
		r.Use(func(c *gin.Context) {
			utils.SetAuthUser(c, *auth)
			c.Next()
		})
	}
	r.POST("/api/bookings/", controller.CreateBooking)
	r.GET("/api/bookings/", controller.GetBookings)
	return r, controller
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingRejectsUnauthenticated(t *testing.T) {
	r, _ := testRouter(nil)

	w := postJSON(r, "/api/bookings/", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBookingRejectsMissingFields(t *testing.T) {
	auth := utils.AuthUser{ID: uuid.New()}
	r, _ := testRouter(&auth)

	w := postJSON(r, "/api/bookings/", map[string]interface{}{
		"checkIn": "2026-03-10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_REQUEST", body["code"])
}

func TestCreateBookingRejectsBadHotelID(t *testing.T) {
	auth := utils.AuthUser{ID: uuid.New()}
	r, _ := testRouter(&auth)

	w := postJSON(r, "/api/bookings/", map[string]interface{}{
		"hotelId":  "not-a-uuid",
		"checkIn":  "2026-03-10",
		"checkOut": "2026-03-12",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingRejectsUnparseableDates(t *testing.T) {
	auth := utils.AuthUser{ID: uuid.New()}
	r, _ := testRouter(&auth)

	w := postJSON(r, "/api/bookings/", map[string]interface{}{
		"hotelId":  uuid.New().String(),
		"checkIn":  "10/03/2026",
		"checkOut": "2026-03-12",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_RANGE", body["code"])
}

func TestCreateBookingRejectsBadSelectionID(t *testing.T) {
	auth := utils.AuthUser{ID: uuid.New()}
	r, _ := testRouter(&auth)

	w := postJSON(r, "/api/bookings/", map[string]interface{}{
		"hotelId":  uuid.New().String(),
		"checkIn":  "2026-03-10",
		"checkOut": "2026-03-12",
		"rooms": []map[string]interface{}{
			{"roomId": "nope", "roomNumberId": uuid.New().String()},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_SELECTION", body["code"])
}

func TestGetBookingsRejectsUnassignedHotelAdmin(t *testing.T) {
	auth := utils.AuthUser{ID: uuid.New(), IsAdmin: true}
	r, _ := testRouter(&auth)

	req, _ := http.NewRequest("GET", "/api/bookings/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
