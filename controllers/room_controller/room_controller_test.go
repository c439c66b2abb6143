package room_controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availabilityRequest(t *testing.T, roomNumberID string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewRoomController(nil)
	r.PUT("/api/rooms/availability/:id", controller.UpdateAvailability)

	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("PUT", "/api/rooms/availability/"+roomNumberID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateAvailabilityRejectsBadID(t *testing.T) {
	w := availabilityRequest(t, "not-a-uuid", map[string]interface{}{
		"dates": []string{"2026-03-10"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAvailabilityRejectsUnknownOp(t *testing.T) {
	w := availabilityRequest(t, uuid.New().String(), map[string]interface{}{
		"op":    "replace",
		"dates": []string{"2026-03-10"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_OP", body["code"])
}

func TestUpdateAvailabilityRejectsNoUsableDates(t *testing.T) {
	// Every supplied value is unparseable, so the add has nothing to apply.
	w := availabilityRequest(t, uuid.New().String(), map[string]interface{}{
		"op":    "add",
		"dates": []string{"garbage", "also-garbage"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NO_VALID_DATES", body["code"])
}

func TestCreateRoomRejectsBadHotelID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewRoomController(nil)
	r.POST("/api/rooms/:hotelid", controller.CreateRoom)

	payload := map[string]interface{}{
		"title":       "Deluxe Suite",
		"price":       1200,
		"maxPeople":   2,
		"roomNumbers": []int{101, 102},
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/rooms/not-a-uuid", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
