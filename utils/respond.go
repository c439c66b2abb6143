// utils/respond.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/stay"
)

type errorClass struct {
	status int
	code   string
}

// Expected failures and how they surface over HTTP. Anything not listed is an
// unexpected failure and becomes a generic 500.
var errorClasses = map[error]errorClass{
	stay.ErrInvalidRange:   {http.StatusBadRequest, "INVALID_RANGE"},
	ErrMissingSelection:    {http.StatusBadRequest, "MISSING_SELECTION"},
	ErrInvalidSelection:    {http.StatusBadRequest, "INVALID_SELECTION"},
	ErrNoValidDates:        {http.StatusBadRequest, "NO_VALID_DATES"},
	ErrInvalidStatus:       {http.StatusBadRequest, "INVALID_STATUS"},
	ErrHotelNotFound:       {http.StatusNotFound, "HOTEL_NOT_FOUND"},
	ErrRoomNotFound:        {http.StatusNotFound, "ROOM_NOT_FOUND"},
	ErrRoomNumberNotFound:  {http.StatusNotFound, "ROOM_NUMBER_NOT_FOUND"},
	ErrBookingNotFound:     {http.StatusNotFound, "BOOKING_NOT_FOUND"},
	ErrTransactionNotFound: {http.StatusNotFound, "TRANSACTION_NOT_FOUND"},
	ErrUserNotFound:        {http.StatusNotFound, "USER_NOT_FOUND"},
	ErrRoomUnavailable:     {http.StatusConflict, "ROOM_UNAVAILABLE"},
	ErrUnauthorized:        {http.StatusUnauthorized, "UNAUTHENTICATED"},
	ErrForbidden:           {http.StatusForbidden, "ACCESS_DENIED"},
}

// RespondError translates an error into the API's error body. Expected
// failures keep their message; everything else is logged and surfaced
// generically.
func RespondError(c *gin.Context, err error) {
	for sentinel, class := range errorClasses {
		if errors.Is(err, sentinel) {
			c.JSON(class.status, gin.H{"code": class.code, "error": sentinel.Error()})
			return
		}
	}

	logger.ErrorLogger.Errorf("Unexpected error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Something went wrong!"})
}
