package booking_controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/models/booking_models"
	"github.com/stayvista/stayvista/stay"
	"github.com/stayvista/stayvista/utils"
)

// BookingController handles reservation creation and lifecycle management.
type BookingController struct {
	DB *pgxpool.Pool
}

// NewBookingController creates a new instance of BookingController.
func NewBookingController(db *pgxpool.Pool) *BookingController {
	return &BookingController{DB: db}
}

type RoomSelectionRequest struct {
	RoomID       string   `json:"roomId" binding:"required"`
	RoomNumberID string   `json:"roomNumberId" binding:"required"`
	Price        *float64 `json:"price"`
	Label        string   `json:"label"`
}

type CreateBookingRequest struct {
	HotelID  string                 `json:"hotelId" binding:"required"`
	CheckIn  string                 `json:"checkIn" binding:"required"`
	CheckOut string                 `json:"checkOut" binding:"required"`
	Adults   int                    `json:"adults"`
	Children int                    `json:"children"`
	Rooms    []RoomSelectionRequest `json:"rooms"`
	Notes    string                 `json:"notes"`
}

// CreateBooking reserves the selected room numbers for the requested stay.
// All-or-nothing: a conflict on any unit rejects the whole request.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	auth, err := utils.GetAuthUser(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid create booking request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}

	hotelID, err := uuid.Parse(req.HotelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid hotel id"})
		return
	}
	checkIn, okIn := stay.ParseDay(req.CheckIn)
	checkOut, okOut := stay.ParseDay(req.CheckOut)
	if !okIn || !okOut {
		utils.RespondError(c, stay.ErrInvalidRange)
		return
	}

	selections := make([]booking_models.RoomSelection, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		roomID, err := uuid.Parse(r.RoomID)
		if err != nil {
			utils.RespondError(c, utils.ErrInvalidSelection)
			return
		}
		roomNumberID, err := uuid.Parse(r.RoomNumberID)
		if err != nil {
			utils.RespondError(c, utils.ErrInvalidSelection)
			return
		}
		selections = append(selections, booking_models.RoomSelection{
			RoomID:       roomID,
			RoomNumberID: roomNumberID,
			Price:        r.Price,
			Label:        r.Label,
		})
	}

	booking, err := booking_models.CreateBooking(c.Request.Context(), bc.DB, auth.ID, booking_models.CreateBookingInput{
		HotelID:    hotelID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     booking_models.Guests{Adults: req.Adults, Children: req.Children},
		Selections: selections,
		Notes:      req.Notes,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBooking fetches one booking. Members only see their own; hotel admins
// only bookings at their hotel.
func (bc *BookingController) GetBooking(c *gin.Context) {
	auth, err := utils.GetAuthUser(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid booking id"})
		return
	}

	booking, err := booking_models.GetBookingByID(c.Request.Context(), bc.DB, bookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !booking_models.CanViewBooking(auth, booking) {
		utils.RespondError(c, utils.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBookings lists bookings, scoped to the caller's role and narrowed by
// optional hotelId/userId/status/from/to query filters.
func (bc *BookingController) GetBookings(c *gin.Context) {
	auth, err := utils.GetAuthUser(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filter := booking_models.BookingFilter{Status: c.Query("status")}
	if hotelID := c.Query("hotelId"); hotelID != "" {
		if id, err := uuid.Parse(hotelID); err == nil {
			filter.HotelID = &id
		}
	}
	if userID := c.Query("userId"); userID != "" {
		if id, err := uuid.Parse(userID); err == nil {
			filter.UserID = &id
		}
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}

	filter, err = booking_models.ScopeFilter(auth, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	bookings, err := booking_models.ListBookings(c.Request.Context(), bc.DB, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a booking through its lifecycle. Hotel admins may only
// touch bookings at their own hotel.
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	auth, err := utils.GetAuthUser(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid booking id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}

	if !auth.SuperAdmin {
		booking, err := booking_models.GetBookingByID(c.Request.Context(), bc.DB, bookingID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if !auth.ManagesHotel(booking.HotelID) {
			utils.RespondError(c, utils.ErrForbidden)
			return
		}
	}

	booking, err := booking_models.UpdateBookingStatus(c.Request.Context(), bc.DB, bookingID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking removes a booking record. Blocked days are not released
// automatically; clearing the calendar is a separate admin action.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid booking id"})
		return
	}

	if err := booking_models.DeleteBooking(c.Request.Context(), bc.DB, bookingID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking has been deleted."})
}
