package room_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/models/room_models"
	"github.com/stayvista/stayvista/stay"
	"github.com/stayvista/stayvista/utils"
)

// RoomController manages room types, their physical units and the per-unit
// availability calendars.
type RoomController struct {
	DB *pgxpool.Pool
}

// NewRoomController creates a new instance of RoomController.
func NewRoomController(db *pgxpool.Pool) *RoomController {
	return &RoomController{DB: db}
}

type CreateRoomRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	MaxPeople   int     `json:"maxPeople" binding:"required,min=1"`
	RoomNumbers []int   `json:"roomNumbers" binding:"required,min=1"`
}

// CreateRoom adds a room type with its physical units under a hotel.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("hotelid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid hotel id"})
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid create room request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}

	room, err := room_models.NewRoom(hotelID, req.Title, req.Description, req.Price, req.MaxPeople, req.RoomNumbers)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	created, err := room_models.CreateRoom(c.Request.Context(), rc.DB, room)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateRoom applies a partial update to a room type.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid room id"})
		return
	}

	var input room_models.UpdateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}

	room, err := room_models.UpdateRoom(c.Request.Context(), rc.DB, roomID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type UpdateAvailabilityRequest struct {
	Dates []string `json:"dates"`
	Op    string   `json:"op"`
}

// UpdateAvailability mutates one room number's blocked-day calendar. The op
// defaults to add; unparseable dates are dropped rather than rejected, but an
// add or remove that ends up with no usable dates fails.
func (rc *RoomController) UpdateAvailability(c *gin.Context) {
	roomNumberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid room number id"})
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}

	op := room_models.AvailabilityOp(req.Op)
	if req.Op == "" {
		op = room_models.OpAdd
	}
	if !room_models.ValidAvailabilityOp(op) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_OP", "error": "Unknown availability operation"})
		return
	}

	days := stay.ParseDays(req.Dates)
	if err := room_models.UpdateAvailability(c.Request.Context(), rc.DB, roomNumberID, op, days); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room availability has been updated."})
}

// DeleteRoom removes a room type and its units.
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid room id"})
		return
	}

	if err := room_models.DeleteRoom(c.Request.Context(), rc.DB, roomID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room has been deleted."})
}

// GetRoom fetches a single room type with its units.
func (rc *RoomController) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid room id"})
		return
	}

	room, err := room_models.GetRoomByID(c.Request.Context(), rc.DB, roomID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetRooms lists every room type across hotels.
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := room_models.GetRooms(c.Request.Context(), rc.DB)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}
