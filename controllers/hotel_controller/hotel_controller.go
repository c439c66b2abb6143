package hotel_controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	redisclient "github.com/stayvista/stayvista/config/redis"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/models/hotel_models"
	"github.com/stayvista/stayvista/models/room_models"
	"github.com/stayvista/stayvista/stay"
	"github.com/stayvista/stayvista/utils"
)

const countCacheTTL = 60 * time.Second

// HotelController handles property management and search.
type HotelController struct {
	DB *pgxpool.Pool
}

// NewHotelController creates a new instance of HotelController.
func NewHotelController(db *pgxpool.Pool) *HotelController {
	return &HotelController{DB: db}
}

type CreateHotelRequest struct {
	Name          string   `json:"name" binding:"required"`
	Type          string   `json:"type"`
	City          string   `json:"city" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	Distance      string   `json:"distance"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	CheapestPrice float64  `json:"cheapestPrice"`
	Featured      bool     `json:"featured"`
	Photos        []string `json:"photos"`
}

// CreateHotel registers a new property.
func (hc *HotelController) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid create hotel request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}
	if req.Type != "" && !hotel_models.ValidHotelType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_TYPE", "error": "Unknown property type"})
		return
	}

	hotel, err := hotel_models.NewHotel(req.Name, req.Type, req.City, req.Address)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	hotel.Distance = req.Distance
	hotel.Title = req.Title
	hotel.Description = req.Description
	hotel.CheapestPrice = req.CheapestPrice
	hotel.Featured = req.Featured
	if req.Photos != nil {
		hotel.Photos = req.Photos
	}

	created, err := hotel_models.CreateHotel(c.Request.Context(), hc.DB, hotel)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateHotel applies a partial update to a property.
func (hc *HotelController) UpdateHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid hotel id"})
		return
	}

	var input hotel_models.UpdateHotelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}
	if input.Type != nil && !hotel_models.ValidHotelType(*input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_TYPE", "error": "Unknown property type"})
		return
	}

	hotel, err := hotel_models.UpdateHotel(c.Request.Context(), hc.DB, hotelID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// DeleteHotel removes a property and everything under it.
func (hc *HotelController) DeleteHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid hotel id"})
		return
	}

	if err := hotel_models.DeleteHotel(c.Request.Context(), hc.DB, hotelID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hotel has been deleted."})
}

// GetHotel fetches a single property.
func (hc *HotelController) GetHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid hotel id"})
		return
	}

	hotel, err := hotel_models.GetHotelByID(c.Request.Context(), hc.DB, hotelID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// GetHotels lists properties, filtered by city, type, price band and
// featured flag.
func (hc *HotelController) GetHotels(c *gin.Context) {
	filter := hotel_models.HotelFilter{
		City: c.Query("city"),
		Type: c.Query("type"),
	}
	if min := c.Query("min"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if max := c.Query("max"); max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	if featured := c.Query("featured"); featured != "" {
		v := featured == "true"
		filter.Featured = &v
	}
	if limit := c.Query("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 {
			filter.Limit = v
		}
	}

	hotels, err := hotel_models.ListHotels(c.Request.Context(), hc.DB, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// CountByCity returns hotel counts for a comma-separated city list. Results
// are cached briefly in Redis since the home page hammers this endpoint.
func (hc *HotelController) CountByCity(c *gin.Context) {
	citiesParam := c.Query("cities")
	if citiesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "cities query parameter is required"})
		return
	}
	cities := strings.Split(citiesParam, ",")

	cacheKey := "hotels:count_by_city:" + strings.ToLower(citiesParam)
	var counts []int
	if hc.cacheGet(c, cacheKey, &counts) {
		c.JSON(http.StatusOK, counts)
		return
	}

	counts, err := hotel_models.CountByCity(c.Request.Context(), hc.DB, cities)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	hc.cacheSet(c, cacheKey, counts)
	c.JSON(http.StatusOK, counts)
}

// CountByType returns hotel counts per property type, cached briefly in
// Redis.
func (hc *HotelController) CountByType(c *gin.Context) {
	const cacheKey = "hotels:count_by_type"

	var counts []hotel_models.TypeCount
	if hc.cacheGet(c, cacheKey, &counts) {
		c.JSON(http.StatusOK, counts)
		return
	}

	counts, err := hotel_models.CountByType(c.Request.Context(), hc.DB)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	hc.cacheSet(c, cacheKey, counts)
	c.JSON(http.StatusOK, counts)
}

// GetHotelRooms returns a hotel's rooms with each room number annotated for
// the requested stay window. With a check-in but no usable check-out the
// window defaults to a single night.
func (hc *HotelController) GetHotelRooms(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid hotel id"})
		return
	}

	if _, err := hotel_models.GetHotelByID(c.Request.Context(), hc.DB, hotelID); err != nil {
		utils.RespondError(c, err)
		return
	}

	var stayDays []time.Time
	var rangeCheckIn, rangeCheckOut *time.Time
	if checkIn, ok := stay.ParseDay(c.Query("checkIn")); ok {
		checkOut, okOut := stay.ParseDay(c.Query("checkOut"))
		if !okOut || !checkOut.After(checkIn) {
			checkOut = checkIn.AddDate(0, 0, 1)
		}
		stayDays, err = stay.Expand(checkIn, checkOut)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		rangeCheckIn, rangeCheckOut = &checkIn, &checkOut
	}

	rooms, err := room_models.GetRoomsForHotel(c.Request.Context(), hc.DB, hotelID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rooms": room_models.AnnotateForRange(rooms, stayDays),
		"range": gin.H{
			"checkIn":  rangeCheckIn,
			"checkOut": rangeCheckOut,
		},
	})
}

// cacheGet loads a cached JSON value; a cold or unreachable cache just means
// a miss.
func (hc *HotelController) cacheGet(c *gin.Context, key string, out interface{}) bool {
	rdb, err := redisclient.GetRedisClient(c.Request.Context())
	if err != nil {
		return false
	}
	payload, err := rdb.Get(c.Request.Context(), key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}

func (hc *HotelController) cacheSet(c *gin.Context, key string, value interface{}) {
	rdb, err := redisclient.GetRedisClient(c.Request.Context())
	if err != nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := rdb.Set(c.Request.Context(), key, payload, countCacheTTL).Err(); err != nil {
		logger.WarnLogger.Warnf("Failed to cache %s: %v", key, err)
	}
}
