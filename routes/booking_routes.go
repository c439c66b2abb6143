package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stayvista/stayvista/config/db"
	"github.com/stayvista/stayvista/controllers/booking_controller"
	middleware "github.com/stayvista/stayvista/middlewares"
	"github.com/stayvista/stayvista/middlewares/auth"
)

// RegisterBookingRoutes registers reservation routes. Creation is rate
// limited per caller since it is the write-heavy public path.
func RegisterBookingRoutes(router *gin.Engine) {
	bookingController := booking_controller.NewBookingController(db.DB)

	api := router.Group("/api/bookings")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/", middleware.NewRateLimiter("10-1m", "create_booking"), bookingController.CreateBooking)
		api.GET("/:id", bookingController.GetBooking)
		api.GET("/", bookingController.GetBookings)

		admin := api.Group("/")
		admin.Use(auth.RequireAdmin())
		{
			admin.DELETE("/:id", bookingController.DeleteBooking)
		}

		// Status changes are open to hotel admins for their own hotel; the
		// controller enforces the hotel match.
		api.PUT("/:id/status", bookingController.UpdateStatus)
	}
}
