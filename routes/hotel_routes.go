package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stayvista/stayvista/config/db"
	"github.com/stayvista/stayvista/controllers/hotel_controller"
	"github.com/stayvista/stayvista/middlewares/auth"
)

// RegisterHotelRoutes registers property management and search routes.
func RegisterHotelRoutes(router *gin.Engine) {
	hotelController := hotel_controller.NewHotelController(db.DB)

	api := router.Group("/api/hotels")
	{
		// Public search surface
		api.GET("/", hotelController.GetHotels)
		api.GET("/find/:id", hotelController.GetHotel)
		api.GET("/countByCity", hotelController.CountByCity)
		api.GET("/countByType", hotelController.CountByType)
		api.GET("/room/:id", hotelController.GetHotelRooms)

		// Admin-only mutations
		admin := api.Group("/")
		admin.Use(auth.AuthMiddleware(), auth.RequireAdmin())
		{
			admin.POST("/", hotelController.CreateHotel)
			admin.PUT("/:id", hotelController.UpdateHotel)
			admin.DELETE("/:id", hotelController.DeleteHotel)
		}
	}
}
