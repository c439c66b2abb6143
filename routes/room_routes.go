package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stayvista/stayvista/config/db"
	"github.com/stayvista/stayvista/controllers/room_controller"
	"github.com/stayvista/stayvista/middlewares/auth"
)

// RegisterRoomRoutes registers room type and availability calendar routes.
func RegisterRoomRoutes(router *gin.Engine) {
	roomController := room_controller.NewRoomController(db.DB)

	api := router.Group("/api/rooms")
	{
		api.GET("/", roomController.GetRooms)
		api.GET("/:id", roomController.GetRoom)

		// Any signed-in user may mutate a calendar; guests hit this right
		// after booking, admins use it for maintenance holds.
		authed := api.Group("/")
		authed.Use(auth.AuthMiddleware())
		{
			authed.PUT("/availability/:id", roomController.UpdateAvailability)
		}

		admin := api.Group("/")
		admin.Use(auth.AuthMiddleware(), auth.RequireAdmin())
		{
			admin.POST("/:hotelid", roomController.CreateRoom)
			admin.PUT("/:id", roomController.UpdateRoom)
			admin.DELETE("/:id", roomController.DeleteRoom)
		}
	}
}
