package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stayvista/stayvista/config/db"
	"github.com/stayvista/stayvista/controllers/user_controller"
	"github.com/stayvista/stayvista/middlewares/auth"
)

// RegisterUserRoutes registers account routes. Profile access is restricted
// to the account owner or a super admin.
func RegisterUserRoutes(router *gin.Engine) {
	userController := user_controller.NewUserController(db.DB)

	api := router.Group("/api/users")
	api.Use(auth.AuthMiddleware())
	{
		self := api.Group("/")
		self.Use(auth.RequireSelfOrAdmin())
		{
			self.GET("/:id", userController.GetUser)
			self.PUT("/:id", userController.UpdateUser)
			self.DELETE("/:id", userController.DeleteUser)
		}

		admin := api.Group("/")
		admin.Use(auth.RequireAdmin())
		{
			admin.GET("/", userController.GetUsers)
		}
	}
}
