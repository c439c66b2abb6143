package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stayvista/stayvista/config/db"
	"github.com/stayvista/stayvista/controllers/transaction_controller"
	middleware "github.com/stayvista/stayvista/middlewares"
	"github.com/stayvista/stayvista/middlewares/auth"
)

// RegisterTransactionRoutes registers payment routes. The checkout endpoint
// is rate limited per caller.
func RegisterTransactionRoutes(router *gin.Engine) {
	transactionController := transaction_controller.NewTransactionController(db.DB)

	api := router.Group("/api/transactions")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/pay", middleware.NewRateLimiter("5-1m", "pay"), transactionController.Pay)
		api.GET("/:id", transactionController.GetTransaction)
		api.GET("/", transactionController.GetTransactions)

		admin := api.Group("/")
		admin.Use(auth.RequireAdmin())
		{
			admin.POST("/", transactionController.CreateTransaction)
		}
	}
}
