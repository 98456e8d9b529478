package routes

import (
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Stivenjs/reffinato-api/controllers/order"
	"github.com/Stivenjs/reffinato-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, fb *fbauth.Client) {
	orders := r.Group("/orders")
	{
		orders.GET("/me", middleware.FirebaseAuth(fb), orderControllers.GetMyOrders(db))
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)
	}
}
