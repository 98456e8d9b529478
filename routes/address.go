package routes

import (
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/Stivenjs/reffinato-api/controllers/address"
	"github.com/Stivenjs/reffinato-api/middleware"
)

func SetupAddressRoutes(r *gin.Engine, db *gorm.DB, fb *fbauth.Client) {
	addresses := r.Group("/addresses")
	addresses.Use(middleware.FirebaseAuth(fb))
	{
		addresses.POST("", addressControllers.CreateAddress(db))
		addresses.GET("", addressControllers.GetUserAddresses(db))
		addresses.PUT("/:id", addressControllers.UpdateAddress(db))
		addresses.DELETE("/:id", addressControllers.DeleteAddress(db))
	}
}
