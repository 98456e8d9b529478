package routes

import (
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	promocodeControllers "github.com/Stivenjs/reffinato-api/controllers/promocode"
	"github.com/Stivenjs/reffinato-api/middleware"
)

func SetupPromotionCodeRoutes(r *gin.Engine, db *gorm.DB, fb *fbauth.Client) {
	codes := r.Group("/promotion-codes")
	{
		codes.POST("/apply", middleware.FirebaseAuth(fb), promocodeControllers.ApplyPromotionCode(db))
	}
}
