package routes

import (
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Stivenjs/reffinato-api/controllers/cart"
	"github.com/Stivenjs/reffinato-api/middleware"
)

// SetupCartRoutes registers the "/cart/*" endpoints. All Firebase-gated.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB, fb *fbauth.Client) {
	cart := r.Group("/cart")
	cart.Use(middleware.FirebaseAuth(fb))
	{
		cart.GET("", cartControllers.GetUserCart(db))
		cart.POST("/add", cartControllers.AddProductToCart(db))
		cart.PUT("/update-quantity", cartControllers.UpdateProductQuantity(db))
		cart.DELETE("/remove", cartControllers.RemoveProductFromCart(db))
		cart.DELETE("/clear", cartControllers.ClearCart(db))
	}
}
