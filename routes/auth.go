package routes

import (
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/auth"
	"github.com/Stivenjs/reffinato-api/middleware"
)

// SetupAuthRoutes registers the "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, fb *fbauth.Client) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterUser(db, fb))
		authGroup.POST("/social-login", auth.SocialLogin(db, fb))
		authGroup.PUT("/profile", middleware.FirebaseAuth(fb), auth.UpdateProfile(db, fb))
	}
}
