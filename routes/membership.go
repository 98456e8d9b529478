package routes

import (
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	membershipControllers "github.com/Stivenjs/reffinato-api/controllers/membership"
	"github.com/Stivenjs/reffinato-api/middleware"
	"github.com/Stivenjs/reffinato-api/payments"
)

func SetupMembershipRoutes(r *gin.Engine, db *gorm.DB, fb *fbauth.Client, provider payments.Provider) {
	memberships := r.Group("/memberships")
	{
		memberships.GET("/me", middleware.FirebaseAuth(fb), membershipControllers.GetMyMembership(db))
		// Called by the storefront right after Stripe redirects back, so the
		// membership is visible before the webhook lands.
		memberships.POST("/sync", membershipControllers.SyncFromStripe(db, provider))
	}
}
