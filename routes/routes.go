package routes

import (
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/payments"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, fb *fbauth.Client, provider payments.Provider) {
	// Public auth endpoints
	SetupAuthRoutes(r, db, fb)

	// Firebase-gated shopping surface
	SetupCartRoutes(r, db, fb)
	SetupAddressRoutes(r, db, fb)
	SetupOrderRoutes(r, db, fb)
	SetupPromotionCodeRoutes(r, db, fb)
	SetupMembershipRoutes(r, db, fb, provider)

	// Payments (checkout sessions + webhook)
	SetupPaymentRoutes(r, db, fb, provider)

	// Public catalog and galleries
	SetupCatalogRoutes(r, db)

	// API-key-gated admin surface
	SetupAdminRoutes(r, db)
}
