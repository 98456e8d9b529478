package routes

import (
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentControllers "github.com/Stivenjs/reffinato-api/controllers/payment"
	"github.com/Stivenjs/reffinato-api/middleware"
	"github.com/Stivenjs/reffinato-api/payments"
)

// SetupPaymentRoutes registers the "/payments/*" endpoints. The webhook is
// intentionally unauthenticated at this layer: trust comes from the Stripe
// signature when configured, and from re-fetching the session by id.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, fb *fbauth.Client, provider payments.Provider) {
	payment := r.Group("/payments")
	{
		payment.POST("/create-checkout-session",
			middleware.FirebaseAuth(fb),
			paymentControllers.CreateCheckoutSession(db, provider),
		)
		payment.POST("/create-subscription-session",
			middleware.FirebaseAuth(fb),
			paymentControllers.CreateSubscriptionSession(provider),
		)
		payment.POST("/create-portal-session",
			middleware.FirebaseAuth(fb),
			paymentControllers.CreatePortalSession(db, provider),
		)
		payment.POST("/webhook", paymentControllers.StripeWebhookHandler(db, provider))
	}
}
