package paymentControllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"

	membershipControllers "github.com/Stivenjs/reffinato-api/controllers/membership"
	orderControllers "github.com/Stivenjs/reffinato-api/controllers/order"
	"github.com/Stivenjs/reffinato-api/models"
	"github.com/Stivenjs/reffinato-api/payments"
)

// StripeWebhookHandler receives payment events. When STRIPE_WEBHOOK_SECRET
// is set the Stripe signature is checked; without it the body is trusted
// only for routing (the internal-relay deployment, where verification
// happened upstream) and all authority comes from re-fetching the session
// by id. The 200 is sent before processing starts: failures after the ack
// are logged and never surfaced — Stripe's own redelivery is the only
// recovery path.
func StripeWebhookHandler(db *gorm.DB, provider payments.Provider) gin.HandlerFunc {
	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")

	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		var event stripe.Event
		if secret != "" {
			event, err = webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"), secret)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
				return
			}
		} else if err := json.Unmarshal(body, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": true})

		if event.Type == "" {
			log.Printf("Received Stripe event without a type, ignoring")
			return
		}

		go ProcessStripeEvent(db, provider, event)
	}
}

// ProcessStripeEvent routes one event. Exported so tests can run the
// pipeline synchronously.
func ProcessStripeEvent(db *gorm.DB, provider payments.Provider, event stripe.Event) {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Printf("Failed to decode checkout session from event: %v", err)
			return
		}
		log.Printf("Checkout session completed: %s", session.ID)
		if _, err := ReconcileCheckoutSession(db, provider, session.ID); err != nil {
			log.Printf("Error processing checkout.session.completed for session %s: %v", session.ID, err)
		}

	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			log.Printf("Failed to decode subscription from event: %v", err)
			return
		}
		if err := membershipControllers.ApplySubscriptionEvent(db, &sub); err != nil {
			log.Printf("Error applying subscription event %s: %v", event.Type, err)
		}

	case "payment_intent.succeeded":
		log.Printf("PaymentIntent was successful")

	default:
		log.Printf("Unhandled event type %s", event.Type)
	}
}

// ReconcileCheckoutSession finalizes one completed checkout. The event body
// is never trusted beyond the session id: the authoritative session is
// re-fetched with line items expanded before any write. An unresolvable
// user drops the event with no writes. Reprocessing the same session id
// creates a second order and re-increments promotion usage — there is no
// idempotency key stored against the event.
func ReconcileCheckoutSession(db *gorm.DB, provider payments.Provider, sessionID string) (*models.Order, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("line_items")
	session, err := provider.GetCheckoutSession(sessionID, params)
	if err != nil {
		return nil, err
	}

	uid := session.Metadata["firebaseUid"]
	if uid == "" || uid == "guest" {
		log.Printf("Checkout session %s completed, but no firebaseUid found in metadata.", sessionID)
		return nil, nil
	}

	var user models.User
	if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("User with firebaseUid %s not found.", uid)
			return nil, nil
		}
		return nil, err
	}

	if session.Mode == stripe.CheckoutSessionModeSubscription {
		return nil, membershipControllers.SyncFromCheckoutSession(db, provider, session)
	}

	items := reconstructOrderItems(db, session)

	promotionCode := session.Metadata["promotionCode"]
	if promotionCode == "none" {
		promotionCode = ""
	}

	shippingName, shippingAddress := shippingDetails(session)

	order := models.Order{
		OrderRef:        orderControllers.GenerateOrderRef(),
		UserID:          user.ID,
		Items:           items,
		TotalAmount:     float64(session.AmountTotal) / 100,
		Currency:        string(session.Currency),
		StripeSessionID: session.ID,
		Status:          models.OrderStatusCompleted,
		PromotionCode:   promotionCode,
		ShippingName:    shippingName,
		ShippingAddress: shippingAddress,
	}

	// Saved address is attached when present, but its absence never blocks
	// the order: shipping details come from Stripe.
	var address models.Address
	if err := db.Where("user_id = ?", user.ID).Order("id ASC").First(&address).Error; err == nil {
		order.AddressID = &address.ID
	}

	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}
	log.Printf("Order %d created successfully for user %d.", order.ID, user.ID)

	if promotionCode != "" {
		if err := markPromotionCodeUsed(db, promotionCode, &user); err != nil {
			log.Printf("Failed to mark promotion code %s as used: %v", promotionCode, err)
		}
	}

	orderControllers.BroadcastNewOrder(order)
	return &order, nil
}

// reconstructOrderItems prefers the cart snapshot carried in session
// metadata; when it is absent or unparsable the provider's own line items
// are used (no size/color available on that path).
func reconstructOrderItems(db *gorm.DB, session *stripe.CheckoutSession) []models.OrderItem {
	if encoded, ok := session.Metadata[payments.SnapshotMetadataKey]; ok {
		snapshot, err := payments.DecodeCartSnapshot(encoded)
		if err != nil {
			log.Printf("Unparsable cart snapshot on session %s, falling back to line items: %v", session.ID, err)
		} else if len(snapshot) > 0 {
			items := make([]models.OrderItem, 0, len(snapshot))
			for _, snap := range snapshot {
				name := ""
				var product models.Product
				if err := db.Select("name").First(&product, snap.ProductID).Error; err == nil {
					name = product.Name
				}
				items = append(items, models.OrderItem{
					ProductID:   snap.ProductID,
					ProductName: name,
					Quantity:    snap.Quantity,
					UnitPrice:   snap.UnitPrice,
					Size:        snap.Size,
					Color:       snap.Color,
				})
			}
			return items
		}
	}

	if session.LineItems == nil {
		return nil
	}
	items := make([]models.OrderItem, 0, len(session.LineItems.Data))
	for _, line := range session.LineItems.Data {
		unitPrice := 0.0
		if line.Price != nil {
			unitPrice = float64(line.Price.UnitAmount) / 100
		}
		items = append(items, models.OrderItem{
			ProductName: line.Description,
			Quantity:    int(line.Quantity),
			UnitPrice:   unitPrice,
		})
	}
	return items
}

func shippingDetails(session *stripe.CheckoutSession) (string, models.ShippingAddress) {
	var name string
	var addr *stripe.Address
	if session.ShippingDetails != nil {
		name = session.ShippingDetails.Name
		addr = session.ShippingDetails.Address
	} else if session.CustomerDetails != nil {
		name = session.CustomerDetails.Name
		addr = session.CustomerDetails.Address
	}

	shipping := models.ShippingAddress{}
	if addr != nil {
		shipping = models.ShippingAddress{
			Line1:      addr.Line1,
			Line2:      addr.Line2,
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		}
	}
	return name, shipping
}

// markPromotionCodeUsed appends the redeeming user and bumps the counter.
// Runs once per reconciliation, which means once per delivery — redelivery
// double-counts.
func markPromotionCodeUsed(db *gorm.DB, code string, user *models.User) error {
	var promo models.PromotionCode
	if err := db.Where("code = ?", code).First(&promo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	if err := db.Model(&promo).Association("Users").Append(user); err != nil {
		return err
	}
	if err := db.Model(&promo).Update("current_uses", promo.CurrentUses+1).Error; err != nil {
		return err
	}
	log.Printf("Promotion code %s marked as used by user %d.", code, user.ID)
	return nil
}
