package membershipControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v74"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
	"github.com/Stivenjs/reffinato-api/payments"
)

const (
	defaultTier            = "gold"
	defaultDiscountPercent = 25
)

// SyncFromCheckoutSession upserts the membership for the user behind a
// subscription-mode checkout session. The subscription is fetched for its
// authoritative status and billing period; when the period end is missing
// the latest invoice's first line period is used instead.
func SyncFromCheckoutSession(db *gorm.DB, provider payments.Provider, session *stripe.CheckoutSession) error {
	uid := session.Metadata["firebaseUid"]
	if uid == "" || uid == "guest" {
		return nil
	}

	var user models.User
	if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	subscriptionID := ""
	if session.Subscription != nil {
		subscriptionID = session.Subscription.ID
	}

	var customerID string
	var expiresAt *time.Time
	if subscriptionID != "" {
		params := &stripe.SubscriptionParams{}
		params.AddExpand("latest_invoice")
		sub, err := provider.GetSubscription(subscriptionID, params)
		if err != nil {
			log.Printf("Error syncing membership from Stripe: %v", err)
		} else {
			if sub.Customer != nil {
				customerID = sub.Customer.ID
			}
			if sub.CurrentPeriodEnd > 0 {
				t := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
				expiresAt = &t
			}
			if expiresAt == nil && sub.LatestInvoice != nil {
				expiresAt = invoicePeriodEnd(provider, sub.LatestInvoice.ID)
			}
		}
	}

	tier := session.Metadata["membershipTier"]
	if tier == "" {
		tier = defaultTier
	}

	membership := models.Membership{
		UserID:               user.ID,
		Tier:                 tier,
		IsActive:             true,
		DiscountPercent:      defaultDiscountPercent,
		FreeShipping:         true,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: subscriptionID,
		StartedAt:            time.Now().UTC(),
		ExpiresAt:            expiresAt,
	}

	var existing models.Membership
	err := db.Where("user_id = ?", user.ID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&membership).Error
	}
	if err != nil {
		return err
	}

	membership.ID = existing.ID
	membership.CreatedAt = existing.CreatedAt
	return db.Save(&membership).Error
}

func invoicePeriodEnd(provider payments.Provider, invoiceID string) *time.Time {
	if invoiceID == "" {
		return nil
	}
	params := &stripe.InvoiceParams{}
	params.AddExpand("lines")
	invoice, err := provider.GetInvoice(invoiceID, params)
	if err != nil || invoice.Lines == nil || len(invoice.Lines.Data) == 0 {
		return nil
	}
	line := invoice.Lines.Data[0]
	if line.Period == nil || line.Period.End == 0 {
		return nil
	}
	t := time.Unix(line.Period.End, 0).UTC()
	return &t
}

// ApplySubscriptionEvent updates the membership matching a subscription
// lifecycle event. Only the active flag, customer id, and expiry move;
// a deleted event for an unknown subscription creates nothing.
func ApplySubscriptionEvent(db *gorm.DB, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	var membership models.Membership
	if err := db.Where("stripe_subscription_id = ?", sub.ID).First(&membership).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	isActive := sub.Status == stripe.SubscriptionStatusActive || sub.Status == stripe.SubscriptionStatusTrialing

	updates := map[string]interface{}{
		"is_active": isActive,
	}
	if sub.Customer != nil {
		updates["stripe_customer_id"] = sub.Customer.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		updates["expires_at"] = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	} else {
		updates["expires_at"] = nil
	}

	return db.Model(&membership).Updates(updates).Error
}

// POST /memberships/sync
// Accepts raw Stripe events (direct or relayed) and applies the membership
// side effects synchronously.
func SyncFromStripe(db *gorm.DB, provider payments.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event stripe.Event
		if err := c.ShouldBindJSON(&event); err != nil || event.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Stripe event payload"})
			return
		}

		switch event.Type {
		case "checkout.session.completed":
			var session stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout session payload"})
				return
			}
			if session.Mode != stripe.CheckoutSessionModeSubscription {
				break
			}
			if err := SyncFromCheckoutSession(db, provider, &session); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Membership sync failed", "details": err.Error()})
				return
			}

		case "customer.subscription.created",
			"customer.subscription.updated",
			"customer.subscription.deleted":
			var sub stripe.Subscription
			if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription payload"})
				return
			}
			if err := ApplySubscriptionEvent(db, &sub); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Membership sync failed", "details": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /memberships/me (Firebase-gated)
func GetMyMembership(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var user models.User
		if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var membership models.Membership
		if err := db.Where("user_id = ?", user.ID).First(&membership).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusOK, gin.H{"data": nil})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": membership})
	}
}
