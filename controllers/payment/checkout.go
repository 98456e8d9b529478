package paymentControllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v74"
	"gorm.io/gorm"

	promocodeControllers "github.com/Stivenjs/reffinato-api/controllers/promocode"
	"github.com/Stivenjs/reffinato-api/models"
	"github.com/Stivenjs/reffinato-api/payments"
)

// Countries Stripe is allowed to collect a shipping address for.
var shippingAllowedCountries = []string{
	"US", "CA", "MX", "CO", "AR", "BR", "CL", "PE", "EC", "VE",
}

type checkoutProduct struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
	PhotoURLs     []string `json:"photoUrls"`
}

type checkoutLine struct {
	Product  *checkoutProduct `json:"product"`
	Quantity int              `json:"quantity"`
	Size     string           `json:"size"`
	Color    string           `json:"color"`
}

type createCheckoutSessionInput struct {
	CartItems     []checkoutLine `json:"cartItems"`
	SuccessURL    string         `json:"successUrl"`
	CancelURL     string         `json:"cancelUrl"`
	PromotionCode string         `json:"promotionCode"`
}

// unitPriceFor applies the admin discount price when it is set and lower.
func unitPriceFor(p *checkoutProduct) float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// POST /payments/create-checkout-session (Firebase-gated)
func CreateCheckoutSession(db *gorm.DB, provider payments.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var input createCheckoutSessionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if len(input.CartItems) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart items array is required and must not be empty."})
			return
		}
		if input.SuccessURL == "" || input.CancelURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "successUrl and cancelUrl are required."})
			return
		}

		lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.CartItems))
		snapshot := make([]payments.SnapshotItem, 0, len(input.CartItems))
		for _, line := range input.CartItems {
			if line.Product == nil || line.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data in cart items."})
				return
			}
			unitPrice := unitPriceFor(line.Product)

			productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(line.Product.Name),
				Metadata: map[string]string{
					"productId": formatUint(line.Product.ID),
					"size":      line.Size,
					"color":     line.Color,
				},
			}
			if len(line.Product.PhotoURLs) > 0 {
				productData.Images = []*string{stripe.String(line.Product.PhotoURLs[0])}
			}

			lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(string(stripe.CurrencyUSD)),
					ProductData: productData,
					UnitAmount:  stripe.Int64(int64(math.Round(unitPrice * 100))),
				},
				Quantity: stripe.Int64(int64(line.Quantity)),
			})
			snapshot = append(snapshot, payments.SnapshotItem{
				ProductID: line.Product.ID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
				Size:      line.Size,
				Color:     line.Color,
			})
		}

		params := &stripe.CheckoutSessionParams{
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
			LineItems:          lineItems,
			Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
			SuccessURL:         stripe.String(input.SuccessURL),
			CancelURL:          stripe.String(input.CancelURL),
			PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
				Enabled: stripe.Bool(true),
			},
			ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
				AllowedCountries: stripe.StringSlice(shippingAllowedCountries),
			},
		}
		params.AddMetadata("firebaseUid", uid)
		if input.PromotionCode != "" {
			params.AddMetadata("promotionCode", input.PromotionCode)
		} else {
			params.AddMetadata("promotionCode", "none")
		}

		// Promotion code: validated here, marked used only by the webhook so
		// an abandoned checkout never burns the code.
		discountPercentage := 0.0
		if input.PromotionCode != "" {
			var user models.User
			if err := db.Where("uid = ?", uid).First(&user).Error; err == nil {
				promo, err := promocodeControllers.Validate(db, input.PromotionCode, user.ID, time.Now())
				switch {
				case err == nil:
					discountPercentage = promo.DiscountPercentage
				case errors.Is(err, promocodeControllers.ErrCodeNotFound):
					// Unknown codes are ignored, the session proceeds undiscounted.
				default:
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
		}

		if discountPercentage > 0 {
			couponID, err := ensureCoupon(provider, discountPercentage, input.PromotionCode)
			if err != nil {
				log.Printf("Error creating/finding Stripe coupon: %v", err)
			} else if couponID != "" {
				params.Discounts = []*stripe.CheckoutSessionDiscountParams{
					{Coupon: stripe.String(couponID)},
				}
			}
		}

		if encoded, err := payments.EncodeCartSnapshot(snapshot); err != nil {
			log.Printf("Could not serialize items metadata for Checkout Session: %v", err)
		} else {
			params.AddMetadata(payments.SnapshotMetadataKey, encoded)
		}

		session, err := provider.CreateCheckoutSession(params)
		if err != nil {
			log.Printf("Error creating Stripe Checkout Session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "An error occurred while creating the checkout session.",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": session.ID, "url": session.URL})
	}
}

type createSubscriptionSessionInput struct {
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
	PriceID    string `json:"priceId"`
}

// POST /payments/create-subscription-session (Firebase-gated)
func CreateSubscriptionSession(provider payments.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var input createSubscriptionSessionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.SuccessURL == "" || input.CancelURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "successUrl and cancelUrl are required."})
			return
		}

		priceID := input.PriceID
		if priceID == "" {
			priceID = os.Getenv("STRIPE_SUBSCRIPTION_PRICE_ID")
		}
		if priceID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Missing priceId. Define STRIPE_SUBSCRIPTION_PRICE_ID or send priceId in body.",
			})
			return
		}

		params := &stripe.CheckoutSessionParams{
			Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
			SuccessURL: stripe.String(input.SuccessURL),
			CancelURL:  stripe.String(input.CancelURL),
			LineItems: []*stripe.CheckoutSessionLineItemParams{
				{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
			},
			AllowPromotionCodes: stripe.Bool(false),
		}
		params.AddMetadata("firebaseUid", uid)
		params.AddMetadata("membershipTier", "gold")

		session, err := provider.CreateCheckoutSession(params)
		if err != nil {
			log.Printf("Error creating Stripe Subscription Session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create subscription session."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": session.ID, "url": session.URL})
	}
}

type createPortalSessionInput struct {
	ReturnURL string `json:"returnUrl"`
}

// POST /payments/create-portal-session (Firebase-gated)
func CreatePortalSession(db *gorm.DB, provider payments.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var input createPortalSessionInput
		_ = c.ShouldBindJSON(&input)

		var user models.User
		if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var membership models.Membership
		if err := db.Where("user_id = ?", user.ID).First(&membership).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No membership found for user"})
			return
		}
		if membership.StripeCustomerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Stripe customer id in membership"})
			return
		}

		params := &stripe.BillingPortalSessionParams{
			Customer: stripe.String(membership.StripeCustomerID),
		}
		if input.ReturnURL != "" {
			params.ReturnURL = stripe.String(input.ReturnURL)
		}

		portal, err := provider.CreateBillingPortalSession(params)
		if err != nil {
			log.Printf("Error creating portal session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create portal session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": portal.URL})
	}
}
