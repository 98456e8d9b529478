// Package payments wraps the Stripe SDK behind a narrow interface so the
// checkout and reconciliation flows can be exercised against a fake.
package payments

import (
	"fmt"
	"os"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// Provider is the subset of the Stripe API this service calls. Stripe's own
// types cross the boundary unchanged; only the transport is abstracted.
type Provider interface {
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetSubscription(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error)
	GetInvoice(id string, params *stripe.InvoiceParams) (*stripe.Invoice, error)
	ListCoupons(params *stripe.CouponListParams) ([]*stripe.Coupon, error)
	CreateCoupon(params *stripe.CouponParams) (*stripe.Coupon, error)
	CreateBillingPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error)
}

type stripeProvider struct {
	api *client.API
}

// NewStripeProvider builds a Provider from STRIPE_SECRET_KEY.
func NewStripeProvider() (Provider, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY must be set")
	}
	api := &client.API{}
	api.Init(key, nil)
	return &stripeProvider{api: api}, nil
}

func (p *stripeProvider) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return p.api.CheckoutSessions.New(params)
}

func (p *stripeProvider) GetCheckoutSession(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return p.api.CheckoutSessions.Get(id, params)
}

func (p *stripeProvider) GetSubscription(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error) {
	return p.api.Subscriptions.Get(id, params)
}

func (p *stripeProvider) GetInvoice(id string, params *stripe.InvoiceParams) (*stripe.Invoice, error) {
	return p.api.Invoices.Get(id, params)
}

func (p *stripeProvider) ListCoupons(params *stripe.CouponListParams) ([]*stripe.Coupon, error) {
	var coupons []*stripe.Coupon
	it := p.api.Coupons.List(params)
	for it.Next() {
		coupons = append(coupons, it.Coupon())
	}
	return coupons, it.Err()
}

func (p *stripeProvider) CreateCoupon(params *stripe.CouponParams) (*stripe.Coupon, error) {
	return p.api.Coupons.New(params)
}

func (p *stripeProvider) CreateBillingPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
	return p.api.BillingPortalSessions.New(params)
}
