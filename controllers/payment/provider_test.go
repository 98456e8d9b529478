package paymentControllers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v74"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

// fakeProvider is an in-memory stand-in for the Stripe API.
type fakeProvider struct {
	sessions      map[string]*stripe.CheckoutSession
	subscriptions map[string]*stripe.Subscription
	invoices      map[string]*stripe.Invoice
	coupons       []*stripe.Coupon

	createdSessionParams []*stripe.CheckoutSessionParams
	createdCouponParams  []*stripe.CouponParams
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		sessions:      map[string]*stripe.CheckoutSession{},
		subscriptions: map[string]*stripe.Subscription{},
		invoices:      map[string]*stripe.Invoice{},
	}
}

func (f *fakeProvider) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.createdSessionParams = append(f.createdSessionParams, params)
	return &stripe.CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%d", len(f.createdSessionParams)),
		URL: "https://checkout.stripe.com/test",
	}, nil
}

func (f *fakeProvider) GetCheckoutSession(id string, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no such session: %s", id)
	}
	return session, nil
}

func (f *fakeProvider) GetSubscription(id string, _ *stripe.SubscriptionParams) (*stripe.Subscription, error) {
	sub, ok := f.subscriptions[id]
	if !ok {
		return nil, fmt.Errorf("no such subscription: %s", id)
	}
	return sub, nil
}

func (f *fakeProvider) GetInvoice(id string, _ *stripe.InvoiceParams) (*stripe.Invoice, error) {
	invoice, ok := f.invoices[id]
	if !ok {
		return nil, fmt.Errorf("no such invoice: %s", id)
	}
	return invoice, nil
}

func (f *fakeProvider) ListCoupons(_ *stripe.CouponListParams) ([]*stripe.Coupon, error) {
	return f.coupons, nil
}

func (f *fakeProvider) CreateCoupon(params *stripe.CouponParams) (*stripe.Coupon, error) {
	f.createdCouponParams = append(f.createdCouponParams, params)
	coupon := &stripe.Coupon{
		ID:         fmt.Sprintf("coupon_%d", len(f.createdCouponParams)),
		PercentOff: *params.PercentOff,
		Duration:   stripe.CouponDuration(*params.Duration),
	}
	f.coupons = append(f.coupons, coupon)
	return coupon, nil
}

func (f *fakeProvider) CreateBillingPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
	return &stripe.BillingPortalSession{URL: "https://billing.stripe.com/test"}, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductPhoto{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.PromotionCode{},
		&models.Membership{},
	))
	return db
}
