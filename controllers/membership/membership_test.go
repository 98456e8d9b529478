package membershipControllers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v74"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

type fakeProvider struct {
	subscriptions map[string]*stripe.Subscription
	invoices      map[string]*stripe.Invoice
}

func (f *fakeProvider) CreateCheckoutSession(_ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeProvider) GetCheckoutSession(id string, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return nil, fmt.Errorf("not implemented")
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
	return nil, nil
}

func (f *fakeProvider) CreateCoupon(_ *stripe.CouponParams) (*stripe.Coupon, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeProvider) CreateBillingPortalSession(_ *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
	return nil, fmt.Errorf("not implemented")
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Membership{}))
	return db
}

func seedMember(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{UID: "uid-1", Email: "member@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func subscriptionSession(uid, subID string) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:           "cs_sub",
		Mode:         stripe.CheckoutSessionModeSubscription,
		Subscription: &stripe.Subscription{ID: subID},
		Metadata:     map[string]string{"firebaseUid": uid, "membershipTier": "gold"},
	}
}

func TestSyncFromCheckoutSessionCreatesGoldMembership(t *testing.T) {
	db := setupTestDB(t)
	user := seedMember(t, db)

	periodEnd := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	provider := &fakeProvider{subscriptions: map[string]*stripe.Subscription{
		"sub_1": {
			ID:               "sub_1",
			Status:           stripe.SubscriptionStatusActive,
			Customer:         &stripe.Customer{ID: "cus_1"},
			CurrentPeriodEnd: periodEnd.Unix(),
		},
	}}

	require.NoError(t, SyncFromCheckoutSession(db, provider, subscriptionSession(user.UID, "sub_1")))

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&membership).Error)
	assert.Equal(t, "gold", membership.Tier)
	assert.True(t, membership.IsActive)
	assert.True(t, membership.FreeShipping)
	assert.Equal(t, 25.0, membership.DiscountPercent)
	assert.Equal(t, "cus_1", membership.StripeCustomerID)
	assert.Equal(t, "sub_1", membership.StripeSubscriptionID)
	require.NotNil(t, membership.ExpiresAt)
	assert.True(t, membership.ExpiresAt.Equal(periodEnd))
}

func TestSyncFromCheckoutSessionUpsertsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	user := seedMember(t, db)

	provider := &fakeProvider{subscriptions: map[string]*stripe.Subscription{
		"sub_1": {ID: "sub_1", Status: stripe.SubscriptionStatusActive, CurrentPeriodEnd: time.Now().Add(720 * time.Hour).Unix()},
		"sub_2": {ID: "sub_2", Status: stripe.SubscriptionStatusActive, CurrentPeriodEnd: time.Now().Add(1440 * time.Hour).Unix()},
	}}

	require.NoError(t, SyncFromCheckoutSession(db, provider, subscriptionSession(user.UID, "sub_1")))
	require.NoError(t, SyncFromCheckoutSession(db, provider, subscriptionSession(user.UID, "sub_2")))

	var count int64
	require.NoError(t, db.Model(&models.Membership{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&membership).Error)
	assert.Equal(t, "sub_2", membership.StripeSubscriptionID)
}

func TestSyncFromCheckoutSessionInvoiceFallbackForExpiry(t *testing.T) {
	db := setupTestDB(t)
	user := seedMember(t, db)

	periodEnd := time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC)
	provider := &fakeProvider{
		subscriptions: map[string]*stripe.Subscription{
			"sub_1": {
				ID:            "sub_1",
				Status:        stripe.SubscriptionStatusActive,
				LatestInvoice: &stripe.Invoice{ID: "in_1"},
			},
		},
		invoices: map[string]*stripe.Invoice{
			"in_1": {
				ID: "in_1",
				Lines: &stripe.InvoiceLineItemList{Data: []*stripe.InvoiceLineItem{
					{Period: &stripe.Period{End: periodEnd.Unix()}},
				}},
			},
		},
	}

	require.NoError(t, SyncFromCheckoutSession(db, provider, subscriptionSession(user.UID, "sub_1")))

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&membership).Error)
	require.NotNil(t, membership.ExpiresAt)
	assert.True(t, membership.ExpiresAt.Equal(periodEnd))
}

func TestSyncFromCheckoutSessionUnknownUserIsDropped(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeProvider{subscriptions: map[string]*stripe.Subscription{}}

	require.NoError(t, SyncFromCheckoutSession(db, provider, subscriptionSession("no-such-uid", "sub_1")))
	require.NoError(t, SyncFromCheckoutSession(db, provider, subscriptionSession("guest", "sub_1")))

	var count int64
	require.NoError(t, db.Model(&models.Membership{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestApplySubscriptionEventDeactivates(t *testing.T) {
	db := setupTestDB(t)
	user := seedMember(t, db)

	expires := time.Now().Add(720 * time.Hour).UTC()
	require.NoError(t, db.Create(&models.Membership{
		UserID: user.ID, Tier: "gold", IsActive: true,
		StripeSubscriptionID: "sub_1", ExpiresAt: &expires,
	}).Error)

	require.NoError(t, ApplySubscriptionEvent(db, &stripe.Subscription{
		ID:     "sub_1",
		Status: stripe.SubscriptionStatusCanceled,
	}))

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&membership).Error)
	assert.False(t, membership.IsActive)
	assert.Nil(t, membership.ExpiresAt)
	// Tier survives; only lifecycle fields move.
	assert.Equal(t, "gold", membership.Tier)
}

func TestApplySubscriptionEventUnknownSubscriptionCreatesNothing(t *testing.T) {
	db := setupTestDB(t)
	seedMember(t, db)

	require.NoError(t, ApplySubscriptionEvent(db, &stripe.Subscription{
		ID:     "sub_unknown",
		Status: stripe.SubscriptionStatusCanceled,
	}))

	var count int64
	require.NoError(t, db.Model(&models.Membership{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestApplySubscriptionEventExtendsExpiry(t *testing.T) {
	db := setupTestDB(t)
	user := seedMember(t, db)

	require.NoError(t, db.Create(&models.Membership{
		UserID: user.ID, Tier: "gold", IsActive: true,
		StripeSubscriptionID: "sub_1",
	}).Error)

	newEnd := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ApplySubscriptionEvent(db, &stripe.Subscription{
		ID:               "sub_1",
		Status:           stripe.SubscriptionStatusActive,
		Customer:         &stripe.Customer{ID: "cus_9"},
		CurrentPeriodEnd: newEnd.Unix(),
	}))

	var membership models.Membership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&membership).Error)
	assert.True(t, membership.IsActive)
	assert.Equal(t, "cus_9", membership.StripeCustomerID)
	require.NotNil(t, membership.ExpiresAt)
	assert.True(t, membership.ExpiresAt.Equal(newEnd))
}
