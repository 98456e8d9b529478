package models

import "time"

// Membership is the subscription-derived entitlement, at most one row per
// user. Rows are upserted from Stripe subscription state, never duplicated.
type Membership struct {
	ID                   uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID               uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User                 User       `gorm:"foreignKey:UserID" json:"-"`
	Tier                 string     `json:"tier"`
	IsActive             bool       `json:"isActive"`
	DiscountPercent      float64    `json:"discountPercent"`
	FreeShipping         bool       `json:"freeShipping"`
	StripeCustomerID     string     `json:"stripeCustomerId"`
	StripeSubscriptionID string     `gorm:"index" json:"stripeSubscriptionId"`
	StartedAt            time.Time  `json:"startedAt"`
	ExpiresAt            *time.Time `json:"expiresAt"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
