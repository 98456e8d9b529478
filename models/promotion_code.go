package models

import "time"

// PromotionCode is created by an admin and redeemed at most once per user.
// The Users relation is the redemption set; it is only appended to by the
// payment webhook, never at validation time.
type PromotionCode struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code               string     `gorm:"uniqueIndex;not null" json:"code"`
	IsActive           bool       `json:"isActive"`
	ValidFrom          *time.Time `json:"validFrom"`
	ValidUntil         *time.Time `json:"validUntil"`
	DiscountPercentage float64    `json:"discountPercentage"`
	CurrentUses        int        `json:"currentUses"`
	Users              []User     `gorm:"many2many:promotion_code_redemptions" json:"users"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
