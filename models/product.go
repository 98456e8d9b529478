package models

import "time"

type Product struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	Details       string         `json:"details"`
	Price         float64        `gorm:"not null" json:"price"`
	DiscountPrice *float64       `json:"discountPrice"` // admin override, applied when lower than Price
	Stock         int            `json:"stock"`
	Category      string         `gorm:"index" json:"category"`
	Sizes         []string       `gorm:"serializer:json" json:"sizes"`
	Colors        []string       `gorm:"serializer:json" json:"colors"`
	Photos        []ProductPhoto `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"photos"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Computed by the seasonal pricing pass, never persisted.
	OriginalPrice             *float64 `gorm:"-" json:"originalPrice,omitempty"`
	DiscountPercentageApplied *float64 `gorm:"-" json:"discountPercentageApplied,omitempty"`
	PromotionNameApplied      string   `gorm:"-" json:"promotionNameApplied,omitempty"`
}

type ProductPhoto struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index" json:"-"`
	URL       string `gorm:"not null" json:"url"`
	Name      string `json:"name"`
}

type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"unique;not null" json:"name"`
	Image string `json:"image"`
}

// SeasonalPromotion is a storewide percentage discount with a validity window.
// The highest active percentage wins when several overlap.
type SeasonalPromotion struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string     `gorm:"not null" json:"name"`
	DiscountPercentage float64    `gorm:"not null" json:"discountPercentage"`
	IsActive           bool       `json:"isActive"`
	ValidFrom          *time.Time `json:"validFrom"`
	ValidUntil         *time.Time `json:"validUntil"`
	CreatedAt          time.Time  `json:"created_at"`
}
