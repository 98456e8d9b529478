package models

import "time"

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusRefunded  OrderStatus = "refunded"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef        string          `gorm:"uniqueIndex" json:"order_ref"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	TotalAmount     float64         `json:"totalAmount"`
	Currency        string          `json:"currency"`
	StripeSessionID string          `gorm:"index" json:"stripeSessionId"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'completed'" json:"status"`
	PromotionCode   string          `json:"promotionCode"`
	ShippingName    string          `json:"shippingName"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	AddressID       *uint           `json:"address_id"`
	Address         *Address        `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint    `gorm:"index" json:"-"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
}

// ShippingAddress mirrors what Stripe collects at checkout.
type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}
