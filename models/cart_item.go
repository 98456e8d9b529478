package models

import "time"

// CartItem is one pending selection. A user's cart is the set of their
// items; line identity is (user, product, size, color) and duplicate adds
// accumulate quantity. There is deliberately no unique constraint on that
// tuple: concurrent adds can race into duplicate rows, matching the
// behavior this service replaces.
type CartItem struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	Product     Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Size        string    `json:"size"`
	Color       string    `json:"color"`
	Price       float64   `json:"price"` // unit price resolved when the line was added
	ProductName string    `json:"productName"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
