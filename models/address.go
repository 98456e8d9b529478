package models

import "time"

type Address struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `gorm:"not null" json:"lastName"`
	Address   string    `gorm:"not null" json:"address"`
	Apartment string    `json:"apartment"`
	City      string    `gorm:"not null" json:"city"`
	State     string    `json:"state"`
	Country   string    `gorm:"not null" json:"country"`
	ZipCode   string    `gorm:"not null" json:"zipCode"`
	Phone     string    `gorm:"not null" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
