package models

import "time"

type SocialShopPhoto struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PhotoURL  string    `gorm:"not null" json:"photoUrl"`
	PhotoName string    `json:"photoName"`
	IsActive  bool      `gorm:"index" json:"isActive"`
	Order     int       `json:"order"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type Video struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoURL  string    `gorm:"not null" json:"videoUrl"`
	VideoName string    `json:"videoName"`
	Title     string    `json:"title"`
	IsActive  bool      `gorm:"index" json:"isActive"`
	CreatedAt time.Time `json:"created_at"`
}
