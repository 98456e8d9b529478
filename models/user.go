package models

import "time"

type User struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UID               string    `gorm:"uniqueIndex;not null" json:"uid"` // Firebase subject
	Email             string    `gorm:"unique;not null" json:"email"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
