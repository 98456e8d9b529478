package promocodeControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

var (
	ErrCodeNotFound    = errors.New("promotion code not found")
	ErrCodeInactive    = errors.New("promotion code is not active")
	ErrCodeNotYetValid = errors.New("promotion code is not yet valid")
	ErrCodeExpired     = errors.New("promotion code has expired")
	ErrCodeAlreadyUsed = errors.New("promotion code has already been used by this user")
)

// Validate walks a code through its lifecycle checks: active flag, validity
// window, then the per-user redemption set. It never mutates the code —
// marking a code used happens exactly once, when the payment webhook
// reconciles a completed checkout.
func Validate(db *gorm.DB, code string, userID uint, now time.Time) (*models.PromotionCode, error) {
	var promo models.PromotionCode
	if err := db.Preload("Users").Where("code = ?", code).First(&promo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}

	if !promo.IsActive {
		return nil, ErrCodeInactive
	}
	if promo.ValidFrom != nil && promo.ValidFrom.After(now) {
		return nil, ErrCodeNotYetValid
	}
	if promo.ValidUntil != nil && promo.ValidUntil.Before(now) {
		return nil, ErrCodeExpired
	}
	for _, u := range promo.Users {
		if u.ID == userID {
			return nil, ErrCodeAlreadyUsed
		}
	}

	return &promo, nil
}

type applyInput struct {
	Code string `json:"code" binding:"required"`
}

// POST /promotion-codes/apply (Firebase-gated)
func ApplyPromotionCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var input applyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Promotion code is required"})
			return
		}

		var user models.User
		if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		promo, err := Validate(db, input.Code, user.ID, time.Now())
		if err != nil {
			switch {
			case errors.Is(err, ErrCodeNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, ErrCodeInactive), errors.Is(err, ErrCodeNotYetValid),
				errors.Is(err, ErrCodeExpired), errors.Is(err, ErrCodeAlreadyUsed):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":            "Promotion code validated",
			"discountPercentage": promo.DiscountPercentage,
		})
	}
}

type createInput struct {
	Code               string     `json:"code" binding:"required"`
	DiscountPercentage float64    `json:"discountPercentage" binding:"required"`
	IsActive           bool       `json:"isActive"`
	ValidFrom          *time.Time `json:"validFrom"`
	ValidUntil         *time.Time `json:"validUntil"`
}

// POST /admin/promotion-codes (API-key gated)
func CreatePromotionCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input createInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		promo := models.PromotionCode{
			Code:               input.Code,
			DiscountPercentage: input.DiscountPercentage,
			IsActive:           input.IsActive,
			ValidFrom:          input.ValidFrom,
			ValidUntil:         input.ValidUntil,
		}
		if err := db.Create(&promo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion code"})
			return
		}

		c.JSON(http.StatusCreated, promo)
	}
}
