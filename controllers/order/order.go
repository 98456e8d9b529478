package orderControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

// GenerateOrderRef returns a unique order reference, e.g.
// 20250908130500-<uuid4>.
func GenerateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

type orderItemView struct {
	ID              uint    `json:"id"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	Size            string  `json:"size"`
	Color           string  `json:"color"`
	ProductName     string  `json:"productName"`
	ProductPhotoURL string  `json:"productPhotoUrl,omitempty"`
}

type orderView struct {
	ID              uint                   `json:"id"`
	OrderRef        string                 `json:"order_ref"`
	TotalAmount     float64                `json:"totalAmount"`
	Currency        string                 `json:"currency"`
	Status          models.OrderStatus     `json:"status"`
	PromotionCode   string                 `json:"promotionCode"`
	ShippingName    string                 `json:"shippingName"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	Address         *models.Address        `json:"address,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	OrderItems      []orderItemView        `json:"orderItems"`
}

// GET /orders/me (Firebase-gated)
// Newest first, with product names and a photo URL resolved per line.
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var user models.User
		if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", user.ID).
			Preload("Items").
			Preload("Address").
			Order("id DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		views := make([]orderView, 0, len(orders))
		for _, order := range orders {
			view := orderView{
				ID:              order.ID,
				OrderRef:        order.OrderRef,
				TotalAmount:     order.TotalAmount,
				Currency:        order.Currency,
				Status:          order.Status,
				PromotionCode:   order.PromotionCode,
				ShippingName:    order.ShippingName,
				ShippingAddress: order.ShippingAddress,
				Address:         order.Address,
				CreatedAt:       order.CreatedAt,
				OrderItems:      make([]orderItemView, 0, len(order.Items)),
			}
			for _, item := range order.Items {
				itemView := orderItemView{
					ID:          item.ID,
					Quantity:    item.Quantity,
					UnitPrice:   item.UnitPrice,
					Size:        item.Size,
					Color:       item.Color,
					ProductName: item.ProductName,
				}
				if item.ProductID != 0 {
					var photo models.ProductPhoto
					if err := db.Where("product_id = ?", item.ProductID).Order("id ASC").First(&photo).Error; err == nil {
						itemView.ProductPhotoURL = photo.URL
					}
				}
				view.OrderItems = append(view.OrderItems, itemView)
			}
			views = append(views, view)
		}

		c.JSON(http.StatusOK, views)
	}
}

// GET /admin/orders (API-key gated)
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
