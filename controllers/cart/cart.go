package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

type AddToCartInput struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateQuantityInput struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type RemoveFromCartInput struct {
	ProductID uint   `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func findUserByUID(db *gorm.DB, uid string) (*models.User, error) {
	var user models.User
	if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// effectiveUnitPrice resolves the price a line is charged at: the admin
// discount price wins when present and lower.
func effectiveUnitPrice(p *models.Product) float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// POST /cart/add
// One line per (user, product, size, color); adding the same selection
// again accumulates quantity on the existing line.
func AddProductToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := findUserByUID(db, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		var item models.CartItem
		err = db.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
			user.ID, input.ProductID, input.Size, input.Color).First(&item).Error

		if err == gorm.ErrRecordNotFound {
			item = models.CartItem{
				UserID:      user.ID,
				ProductID:   product.ID,
				Quantity:    input.Quantity,
				Size:        input.Size,
				Color:       input.Color,
				Price:       effectiveUnitPrice(&product),
				ProductName: product.Name,
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			db.Preload("Product").First(&item, item.ID)
			c.JSON(http.StatusCreated, gin.H{"message": "Product added to cart", "item": item})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		item.Quantity += input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		db.Preload("Product").First(&item, item.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Quantity updated in cart", "item": item})
	}
}

// PUT /cart/update-quantity
func UpdateProductQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := findUserByUID(db, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		var item models.CartItem
		err = db.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
			user.ID, input.ProductID, input.Size, input.Color).First(&item).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		db.Preload("Product").First(&item, item.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Quantity updated in cart", "item": item})
	}
}

// DELETE /cart/remove
func RemoveProductFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var input RemoveFromCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := findUserByUID(db, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		result := db.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
			user.ID, input.ProductID, input.Size, input.Color).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
	}
}

// GET /cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		user, err := findUserByUID(db, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		var items []models.CartItem
		if err := db.Preload("Product").Preload("Product.Photos").
			Where("user_id = ?", user.ID).
			Order("created_at ASC").
			Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, items)
	}
}

// DELETE /cart/clear
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		user, err := findUserByUID(db, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		result := db.Where("user_id = ?", user.ID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found or already empty"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
