package productControllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

// applySeasonalDiscount rewrites a product's price with the best active
// storewide promotion, keeping the original price alongside for display.
func applySeasonalDiscount(db *gorm.DB, product *models.Product, now time.Time) {
	var promotions []models.SeasonalPromotion
	if err := db.
		Where("is_active = ?", true).
		Where("valid_from IS NULL OR valid_from <= ?", now).
		Where("valid_until IS NULL OR valid_until >= ?", now).
		Find(&promotions).Error; err != nil || len(promotions) == 0 {
		return
	}

	best := promotions[0]
	for _, promo := range promotions[1:] {
		if promo.DiscountPercentage > best.DiscountPercentage {
			best = promo
		}
	}
	if best.DiscountPercentage <= 0 {
		return
	}

	original := product.Price
	discounted := math.Round(original*(1-best.DiscountPercentage/100)*100) / 100
	product.Price = discounted
	product.OriginalPrice = &original
	pct := best.DiscountPercentage
	product.DiscountPercentageApplied = &pct
	product.PromotionNameApplied = best.Name
}

// GET /products
func GetProductList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Photos").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if len(products) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No products found"})
			return
		}

		now := time.Now()
		for i := range products {
			applySeasonalDiscount(db, &products[i], now)
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Photos").First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		applySeasonalDiscount(db, &product, time.Now())
		c.JSON(http.StatusOK, product)
	}
}

// GET /products/by-category?category=
func GetProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		if category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
			return
		}

		var products []models.Product
		if err := db.Preload("Photos").Where("category = ?", category).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if len(products) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No products found in this category"})
			return
		}

		now := time.Now()
		for i := range products {
			applySeasonalDiscount(db, &products[i], now)
		}
		c.JSON(http.StatusOK, products)
	}
}

type productInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Details       string   `json:"details"`
	Price         float64  `json:"price" binding:"required"`
	DiscountPrice *float64 `json:"discountPrice"`
	Stock         int      `json:"stock"`
	Category      string   `json:"category"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	PhotoURLs     []string `json:"photoUrls"`
}

// POST /admin/products (API-key gated)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			Details:       input.Details,
			Price:         input.Price,
			DiscountPrice: input.DiscountPrice,
			Stock:         input.Stock,
			Category:      input.Category,
			Sizes:         input.Sizes,
			Colors:        input.Colors,
		}
		for _, url := range input.PhotoURLs {
			product.Photos = append(product.Photos, models.ProductPhoto{URL: url})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id (API-key gated)
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product.Name = input.Name
		product.Description = input.Description
		product.Details = input.Details
		product.Price = input.Price
		product.DiscountPrice = input.DiscountPrice
		product.Stock = input.Stock
		product.Category = input.Category
		product.Sizes = input.Sizes
		product.Colors = input.Colors

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products/:id (API-key gated)
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		result := db.Delete(&models.Product{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

type seasonalPromotionInput struct {
	Name               string     `json:"name" binding:"required"`
	DiscountPercentage float64    `json:"discountPercentage" binding:"required"`
	IsActive           bool       `json:"isActive"`
	ValidFrom          *time.Time `json:"validFrom"`
	ValidUntil         *time.Time `json:"validUntil"`
}

// POST /admin/seasonal-promotions (API-key gated)
func CreateSeasonalPromotion(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input seasonalPromotionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		promo := models.SeasonalPromotion{
			Name:               input.Name,
			DiscountPercentage: input.DiscountPercentage,
			IsActive:           input.IsActive,
			ValidFrom:          input.ValidFrom,
			ValidUntil:         input.ValidUntil,
		}
		if err := db.Create(&promo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create seasonal promotion"})
			return
		}
		c.JSON(http.StatusCreated, promo)
	}
}
