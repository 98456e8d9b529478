package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryControllers "github.com/Stivenjs/reffinato-api/controllers/category"
	galleryControllers "github.com/Stivenjs/reffinato-api/controllers/gallery"
	orderControllers "github.com/Stivenjs/reffinato-api/controllers/order"
	productControllers "github.com/Stivenjs/reffinato-api/controllers/product"
	promocodeControllers "github.com/Stivenjs/reffinato-api/controllers/promocode"
	"github.com/Stivenjs/reffinato-api/middleware"
)

// SetupAdminRoutes registers back-office endpoints behind the X-API-KEY check.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.POST("/products", productControllers.CreateProduct(db))
		admin.PUT("/products/:id", productControllers.UpdateProduct(db))
		admin.DELETE("/products/:id", productControllers.DeleteProduct(db))
		admin.GET("/products/export", productControllers.ExportProductsToExcel(db))

		admin.POST("/categories", categoryControllers.CreateCategory(db))

		admin.POST("/seasonal-promotions", productControllers.CreateSeasonalPromotion(db))
		admin.POST("/promotion-codes", promocodeControllers.CreatePromotionCode(db))

		admin.POST("/social-shop/photos", galleryControllers.CreateSocialShopPhoto(db))
		admin.POST("/videos", galleryControllers.CreateVideo(db))

		admin.GET("/orders", orderControllers.GetAllOrders(db))
	}
}
