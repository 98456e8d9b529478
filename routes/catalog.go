package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryControllers "github.com/Stivenjs/reffinato-api/controllers/category"
	galleryControllers "github.com/Stivenjs/reffinato-api/controllers/gallery"
	productControllers "github.com/Stivenjs/reffinato-api/controllers/product"
)

// SetupCatalogRoutes registers the public storefront reads: products,
// categories and the social shop gallery. No auth on any of these.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProductList(db))
		products.GET("/:id", productControllers.GetProductByID(db))
		products.GET("/by-category", productControllers.GetProductsByCategory(db))
	}

	r.GET("/categories", categoryControllers.GetAllCategories(db))

	socialShop := r.Group("/social-shop")
	{
		socialShop.GET("/photos", galleryControllers.GetSocialShopPhotos(db))
		socialShop.GET("/photos/:id", galleryControllers.GetSocialShopPhotoByID(db))
	}

	videos := r.Group("/videos")
	{
		videos.GET("", galleryControllers.GetVideos(db))
		videos.GET("/:id", galleryControllers.GetVideoByID(db))
	}
}
