package galleryControllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

// GET /social-shop/photos
// Active photos, gallery order first, newest within the same slot.
func GetSocialShopPhotos(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var photos []models.SocialShopPhoto
		if err := db.
			Where("is_active = ?", true).
			Order("\"order\" ASC").
			Order("created_at DESC").
			Find(&photos).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching social shop photos"})
			return
		}

		type photoView struct {
			models.SocialShopPhoto
			DateLabel string `json:"dateLabel"`
		}
		views := make([]photoView, 0, len(photos))
		for _, photo := range photos {
			views = append(views, photoView{
				SocialShopPhoto: photo,
				DateLabel:       strings.ToUpper(photo.Date.Format("02 January 2006")),
			})
		}

		c.JSON(http.StatusOK, gin.H{"data": views})
	}
}

// GET /social-shop/photos/:id
func GetSocialShopPhotoByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
			return
		}

		var photo models.SocialShopPhoto
		if err := db.First(&photo, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Social shop photo not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": photo})
	}
}

// GET /videos
func GetVideos(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var videos []models.Video
		if err := db.
			Where("is_active = ?", true).
			Order("created_at DESC").
			Find(&videos).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching videos"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": videos})
	}
}

// GET /videos/:id
func GetVideoByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video ID"})
			return
		}

		var video models.Video
		if err := db.First(&video, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": video})
	}
}

type socialShopInput struct {
	PhotoURL  string     `json:"photoUrl" binding:"required"`
	PhotoName string     `json:"photoName"`
	IsActive  bool       `json:"isActive"`
	Order     int        `json:"order"`
	Date      *time.Time `json:"date"`
}

// POST /admin/social-shop/photos (API-key gated)
func CreateSocialShopPhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input socialShopInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		photo := models.SocialShopPhoto{
			PhotoURL:  input.PhotoURL,
			PhotoName: input.PhotoName,
			IsActive:  input.IsActive,
			Order:     input.Order,
			Date:      time.Now(),
		}
		if input.Date != nil {
			photo.Date = *input.Date
		}
		if err := db.Create(&photo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create social shop photo"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": photo})
	}
}

type videoInput struct {
	VideoURL  string `json:"videoUrl" binding:"required"`
	VideoName string `json:"videoName"`
	Title     string `json:"title"`
	IsActive  bool   `json:"isActive"`
}

// POST /admin/videos (API-key gated)
func CreateVideo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input videoInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		video := models.Video{
			VideoURL:  input.VideoURL,
			VideoName: input.VideoName,
			Title:     input.Title,
			IsActive:  input.IsActive,
		}
		if err := db.Create(&video).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create video"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": video})
	}
}
