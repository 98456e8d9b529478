package addressControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

type addressInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Apartment string `json:"apartment"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Country   string `json:"country" binding:"required"`
	ZipCode   string `json:"zipCode" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

func findUserByUID(db *gorm.DB, uid string) (*models.User, error) {
	var user models.User
	if err := db.Where("uid = ?", uid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// POST /addresses (Firebase-gated)
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var input addressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required address fields"})
			return
		}

		user, err := findUserByUID(db, uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		address := models.Address{
			UserID:    user.ID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Address:   input.Address,
			Apartment: input.Apartment,
			City:      input.City,
			State:     input.State,
			Country:   input.Country,
			ZipCode:   input.ZipCode,
			Phone:     input.Phone,
		}
		if err := db.Create(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating address", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Address created successfully",
			"data":    address,
		})
	}
}

// GET /addresses (Firebase-gated)
func GetUserAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		user, err := findUserByUID(db, uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		var addresses []models.Address
		if err := db.Where("user_id = ?", user.ID).Order("id ASC").Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving user addresses", "details": err.Error()})
			return
		}
		if len(addresses) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No addresses found for this user."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Addresses retrieved successfully",
			"data":    addresses,
		})
	}
}

// PUT /addresses/:id (Firebase-gated, ownership-checked)
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
			return
		}

		user, err := findUserByUID(db, uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&address).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Address not found or does not belong to the authenticated user."})
			return
		}

		var input addressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required address fields"})
			return
		}

		address.FirstName = input.FirstName
		address.LastName = input.LastName
		address.Address = input.Address
		address.Apartment = input.Apartment
		address.City = input.City
		address.State = input.State
		address.Country = input.Country
		address.ZipCode = input.ZipCode
		address.Phone = input.Phone

		if err := db.Save(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating address", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Address updated successfully",
			"data":    address,
		})
	}
}

// DELETE /addresses/:id (Firebase-gated, ownership-checked)
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
			return
		}

		user, err := findUserByUID(db, uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found for the given Firebase UID."})
			return
		}

		result := db.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Address{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting address", "details": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Address not found or does not belong to the authenticated user."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Address deleted successfully",
		})
	}
}
