package auth

import (
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Stivenjs/reffinato-api/models"
)

type registerInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required"`
}

// POST /auth/register
// Creates the Firebase account, mirrors it locally, and returns a custom
// token the client exchanges for an ID token.
func RegisterUser(db *gorm.DB, fb *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input registerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		record, err := fb.CreateUser(c.Request.Context(), (&fbauth.UserToCreate{}).
			Email(input.Email).
			Password(input.Password).
			DisplayName(input.DisplayName))
		if err != nil {
			if strings.Contains(err.Error(), "EMAIL_EXISTS") || strings.Contains(err.Error(), "email already exists") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already in use."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		user := models.User{
			UID:   record.UID,
			Email: input.Email,
			Name:  input.DisplayName,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		token, err := fb.CustomToken(c.Request.Context(), record.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"user":    user,
			"token":   token,
		})
	}
}

type socialLoginInput struct {
	UID         string `json:"uid" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName" binding:"required"`
	Token       string `json:"token" binding:"required"`
}

// POST /auth/social-login
// Verifies the Firebase ID token and creates the local user on first sign-in.
func SocialLogin(db *gorm.DB, fb *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input socialLoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields for social login"})
			return
		}

		decoded, err := fb.VerifyIDToken(c.Request.Context(), input.Token)
		if err != nil || decoded.UID != input.UID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		var user models.User
		err = db.Where("uid = ?", input.UID).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			user = models.User{
				UID:   input.UID,
				Email: input.Email,
				Name:  input.DisplayName,
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "User authenticated successfully",
			"uid":     input.UID,
		})
	}
}

type updateProfileInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	PhotoURL  *string `json:"photoURL"`
}

// PUT /auth/profile (Firebase-gated)
// Updates Firebase first, then mirrors the changed fields to the local row.
func UpdateProfile(db *gorm.DB, fb *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")

		var input updateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		current, err := fb.GetUser(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		fbUpdates := &fbauth.UserToUpdate{}
		localUpdates := make(map[string]interface{})
		touched := false

		if input.FirstName != nil || input.LastName != nil {
			parts := strings.Fields(current.DisplayName)
			first, last := "", ""
			if len(parts) > 0 {
				first = parts[0]
			}
			if len(parts) > 1 {
				last = parts[1]
			}
			if input.FirstName != nil {
				first = *input.FirstName
			}
			if input.LastName != nil {
				last = *input.LastName
			}
			name := strings.TrimSpace(first + " " + last)
			fbUpdates = fbUpdates.DisplayName(name)
			localUpdates["name"] = name
			touched = true
		}
		if input.Email != nil {
			fbUpdates = fbUpdates.Email(*input.Email)
			localUpdates["email"] = *input.Email
			touched = true
		}
		if input.PhotoURL != nil {
			fbUpdates = fbUpdates.PhotoURL(*input.PhotoURL)
			localUpdates["profile_picture_url"] = *input.PhotoURL
			touched = true
		}
		if input.Password != nil {
			fbUpdates = fbUpdates.Password(*input.Password)
			touched = true
		}

		if touched {
			if _, err := fb.UpdateUser(ctx, uid, fbUpdates); err != nil {
				if strings.Contains(err.Error(), "EMAIL_EXISTS") || strings.Contains(err.Error(), "email already exists") {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use."})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		if len(localUpdates) > 0 {
			if err := db.Model(&models.User{}).Where("uid = ?", uid).Updates(localUpdates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}

		final, err := fb.GetUser(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully.",
			"user": gin.H{
				"displayName": final.DisplayName,
				"email":       final.Email,
				"photoURL":    final.PhotoURL,
			},
		})
	}
}
