package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
)

// TokenVerifier is satisfied by *auth.Client from the Firebase SDK.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseAuth gates a route group on a valid Firebase ID token and stores
// the decoded subject under "firebase_uid".
func FirebaseAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided or invalid format"})
			c.Abort()
			return
		}

		idToken := strings.TrimPrefix(header, "Bearer ")
		decoded, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired Firebase token"})
			c.Abort()
			return
		}

		c.Set("firebase_uid", decoded.UID)
		c.Next()
	}
}
