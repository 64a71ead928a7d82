package middleware

import (
	"net/http"

	"blogium/internal/db"
	"blogium/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "user"

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser resolves the session's user and sets it on the request
// context. Every downstream policy check receives this value
// explicitly; there is no process-wide current user.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			if err := db.DB.First(&user, userID).Error; err == nil {
				c.Set(CurrentUserKey, &user)
			}
		}
		c.Next()
	}
}

// Viewer returns the authenticated user for the request, or nil for
// anonymous visitors.
func Viewer(c *gin.Context) *models.User {
	if user, exists := c.Get(CurrentUserKey); exists {
		return user.(*models.User)
	}
	return nil
}
