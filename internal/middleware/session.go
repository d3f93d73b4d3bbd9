package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"doit/internal/auth"
)

// Context and session keys.
const (
	UserIDKey       = "userID"
	UsernameKey     = "username"
	SessionTokenKey = "token"
)

// SessionAuth resolves the signed token carried in the cookie session
// and exposes the identity through the gin context. It never aborts:
// pages decide themselves how to treat an anonymous visitor.
func SessionAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		tokenStr, ok := session.Get(SessionTokenKey).(string)
		if !ok || tokenStr == "" {
			c.Next()
			return
		}

		userIDStr, username, err := auth.ParseToken(secret, tokenStr)
		if err != nil {
			c.Next()
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.Next()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UsernameKey, username)
		c.Next()
	}
}
