package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"doit/internal/middleware"
)

// currentUser reads the identity placed in the context by the session
// middleware. ok is false for anonymous visitors.
func currentUser(c *gin.Context) (userID uuid.UUID, username string, ok bool) {
	rawID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, "", false
	}
	userID, ok = rawID.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	rawName, _ := c.Get(middleware.UsernameKey)
	username, _ = rawName.(string)
	return userID, username, true
}

// renderForbidden serves the anonymous-visitor page. The body carries
// the denial, the status stays 200: pages are pages, not API errors.
func renderForbidden(c *gin.Context) {
	c.HTML(http.StatusOK, "forbidden.html", gin.H{})
}

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
}

// flash queues a one-shot notification for the next rendered page.
func flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

// takeFlashes drains the queued notifications.
func takeFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) > 0 {
		_ = session.Save()
	}
	messages := make([]string, 0, len(raw))
	for _, m := range raw {
		if s, ok := m.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
