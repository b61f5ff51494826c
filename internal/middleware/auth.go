package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"tribune/internal/services"
)

const CurrentUserKey = "current_user"

// LoadUser resolves the session user (if any) and puts it on the context so
// every handler and template can see the acting identity.
func LoadUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if id, ok := userID.(uint); ok {
			if user, err := users.GetByID(id); err == nil {
				c.Set(CurrentUserKey, user)
			}
		}
		c.Next()
	}
}

// AuthRequired redirects anonymous requests to the login page, carrying the
// original path so login can send the user back.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CurrentUserKey); !exists {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}
