package handlers

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"tribune/internal/middleware"
	"tribune/internal/models"
)

// Flash is a one-shot banner message. Category is one of success, danger,
// warning and drives the banner styling.
type Flash struct {
	Category string
	Message  string
}

func setFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(category + "|" + message)
	_ = session.Save()
}

func takeFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save() // reading flashes clears them, persist that

	flashes := make([]Flash, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok {
			continue
		}
		category, message, found := strings.Cut(s, "|")
		if !found {
			category, message = "success", s
		}
		flashes = append(flashes, Flash{Category: category, Message: message})
	}
	return flashes
}

// Render injects the variables every page needs (acting user, flash
// messages, current path) before handing off to the template.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	if user := currentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["Flashes"] = takeFlashes(c)
	obj["CurrentPath"] = c.Request.URL.Path
	c.HTML(code, name, obj)
}

func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Title": "Error", "Error": message})
}

func currentUser(c *gin.Context) *models.User {
	v, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// safeNext keeps the post-login redirect on this site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
