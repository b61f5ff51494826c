package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tribune/internal/monitoring"
	"tribune/internal/services"
	"tribune/internal/validate"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Register", "Username": ""})
}

func (h *AuthHandler) Register(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	form := validate.RegisterForm{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Confirm:  c.PostForm("confirm_password"),
	}
	if errs := form.Validate(); errs.Any() {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Title":    "Register",
			"Errors":   errs,
			"Username": form.Username,
		})
		return
	}

	username := strings.TrimSpace(form.Username)
	user, err := h.users.Register(username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			Render(c, http.StatusConflict, "auth/register.html", gin.H{
				"Title":    "Register",
				"Errors":   validate.FieldErrors{"username": "That username is already taken."},
				"Username": form.Username,
			})
			return
		}
		logrus.WithError(err).Error("register failed")
		RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}

	monitoring.RegisterSuccess.Inc()
	logrus.WithField("user_id", user.ID).Info("user registered")
	setFlash(c, "success", "Account created! You can now log in.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title":    "Log in",
		"Username": "",
		"Next":     safeNext(c.Query("next")),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	next := safeNext(c.PostForm("next"))
	form := validate.LoginForm{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}
	if errs := form.Validate(); errs.Any() {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{
			"Title":    "Log in",
			"Errors":   errs,
			"Username": form.Username,
			"Next":     next,
		})
		return
	}

	user, err := h.users.Authenticate(strings.TrimSpace(form.Username), form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// One generic message for unknown user and wrong password.
			monitoring.LoginFailure.Inc()
			Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
				"Title":    "Log in",
				"Error":    "Invalid username or password.",
				"Username": form.Username,
				"Next":     next,
			})
			return
		}
		logrus.WithError(err).Error("login failed")
		RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("save session")
		RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}

	monitoring.LoginSuccess.Inc()
	setFlash(c, "success", "Welcome back, "+user.Username+".")
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	setFlash(c, "success", "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}
