package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"tribune/internal/config"
	"tribune/internal/handlers"
	"tribune/internal/middleware"
	"tribune/internal/monitoring"
	"tribune/internal/services"
	"tribune/internal/utils"
)

// New builds the full engine: sessions, templates, services and routes.
// Everything is constructed here and passed down explicitly; there are no
// package-global handles.
func New(conn *gorm.DB, cfg config.Config, templatesDir string) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(monitoring.Instrument())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("tribune_session", store))

	r.HTMLRender = loadTemplates(templatesDir)

	users := services.NewUserService(conn)
	topics := services.NewTopicService(conn)
	pageCache, err := utils.NewPageCache(128)
	if err != nil {
		return nil, err
	}

	r.Use(middleware.LoadUser(users))

	authHandler := handlers.NewAuthHandler(users)
	topicHandler := handlers.NewTopicHandler(topics, pageCache)

	authLimit := middleware.NewRateLimiter(20, time.Minute).Limit()

	// Public routes
	r.GET("/", topicHandler.List)
	r.GET("/topic/:id", topicHandler.Detail)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authLimit, authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authLimit, authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/new_topic", topicHandler.ShowCreate)
		authorized.POST("/new_topic", topicHandler.Create)
		authorized.POST("/topic/:id", topicHandler.Reply)
		authorized.POST("/delete_post/:id", topicHandler.DeletePost)
	}

	return r, nil
}
