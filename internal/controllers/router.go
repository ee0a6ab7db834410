package controllers

import (
	"net/url"

	"github.com/fsdevblog/shortlink/internal/controllers/middlewares"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterParams зависимости роутера.
type RouterParams struct {
	RedirectService RedirectResolver
	LinkService     LinkManager
	UserService     UserManager
	PingService     ConnectionChecker
	Sessions        SessionStore
	BaseURL         *url.URL
	Logger          *zap.Logger
}

func SetupRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware(p.Logger))
	r.Use(middlewares.GzipMiddleware())

	redirectController := NewRedirectController(p.RedirectService)
	linksController := NewLinksController(p.LinkService, p.BaseURL)
	authController := NewAuthController(p.UserService, p.Sessions)
	pingController := NewPingController(p.PingService)

	r.GET("/ping", pingController.Ping)
	r.GET("/:shortCode", redirectController.Redirect)

	api := r.Group("/api")
	sessionAuth := middlewares.SessionAuth(p.Sessions, p.UserService)

	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/logout", authController.Logout)
	auth.GET("/profile", sessionAuth, authController.Profile)
	auth.DELETE("/user", sessionAuth, authController.DeleteUser)

	links := api.Group("/links")
	links.Use(sessionAuth)
	links.POST("/shorten", linksController.Create)
	links.GET("", linksController.List)
	links.GET("/search", linksController.Search)
	links.GET("/:shortCode", linksController.Get)
	links.PUT("/:shortCode", linksController.Update)
	links.DELETE("/:shortCode", linksController.Delete)
	links.GET("/:shortCode/stats", linksController.Stats)

	return r
}
