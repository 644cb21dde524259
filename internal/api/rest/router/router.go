// Package router assembles the gin engine from handlers and middleware.
package router

import (
	"github.com/gin-gonic/gin"

	"audiovault/internal/api/rest/handler"
	"audiovault/internal/api/rest/middleware"
	"audiovault/internal/logger"
)

// Deps carries everything the routes need.
type Deps struct {
	AuthService  handler.AuthService
	TokenService handler.TokenService
	UserService  handler.UserService
	OAuthService handler.OAuthService
	AudioService handler.AudioService
	UserResolver middleware.UserResolver
	Logger       *logger.Logger
}

// New builds the HTTP router with all API routes registered.
func New(d Deps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.NewLogging(d.Logger).Handle())

	authenticate := middleware.NewAuthenticate(d.UserResolver, d.Logger)

	authHandler := handler.NewAuth(d.AuthService, d.TokenService, d.Logger)
	userHandler := handler.NewUser(d.UserService, d.Logger)
	oauthHandler := handler.NewOAuth(d.OAuthService, d.TokenService, d.Logger)
	audioHandler := handler.NewAudio(d.AudioService, d.Logger)

	api := engine.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.DELETE("/logout", authHandler.Logout)
	}

	users := api.Group("/users")
	{
		users.POST("", userHandler.Create)
		users.GET("", authenticate.Required(), userHandler.List)
		users.PATCH("/me", authenticate.Required(), userHandler.UpdateMe)
	}

	admin := api.Group("/admin/users", authenticate.Required())
	{
		admin.PATCH("/:uid/superuser", userHandler.SetSuperuser)
		admin.DELETE("/:uid", userHandler.Delete)
	}

	oauth := api.Group("/oauth/yandex", authenticate.Optional())
	{
		oauth.GET("/start", oauthHandler.Start)
		oauth.GET("/callback", oauthHandler.Callback)
	}

	audio := api.Group("/audio", authenticate.Required())
	{
		audio.POST("/upload", audioHandler.Upload)
		audio.GET("/my-files", audioHandler.MyFiles)
	}

	return engine
}
