package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/Codebuster0001/portfolio3/internal/interface/http"
	"github.com/Codebuster0001/portfolio3/internal/interface/middleware"
)

// UserModule mounts the identity and session routes under /user.
// Public: register, login, forgot and reset password, portfolio profile.
// Protected: logout, me, profile and password updates.
type UserModule struct {
	Handler  *handlers.UserHandler
	Sessions middleware.SessionResolver
	Redis    *redis.Client
}

func NewUserModule(h *handlers.UserHandler, sessions middleware.SessionResolver, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Sessions: sessions, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/user")

	// Public with rate limiting
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIP(), nil)
	forgotLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	g.POST("/register", registerLimiter, m.Handler.Register)
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/forgot/password", forgotLimiter, m.Handler.ForgotPassword)
	g.PUT("/password/reset/:token", resetLimiter, m.Handler.ResetPassword)
	g.GET("/portfolio/me", m.Handler.Portfolio)
	g.GET("/me/portfolio", m.Handler.Portfolio)

	// Protected
	auth := g.Group("/")
	auth.Use(
		middleware.Auth(m.Sessions),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.GetUser)
		auth.PUT("/me/profile/update", m.Handler.UpdateProfile)
		auth.PUT("/update/me", m.Handler.UpdateProfile)
		auth.PUT("/update/password", m.Handler.UpdatePassword)
	}
}
