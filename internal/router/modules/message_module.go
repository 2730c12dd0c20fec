package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/Codebuster0001/portfolio3/internal/interface/http"
	"github.com/Codebuster0001/portfolio3/internal/interface/middleware"
)

type MessageModule struct {
	Handler  *handlers.MessageHandler
	Sessions middleware.SessionResolver
	Redis    *redis.Client
}

func NewMessageModule(h *handlers.MessageHandler, sessions middleware.SessionResolver, rdb *redis.Client) *MessageModule {
	return &MessageModule{Handler: h, Sessions: sessions, Redis: rdb}
}

func (m *MessageModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/message")
	// Public contact form: 5 req/min per IP
	g.POST("/contact", middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIP(), nil), m.Handler.Contact)

	auth := g.Group("/", middleware.Auth(m.Sessions))
	auth.GET("/getall", m.Handler.GetAll)
	auth.DELETE("/delete/:id", m.Handler.Delete)
}
