package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/Codebuster0001/portfolio3/internal/interface/http"
	"github.com/Codebuster0001/portfolio3/internal/interface/middleware"
)

type ProjectModule struct {
	Handler  *handlers.ProjectHandler
	Sessions middleware.SessionResolver
	Redis    *redis.Client
}

func NewProjectModule(h *handlers.ProjectHandler, sessions middleware.SessionResolver, rdb *redis.Client) *ProjectModule {
	return &ProjectModule{Handler: h, Sessions: sessions, Redis: rdb}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/projects")
	g.GET("/getall", m.Handler.GetAll)
	g.GET("/search", middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil), m.Handler.Search)
	g.GET("/:id", m.Handler.Get)

	auth := g.Group("/", middleware.Auth(m.Sessions))
	auth.POST("/add", m.Handler.Add)
	auth.PUT("/update/:id", m.Handler.Update)
	auth.DELETE("/delete/:id", m.Handler.Delete)
}
