package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Codebuster0001/portfolio3/internal/interface/http"
	"github.com/Codebuster0001/portfolio3/internal/interface/middleware"
)

type TimelineModule struct {
	Handler  *handlers.TimelineHandler
	Sessions middleware.SessionResolver
}

func NewTimelineModule(h *handlers.TimelineHandler, sessions middleware.SessionResolver) *TimelineModule {
	return &TimelineModule{Handler: h, Sessions: sessions}
}

func (m *TimelineModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/timeline")
	g.GET("/getall", m.Handler.GetAll)

	auth := g.Group("/", middleware.Auth(m.Sessions))
	auth.POST("/create", m.Handler.Create)
	auth.PUT("/update/:id", m.Handler.Update)
	auth.DELETE("/delete/:id", m.Handler.Delete)
}
