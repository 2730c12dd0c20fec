package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Codebuster0001/portfolio3/internal/interface/http"
	"github.com/Codebuster0001/portfolio3/internal/interface/middleware"
)

type SkillModule struct {
	Handler  *handlers.SkillHandler
	Sessions middleware.SessionResolver
}

func NewSkillModule(h *handlers.SkillHandler, sessions middleware.SessionResolver) *SkillModule {
	return &SkillModule{Handler: h, Sessions: sessions}
}

func (m *SkillModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/skills")
	g.GET("/getall", m.Handler.GetAll)

	auth := g.Group("/", middleware.Auth(m.Sessions))
	auth.POST("/add", m.Handler.Add)
	auth.DELETE("/delete/:order", m.Handler.DeleteByOrder)
}
