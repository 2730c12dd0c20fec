package router

import "github.com/gin-gonic/gin"

// Module is one feature area (user, skills, projects...). Register mounts its
// routes on the group the Registry hands it, usually /api/v1.
type Module interface {
	Register(rg *gin.RouterGroup)
}
