package router

import "github.com/gin-gonic/gin"

// Registry collects feature modules and mounts them under /api/v1. Debug
// endpoints hang off /api directly.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	V1          *gin.RouterGroup
	modules     []Module
	rootModules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api, V1: api.Group("/v1")}
}

// Add registers a module under /api/v1.
func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// AddRoot registers a module under /api.
func (r *Registry) AddRoot(mod Module) {
	r.rootModules = append(r.rootModules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.rootModules {
		m.Register(r.API)
	}
	for _, m := range r.modules {
		m.Register(r.V1)
	}
}
