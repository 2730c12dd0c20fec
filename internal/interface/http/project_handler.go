package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Codebuster0001/portfolio3/internal/application"
	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/pkg/response"
)

type ProjectUsecase interface {
	Create(ctx context.Context, in application.ProjectInput) (*entity.Project, error)
	Get(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]entity.Project, error)
	Update(ctx context.Context, id string, in application.ProjectInput) (*entity.Project, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string) ([]entity.Project, error)
}

type ProjectHandler struct {
	Svc ProjectUsecase
}

func NewProjectHandler(svc ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{Svc: svc}
}

// projectFields maps request keys to the input fields they fill.
func projectFields(in *application.ProjectInput) map[string]**string {
	return map[string]**string{
		"name":            &in.Name,
		"longDescription": &in.LongDescription,
		"role":            &in.Role,
		"githubURL":       &in.GithubURL,
		"demoURL":         &in.DemoURL,
		"type":            &in.Type,
		"challenges":      &in.Challenges,
		"learnings":       &in.Learnings,
		"technologies":    &in.Technologies,
	}
}

// bindProject reads a multipart, urlencoded or JSON body. List fields keep
// their JSON array text; the service parses them.
func bindProject(c *gin.Context) (application.ProjectInput, func(), error) {
	var in application.ProjectInput
	fields := projectFields(&in)
	noop := func() {}

	if c.ContentType() == gin.MIMEJSON {
		var body map[string]json.RawMessage
		if err := c.ShouldBindJSON(&body); err != nil {
			return in, noop, err
		}
		for key, dst := range fields {
			raw, ok := body[key]
			if !ok || string(raw) == "null" {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				s = string(raw)
			}
			*dst = &s
		}
		return in, noop, nil
	}

	for key, dst := range fields {
		if v, ok := c.GetPostForm(key); ok {
			v := v
			*dst = &v
		}
	}
	fhs, err := formFiles(c, "images")
	if err != nil {
		return in, noop, err
	}
	ups, closer, err := openUploads(fhs)
	if err != nil {
		return in, noop, err
	}
	in.Images = ups
	return in, closer, nil
}

func (h *ProjectHandler) Add(c *gin.Context) {
	in, closeFiles, err := bindProject(c)
	defer closeFiles()
	if err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"project": p}, "Project Added", nil)
}

func (h *ProjectHandler) GetAll(c *gin.Context) {
	projects, err := h.Svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if projects == nil {
		projects = []entity.Project{}
	}
	response.Success(c, http.StatusOK, gin.H{"projects": projects}, "", nil)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project": p}, "", nil)
}

func (h *ProjectHandler) Search(c *gin.Context) {
	projects, err := h.Svc.Search(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if projects == nil {
		projects = []entity.Project{}
	}
	response.Success(c, http.StatusOK, gin.H{"projects": projects}, "", nil)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	in, closeFiles, err := bindProject(c)
	defer closeFiles()
	if err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project": p}, "Project Updated", nil)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Project Deleted")
}
