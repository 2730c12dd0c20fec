package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Codebuster0001/portfolio3/internal/application"
	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
	"github.com/Codebuster0001/portfolio3/pkg/response"
)

type SkillUsecase interface {
	Add(ctx context.Context, in application.AddSkillInput) (*entity.Skill, error)
	List(ctx context.Context) ([]entity.Skill, error)
	DeleteByOrder(ctx context.Context, order int) error
}

type SkillHandler struct {
	Svc SkillUsecase
}

func NewSkillHandler(svc SkillUsecase) *SkillHandler {
	return &SkillHandler{Svc: svc}
}

type addSkillRequest struct {
	Label    string `json:"label" form:"label"`
	IconName string `json:"iconName" form:"iconName"`
	Link     string `json:"link" form:"link"`
	Color    string `json:"color" form:"color"`
}

func (h *SkillHandler) Add(c *gin.Context) {
	var req addSkillRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	sk, err := h.Svc.Add(c.Request.Context(), application.AddSkillInput{
		Label:    req.Label,
		IconName: req.IconName,
		Link:     req.Link,
		Color:    req.Color,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"skill": sk}, "Skill added", nil)
}

func (h *SkillHandler) GetAll(c *gin.Context) {
	skills, err := h.Svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if skills == nil {
		skills = []entity.Skill{}
	}
	response.Success(c, http.StatusOK, gin.H{"skills": skills}, "", nil)
}

func (h *SkillHandler) DeleteByOrder(c *gin.Context) {
	order, err := strconv.ParseInt(c.Param("order"), 10, 32)
	switch {
	case errors.Is(err, strconv.ErrRange) && order > 0:
		// past any order the column can hold
		_ = c.Error(apperror.NotFoundf("Skill not found"))
		return
	case err != nil:
		_ = c.Error(apperror.BadRequest("Invalid order value"))
		return
	}
	if err := h.Svc.DeleteByOrder(c.Request.Context(), int(order)); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Skill deleted and order updated")
}
