package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Codebuster0001/portfolio3/internal/application"
	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/pkg/response"
)

type TimelineUsecase interface {
	Create(ctx context.Context, in application.TimelineInput) (*entity.Timeline, error)
	List(ctx context.Context) ([]entity.Timeline, error)
	Update(ctx context.Context, id string, in application.TimelineInput) (*entity.Timeline, error)
	Delete(ctx context.Context, id string) error
}

type TimelineHandler struct {
	Svc TimelineUsecase
}

func NewTimelineHandler(svc TimelineUsecase) *TimelineHandler {
	return &TimelineHandler{Svc: svc}
}

type timelineRequest struct {
	Year        string `json:"year" form:"year"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

func (r timelineRequest) input() application.TimelineInput {
	return application.TimelineInput{Year: r.Year, Title: r.Title, Description: r.Description}
}

func (h *TimelineHandler) Create(c *gin.Context) {
	var req timelineRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"timeline": t}, "Timeline Added", nil)
}

func (h *TimelineHandler) GetAll(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if items == nil {
		items = []entity.Timeline{}
	}
	response.Success(c, http.StatusOK, gin.H{"timelines": items}, "", nil)
}

func (h *TimelineHandler) Update(c *gin.Context) {
	var req timelineRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"timeline": t}, "Timeline Updated", nil)
}

func (h *TimelineHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Timeline Deleted")
}
