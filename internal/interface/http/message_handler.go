package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Codebuster0001/portfolio3/internal/application"
	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/pkg/response"
)

type MessageUsecase interface {
	Contact(ctx context.Context, in application.ContactInput, meta application.RequestMeta) (*entity.Message, error)
	List(ctx context.Context) ([]entity.Message, error)
	Delete(ctx context.Context, id string) error
}

type MessageHandler struct {
	Svc MessageUsecase
}

func NewMessageHandler(svc MessageUsecase) *MessageHandler {
	return &MessageHandler{Svc: svc}
}

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

func (h *MessageHandler) Contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	m, err := h.Svc.Contact(c.Request.Context(), application.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}, requestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": m}, "Message Sent", nil)
}

func (h *MessageHandler) GetAll(c *gin.Context) {
	msgs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if msgs == nil {
		msgs = []entity.Message{}
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs}, "", nil)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Message Deleted")
}
