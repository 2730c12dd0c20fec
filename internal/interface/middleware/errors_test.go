package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codebuster0001/portfolio3/pkg/apperror"
	"github.com/Codebuster0001/portfolio3/pkg/validation"
)

func TestErrorHandlerMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(nil))
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(apperror.Conflictf("Duplicate field value entered: email"))
	})
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(apperror.Conflictf("ignored"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/bind", func(c *gin.Context) {
		var in struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			_ = c.Error(apperror.Wrap(apperror.Validation, "Invalid request body", err))
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Duplicate field value entered: email", decode(t, w)["message"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusOK, w.Code, "a written response is left alone")

	validation.Init()
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid request body", body["message"])
	assert.Equal(t, map[string]any{"email": "must be a valid email"}, body["error"])
}
