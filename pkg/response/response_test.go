package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")
	return c, w
}

func TestSuccessWritesEnvelope(t *testing.T) {
	c, w := newContext()

	Success(c, http.StatusCreated, gin.H{"skill": gin.H{"order": 1}}, "Skill added", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Skill added", body["message"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, float64(1), body["data"].(map[string]any)["skill"].(map[string]any)["order"])
}

func TestErrorAbortsWithFlatMessage(t *testing.T) {
	c, w := newContext()

	Error[any](c, 0, "Invalid order value", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid order value", body["message"])
	assert.NotContains(t, body, "data")
}
