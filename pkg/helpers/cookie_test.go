package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordCookie(t *testing.T, fn func(c *gin.Context)) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSetSessionCapsMaxAge(t *testing.T) {
	m := NewCookie("example.com", true, time.Hour)
	ck := recordCookie(t, func(c *gin.Context) {
		m.SetSession(c, "tok", time.Now().Add(24*time.Hour))
	})
	assert.Equal(t, SessionCookie, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.Equal(t, 3600, ck.MaxAge)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
}

func TestSetSessionFollowsTokenExpiry(t *testing.T) {
	m := NewCookie("", false, 7*24*time.Hour)
	ck := recordCookie(t, func(c *gin.Context) {
		m.SetSession(c, "tok", time.Now().Add(10*time.Minute))
	})
	assert.InDelta(t, 600, ck.MaxAge, 2)
}

func TestClearExpiresCookie(t *testing.T) {
	m := NewCookie("", false, time.Hour)
	ck := recordCookie(t, m.Clear)
	assert.Equal(t, "", ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}
