package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
	"github.com/Codebuster0001/portfolio3/pkg/helpers"
)

const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "user"
)

// SessionResolver turns a session token into the user it belongs to.
type SessionResolver interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// Auth reads the session token from the "token" cookie or a Bearer header and
// loads its user. It sets userID and user in the Gin context on success.
func Auth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			_ = c.Error(apperror.Unauthorizedf("Unauthorized. Please login again."))
			c.Abort()
			return
		}
		u, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.SessionCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// CurrentUser returns the user loaded by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}
