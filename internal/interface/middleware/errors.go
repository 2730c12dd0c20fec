package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Codebuster0001/portfolio3/pkg/apperror"
	"github.com/Codebuster0001/portfolio3/pkg/response"
	"github.com/Codebuster0001/portfolio3/pkg/validation"
)

// ErrorHandler is the single place that turns errors attached with c.Error
// into the JSON failure envelope. Internal causes are logged, never sent.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		ae := apperror.From(c.Errors.Last().Err)

		if ae.Kind == apperror.Internal && logger != nil {
			logger.WithError(ae.Err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error("request failed")
		}

		var details any
		var verrs validator.ValidationErrors
		if errors.As(ae, &verrs) {
			details = validation.ToDetails(verrs)
		}
		response.Error[any](c, ae.Status(), ae.Message, details)
	}
}
