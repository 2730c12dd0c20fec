package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Codebuster0001/portfolio3/internal/application"
	"github.com/Codebuster0001/portfolio3/internal/interface/middleware"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
)

// bindError attaches a binding failure as a validation error. Errors that
// already carry a client message keep it.
func bindError(c *gin.Context, err error) {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		_ = c.Error(ae)
		return
	}
	_ = c.Error(apperror.Wrap(apperror.Validation, "Invalid request body", err))
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{IP: middleware.ClientIP(c), UserAgent: c.Request.UserAgent()}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formFiles returns the files sent under field, or nil for non-multipart requests.
func formFiles(c *gin.Context, field string) ([]*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	return form.File[field], nil
}

// openUploads opens every file header. The returned closer must always be called.
func openUploads(fhs []*multipart.FileHeader) ([]*application.Upload, func(), error) {
	files := make([]multipart.File, 0, len(fhs))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	out := make([]*application.Upload, 0, len(fhs))
	for _, fh := range fhs {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperror.Wrap(apperror.Validation, "Could not read uploaded file "+fh.Filename, err)
		}
		files = append(files, f)
		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}
		out = append(out, &application.Upload{Filename: fh.Filename, ContentType: ct, Body: f})
	}
	return out, closeAll, nil
}

// stringList accepts a JSON array in JSON bodies, and either a JSON array or
// comma separated text in forms.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = nonNil(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("technologies must be an array of strings")
	}
	return l.UnmarshalParam(s)
}

func (l *stringList) UnmarshalParam(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return apperror.BadRequest("Invalid technologies format")
		}
		*l = nonNil(arr)
		return nil
	}
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// NoRoute answers unknown paths with the JSON failure envelope.
func NoRoute(c *gin.Context) {
	_ = c.Error(apperror.NotFoundf("Route %s %s not found", c.Request.Method, c.Request.URL.Path))
}
