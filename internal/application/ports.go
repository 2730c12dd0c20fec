package application

import (
	"context"
	"io"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
)

// AssetStore is the external host for resumes and project images.
type AssetStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (publicID, url string, err error)
	Delete(ctx context.Context, publicID string) error
}

// Mailer delivers a rendered message synchronously.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// JobPublisher hands a job to the email worker queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ProjectIndex is the search copy of projects.
type ProjectIndex interface {
	Enabled() bool
	Put(ctx context.Context, p entity.Project) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.Project, error)
}

// Upload is a file received from a client, already opened by the handler.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// RequestMeta describes the caller for audit fields in outgoing mail.
type RequestMeta struct {
	IP        string
	UserAgent string
}
