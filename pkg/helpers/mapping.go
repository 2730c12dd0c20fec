package helpers

import (
	"errors"
	"fmt"

	"github.com/Codebuster0001/portfolio3/pkg/mailer"
	mailtpl "github.com/Codebuster0001/portfolio3/pkg/mailer/templates"
)

var ErrInvalidJob = errors.New("email job needs a recipient and a template or subject with body")

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// RenderJob produces subject, text and html for a queued job, rendering its
// template when one is named.
func RenderJob(job *mailer.EmailJob) (subject, text, html string, err error) {
	if !job.Valid() {
		return "", "", "", ErrInvalidJob
	}
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	EnsureRecipientAndEmail(job)
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}
