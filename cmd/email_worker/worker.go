package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Codebuster0001/portfolio3/pkg/helpers"
	"github.com/Codebuster0001/portfolio3/pkg/mailer"
)

type outcome int

const (
	outcomeAck outcome = iota
	outcomeDrop
	outcomeRetry
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type worker struct {
	Sender  sender
	Loc     *time.Location
	Logger  *logrus.Logger
	Timeout time.Duration
}

// Handle renders and sends one queued job. Payloads that can never succeed are
// dropped; transport failures are retried.
func (w *worker) Handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad message")
		return outcomeDrop
	}
	helpers.LocalizeTimes(job.Data, w.Loc)

	subject, text, html, err := helpers.RenderJob(&job)
	if err != nil {
		w.Logger.WithError(err).WithField("template", job.Template).Warn("render failed")
		return outcomeDrop
	}

	c, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		w.Logger.WithError(err).WithField("to", job.To).Error("send failed")
		return outcomeRetry
	}
	w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return outcomeAck
}
