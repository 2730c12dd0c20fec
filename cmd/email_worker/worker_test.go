package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codebuster0001/portfolio3/config"
	"github.com/Codebuster0001/portfolio3/pkg/mailer"
	mailtpl "github.com/Codebuster0001/portfolio3/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type recordingSender struct {
	err      error
	sent     []sent
	deadline bool
}

func (r *recordingSender) Send(ctx context.Context, to, subject, text, html string) error {
	_, r.deadline = ctx.Deadline()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sent{to, subject, text, html})
	return nil
}

func newWorker(s sender) *worker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &worker{Sender: s, Loc: time.UTC, Logger: logger, Timeout: time.Second}
}

func jobBytes(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestHandleTemplateJob(t *testing.T) {
	cfg := &config.Config{AppName: "portfolio-cms", OwnerName: "Jane Doe", AdminEmail: "owner@example.com"}
	s := &recordingSender{}
	w := newWorker(s)

	body := jobBytes(t, mailer.EmailJob{
		To:       "bob@example.com",
		Template: mailtpl.ContactReply,
		Data:     mailtpl.NewContactReplyData(cfg, "Bob", "bob@example.com", "Hi"),
	})
	require.Equal(t, outcomeAck, w.Handle(context.Background(), body))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "bob@example.com", s.sent[0].to)
	assert.Equal(t, "Thank you for contacting Jane Doe", s.sent[0].subject)
	assert.True(t, s.deadline)
}

func TestHandleRawJob(t *testing.T) {
	s := &recordingSender{}
	w := newWorker(s)

	body := jobBytes(t, mailer.EmailJob{To: "a@example.com", Subject: "Hello", Text: "plain"})
	require.Equal(t, outcomeAck, w.Handle(context.Background(), body))
	assert.Equal(t, []sent{{"a@example.com", "Hello", "plain", ""}}, s.sent)
}

func TestHandleDropsUnusablePayloads(t *testing.T) {
	s := &recordingSender{}
	w := newWorker(s)

	assert.Equal(t, outcomeDrop, w.Handle(context.Background(), []byte("{not json")))
	assert.Equal(t, outcomeDrop, w.Handle(context.Background(), jobBytes(t, mailer.EmailJob{Subject: "no recipient", Text: "x"})))
	assert.Equal(t, outcomeDrop, w.Handle(context.Background(), jobBytes(t, mailer.EmailJob{To: "a@example.com", Template: "missing"})))
	assert.Empty(t, s.sent)
}

func TestHandleRetriesSendFailure(t *testing.T) {
	w := newWorker(&recordingSender{err: errors.New("mailgun 503")})
	body := jobBytes(t, mailer.EmailJob{To: "a@example.com", Subject: "Hello", Text: "plain"})
	assert.Equal(t, outcomeRetry, w.Handle(context.Background(), body))
}
