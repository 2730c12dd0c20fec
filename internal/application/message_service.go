package application

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Codebuster0001/portfolio3/config"
	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	repo "github.com/Codebuster0001/portfolio3/internal/domain/repository"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
	"github.com/Codebuster0001/portfolio3/pkg/mailer"
	mailtpl "github.com/Codebuster0001/portfolio3/pkg/mailer/templates"
)

type MessageService struct {
	Messages  repo.MessageRepository
	Publisher JobPublisher // nil skips contact emails
	Cfg       *config.Config
	Logger    *logrus.Logger

	validate *validator.Validate
	now      func() time.Time
}

func NewMessageService(messages repo.MessageRepository, pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *MessageService {
	return &MessageService{
		Messages:  messages,
		Publisher: pub,
		Cfg:       cfg,
		Logger:    logger,
		validate:  validator.New(),
		now:       time.Now,
	}
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Contact stores a visitor message, then queues the owner alert and the
// auto-reply. Queue failures are logged; the message is already stored.
func (s *MessageService) Contact(ctx context.Context, in ContactInput, meta RequestMeta) (*entity.Message, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, apperror.BadRequest("All fields are required")
	}
	if utf8.RuneCountInString(in.Name) < 2 {
		return nil, apperror.BadRequest("Name must contain at least 2 characters")
	}
	if err := s.validate.Var(in.Email, "email"); err != nil {
		return nil, apperror.BadRequest("Please provide a valid email")
	}
	if utf8.RuneCountInString(in.Message) < 2 {
		return nil, apperror.BadRequest("Message must contain at least 2 characters")
	}

	m := &entity.Message{Name: in.Name, Email: in.Email, Message: in.Message}
	if err := s.Messages.Create(ctx, m); err != nil {
		return nil, err
	}
	s.queueContactMails(ctx, m, meta)
	return m, nil
}

func (s *MessageService) queueContactMails(ctx context.Context, m *entity.Message, meta RequestMeta) {
	if s.Publisher == nil {
		if s.Logger != nil {
			s.Logger.WithField("message_id", m.ID).Warn("no email queue configured, contact emails skipped")
		}
		return
	}
	opts := []mailtpl.Option{
		mailtpl.WithTime(s.now()),
		mailtpl.WithIP(meta.IP),
		mailtpl.WithUserAgent(meta.UserAgent),
	}
	jobs := make([]mailer.EmailJob, 0, 2)
	if s.Cfg.AdminEmail != "" {
		jobs = append(jobs, mailer.EmailJob{
			To:       s.Cfg.AdminEmail,
			Template: mailtpl.ContactAdmin,
			Data:     mailtpl.NewContactAdminData(s.Cfg, m.Name, m.Email, m.Message, opts...),
		})
	}
	jobs = append(jobs, mailer.EmailJob{
		To:       m.Email,
		Template: mailtpl.ContactReply,
		Data:     mailtpl.NewContactReplyData(s.Cfg, m.Name, m.Email, m.Message, opts...),
	})

	for _, job := range jobs {
		if err := s.Publisher.PublishJSON(ctx, job); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithFields(logrus.Fields{
					"message_id": m.ID,
					"template":   job.Template,
				}).Error("enqueue contact email failed")
			}
			continue
		}
		contactsQueued.Add(1)
	}
}

func (s *MessageService) List(ctx context.Context) ([]entity.Message, error) {
	return s.Messages.List(ctx)
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	return s.Messages.Delete(ctx, id)
}
