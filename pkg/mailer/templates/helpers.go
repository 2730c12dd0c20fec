package templates

import (
	"context"
	"strings"
	"time"

	"github.com/Codebuster0001/portfolio3/config"
)

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format(TimeLayout)
	}
}
func WithResetURL(url string) Option { return func(d *EmailData) { d.ResetURL = url } }

func setLocation(d *EmailData, loc string) {
	if s := strings.TrimSpace(loc); s != "" {
		d.Location = s
	}
}

func WithLocation(loc string) Option {
	return func(d *EmailData) { setLocation(d, loc) }
}

func WithGeoFromIP(ctx context.Context, r GeoResolver, ip string) Option {
	return func(d *EmailData) {
		if r == nil || strings.TrimSpace(ip) == "" {
			return
		}
		if g, err := r.Lookup(ctx, ip); err == nil {
			setLocation(d, FormatGeo(g))
		}
	}
}

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format(TimeLayout)
	}
}

func WithContact(name, email, message string) Option {
	return func(d *EmailData) {
		d.SenderName = name
		d.SenderEmail = email
		d.Message = message
	}
}

// NewBaseEmailData fills the owner fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: recipient,
		Type:           typ,
		OwnerName:      cfg.OwnerName,
		AppName:        cfg.AppName,
		SiteURL:        cfg.PortfolioURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewForgotPasswordData(cfg *config.Config, name, email string, opts ...Option) EmailData {
	return NewBaseEmailData(cfg, ForgotPassword, name, email, email, opts...)
}

// NewContactAdminData is the alert sent to the site owner for a contact form submission.
func NewContactAdminData(cfg *config.Config, senderName, senderEmail, message string, opts ...Option) map[string]any {
	opts = append([]Option{WithContact(senderName, senderEmail, message)}, opts...)
	d := NewBaseEmailData(cfg, ContactAdmin, cfg.OwnerName, cfg.AdminEmail, cfg.AdminEmail, opts...)
	return ToMap(d)
}

// NewContactReplyData is the auto-reply sent back to the visitor.
func NewContactReplyData(cfg *config.Config, senderName, senderEmail, message string, opts ...Option) map[string]any {
	opts = append([]Option{WithContact(senderName, senderEmail, message)}, opts...)
	d := NewBaseEmailData(cfg, ContactReply, senderName, senderEmail, senderEmail, opts...)
	return ToMap(d)
}
