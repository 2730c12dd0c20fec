package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData is the union of fields the mail templates read. Jobs carry it as
// a map so the worker can localize times before rendering.
type EmailData struct {
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	OwnerName string `json:"OwnerName"`
	AppName   string `json:"AppName"`
	SiteURL   string `json:"SiteURL"`

	ResetURL string `json:"ResetURL"`

	SenderName  string `json:"SenderName"`
	SenderEmail string `json:"SenderEmail"`
	Message     string `json:"Message"`

	ExpiresAt     time.Time `json:"ExpiresAt"`
	ExpiresAtText string    `json:"ExpiresAtText"`
	IP            string    `json:"IP"`
	Time          string    `json:"Time"`
	TimeAt        time.Time `json:"TimeAt"`
	UserAgent     string    `json:"UserAgent"`
	Location      string    `json:"Location"`
}

// ToMap flattens d into the EmailJob.Data shape.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// Template names
const (
	ForgotPassword = "forgot_password"
	ContactAdmin   = "contact_admin"
	ContactReply   = "contact_reply"
)

// TimeLayout is how timestamps appear in mail bodies.
const TimeLayout = "02 January 2006, 15:04 MST"

// orDefault backs {{ .Name | default "there" }}. Blank strings and nil fall back.
func orDefault(fallback, value any) any {
	switch v := value.(type) {
	case nil:
		return fallback
	case string:
		if strings.TrimSpace(v) == "" {
			return fallback
		}
	}
	return value
}

// mailTemplate holds the three parsed parts of one message kind.
type mailTemplate struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var catalog = mustLoad(ForgotPassword, ContactAdmin, ContactReply)

func mustLoad(names ...string) map[string]mailTemplate {
	out := make(map[string]mailTemplate, len(names))
	for _, name := range names {
		t, err := load(name)
		if err != nil {
			panic(err)
		}
		out[name] = t
	}
	return out
}

func load(name string) (mailTemplate, error) {
	var (
		t   mailTemplate
		err error
	)
	textFuncs := texttpl.FuncMap{"default": orDefault}
	if t.subject, err = texttpl.New(name).Funcs(textFuncs).ParseFS(FS, name+".subject.tmpl"); err != nil {
		return t, fmt.Errorf("mail template %s subject: %w", name, err)
	}
	if t.text, err = texttpl.New(name).Funcs(textFuncs).ParseFS(FS, name+".text.tmpl"); err != nil {
		return t, fmt.Errorf("mail template %s text: %w", name, err)
	}
	if t.html, err = htmpl.New(name).Funcs(htmpl.FuncMap{"default": orDefault}).ParseFS(FS, name+".html.tmpl"); err != nil {
		return t, fmt.Errorf("mail template %s html: %w", name, err)
	}
	return t, nil
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(tpl executor, file string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, file, data); err != nil {
		return "", fmt.Errorf("render %s: %w", file, err)
	}
	return buf.String(), nil
}

// Render produces the subject, plain text and HTML bodies of a known mail kind.
func Render(name string, data any) (subject, text, html string, err error) {
	t, ok := catalog[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown mail template %q", name)
	}
	if subject, err = execute(t.subject, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(t.text, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(t.html, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
