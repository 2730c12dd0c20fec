package templates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codebuster0001/portfolio3/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AppName:      "portfolio-cms",
		OwnerName:    "Jane Doe",
		AdminEmail:   "owner@example.com",
		PortfolioURL: "https://jane.dev",
	}
}

func TestRenderForgotPassword(t *testing.T) {
	exp := time.Date(2026, time.May, 4, 10, 15, 0, 0, time.UTC)
	data := NewForgotPasswordData(testConfig(), "Jane", "jane@example.com",
		WithResetURL("https://admin.jane.dev/password/reset/abc123"),
		WithExpiresAt(exp),
		WithIP("203.0.113.9"),
	)

	subject, text, html, err := Render(ForgotPassword, data)
	require.NoError(t, err)
	assert.Equal(t, "portfolio-cms password recovery", subject)
	assert.Contains(t, text, "https://admin.jane.dev/password/reset/abc123")
	assert.Contains(t, text, "04 May 2026, 10:15 UTC")
	assert.Contains(t, text, "203.0.113.9")
	assert.Contains(t, html, `href="https://admin.jane.dev/password/reset/abc123"`)
}

func TestRenderContactTemplatesFromJobData(t *testing.T) {
	cfg := testConfig()

	admin := NewContactAdminData(cfg, "Bob", "bob@example.com", "Hello <there>")
	subject, text, html, err := Render(ContactAdmin, admin)
	require.NoError(t, err)
	assert.Equal(t, "New contact message from Bob", subject)
	assert.Contains(t, text, "Email: bob@example.com")
	assert.Contains(t, text, "Hello <there>")
	assert.Contains(t, html, "Hello &lt;there&gt;")

	reply := NewContactReplyData(cfg, "Bob", "bob@example.com", "Hi")
	subject, text, _, err = Render(ContactReply, reply)
	require.NoError(t, err)
	assert.Equal(t, "Thank you for contacting Jane Doe", subject)
	assert.Contains(t, text, "Hi Bob,")
	assert.Equal(t, "bob@example.com", reply["RecipientEmail"])
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", EmailData{})
	assert.Error(t, err)
}

func TestIPAPIResolverSkipsPrivateAddresses(t *testing.T) {
	var r IPAPIResolver
	_, err := r.Lookup(context.Background(), "10.0.0.4")
	assert.Error(t, err)
	_, err = r.Lookup(context.Background(), "not-an-ip")
	assert.Error(t, err)
}

func TestIPAPIResolverLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/json/203.0.113.9", req.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","country":"Nepal","regionName":"Bagmati","city":"Kathmandu","timezone":"Asia/Kathmandu"}`))
	}))
	defer srv.Close()

	g, err := IPAPIResolver{BaseURL: srv.URL}.Lookup(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, "Kathmandu, Bagmati, Nepal", FormatGeo(g))
}
