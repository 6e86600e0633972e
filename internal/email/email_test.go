package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTemplate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TemplateVerification, ResolveTemplate("verification"))
	assert.Equal(t, TemplateGeneric, ResolveTemplate("notification"))

	// Unknown types fall back to the generic template.
	assert.Equal(t, TemplateGeneric, ResolveTemplate("marketing-blast"))
	assert.Equal(t, TemplateGeneric, ResolveTemplate(""))
}

func TestSubjectFor(t *testing.T) {
	t.Parallel()

	assert.Contains(t, SubjectFor("verification"), "Verify")
	assert.Contains(t, SubjectFor("anything-else"), "Notification")
}

func TestTemplateManagerRender(t *testing.T) {
	t.Parallel()

	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render(TemplateVerification, TemplateData{
		"FullName":  "Dana",
		"Email":     "dana@example.com",
		"VerifyURL": "https://app.example.com/verify-email?token=abc123",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Dana")
	assert.Contains(t, html, "https://app.example.com/verify-email?token=abc123")

	text, err := tm.RenderText(TemplateGeneric, TemplateData{
		"FullName": "Dana",
		"Message":  "Your project moved to review.",
	})
	require.NoError(t, err)
	assert.Contains(t, text, "Dana")
	assert.Contains(t, text, "Your project moved to review.")
}

func TestTemplateManagerRender_MissingNamesDegrade(t *testing.T) {
	t.Parallel()

	tm, err := NewTemplateManager()
	require.NoError(t, err)

	// Rendering without a FullName still produces a usable greeting.
	text, err := tm.RenderText(TemplateGeneric, TemplateData{"Message": "Hello"})
	require.NoError(t, err)
	assert.Contains(t, text, "there")

	_, err = tm.Render("never-registered", TemplateData{})
	assert.Error(t, err)
}

func TestResendProviderSend(t *testing.T) {
	t.Parallel()

	var got resendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(resendResponse{ID: "msg_1"})
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.ResendAPIKey = "re_test_key"
	cfg.FromEmail = "noreply@designmatch.test"
	cfg.FromName = "DesignMatch"

	provider := NewResendProvider(cfg, nil)
	provider.SetBaseURL(server.URL)

	result, err := provider.Send(&Email{
		To:       []string{"dana@example.com"},
		Subject:  "Hello",
		Body:     "plain",
		HTMLBody: "<p>rich</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "msg_1", result.MessageID)
	assert.Equal(t, []string{"dana@example.com"}, got.To)
	assert.Equal(t, "<p>rich</p>", got.HTML)
	assert.Contains(t, got.From, "noreply@designmatch.test")
}

func TestResendProviderSend_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid to address"}`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.ResendAPIKey = "re_test_key"
	provider := NewResendProvider(cfg, nil)
	provider.SetBaseURL(server.URL)

	_, err := provider.Send(&Email{To: []string{"broken"}, Subject: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid to address")
}

func TestResendProviderValidate(t *testing.T) {
	t.Parallel()

	provider := NewResendProvider(DefaultConfig(), nil)
	assert.Error(t, provider.Validate(), "missing API key must fail validation")

	cfg := DefaultConfig()
	cfg.ResendAPIKey = "re_key"
	assert.NoError(t, NewResendProvider(cfg, nil).Validate())
}

func TestResendProviderSendTemplate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got resendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Contains(t, got.HTML, "Dana")
		assert.Contains(t, got.Text, "Dana")
		json.NewEncoder(w).Encode(resendResponse{ID: "msg_2"})
	}))
	defer server.Close()

	tm, err := NewTemplateManager()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.ResendAPIKey = "re_test_key"
	cfg.FromEmail = "noreply@designmatch.test"

	provider := NewResendProvider(cfg, tm)
	provider.SetBaseURL(server.URL)

	result, err := provider.SendTemplate([]string{"dana@example.com"}, "Update", TemplateGeneric,
		TemplateData{"FullName": "Dana", "Message": "Project approved"})
	require.NoError(t, err)
	assert.Equal(t, "msg_2", result.MessageID)
}
