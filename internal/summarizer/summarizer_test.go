package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"notesai/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longText = strings.Repeat("Meeting notes about the quarterly roadmap. ", 3)

type countingProvider struct {
	calls atomic.Int32
	out   string
	err   error
}

func (p *countingProvider) Name() string { return "fake" }

func (p *countingProvider) Complete(_ context.Context, _, _ string) (string, error) {
	p.calls.Add(1)
	return p.out, p.err
}

func TestSummarize_TooShortSkipsProvider(t *testing.T) {
	p := &countingProvider{out: "unused"}
	c := New(p)

	got := c.Summarize(context.Background(), strings.Repeat("x", MinContentLength-1))

	assert.Equal(t, TooShortMessage, got)
	assert.Zero(t, p.calls.Load())
}

func TestSummarize_ThresholdCountsRunes(t *testing.T) {
	p := &countingProvider{out: "ok"}
	c := New(p)

	// 49 multi-byte runes is still too short even though it is >50 bytes.
	assert.Equal(t, TooShortMessage, c.Summarize(context.Background(), strings.Repeat("é", 49)))
	assert.Equal(t, "ok", c.Summarize(context.Background(), strings.Repeat("é", 50)))
}

func TestSummarize_Offline(t *testing.T) {
	c := Offline("missing key")

	assert.False(t, c.Configured())
	assert.Equal(t, OfflineMessage, c.Summarize(context.Background(), longText))
	assert.Equal(t, OfflineMessage, c.Summarize(context.Background(), "short"))
}

func TestSummarize_ProviderErrorIsSoft(t *testing.T) {
	c := New(&countingProvider{err: errors.New("status 500: boom")})

	got := c.Summarize(context.Background(), longText)

	assert.Equal(t, "AI summarization failed due to API error: status 500: boom", got)
}

func TestSummarize_TrimsOutput(t *testing.T) {
	c := New(&countingProvider{out: "  A concise summary.\n"})
	assert.Equal(t, "A concise summary.", c.Summarize(context.Background(), longText))
}

func TestFromConfig_MissingCredentialsIsOffline(t *testing.T) {
	cases := map[string]config.AIConfig{
		"azure without key":   {Provider: config.ProviderAzure, AzureEndpoint: "https://x", AzureDeployment: "d", AzureAPIVersion: "v"},
		"azure without depl":  {Provider: config.ProviderAzure, AzureAPIKey: "k", AzureEndpoint: "https://x", AzureAPIVersion: "v"},
		"gemini without key":  {Provider: config.ProviderGemini, GeminiModel: "m"},
		"unknown provider":    {Provider: "bard"},
		"azure empty default": {},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			c := FromConfig(context.Background(), cfg)
			assert.False(t, c.Configured())
			assert.Equal(t, OfflineMessage, c.Summarize(context.Background(), longText))
		})
	}
}

func TestAzure_Complete(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Roadmap was discussed.  "}}]}`))
	}))
	defer srv.Close()

	c := FromConfig(context.Background(), config.AIConfig{
		Provider:        config.ProviderAzure,
		AzureAPIKey:     "secret",
		AzureEndpoint:   srv.URL + "/",
		AzureAPIVersion: "2024-06-01",
		AzureDeployment: "gpt-4o",
		Timeout:         time.Second,
	})
	require.True(t, c.Configured())

	got := c.Summarize(context.Background(), longText)

	assert.Equal(t, "Roadmap was discussed.", got)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, SystemPrompt, gotReq.Messages[0].Content)
	assert.Equal(t, longText, gotReq.Messages[1].Content)
	assert.InDelta(t, 0.1, gotReq.Temperature, 1e-9)
	assert.Equal(t, 150, gotReq.MaxTokens)
}

func TestAzure_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"401","message":"Access denied due to invalid subscription key."}}`))
	}))
	defer srv.Close()

	a := NewAzure(AzureConfig{APIKey: "bad", Endpoint: srv.URL, APIVersion: "v", Deployment: "d", Timeout: time.Second})
	_, err := a.Complete(context.Background(), SystemPrompt, longText)

	require.Error(t, err)
	assert.Equal(t, "status 401: Access denied due to invalid subscription key.", err.Error())
}

func TestAzure_LargeErrorPageIsTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>" + strings.Repeat("x", 200_000) + "</html>"))
	}))
	defer srv.Close()

	c := New(NewAzure(AzureConfig{APIKey: "k", Endpoint: srv.URL, APIVersion: "v", Deployment: "d", Timeout: time.Second}))
	got := c.Summarize(context.Background(), longText)

	assert.True(t, strings.HasPrefix(got, "AI summarization failed due to API error: status 502: <html>"), got)
	assert.LessOrEqual(t, len(got), 300)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ééé...", truncate("éééé", 3))
}

func TestAzure_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(NewAzure(AzureConfig{APIKey: "k", Endpoint: url, APIVersion: "v", Deployment: "d", Timeout: time.Second}))
	got := c.Summarize(context.Background(), longText)

	assert.True(t, strings.HasPrefix(got, "AI summarization failed due to API error: "), got)
}

func TestGemini_Complete(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":" Gemini summary. "}]}}]}`))
	}))
	defer srv.Close()

	c := FromConfig(context.Background(), config.AIConfig{
		Provider:      config.ProviderGemini,
		GeminiAPIKey:  "k",
		GeminiModel:   "gemini-2.0-flash",
		GeminiBaseURL: srv.URL,
		Timeout:       time.Second,
	})
	require.True(t, c.Configured())

	assert.Equal(t, "Gemini summary.", c.Summarize(context.Background(), longText))
	assert.Contains(t, path, "gemini-2.0-flash:generateContent")
}
