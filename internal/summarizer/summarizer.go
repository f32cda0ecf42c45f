package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"notesai/config"
	"notesai/pkg/logger"
)

const (
	MinContentLength = 50

	SystemPrompt = "You are a professional summarization assistant. Provide a concise, 1-3 sentence summary of the following text."
	Temperature  = 0.1
	MaxTokens    = 150

	OfflineMessage  = "AI Service is offline (Configuration Error)."
	TooShortMessage = "Content too short to summarize (min 50 characters)."
	failurePrefix   = "AI summarization failed due to API error: "
)

// Provider is a hosted completion backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, text string) (string, error)
}

// Client is the fail-soft front of a Provider. A Client built by Offline
// answers every request with OfflineMessage and never reaches the network.
type Client struct {
	provider Provider
	reason   string
}

func New(p Provider) *Client {
	return &Client{provider: p}
}

func Offline(reason string) *Client {
	return &Client{reason: reason}
}

func (c *Client) Configured() bool {
	return c.provider != nil
}

// Summarize never returns an error; failures are reported in the text.
func (c *Client) Summarize(ctx context.Context, text string) string {
	if !c.Configured() {
		return OfflineMessage
	}
	if utf8.RuneCountInString(text) < MinContentLength {
		return TooShortMessage
	}

	start := time.Now()
	out, err := c.provider.Complete(ctx, SystemPrompt, text)
	if err != nil {
		logger.Sugar.Errorw("Summarization failed", "provider", c.provider.Name(), "error", err)
		return failurePrefix + truncate(err.Error(), maxErrorDetail)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return failurePrefix + "empty completion"
	}
	logger.Sugar.Infow("Summarization completed", "provider", c.provider.Name(), "duration", time.Since(start))
	return out
}

// FromConfig builds the client once at startup. Any missing setting yields the
// offline variant instead of an error so the API keeps serving notes.
func FromConfig(ctx context.Context, cfg config.AIConfig) *Client {
	p, err := newProvider(ctx, cfg)
	if err != nil {
		logger.Sugar.Warnf("AI summarization disabled: %v", err)
		return Offline(err.Error())
	}
	logger.Sugar.Infow("AI summarization enabled", "provider", p.Name())
	return New(p)
}

var errNotConfigured = errors.New("credentials not fully configured")

func newProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderAzure, "":
		if cfg.AzureAPIKey == "" || cfg.AzureEndpoint == "" || cfg.AzureDeployment == "" || cfg.AzureAPIVersion == "" {
			return nil, fmt.Errorf("azure openai: %w", errNotConfigured)
		}
		return NewAzure(AzureConfig{
			APIKey:     cfg.AzureAPIKey,
			Endpoint:   cfg.AzureEndpoint,
			APIVersion: cfg.AzureAPIVersion,
			Deployment: cfg.AzureDeployment,
			Timeout:    cfg.Timeout,
		}), nil
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" || cfg.GeminiModel == "" {
			return nil, fmt.Errorf("gemini: %w", errNotConfigured)
		}
		return NewGemini(ctx, GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
