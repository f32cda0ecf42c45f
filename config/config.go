package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderAzure  = "azure"
	ProviderGemini = "gemini"
)

type Config struct {
	HTTPAddr       string
	LogLevel       string
	JWTSecret      string
	AccessTokenTTL time.Duration
	APIURL         string
	DB             DBConfig
	AI             AIConfig
}

type DBConfig struct {
	URL      string
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

// AIConfig carries the summarization provider settings. Missing values are not
// an error here: the summarizer falls back to its offline variant.
type AIConfig struct {
	Provider        string
	AzureAPIKey     string
	AzureEndpoint   string
	AzureAPIVersion string
	AzureDeployment string
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	Timeout         time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:       env("HTTP_ADDR", ":8000"),
		LogLevel:       env("LOG_LEVEL", "info"),
		JWTSecret:      env("JWT_SECRET", ""),
		AccessTokenTTL: time.Duration(envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		APIURL:         env("NOTES_API_URL", "http://127.0.0.1:8000"),
		DB: DBConfig{
			URL:      env("DATABASE_URL", ""),
			User:     env("DB_USER", "postgres"),
			Password: env("DB_PASSWORD", ""),
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "notesai"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		AI: AIConfig{
			Provider:        strings.ToLower(env("AI_PROVIDER", ProviderAzure)),
			AzureAPIKey:     env("AZURE_OPENAI_API_KEY", ""),
			AzureEndpoint:   env("AZURE_OPENAI_ENDPOINT", ""),
			AzureAPIVersion: env("AZURE_OPENAI_API_VERSION", ""),
			AzureDeployment: env("AZURE_OPENAI_DEPLOYMENT_NAME", ""),
			GeminiAPIKey:    env("GEMINI_API_KEY", ""),
			GeminiModel:     env("GEMINI_MODEL", "gemini-2.0-flash"),
			GeminiBaseURL:   env("GEMINI_BASE_URL", ""),
			Timeout:         envDuration("AI_TIMEOUT", 30*time.Second),
		},
	}
}

// Validate checks the settings the API server cannot run without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a lib/pq URL built from parts.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(env(key, ""))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(env(key, ""))
	if err != nil {
		return def
	}
	return v
}
