package types

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort      = "3000"
	DefaultModel     = "gpt-4.1-mini"
	DefaultBaseURL   = "https://api.openai.com/v1"
	DefaultPublicDir = "public"
)

var DefaultTools = []string{"web_search_preview", "image_generation"}

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is required")

// LoadConfig reads the process configuration from the environment.
// Call it after godotenv has populated the environment from .env.
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) (*Config, error) {
	apiKey := strings.TrimSpace(getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &Config{
		Port:      orDefault(getenv("PORT"), DefaultPort),
		PublicDir: orDefault(getenv("PUBLIC_DIR"), DefaultPublicDir),
		LLM: LLMConfig{
			APIKey:  apiKey,
			BaseURL: orDefault(getenv("OPENAI_BASE_URL"), DefaultBaseURL),
			Model:   orDefault(getenv("OPENAI_MODEL"), DefaultModel),
			Tools:   parseTools(getenv("OPENAI_TOOLS")),
		},
	}

	if v := strings.TrimSpace(getenv("LLM_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT %q", v)
		}
		cfg.LLM.Timeout = d
	}

	if v := strings.TrimSpace(getenv("MAX_PROMPT_TOKENS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid MAX_PROMPT_TOKENS %q", v)
		}
		cfg.MaxPromptTokens = n
	}

	if host := strings.TrimSpace(getenv("PG_HOST")); host != "" {
		port, err := strconv.Atoi(orDefault(getenv("PG_PORT"), "5432"))
		if err != nil {
			return nil, fmt.Errorf("invalid PG_PORT %q", getenv("PG_PORT"))
		}
		cfg.Postgres = &PostgresConfig{
			Host:     host,
			Port:     port,
			User:     getenv("PG_USER"),
			Password: getenv("PG_PASS"),
			DBName:   getenv("PG_DB_NAME"),
		}
	}

	return cfg, nil
}

func (c *PostgresConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", c.Host, c.Port, c.User, c.Password, c.DBName)
}

// parseTools accepts a comma separated list; "none" declares no tools.
func parseTools(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return append([]string(nil), DefaultTools...)
	}
	if strings.EqualFold(v, "none") {
		return nil
	}
	var tools []string
	for _, t := range strings.Split(v, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tools = append(tools, t)
		}
	}
	return tools
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
