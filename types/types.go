package types

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedDocument is a validated model reply persisted under the public root.
type GeneratedDocument struct {
	Filename  string // root-relative, e.g. generated/page-1700000000000-1a2b3c4d5e6f.html
	HTML      string
	CreatedAt time.Time
}

// Generation is a journal entry describing one successful create request.
type Generation struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	SourcePage string    `json:"source_page"`
	Prompt     string    `json:"prompt"`
	Title      string    `json:"title,omitempty"`
	Size       int       `json:"size"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Tools   []string
	Timeout time.Duration // 0 waits for the remote call indefinitely
}

type Config struct {
	Port            string
	PublicDir       string
	MaxPromptTokens int
	LLM             LLMConfig
	Postgres        *PostgresConfig // nil keeps the journal in memory
}
