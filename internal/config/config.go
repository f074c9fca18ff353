package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultModel         = "gpt-3.5-turbo-0125"
	DefaultMaxToolRounds = 15
)

// Config holds the settings of a chat session, read from the environment
type Config struct {
	OpenAIBaseURL string     // Optional provider endpoint override
	Model         string     // Chat model id
	SystemPrompt  string     // Optional system prompt sent before the transcript
	MaxToolRounds int        // Upper bound on model round trips per reply
	LogLevel      slog.Level // Minimum level written to stderr
	MetricsAddr   string     // Listen address for /metrics, empty disables it
}

// Load reads an optional .env file and builds a validated Config from the
// environment. OPENAI_API_KEY is left to the OpenAI client.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:         os.Getenv("OPENAI_MODEL"),
		SystemPrompt:  os.Getenv("ASSISTANT_SYSTEM_PROMPT"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
	}

	if v := os.Getenv("ASSISTANT_MAX_TOOL_ROUNDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ASSISTANT_MAX_TOOL_ROUNDS %q: %w", v, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("invalid ASSISTANT_MAX_TOOL_ROUNDS %q: must be positive", v)
		}
		cfg.MaxToolRounds = n
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and sets defaults. A zero MaxToolRounds
// means unset and takes the default.
func (c *Config) Validate() error {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxToolRounds == 0 {
		c.MaxToolRounds = DefaultMaxToolRounds
	}
	if c.MaxToolRounds < 0 {
		return fmt.Errorf("max tool rounds must not be negative, got %d", c.MaxToolRounds)
	}
	return nil
}
