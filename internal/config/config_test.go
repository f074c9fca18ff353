package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var envKeys = []string{
	"OPENAI_BASE_URL",
	"OPENAI_MODEL",
	"ASSISTANT_SYSTEM_PROMPT",
	"ASSISTANT_MAX_TOOL_ROUNDS",
	"LOG_LEVEL",
	"METRICS_ADDR",
}

// clearEnv unsets every variable Load reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load(missingFile(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := &Config{Model: DefaultModel, MaxToolRounds: DefaultMaxToolRounds, LogLevel: slog.LevelInfo}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("Load() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_BASE_URL", "http://localhost:1234/v1")
		t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
		t.Setenv("ASSISTANT_SYSTEM_PROMPT", "You control the lights.")
		t.Setenv("ASSISTANT_MAX_TOOL_ROUNDS", "3")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("METRICS_ADDR", ":9090")

		cfg, err := Load(missingFile(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := &Config{
			OpenAIBaseURL: "http://localhost:1234/v1",
			Model:         "gpt-4o-mini",
			SystemPrompt:  "You control the lights.",
			MaxToolRounds: 3,
			LogLevel:      slog.LevelDebug,
			MetricsAddr:   ":9090",
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("Load() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("reads env file", func(t *testing.T) {
		clearEnv(t)

		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("OPENAI_MODEL=gpt-4o\nMETRICS_ADDR=:2112\n"), 0o600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Cleanup(func() {
			os.Unsetenv("OPENAI_MODEL")
			os.Unsetenv("METRICS_ADDR")
		})

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Model != "gpt-4o" {
			t.Errorf("expected model from env file, got %q", cfg.Model)
		}
		if cfg.MetricsAddr != ":2112" {
			t.Errorf("expected metrics addr from env file, got %q", cfg.MetricsAddr)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, tc := range []struct{ key, value string }{
			{"ASSISTANT_MAX_TOOL_ROUNDS", "many"},
			{"ASSISTANT_MAX_TOOL_ROUNDS", "0"},
			{"ASSISTANT_MAX_TOOL_ROUNDS", "-2"},
			{"LOG_LEVEL", "loud"},
		} {
			key, value := tc.key, tc.value
			t.Run(key+"="+value, func(t *testing.T) {
				clearEnv(t)
				t.Setenv(key, value)

				if _, err := Load(missingFile(t)); err == nil {
					t.Errorf("expected error for %s=%s", key, value)
				}
			})
		}
	})
}

func TestValidate(t *testing.T) {
	if err := (&Config{MaxToolRounds: -1}).Validate(); err == nil {
		t.Error("expected error for negative max tool rounds")
	}

	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxToolRounds != DefaultMaxToolRounds {
		t.Errorf("expected unset max tool rounds to default to %d, got %d", DefaultMaxToolRounds, cfg.MaxToolRounds)
	}
}
