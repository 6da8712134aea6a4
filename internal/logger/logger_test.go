package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"development", "production", "prod", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) error = %v", mode, err)
		}
		if l.SugaredLogger == nil {
			t.Fatalf("New(%q) returned nil sugared logger", mode)
		}
	}
}

func TestLogger_RedactsSensitiveKeys(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("configured", "api_key", "sk-123", "provider", "openai", "Authorization", "Bearer x")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["api_key"] != Redacted {
		t.Errorf("api_key = %v, want %q", fields["api_key"], Redacted)
	}
	if fields["Authorization"] != Redacted {
		t.Errorf("Authorization = %v, want %q", fields["Authorization"], Redacted)
	}
	if fields["provider"] != "openai" {
		t.Errorf("provider = %v, want openai", fields["provider"])
	}
}

func TestLogger_WithCarriesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core)).With("component", "renderer", "secret", "x")

	l.Warn("browser fallback")

	fields := logs.All()[0].ContextMap()
	if fields["component"] != "renderer" {
		t.Errorf("component = %v, want renderer", fields["component"])
	}
	if fields["secret"] != Redacted {
		t.Errorf("secret = %v, want %q", fields["secret"], Redacted)
	}
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	t.Parallel()

	got := sanitizeKVs([]any{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Errorf("sanitizeKVs() = %v, want trailing key kept", got)
	}
}
