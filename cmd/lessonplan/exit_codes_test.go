package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	lessonplan "github.com/alnah/go-lessonplan"
	"github.com/alnah/go-lessonplan/internal/assets"
	"github.com/alnah/go-lessonplan/internal/config"
	"github.com/alnah/go-lessonplan/internal/llm"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"wrapped config parse", fmt.Errorf("load: %w", config.ErrConfigParse), ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"unknown provider", llm.ErrUnknownProvider, ExitUsage},
		{"bad endpoint", llm.ErrInvalidEndpoint, ExitUsage},
		{"bad page format", lessonplan.ErrInvalidPageFormat, ExitUsage},
		{"bad assets dir", assets.ErrInvalidBasePath, ExitUsage},
		{"flag error", fmt.Errorf("%w: bad", ErrUsage), ExitUsage},
		{"listen", fmt.Errorf("%w on :80: denied", ErrListen), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"asset read", assets.ErrAssetRead, ExitIO},
		{"other", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
