package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-lessonplan/internal/logger"
)

func TestBuildHandler(t *testing.T) {
	t.Parallel()

	h, err := buildHandler(testConfig(), logger.NewNop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("buildHandler() error: %v", err)
	}

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/api/generate/test", "", http.StatusOK},
		{http.MethodGet, "/generate/test", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/api/generate/lesson-plan", `{}`, http.StatusBadRequest},
		{http.MethodPost, "/generate/pdf", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s %s = %d, want %d: %s", tt.method, tt.path, w.Code, tt.want, w.Body.String())
		}
	}
}

func TestBuildHandler_NoCredentialServesFallback(t *testing.T) {
	t.Parallel()

	h, err := buildHandler(testConfig(), logger.NewNop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("buildHandler() error: %v", err)
	}

	body := `{"schoolName":"S","teacherName":"T","subject":"Mathematics","className":"C",` +
		`"unitTitle":"U","lessonTitle":"L","instructionalObjective":"O"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate/lesson-plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Mathematics") || !strings.Contains(w.Body.String(), `"success":false`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestBuildHandler_BadAssetsDir(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AssetsDir = "/definitely/not/here"
	if _, err := buildHandler(cfg, logger.NewNop(), prometheus.NewRegistry()); err == nil {
		t.Error("expected error for missing assets dir")
	}
}
