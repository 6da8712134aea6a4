package main

import (
	"bytes"
	"errors"
	"time"

	"github.com/alnah/go-lessonplan/internal/config"
)

// testConfig returns a valid config without touching the process environment.
func testConfig() *config.Config {
	return &config.Config{
		Provider:      "auto",
		Port:          3000,
		Env:           config.EnvDevelopment,
		RenderTimeout: 30 * time.Second,
		PageFormat:    "A4",
	}
}

// testEnv returns an Environment with buffered output and a browser at /opt/chrome.
func testEnv(cfg *config.Config) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
		LoadConfig: func(config.LoadOptions) (*config.Config, error) {
			if cfg == nil {
				return nil, errors.New("no config")
			}
			c := *cfg
			return &c, nil
		},
		LookPath:       func() (string, bool) { return "/opt/chrome", true },
		FileExists:     func(p string) bool { return p == "/opt/chrome" },
		BrowserVersion: func(string) (string, error) { return "Chromium 126.0.0.0", nil },
		TempWritable:   func() bool { return true },
	}
	return env, &stdout, &stderr
}
