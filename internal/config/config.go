// Package config loads service settings from the environment, an optional
// .env file and an optional YAML overlay.
//
// Precedence, lowest first: built-in defaults, environment (including .env),
// YAML file, command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	lessonplan "github.com/alnah/go-lessonplan"
	"github.com/alnah/go-lessonplan/internal/fileutil"
	"github.com/alnah/go-lessonplan/internal/hints"
	"github.com/alnah/go-lessonplan/internal/llm"
	"github.com/alnah/go-lessonplan/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Environment modes.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultEnvFile is loaded when present; it never overrides real variables.
const DefaultEnvFile = ".env"

// Config holds every runtime setting. It is built once at startup.
type Config struct {
	APIKey     string        `envconfig:"OPENAI_API_KEY" yaml:"-"`
	Provider   string        `envconfig:"LLM_PROVIDER" default:"auto" yaml:"provider"`
	Model      string        `envconfig:"LLM_MODEL" yaml:"model,omitempty"`
	BaseURL    string        `envconfig:"LLM_BASE_URL" yaml:"baseURL,omitempty"`
	LLMTimeout time.Duration `envconfig:"LLM_TIMEOUT" yaml:"llmTimeout"`

	Port        int      `envconfig:"PORT" default:"3000" yaml:"port"`
	Env         string   `envconfig:"APP_ENV" default:"development" yaml:"env"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" yaml:"corsOrigins,omitempty"`

	RenderTimeout     time.Duration `envconfig:"RENDER_TIMEOUT" default:"30s" yaml:"renderTimeout"`
	PageFormat        string        `envconfig:"RENDER_PAGE_FORMAT" default:"A4" yaml:"pageFormat"`
	BrowserBin        string        `envconfig:"ROD_BROWSER_BIN" yaml:"browserBin,omitempty"`
	BrowserCandidates []string      `envconfig:"BROWSER_CANDIDATES" yaml:"browserCandidates,omitempty"`
	NoSandbox         bool          `envconfig:"ROD_NO_SANDBOX" yaml:"noSandbox"`

	AssetsDir  string `envconfig:"ASSETS_DIR" yaml:"assetsDir,omitempty"`
	ConfigFile string `envconfig:"LESSONPLAN_CONFIG" yaml:"-"`
}

// fileConfig is the YAML overlay. Absent sections and fields keep the
// environment value. The API key is deliberately not accepted here.
type fileConfig struct {
	LLM *struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		BaseURL  string `yaml:"baseURL"`
		Timeout  string `yaml:"timeout"`
	} `yaml:"llm"`
	Server *struct {
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`
	Render *struct {
		Timeout           string   `yaml:"timeout"`
		PageFormat        string   `yaml:"pageFormat"`
		BrowserBin        string   `yaml:"browserBin"`
		BrowserCandidates []string `yaml:"browserCandidates"`
		NoSandbox         *bool    `yaml:"noSandbox"`
	} `yaml:"render"`
	AssetsDir string `yaml:"assetsDir"`
}

// LoadOptions selects the optional inputs of Load.
type LoadOptions struct {
	EnvFile    string // DefaultEnvFile when empty
	ConfigPath string // overrides LESSONPLAN_CONFIG
}

// Load reads .env, the environment and the YAML overlay, then validates.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	path := opts.ConfigPath
	if path == "" {
		path = cfg.ConfigFile
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
	}

	cfg.BrowserCandidates = cleanList(cfg.BrowserCandidates)
	cfg.CORSOrigins = cleanList(cfg.CORSOrigins)

	// Containers and CI rarely allow Chrome's sandbox.
	if os.Getenv("CI") == "true" || cfg.BrowserBin != "" {
		cfg.NoSandbox = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyFile(path string) error {
	if !fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s%s", ErrConfigNotFound, path, hints.ForConfigNotFound(path))
	}

	var fc fileConfig
	if err := yamlutil.ReadFileStrict(path, &fc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if l := fc.LLM; l != nil {
		setString(&c.Provider, l.Provider)
		setString(&c.Model, l.Model)
		setString(&c.BaseURL, l.BaseURL)
		if err := setDuration(&c.LLMTimeout, "llm.timeout", l.Timeout); err != nil {
			return err
		}
	}
	if s := fc.Server; s != nil {
		if s.Port != 0 {
			c.Port = s.Port
		}
		setString(&c.Env, s.Env)
		if len(s.CORSOrigins) > 0 {
			c.CORSOrigins = s.CORSOrigins
		}
	}
	if r := fc.Render; r != nil {
		if err := setDuration(&c.RenderTimeout, "render.timeout", r.Timeout); err != nil {
			return err
		}
		setString(&c.PageFormat, r.PageFormat)
		setString(&c.BrowserBin, r.BrowserBin)
		if len(r.BrowserCandidates) > 0 {
			c.BrowserCandidates = r.BrowserCandidates
		}
		if r.NoSandbox != nil {
			c.NoSandbox = *r.NoSandbox
		}
	}
	setString(&c.AssetsDir, fc.AssetsDir)
	return nil
}

// cleanList trims entries and drops empty ones.
func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, field, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParse, field, err)
	}
	*dst = d
	return nil
}

// Validate checks every field that can be wrong independently of the others.
func (c *Config) Validate() error {
	var errs []error

	if _, err := llm.ParseProvider(c.Provider); err != nil {
		errs = append(errs, err)
	}
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("env must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if !lessonplan.IsValidPageFormat(c.PageFormat) {
		errs = append(errs, fmt.Errorf("%w: %q", lessonplan.ErrInvalidPageFormat, c.PageFormat))
	}
	if c.LLMTimeout < 0 {
		errs = append(errs, fmt.Errorf("llm timeout cannot be negative: %s", c.LLMTimeout))
	}
	if c.RenderTimeout <= 0 {
		errs = append(errs, fmt.Errorf("render timeout must be positive: %s", c.RenderTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// IsProduction reports whether error details should be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LLMProvider returns the parsed provider. Call after Validate.
func (c *Config) LLMProvider() llm.Provider {
	p, _ := llm.ParseProvider(c.Provider)
	return p
}

// Redacted returns a copy safe to print: the API key is masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.APIKey != "" {
		out.APIKey = maskKey(out.APIKey)
	}
	return out
}

func maskKey(k string) string {
	const keep = 6
	if len(k) <= keep {
		return strings.Repeat("*", len(k))
	}
	return k[:keep] + strings.Repeat("*", 8)
}
