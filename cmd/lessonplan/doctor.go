package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	lessonplan "github.com/alnah/go-lessonplan"
	"github.com/alnah/go-lessonplan/internal/config"
	"github.com/alnah/go-lessonplan/internal/hints"
	"github.com/alnah/go-lessonplan/internal/llm"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// browserVersionTimeout bounds `chrome --version`.
const browserVersionTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Browser  browserInfo `json:"browser"`
	LLM      llmInfo     `json:"llm"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// browserInfo holds Chrome/Chromium detection results.
type browserInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Source  string `json:"source,omitempty"` // "ROD_BROWSER_BIN", "PATH" or "candidate"
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// llmInfo describes the resolved completion route.
type llmInfo struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	BaseURL    string `json:"base_url,omitempty"`
	Credential bool   `json:"credential"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
	Mode      string `json:"mode"`
	Port      int    `json:"port"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad config.
func runDoctorCmd(args []string, env *Environment) int {
	var flags commonFlags
	var jsonOutput bool
	fs := newFlagSet("doctor", env.Stderr)
	addCommonFlags(fs, &flags)
	fs.BoolVar(&jsonOutput, "json", false, "JSON output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	cfg, err := env.LoadConfig(flags.loadOptions())
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	result := runDoctor(cfg, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
			Mode: cfg.Env,
			Port: cfg.Port,
		},
	}

	checkBrowser(result, cfg, env)
	checkLLM(result, cfg)
	checkEnvironment(result, cfg)
	checkSystem(result, env)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkBrowser finds the browser the renderer would use, in the same order.
func checkBrowser(result *doctorResult, cfg *config.Config, env *Environment) {
	path, source := cfg.BrowserBin, "ROD_BROWSER_BIN"
	if path == "" {
		if p, ok := env.LookPath(); ok {
			path, source = p, "PATH"
		}
	}
	if path == "" || !env.FileExists(path) {
		path, source = "", ""
		candidates := cfg.BrowserCandidates
		if len(candidates) == 0 {
			candidates = lessonplan.DefaultBrowserCandidates()
		}
		for _, c := range candidates {
			if env.FileExists(c) {
				path, source = c, "candidate"
				break
			}
		}
	}

	result.Browser.Sandbox = !cfg.NoSandbox
	if path == "" {
		result.Errors = append(result.Errors,
			"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN / BROWSER_CANDIDATES")
		return
	}

	result.Browser.Found = true
	result.Browser.Path = path
	result.Browser.Source = source

	version, err := env.BrowserVersion(path)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get browser version: %v", err))
		return
	}
	result.Browser.Version = version
}

// checkLLM reports the completion route and whether a credential is present.
func checkLLM(result *doctorResult, cfg *config.Config) {
	route, err := llm.Resolve(cfg.LLMProvider(), cfg.APIKey, cfg.Model, cfg.BaseURL)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.LLM = llmInfo{
		Provider:   string(route.Provider),
		Model:      route.Model,
		BaseURL:    route.BaseURL,
		Credential: cfg.APIKey != "" || !route.Provider.NeedsAPIKey(),
	}
	if !result.LLM.Credential {
		result.Warnings = append(result.Warnings,
			"OPENAI_API_KEY not set. Lesson plans will use the fallback template")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, cfg *config.Config) {
	result.Env.Container = hints.IsInContainer()
	result.Env.CI = hints.InCI()

	if (result.Env.Container || result.Env.CI) && !cfg.NoSandbox {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=true")
	}
}

// checkSystem verifies the temp directory used for print documents.
func checkSystem(result *doctorResult, env *Environment) {
	if env.TempWritable() {
		result.System.TempWritable = true
		return
	}
	result.Errors = append(result.Errors,
		fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
}

// browserVersion runs `<path> --version`.
func browserVersion(path string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), browserVersionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- path comes from local config or PATH lookup
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "lessonplan doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s (%s)\n", r.Browser.Path, r.Browser.Source)
		if r.Browser.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Browser.Version)
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	if r.Browser.Sandbox {
		fmt.Fprintln(w, "  [OK] Sandbox: enabled")
	} else {
		fmt.Fprintln(w, "  [OK] Sandbox: disabled")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Language model")
	if r.LLM.Provider != "" {
		fmt.Fprintf(w, "  [OK] Provider: %s, model %s\n", r.LLM.Provider, r.LLM.Model)
	}
	if r.LLM.Credential {
		fmt.Fprintln(w, "  [OK] Credential: configured")
	} else {
		fmt.Fprintln(w, "  [WARN] Credential: missing (fallback only)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] Mode: %s, port %d\n", r.Env.Mode, r.Env.Port)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to serve")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
