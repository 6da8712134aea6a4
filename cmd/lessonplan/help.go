package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessonplan <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Start the HTTP service (default)")
	fmt.Fprintln(w, "  doctor     Check browser, credential and system readiness")
	fmt.Fprintln(w, "  config     Print the effective configuration (secrets masked)")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show this message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>       YAML config file")
	fmt.Fprintln(w, "      --env-file <path>     dotenv file (default .env)")
	fmt.Fprintln(w, "  -p, --port <n>            Listen port (serve)")
	fmt.Fprintln(w, "      --env <mode>          development or production (serve)")
	fmt.Fprintln(w, "      --page-format <s>     Default PDF format: Letter, Legal, Tabloid, Ledger, A3, A4, A5 (serve)")
	fmt.Fprintln(w, "      --json                JSON output (doctor)")
	fmt.Fprintln(w, "  -v, --verbose             Log GOMAXPROCS adjustments")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  OPENAI_API_KEY            Provider credential (sk-or- keys use OpenRouter)")
	fmt.Fprintln(w, "  LLM_PROVIDER              auto, openai, openrouter, ollama")
	fmt.Fprintln(w, "  LLM_MODEL, LLM_BASE_URL   Provider overrides")
	fmt.Fprintln(w, "  PORT, APP_ENV             Listen port and mode")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome executable for PDF rendering")
	fmt.Fprintln(w, "  BROWSER_CANDIDATES        Comma-separated fallback browser paths")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX            Disable the Chrome sandbox (containers)")
}
