package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-lessonplan/internal/config"
)

// ErrUsage wraps flag parsing failures.
var ErrUsage = errors.New("usage error")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	verbose bool
}

// serveFlags holds overrides applied on top of the loaded config.
type serveFlags struct {
	commonFlags
	port       int
	env        string
	pageFormat string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file (overrides LESSONPLAN_CONFIG)")
	fs.StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log GOMAXPROCS adjustments")
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseServeFlags parses serve arguments. Zero values mean "not set".
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", stderr)
	addCommonFlags(fs, &f.commonFlags)
	fs.IntVarP(&f.port, "port", "p", 0, "listen port (overrides PORT)")
	fs.StringVar(&f.env, "env", "", "development or production (overrides APP_ENV)")
	fs.StringVar(&f.pageFormat, "page-format", "", "default PDF page format (overrides RENDER_PAGE_FORMAT)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return f, nil
}

// apply copies explicitly set flags onto cfg and revalidates it.
func (f *serveFlags) apply(cfg *config.Config) error {
	if f.port != 0 {
		cfg.Port = f.port
	}
	if f.env != "" {
		cfg.Env = f.env
	}
	if f.pageFormat != "" {
		cfg.PageFormat = f.pageFormat
	}
	return cfg.Validate()
}

func (f *commonFlags) loadOptions() config.LoadOptions {
	return config.LoadOptions{EnvFile: f.envFile, ConfigPath: f.config}
}
