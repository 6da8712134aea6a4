package main

import (
	"context"
	"fmt"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-lessonplan/internal/yamlutil"
)

// run dispatches a command and returns the process exit code.
func run(args []string, env *Environment) int {
	cmd := "serve"
	if len(args) > 0 {
		switch a := args[0]; {
		case a == "-h" || a == "--help":
			cmd = "help"
		case a != "" && a[0] != '-':
			cmd, args = a, args[1:]
		}
	}

	switch cmd {
	case "serve":
		return runServeCmd(args, env)
	case "doctor":
		return runDoctorCmd(args, env)
	case "config":
		return runConfigCmd(args, env)
	case "version":
		fmt.Fprintf(env.Stdout, "lessonplan %s\n", Version)
		return ExitSuccess
	case "help":
		printUsage(env.Stdout)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

func runServeCmd(args []string, env *Environment) int {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	setMaxProcs(flags.verbose, env)

	cfg, err := env.LoadConfig(flags.loadOptions())
	if err == nil {
		err = flags.apply(cfg)
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := serve(ctx, cfg, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func runConfigCmd(args []string, env *Environment) int {
	var flags commonFlags
	fs := newFlagSet("config", env.Stderr)
	addCommonFlags(fs, &flags)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	cfg, err := env.LoadConfig(flags.loadOptions())
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	out, err := yamlutil.Marshal(cfg.Redacted())
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}
	_, _ = env.Stdout.Write(out)
	return ExitSuccess
}

// setMaxProcs aligns GOMAXPROCS with the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setMaxProcs(verbose bool, env *Environment) {
	logf := func(string, ...interface{}) {}
	if verbose {
		logf = func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}
