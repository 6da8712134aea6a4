package main

import (
	"io"
	"os"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-lessonplan/internal/config"
	"github.com/alnah/go-lessonplan/internal/fileutil"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// LoadConfig reads settings; tests swap it to avoid the process environment.
	LoadConfig func(config.LoadOptions) (*config.Config, error)

	// Browser probing used by doctor.
	LookPath       func() (string, bool)
	FileExists     func(string) bool
	BrowserVersion func(path string) (string, error)
	TempWritable   func() bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:            time.Now,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		LoadConfig:     config.Load,
		LookPath:       launcher.LookPath,
		FileExists:     fileutil.FileExists,
		BrowserVersion: browserVersion,
		TempWritable:   fileutil.TempDirWritable,
	}
}
