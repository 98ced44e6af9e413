package main

import (
	"io"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Lookuper envconfig.Lookuper // BLOGKIT_* lookups
	Environ  func() []string    // for unknown variable warnings
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Lookuper: envconfig.OsLookuper(),
		Environ:  os.Environ,
	}
}
