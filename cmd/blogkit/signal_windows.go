//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// shutdownContext derives the context every command runs under. Ctrl+C
// cancels it; Windows has no SIGTERM to listen for.
func shutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
