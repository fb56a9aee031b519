package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// setupSignalContext returns a context cancelled on SIGINT or SIGTERM.
// A scan in progress stops dispatching files and exits with an interrupt error.
func setupSignalContext(parent context.Context, errOut io.Writer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			fmt.Fprintf(errOut, "\nReceived signal: %v\n", sig)
			fmt.Fprintf(errOut, "Initiating graceful shutdown...\n")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
