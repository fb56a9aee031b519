package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	ctx, cancel := setupSignalContext(context.Background(), os.Stderr)
	defer cancel()

	if err := fang.Execute(ctx, NewRootCmd()); err != nil {
		cancel()
		os.Exit(1)
	}
}
