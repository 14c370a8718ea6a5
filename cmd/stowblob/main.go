// File: cmd/stowblob/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	// Explicitly import provider implementations to ensure their init() functions run and they register themselves
	_ "stowblob/pkg/storage/aws"
	_ "stowblob/pkg/storage/azure"
	_ "stowblob/pkg/storage/gcp"
	_ "stowblob/pkg/storage/gocloud"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Executes one command line and returns the process exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(stdin, stdout, stderr)
	rootCmd := newRootCmd(app)
	rootCmd.SetArgs(normalizeLegacyFlags(args))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		app.Logger.Error("Command failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
