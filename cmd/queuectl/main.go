// queuectl is a durable background job queue: jobs are shell commands
// stored in PostgreSQL, workers claim and execute them with retries and
// exponential backoff, and permanently failing jobs land in a dead
// letter queue for manual retry.
//
// Every invocation (submitting, inspecting, running workers) talks to
// the same database, named by DATABASE_URL; the database is the only
// coordination point between processes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/okvee/queuectl/internal/cli"
	"github.com/okvee/queuectl/internal/store"
)

func main() {
	// A .env file is a convenience, not a requirement.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	storeLayer, err := store.NewStore(ctx, databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer storeLayer.Close()

	if err := cli.RootCmd(storeLayer).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
