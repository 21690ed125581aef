package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"avenstudio/internal/app"
	"avenstudio/internal/cli"
	"avenstudio/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := cli.NewApp(cfg, app.NewLogger(cfg))
	return cli.NewRootCmd(a).ExecuteContext(ctx)
}
