package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joeycumines/one-shot-calc/internal/command"
	"github.com/joeycumines/one-shot-calc/internal/config"
)

// version is set with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		cfg = config.NewConfig()
	}
	configPath, _ := config.GetConfigPath()

	registry := command.NewRegistry()
	command.RegisterAll(registry, cfg, configPath, version)

	return registry.Run(ctx, "tui", os.Args[1:], command.IO{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	})
}
