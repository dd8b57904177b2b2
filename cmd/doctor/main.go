package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/doctor/internal/config"
	"github.com/spf13/afero"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		newLogger(cfg.LogFormat, os.Stderr, cfg.Level()).Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if err := a.execute(ctx, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
