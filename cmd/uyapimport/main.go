package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"davazen/internal/client/cli"
	"davazen/internal/client/config"
	"davazen/pkg/logger"
)

const (
	ErrInitLogger = "failed to initialize logger"
	ErrLoadConfig = "failed to load configuration"
	ErrImport     = "import failed"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap, err := logger.NewLogger(logger.Development, "warn")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", ErrInitLogger, err)
		return 1
	}
	ctx = logger.NewContext(ctx, bootstrap)

	cfg, err := config.Load(ctx)
	if err != nil {
		bootstrap.Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		bootstrap.Error(ctx, ErrInitLogger, zap.Error(err))
		return 1
	}
	defer func() { _ = log.Sync() }()
	logger.SetGlobalLogger(log)
	ctx = logger.NewRequestIDContext(logger.NewContext(ctx, log), "")

	opts, err := cli.ParseFlags(os.Args[1:], cfg, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := cli.Run(ctx, cfg, opts, os.Stdin, os.Stdout); err != nil {
		log.Error(ctx, ErrImport, zap.Error(err))
		return 1
	}
	return 0
}
