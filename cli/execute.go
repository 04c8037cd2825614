package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/config"
	"github.com/octabyte/quizmaster-client/otel"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

// Version is set at build time with -ldflags "-X github.com/octabyte/quizmaster-client/cli.Version=...".
var Version = "dev"

const telemetryFlushTimeout = 5 * time.Second

// Setup loads configuration from the environment and args, then initializes logging and
// telemetry. The returned cleanup flushes both. Remaining positional arguments are returned.
func Setup(ctx context.Context, name string, args []string, out io.Writer, extra func(*flag.FlagSet, *config.Config)) (config.Config, []string, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	cfg.RegisterFlags(fs)
	if extra != nil {
		extra(fs, &cfg)
	}
	if err := fs.Parse(args); err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, nil, err
	}

	if err := logger.Init(cfg.Logger(name)); err != nil {
		return config.Config{}, nil, nil, err
	}

	shutdown, err := otel.InitOpenTelemetry(ctx, cfg.Telemetry(name, Version))
	if err != nil {
		logger.LogWarn("telemetry disabled", zap.Error(err))
		shutdown = func(context.Context) error { return nil }
	}

	cleanup := func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.LogWarn("flush telemetry", zap.Error(err))
		}
		logger.Sync()
	}
	return cfg, fs.Args(), cleanup, nil
}

// Execute runs quizctl with the process arguments (without the program name).
func Execute(ctx context.Context, args []string, out io.Writer) error {
	cfg, rest, cleanup, err := Setup(ctx, ServiceName, args, out, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	app, err := NewApp(ctx, cfg, WithOutput(out))
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.LogWarn("close", zap.Error(err))
		}
	}()

	return app.Run(ctx, rest)
}
