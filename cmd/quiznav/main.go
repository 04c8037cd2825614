// Command quiznav serves front-end navigation over HTTP, resolving locations for the session
// carried by each request or, failing that, the locally stored one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/cli"
	"github.com/octabyte/quizmaster-client/config"
	navecho "github.com/octabyte/quizmaster-client/interfaces/http/echo"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, _, cleanup, err := cli.Setup(ctx, navecho.DefaultServiceName, os.Args[1:], os.Stderr, func(fs *flag.FlagSet, cfg *config.Config) {
		fs.StringVar(&cfg.NavAddr, "addr", cfg.NavAddr, "listen address (default: QUIZ_NAV_ADDR)")
	})
	if err != nil {
		return err
	}
	defer cleanup()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	server := navecho.NewServer(navecho.Config{
		Addr:        cfg.NavAddr,
		ServiceName: navecho.DefaultServiceName,
	}, app.Router(), app.Session().Snapshot)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.LogInfo("shutting down navigation server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), navecho.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError("shutdown", zap.Error(err))
		return err
	}
	return <-errCh
}
