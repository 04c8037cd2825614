// Package cli implements quizctl: a command-line client that keeps its login session in durable
// storage between invocations.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/apiclient"
	"github.com/octabyte/quizmaster-client/config"
	dbredis "github.com/octabyte/quizmaster-client/db/redis"
	"github.com/octabyte/quizmaster-client/enums"
	"github.com/octabyte/quizmaster-client/queue"
	"github.com/octabyte/quizmaster-client/quizapi"
	"github.com/octabyte/quizmaster-client/router"
	"github.com/octabyte/quizmaster-client/session"
	"github.com/octabyte/quizmaster-client/storage"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

const ServiceName = "quizctl"

// App holds everything a command needs. It is built once per process.
type App struct {
	cfg     config.Config
	out     io.Writer
	storage storage.Storage
	session *session.Store
	api     *quizapi.Service
	router  *router.Router
	nav     *router.History
	events  *queue.SessionEventPublisher
	closers []func() error
}

type Option func(*App)

func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// WithStorage replaces the backend selected by configuration.
func WithStorage(s storage.Storage) Option {
	return func(a *App) {
		a.storage = s
	}
}

// NewApp opens storage, restores the persisted session and connects the optional event
// publisher.
func NewApp(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg, out: os.Stdout, router: router.Default()}
	for _, opt := range opts {
		opt(a)
	}

	if a.storage == nil {
		s, closer, err := openStorage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.storage = s
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}

	a.session = session.New(a.storage, session.WithRejectExpired(cfg.RejectExpired))
	a.nav = router.NewHistory("/")
	a.session.Subscribe(router.RedirectOnLogout(a.nav, cfg.LoginPath))

	if cfg.EventsEnabled() {
		if err := a.connectEvents(); err != nil {
			logger.LogWarn("session events disabled", zap.Error(err))
		}
	}

	if err := a.session.Initialize(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	client := apiclient.New(apiclient.Config{
		RootURL:     cfg.APIRoot,
		ServiceName: ServiceName,
		Timeout:     cfg.APITimeout,
	})
	a.api = quizapi.New(client, storage.TokenFromStorage(a.storage))

	return a, nil
}

func (a *App) Session() *session.Store {
	return a.session
}

func (a *App) Router() *router.Router {
	return a.router
}

// Location is where the logout redirect last sent the client.
func (a *App) Location() string {
	return a.nav.Location()
}

func (a *App) Close() error {
	var errs []error
	if a.events != nil {
		errs = append(errs, a.events.Close())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

func (a *App) connectEvents() error {
	conn, err := queue.NewConnection(a.cfg.EventsConnection())
	if err != nil {
		return err
	}
	a.closers = append(a.closers, conn.Close)
	a.events = queue.NewSessionEventPublisher(queue.NewPublisher(conn.Ch, a.cfg.EventsPublish()), 0, 0)
	a.session.Subscribe(a.events.Observe)
	return nil
}

func openStorage(ctx context.Context, cfg config.Config) (storage.Storage, func() error, error) {
	switch cfg.Storage {
	case enums.StorageMemory:
		return storage.NewMemory(), nil, nil
	case enums.StorageRedis:
		client, err := dbredis.NewRedisClient(ctx, dbredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedis(client, cfg.Redis.Prefix), client.Close, nil
	default:
		path := cfg.StoragePath
		if path == "" {
			var err error
			if path, err = storage.DefaultFilePath(); err != nil {
				return nil, nil, fmt.Errorf("locate storage file: %w", err)
			}
		}
		return storage.NewFile(path), nil, nil
	}
}
