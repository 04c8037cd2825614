// Package session holds the client-side login state: who is logged in and with which token.
// The token is mirrored into durable storage so a restarted process can restore the session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/models"
	"github.com/octabyte/quizmaster-client/otel/metrics"
	"github.com/octabyte/quizmaster-client/storage"
	"github.com/octabyte/quizmaster-client/token"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

var ErrTokenExpired = errors.New("token expired")

type Option func(*Store)

// WithClock overrides the time source used for expiry checks and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRejectExpired makes an expired token behave like a malformed one.
func WithRejectExpired(reject bool) Option {
	return func(s *Store) {
		s.rejectExpired = reject
	}
}

// Store is the single writer of the session. Login, Logout and Initialize each run to completion,
// observers included, before the next one starts. Observers must not call Login or Logout.
type Store struct {
	storage       storage.Storage
	now           func() time.Time
	rejectExpired bool

	opMu sync.Mutex

	mu    sync.RWMutex
	state models.Session

	subMu  sync.Mutex
	subs   []subscription
	nextID uint64
}

type subscription struct {
	id uint64
	fn func(Event)
}

func New(s storage.Storage, opts ...Option) *Store {
	store := &Store{
		storage: s,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Initialize adopts the persisted token, if any. A token that fails to decode is cleared from
// storage, and so is a stored document that cannot be read back.
func (s *Store) Initialize(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	raw, ok, err := s.storage.Get(ctx, storage.TokenKey)
	if errors.Is(err, storage.ErrCorrupt) {
		logger.LogWarn("persisted session unreadable, logging out", zap.Error(err))
		return s.logout(ctx)
	}
	if err != nil {
		return fmt.Errorf("read persisted token: %w", err)
	}
	if !ok || raw == "" {
		logger.LogDebug("no persisted token, starting logged out")
		return nil
	}
	return s.login(ctx, raw)
}

// Login adopts raw as the current credential. A token that cannot be decoded is not an error for
// the caller: it is logged and the store logs out, which Snapshot then reflects. The returned
// error only reports durable storage failures.
func (s *Store) Login(ctx context.Context, raw string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return s.login(ctx, raw)
}

// Logout clears the session and the persisted token. Memory is cleared even when storage fails.
func (s *Store) Logout(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return s.logout(ctx)
}

func (s *Store) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := models.Session{Token: s.state.Token}
	if s.state.User != nil {
		user := *s.state.User
		snapshot.User = &user
	}
	return snapshot
}

// Subscribe registers fn for every state transition and returns a function that removes it.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) login(ctx context.Context, raw string) error {
	claims, err := token.Decode(raw)
	if err == nil && s.rejectExpired && claims.Expired(s.now()) {
		err = ErrTokenExpired
	}
	if err != nil {
		logger.LogWarn("invalid token, logging out", zap.Error(err))
		return s.logout(ctx)
	}

	if err := s.storage.Set(ctx, storage.TokenKey, raw); err != nil {
		logger.LogError("persist token failed, logging out", zap.Error(err))
		return errors.Join(fmt.Errorf("persist token: %w", err), s.logout(ctx))
	}

	user := &models.User{ID: claims.Subject, Role: claims.Role}
	s.set(models.Session{User: user, Token: raw})
	logger.LogInfo("logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	s.notify(ctx, EventLogin)
	return nil
}

func (s *Store) logout(ctx context.Context) error {
	s.set(models.Session{})

	var result error
	if err := s.storage.Remove(ctx, storage.TokenKey); err != nil {
		logger.LogError("remove persisted token failed", zap.Error(err))
		result = fmt.Errorf("remove persisted token: %w", err)
	}

	s.notify(ctx, EventLogout)
	return result
}

func (s *Store) set(state models.Session) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Store) notify(ctx context.Context, kind EventType) {
	event := Event{Type: kind, Session: s.Snapshot(), At: s.now()}
	metrics.RecordSessionTransition(ctx, string(kind))

	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(event)
	}
}
