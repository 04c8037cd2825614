package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/octabyte/quizmaster-client/enums"
	"github.com/octabyte/quizmaster-client/models"
	"github.com/octabyte/quizmaster-client/storage"
)

func signToken(sub, role string, exp time.Time) string {
	claims := jwt.MapClaims{"sub": sub, "role": role}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		panic(err)
	}
	return raw
}

type StoreTestSuite struct {
	suite.Suite
	ctx            context.Context
	storage        *storage.Memory
	store          *Store
	events         []Event
	originalLogger *zap.Logger
	logs           *observer.ObservedLogs
}

func (s *StoreTestSuite) SetupSuite() {
	s.originalLogger = zap.L()
}

func (s *StoreTestSuite) TearDownSuite() {
	zap.ReplaceGlobals(s.originalLogger)
}

func (s *StoreTestSuite) SetupTest() {
	core, logs := observer.New(zap.DebugLevel)
	zap.ReplaceGlobals(zap.New(core))
	s.logs = logs

	s.ctx = context.Background()
	s.storage = storage.NewMemory()
	s.store = New(s.storage)
	s.events = nil
	s.store.Subscribe(func(e Event) { s.events = append(s.events, e) })
}

func (s *StoreTestSuite) persisted() (string, bool) {
	value, ok, err := s.storage.Get(s.ctx, storage.TokenKey)
	s.Require().NoError(err)
	return value, ok
}

func (s *StoreTestSuite) assertLoggedOut() {
	snapshot := s.store.Snapshot()
	s.Nil(snapshot.User)
	s.Empty(snapshot.Token)
	s.False(snapshot.Authenticated())
	_, ok := s.persisted()
	s.False(ok, "storage must not keep a token")
}

func (s *StoreTestSuite) TestLoginValidToken() {
	raw := signToken("42", "admin", time.Time{})

	s.Require().NoError(s.store.Login(s.ctx, raw))

	snapshot := s.store.Snapshot()
	s.Require().NotNil(snapshot.User)
	s.Equal(models.User{ID: "42", Role: enums.RoleAdmin}, *snapshot.User)
	s.Equal(raw, snapshot.Token)
	s.True(snapshot.IsAdmin())

	stored, ok := s.persisted()
	s.True(ok)
	s.Equal(raw, stored)

	s.Require().Len(s.events, 1)
	s.Equal(EventLogin, s.events[0].Type)
	s.Equal("42", s.events[0].Session.User.ID)
}

func (s *StoreTestSuite) TestLoginIsIdempotent() {
	raw := signToken("7", "member", time.Time{})

	s.Require().NoError(s.store.Login(s.ctx, raw))
	first := s.store.Snapshot()
	s.Require().NoError(s.store.Login(s.ctx, raw))

	s.Equal(first, s.store.Snapshot())
	stored, _ := s.persisted()
	s.Equal(raw, stored)
}

func (s *StoreTestSuite) TestLoginMalformedTokenForcesLogout() {
	s.Require().NoError(s.store.Login(s.ctx, signToken("7", "member", time.Time{})))
	s.logs.TakeAll()

	for _, raw := range []string{"", "garbage", "a.b.c", signToken("", "member", time.Time{})} {
		s.NoError(s.store.Login(s.ctx, raw), "decode failures are recovered locally")
		s.assertLoggedOut()
	}

	warnings := s.logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage("invalid token, logging out").All()
	s.Len(warnings, 4)
	s.Equal(EventLogout, s.events[len(s.events)-1].Type)
}

func (s *StoreTestSuite) TestLogoutClearsEverything() {
	s.Require().NoError(s.store.Login(s.ctx, signToken("42", "admin", time.Time{})))

	s.Require().NoError(s.store.Logout(s.ctx))
	s.assertLoggedOut()
}

func (s *StoreTestSuite) TestLogoutFromEmptyState() {
	s.Require().NoError(s.store.Logout(s.ctx))
	s.assertLoggedOut()
}

func (s *StoreTestSuite) TestLogoutTwiceMatchesOnce() {
	s.Require().NoError(s.store.Login(s.ctx, signToken("42", "admin", time.Time{})))

	s.Require().NoError(s.store.Logout(s.ctx))
	once := s.store.Snapshot()
	s.Require().NoError(s.store.Logout(s.ctx))

	s.Equal(once, s.store.Snapshot())
	s.assertLoggedOut()
}

func (s *StoreTestSuite) TestInitializeRestoresPersistedToken() {
	raw := signToken("9", "member", time.Time{})
	s.Require().NoError(s.storage.Set(s.ctx, storage.TokenKey, raw))

	restarted := New(s.storage)
	s.Require().NoError(restarted.Initialize(s.ctx))

	snapshot := restarted.Snapshot()
	s.Require().NotNil(snapshot.User)
	s.Equal(models.User{ID: "9", Role: enums.RoleMember}, *snapshot.User)
	s.Equal(raw, snapshot.Token)
}

func (s *StoreTestSuite) TestInitializeWithoutToken() {
	s.Require().NoError(s.store.Initialize(s.ctx))
	s.assertLoggedOut()
	s.Empty(s.events, "an empty start is not a transition")
}

func (s *StoreTestSuite) TestInitializeClearsMalformedToken() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.TokenKey, "not-a-token"))

	s.Require().NoError(s.store.Initialize(s.ctx))
	s.assertLoggedOut()
}

func (s *StoreTestSuite) TestExpiredTokenAcceptedByDefault() {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := New(s.storage, WithClock(func() time.Time { return now }))

	s.Require().NoError(store.Login(s.ctx, signToken("1", "member", now.Add(-time.Hour))))
	s.True(store.Snapshot().Authenticated())
}

func (s *StoreTestSuite) TestRejectExpired() {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := New(s.storage, WithClock(func() time.Time { return now }), WithRejectExpired(true))

	s.Require().NoError(s.storage.Set(s.ctx, storage.TokenKey, signToken("1", "member", now.Add(-time.Hour))))
	s.Require().NoError(store.Initialize(s.ctx))
	s.False(store.Snapshot().Authenticated())
	_, ok := s.persisted()
	s.False(ok)

	s.Require().NoError(store.Login(s.ctx, signToken("1", "member", now.Add(time.Hour))))
	s.True(store.Snapshot().Authenticated())
}

func (s *StoreTestSuite) TestSnapshotIsACopy() {
	s.Require().NoError(s.store.Login(s.ctx, signToken("42", "member", time.Time{})))

	snapshot := s.store.Snapshot()
	snapshot.User.Role = enums.RoleAdmin

	s.Equal(enums.RoleMember, s.store.Snapshot().User.Role)
}

func (s *StoreTestSuite) TestUnsubscribe() {
	var calls int
	unsubscribe := s.store.Subscribe(func(Event) { calls++ })

	s.Require().NoError(s.store.Logout(s.ctx))
	unsubscribe()
	s.Require().NoError(s.store.Logout(s.ctx))

	s.Equal(1, calls)
	s.Len(s.events, 2, "other subscribers stay registered")
}

func (s *StoreTestSuite) TestObserverSeesPostTransitionState() {
	var seen []bool
	s.store.Subscribe(func(Event) { seen = append(seen, s.store.Snapshot().Authenticated()) })

	s.Require().NoError(s.store.Login(s.ctx, signToken("1", "member", time.Time{})))
	s.Require().NoError(s.store.Logout(s.ctx))

	s.Equal([]bool{true, false}, seen)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

type flakyStorage struct {
	*storage.Memory
	failSet    bool
	failRemove bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyStorage) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errDiskFull
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyStorage) Remove(ctx context.Context, key string) error {
	if f.failRemove {
		return errDiskFull
	}
	return f.Memory.Remove(ctx, key)
}

func TestLoginPersistFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	backend := &flakyStorage{Memory: storage.NewMemory()}
	store := New(backend)

	if err := store.Login(ctx, signToken("1", "member", time.Time{})); err != nil {
		t.Fatalf("first login: %v", err)
	}

	backend.failSet = true
	err := store.Login(ctx, signToken("2", "admin", time.Time{}))
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected disk full error, got %v", err)
	}
	if store.Snapshot().Authenticated() {
		t.Fatal("session must be cleared when the token cannot be persisted")
	}
	if _, ok, _ := backend.Get(ctx, storage.TokenKey); ok {
		t.Fatal("previous token must not outlive the rollback")
	}
}

func TestLogoutRemoveFailureStillClearsMemory(t *testing.T) {
	ctx := context.Background()
	backend := &flakyStorage{Memory: storage.NewMemory()}
	store := New(backend)

	if err := store.Login(ctx, signToken("1", "member", time.Time{})); err != nil {
		t.Fatalf("login: %v", err)
	}

	backend.failRemove = true
	if err := store.Logout(ctx); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected disk full error, got %v", err)
	}
	if store.Snapshot().Authenticated() {
		t.Fatal("memory must be cleared regardless of storage")
	}
}

func TestInitializeReadFailure(t *testing.T) {
	store := New(&failingGetStorage{})
	if err := store.Initialize(context.Background()); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected read error, got %v", err)
	}
}

type failingGetStorage struct{ storage.Memory }

type corruptStorage struct {
	*storage.Memory
	removed bool
}

func (c *corruptStorage) Get(context.Context, string) (string, bool, error) {
	if c.removed {
		return "", false, nil
	}
	return "", false, fmt.Errorf("%w: %w", storage.ErrStorage, storage.ErrCorrupt)
}

func (c *corruptStorage) Remove(ctx context.Context, key string) error {
	c.removed = true
	return c.Memory.Remove(ctx, key)
}

func TestInitializeCorruptStorageLogsOut(t *testing.T) {
	backend := &corruptStorage{Memory: storage.NewMemory()}
	store := New(backend)

	var events []Event
	store.Subscribe(func(e Event) { events = append(events, e) })

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !backend.removed {
		t.Fatal("corrupt document must be reset")
	}
	if store.Snapshot().Authenticated() {
		t.Fatal("session must start logged out")
	}
	if len(events) != 1 || events[0].Type != EventLogout {
		t.Fatalf("expected one logout event, got %v", events)
	}
}

func (*failingGetStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errDiskFull
}

func TestConcurrentLoginLogoutStaysConsistent(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	store := New(backend)
	tokens := []string{
		signToken("1", "member", time.Time{}),
		signToken("2", "admin", time.Time{}),
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Login(ctx, tokens[i%2])
		}(i)
		go func() {
			defer wg.Done()
			_ = store.Logout(ctx)
		}()
	}
	wg.Wait()

	snapshot := store.Snapshot()
	stored, ok, _ := backend.Get(ctx, storage.TokenKey)
	if snapshot.Authenticated() != ok {
		t.Fatalf("memory authenticated=%v but storage present=%v", snapshot.Authenticated(), ok)
	}
	if ok && stored != snapshot.Token {
		t.Fatal("memory token and stored token diverged")
	}
	if (snapshot.User == nil) != (snapshot.Token == "") {
		t.Fatal("user and token must be set together")
	}
}
