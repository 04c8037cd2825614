package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/session"
	"github.com/octabyte/quizmaster-client/utils"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

const (
	defaultEventBuffer  = 64
	defaultEventTimeout = 5 * time.Second
)

// SessionEvent is the wire form of a login or logout. Logout events carry the user that was
// logged in before, when known.
type SessionEvent struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	UserID string    `json:"user_id,omitempty"`
	Role   string    `json:"role,omitempty"`
	At     time.Time `json:"at"`
}

// SessionEventPublisher forwards session transitions to a broker from a background worker.
// Observe never blocks the session store; events that do not fit the buffer are dropped.
type SessionEventPublisher struct {
	publisher Publisher
	timeout   time.Duration
	events    chan SessionEvent
	done      chan struct{}

	mu       sync.Mutex
	closed   bool
	lastUser SessionEvent
}

func NewSessionEventPublisher(p Publisher, buffer int, timeout time.Duration) *SessionEventPublisher {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	if timeout <= 0 {
		timeout = defaultEventTimeout
	}
	s := &SessionEventPublisher{
		publisher: p,
		timeout:   timeout,
		events:    make(chan SessionEvent, buffer),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

// Observe is a session.Store subscriber.
func (s *SessionEventPublisher) Observe(event session.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	out := SessionEvent{ID: uuid.NewString(), Type: string(event.Type), At: event.At.UTC()}
	if user := event.Session.User; user != nil {
		out.UserID = user.ID
		out.Role = string(user.Role)
	}
	switch event.Type {
	case session.EventLogin:
		s.lastUser = out
	case session.EventLogout:
		out.UserID, out.Role = s.lastUser.UserID, s.lastUser.Role
		s.lastUser = SessionEvent{}
	}

	select {
	case s.events <- out:
	default:
		logger.LogWarn("session event dropped, buffer full", zap.String("type", out.Type))
	}
}

// Close stops accepting events, publishes what is buffered and closes the publisher.
func (s *SessionEventPublisher) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.events)
	s.mu.Unlock()

	<-s.done
	return s.publisher.Close()
}

func (s *SessionEventPublisher) run() {
	defer close(s.done)
	for event := range s.events {
		s.publish(event)
	}
}

func (s *SessionEventPublisher) publish(event SessionEvent) {
	body, err := utils.ToJSON(event)
	if err != nil {
		logger.LogError("encode session event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, body); err != nil {
		logger.LogWarn("publish session event failed",
			zap.String("id", event.ID),
			zap.String("type", event.Type),
			zap.Error(err),
		)
		return
	}
	logger.LogDebug("session event published", zap.String("id", event.ID), zap.String("type", event.Type))
}
