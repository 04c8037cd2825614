package router

import (
	"sync"

	"github.com/octabyte/quizmaster-client/session"
	"github.com/octabyte/quizmaster-client/utils/logger"
	"go.uber.org/zap"
)

// Navigator is the current location of a client and the means to change it.
type Navigator interface {
	Location() string
	Navigate(path string)
}

// History is an in-memory Navigator that remembers every visited location.
type History struct {
	mu      sync.Mutex
	entries []string
}

func NewHistory(start string) *History {
	if start == "" {
		start = "/"
	}
	return &History{entries: []string{start}}
}

func (h *History) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, path)
}

// Back drops the current location. It reports false when there is nowhere to go back to.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) < 2 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// RedirectOnLogout returns a session observer that sends nav to loginPath whenever the session
// is logged out, unless nav is already there.
func RedirectOnLogout(nav Navigator, loginPath string) func(session.Event) {
	return func(event session.Event) {
		if event.Type != session.EventLogout {
			return
		}
		if normalize(nav.Location()) == normalize(loginPath) {
			return
		}
		logger.LogDebug("session ended, redirecting", zap.String("from", nav.Location()), zap.String("to", loginPath))
		nav.Navigate(loginPath)
	}
}
