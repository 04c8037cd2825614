package session

import (
	"time"

	"github.com/octabyte/quizmaster-client/models"
)

type EventType string

const (
	EventLogin  EventType = "login"
	EventLogout EventType = "logout"
)

// Event describes a completed transition. Session is the state after the transition.
type Event struct {
	Type    EventType
	Session models.Session
	At      time.Time
}
