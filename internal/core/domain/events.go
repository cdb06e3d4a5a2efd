package domain

import "time"

// AccountRegisteredEvent represents the payload for account.registered messages.
type AccountRegisteredEvent struct {
	EventID      string
	Username     string
	Email        string
	Phone        string
	Status       string
	RegisteredAt time.Time
	Metadata     map[string]any
}

// SessionOpenedEvent is emitted when a logged-out account receives a new session token.
type SessionOpenedEvent struct {
	EventID  string
	Username string
	OpenedAt time.Time
	Metadata map[string]any
}

// SessionClosedEvent is emitted when a session token is cleared by logout.
type SessionClosedEvent struct {
	EventID  string
	Username string
	ClosedAt time.Time
	Metadata map[string]any
}
