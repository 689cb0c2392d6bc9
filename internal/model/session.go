package model

import "time"

// SessionStatus is the lifecycle state of a hyperfocus session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
)

// Session is a named, resumable unit of saved work context.
type Session struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	CreatedAt   time.Time         `json:"created_at"`
	LastActive  time.Time         `json:"last_active"`
	Note        string            `json:"note"`
	Status      SessionStatus     `json:"status"`
	Context     map[string]string `json:"context"`
	Breadcrumbs []Breadcrumb      `json:"breadcrumbs"`
}

// Breadcrumb is a timestamped trace left inside a session.
type Breadcrumb struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}
