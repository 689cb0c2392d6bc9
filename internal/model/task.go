package model

import (
	"fmt"
	"strings"
	"time"
)

// Quadrant is a cell of the Eisenhower matrix.
type Quadrant string

const (
	UrgentImportant       Quadrant = "urgent-important"
	NotUrgentImportant    Quadrant = "not-urgent-important"
	UrgentNotImportant    Quadrant = "urgent-not-important"
	NotUrgentNotImportant Quadrant = "not-urgent-not-important"
)

// Quadrants lists the matrix cells in priority order.
var Quadrants = []Quadrant{UrgentImportant, NotUrgentImportant, UrgentNotImportant, NotUrgentNotImportant}

var quadrantAliases = map[string]Quadrant{
	"q1": UrgentImportant,
	"q2": NotUrgentImportant,
	"q3": UrgentNotImportant,
	"q4": NotUrgentNotImportant,
}

// ParseQuadrant accepts the four quadrant names and the q1..q4 shorthands.
func ParseQuadrant(s string) (Quadrant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if q, ok := quadrantAliases[s]; ok {
		return q, nil
	}
	q := Quadrant(s)
	if q.Valid() {
		return q, nil
	}
	return "", fmt.Errorf("unknown quadrant %q (want one of %s)", s, strings.Join(quadrantNames(), ", "))
}

func quadrantNames() []string {
	names := make([]string, len(Quadrants))
	for i, q := range Quadrants {
		names[i] = string(q)
	}
	return names
}

// Valid reports whether q is one of the four matrix cells.
func (q Quadrant) Valid() bool {
	return q.Rank() >= 0
}

// Rank is the position of q in priority order, or -1 for an unknown quadrant.
func (q Quadrant) Rank() int {
	for i, c := range Quadrants {
		if c == q {
			return i
		}
	}
	return -1
}

// Priority is the priority level implied by the quadrant.
func (q Quadrant) Priority() string {
	switch q {
	case UrgentImportant:
		return "critical"
	case NotUrgentImportant:
		return "high"
	case UrgentNotImportant:
		return "normal"
	default:
		return "low"
	}
}

// Action is the Eisenhower instruction for the quadrant.
func (q Quadrant) Action() string {
	switch q {
	case UrgentImportant:
		return "DO FIRST"
	case NotUrgentImportant:
		return "SCHEDULE"
	case UrgentNotImportant:
		return "DELEGATE"
	default:
		return "ELIMINATE"
	}
}

// TaskStatus is open until the task is done. Done is terminal.
type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)

// Task is an entry of the priority matrix.
type Task struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Quadrant        Quadrant   `json:"quadrant"`
	Status          TaskStatus `json:"status"`
	SessionID       *string    `json:"session_id"`
	EstimateMinutes int        `json:"estimate_minutes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	// Parent names the larger task this one is a step of.
	Parent string `json:"parent,omitempty"`
}

// Done reports whether the task reached its terminal state.
func (t Task) Done() bool {
	return t.Status == TaskDone
}
