// Package priority keeps tasks in an Eisenhower matrix.
package priority

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/storage"
)

// SessionLookup resolves the session a new task is linked to.
// *session.Manager satisfies it.
type SessionLookup interface {
	Current() (*model.Session, error)
	Get(id string) (model.Session, error)
}

// NewTask describes a task to add.
type NewTask struct {
	Title           string
	Quadrant        string
	Description     string
	EstimateMinutes int
	// SessionID links the task to a session. Empty links it to the active
	// session, if any; NoSession suppresses the link.
	SessionID string
	NoSession bool
	// Parent marks the task as a step of a broken-down task.
	Parent string
}

// Filter narrows List and Grouped. The zero value selects all open tasks.
type Filter struct {
	Quadrant    model.Quadrant
	SessionID   string
	IncludeDone bool
}

func (f Filter) match(t model.Task) bool {
	if f.Quadrant != "" && t.Quadrant != f.Quadrant {
		return false
	}
	if f.SessionID != "" && (t.SessionID == nil || *t.SessionID != f.SessionID) {
		return false
	}
	if !f.IncludeDone && t.Done() {
		return false
	}
	return true
}

// Matrix persists tasks through a storage.Store.
type Matrix struct {
	store    storage.Store
	sessions SessionLookup
	log      *slog.Logger
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// NewMatrix returns a Matrix backed by store. sessions may be nil, in which
// case tasks are never linked to a session implicitly.
func NewMatrix(store storage.Store, sessions SessionLookup, log *slog.Logger) *Matrix {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Matrix{store: store, sessions: sessions, log: log.With("component", "priority"), Now: time.Now}
}

func (m *Matrix) load() ([]model.Task, error) {
	return storage.Load[model.Task](m.store, storage.Tasks)
}

// Add validates and stores a new open task.
func (m *Matrix) Add(in NewTask) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, apperr.Validation("task title must not be empty")
	}
	q, err := model.ParseQuadrant(in.Quadrant)
	if err != nil {
		return model.Task{}, apperr.Validation("%v", err)
	}
	if in.EstimateMinutes < 0 {
		return model.Task{}, apperr.Validation("estimate must not be negative")
	}

	sessionID, err := m.resolveSession(in)
	if err != nil {
		return model.Task{}, err
	}

	tasks, err := m.load()
	if err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:              uuid.New().String()[:8],
		Title:           title,
		Description:     in.Description,
		Quadrant:        q,
		Status:          model.TaskOpen,
		SessionID:       sessionID,
		EstimateMinutes: in.EstimateMinutes,
		CreatedAt:       m.Now(),
		Parent:          strings.TrimSpace(in.Parent),
	}
	if err := storage.Save(m.store, storage.Tasks, append(tasks, task)); err != nil {
		return model.Task{}, err
	}
	m.log.Info("task added", "id", task.ID, "quadrant", task.Quadrant, "title", task.Title)
	return task, nil
}

func (m *Matrix) resolveSession(in NewTask) (*string, error) {
	if in.NoSession || m.sessions == nil {
		return nil, nil
	}
	if in.SessionID != "" {
		s, err := m.sessions.Get(in.SessionID)
		if err != nil {
			return nil, err
		}
		return &s.ID, nil
	}
	cur, err := m.sessions.Current()
	if err != nil || cur == nil {
		return nil, err
	}
	return &cur.ID, nil
}

// Get returns the task with the given id.
func (m *Matrix) Get(id string) (model.Task, error) {
	tasks, err := m.load()
	if err != nil {
		return model.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, apperr.NotFound("task %s", id)
}

// List returns matching tasks ordered by quadrant priority, then creation time.
func (m *Matrix) List(f Filter) ([]model.Task, error) {
	tasks, err := m.load()
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.match(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Quadrant.Rank(), out[j].Quadrant.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Grouped returns matching tasks keyed by quadrant. Every quadrant has an entry.
func (m *Matrix) Grouped(f Filter) (map[model.Quadrant][]model.Task, error) {
	tasks, err := m.List(f)
	if err != nil {
		return nil, err
	}
	groups := make(map[model.Quadrant][]model.Task, len(model.Quadrants))
	for _, q := range model.Quadrants {
		groups[q] = []model.Task{}
	}
	for _, t := range tasks {
		groups[t.Quadrant] = append(groups[t.Quadrant], t)
	}
	return groups, nil
}

// Complete marks a task done. Completing a done task changes nothing and
// reports changed == false.
func (m *Matrix) Complete(id string) (task model.Task, changed bool, err error) {
	tasks, err := m.load()
	if err != nil {
		return model.Task{}, false, err
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if tasks[i].Done() {
			return tasks[i], false, nil
		}
		now := m.Now()
		tasks[i].Status = model.TaskDone
		tasks[i].CompletedAt = &now
		if err := storage.Save(m.store, storage.Tasks, tasks); err != nil {
			return model.Task{}, false, err
		}
		m.log.Info("task completed", "id", id)
		return tasks[i], true, nil
	}
	return model.Task{}, false, apperr.NotFound("task %s", id)
}
