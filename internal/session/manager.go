// Package session manages hyperfocus sessions: named work contexts that can
// be paused and resumed across invocations.
//
// The active session is whichever stored session has status active. At most
// one session is active at any time.
package session

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

// Manager persists sessions through a storage.Store.
type Manager struct {
	store storage.Store
	log   *slog.Logger
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// NewManager returns a Manager backed by store.
func NewManager(store storage.Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{store: store, log: log.With("component", "session"), Now: time.Now}
}

func newID() string {
	return uuid.New().String()[:8]
}

func (m *Manager) load() ([]model.Session, error) {
	return storage.Load[model.Session](m.store, storage.Sessions)
}

func (m *Manager) save(sessions []model.Session) error {
	return storage.Save(m.store, storage.Sessions, sessions)
}

func activeIndex(sessions []model.Session) int {
	for i, s := range sessions {
		if s.Status == model.SessionActive {
			return i
		}
	}
	return -1
}

func indexOf(sessions []model.Session, id string) int {
	for i, s := range sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Start creates a new active session.
func (m *Manager) Start(name, note string) (model.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Session{}, apperr.Validation("session name must not be empty")
	}
	sessions, err := m.load()
	if err != nil {
		return model.Session{}, err
	}
	if i := activeIndex(sessions); i >= 0 {
		return model.Session{}, apperr.Conflict("session %q (%s) is already active; pause it first", sessions[i].Name, sessions[i].ID)
	}

	now := m.Now()
	s := model.Session{
		ID:          newID(),
		Name:        name,
		CreatedAt:   now,
		LastActive:  now,
		Note:        note,
		Status:      model.SessionActive,
		Context:     map[string]string{},
		Breadcrumbs: []model.Breadcrumb{},
	}
	if err := m.save(append(sessions, s)); err != nil {
		return model.Session{}, err
	}
	m.log.Info("session started", "id", s.ID, "name", s.Name)
	return s, nil
}

// Pause pauses the active session.
func (m *Manager) Pause() (model.Session, error) {
	sessions, err := m.load()
	if err != nil {
		return model.Session{}, err
	}
	i := activeIndex(sessions)
	if i < 0 {
		return model.Session{}, apperr.NotFound("no active session")
	}
	sessions[i].Status = model.SessionPaused
	sessions[i].LastActive = m.Now()
	if err := m.save(sessions); err != nil {
		return model.Session{}, err
	}
	m.log.Info("session paused", "id", sessions[i].ID)
	return sessions[i], nil
}

// Resume reactivates the session with the given id, or the most recently
// paused one when id is empty.
func (m *Manager) Resume(id string) (model.Session, error) {
	sessions, err := m.load()
	if err != nil {
		return model.Session{}, err
	}

	target := -1
	if id == "" {
		for i, s := range sessions {
			if s.Status != model.SessionPaused {
				continue
			}
			if target < 0 || s.LastActive.After(sessions[target].LastActive) {
				target = i
			}
		}
		if target < 0 {
			return model.Session{}, apperr.NotFound("no paused session to resume")
		}
	} else if target = indexOf(sessions, id); target < 0 {
		return model.Session{}, apperr.NotFound("session %s", id)
	}

	s := sessions[target]
	switch s.Status {
	case model.SessionActive:
		return s, nil
	case model.SessionCompleted:
		return model.Session{}, apperr.Validation("session %q (%s) is completed", s.Name, s.ID)
	}
	if a := activeIndex(sessions); a >= 0 {
		return model.Session{}, apperr.Conflict("session %q (%s) is already active; pause it first", sessions[a].Name, sessions[a].ID)
	}

	sessions[target].Status = model.SessionActive
	sessions[target].LastActive = m.Now()
	if err := m.save(sessions); err != nil {
		return model.Session{}, err
	}
	m.log.Info("session resumed", "id", s.ID)
	return sessions[target], nil
}

// Complete archives a session. An empty id means the active session.
func (m *Manager) Complete(id string) (model.Session, error) {
	sessions, err := m.load()
	if err != nil {
		return model.Session{}, err
	}
	i := activeIndex(sessions)
	if id != "" {
		i = indexOf(sessions, id)
	}
	if i < 0 {
		if id == "" {
			return model.Session{}, apperr.NotFound("no active session")
		}
		return model.Session{}, apperr.NotFound("session %s", id)
	}
	if sessions[i].Status == model.SessionCompleted {
		return sessions[i], nil
	}
	sessions[i].Status = model.SessionCompleted
	sessions[i].LastActive = m.Now()
	if err := m.save(sessions); err != nil {
		return model.Session{}, err
	}
	m.log.Info("session completed", "id", sessions[i].ID)
	return sessions[i], nil
}

// List returns all sessions, most recently active first.
func (m *Manager) List() ([]model.Session, error) {
	sessions, err := m.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastActive.After(sessions[j].LastActive)
	})
	return sessions, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (model.Session, error) {
	sessions, err := m.load()
	if err != nil {
		return model.Session{}, err
	}
	i := indexOf(sessions, id)
	if i < 0 {
		return model.Session{}, apperr.NotFound("session %s", id)
	}
	return sessions[i], nil
}

// Current returns the active session, or nil when none is active.
func (m *Manager) Current() (*model.Session, error) {
	sessions, err := m.load()
	if err != nil {
		return nil, err
	}
	i := activeIndex(sessions)
	if i < 0 {
		return nil, nil
	}
	return &sessions[i], nil
}

// SetNote replaces the context note of the active session.
func (m *Manager) SetNote(note string) (model.Session, error) {
	return m.updateActive(func(s *model.Session) {
		s.Note = note
	})
}

// SetContext records a key/value pair such as repo or branch on the active session.
func (m *Manager) SetContext(key, value string) (model.Session, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return model.Session{}, apperr.Validation("context key must not be empty")
	}
	return m.updateActive(func(s *model.Session) {
		if s.Context == nil {
			s.Context = map[string]string{}
		}
		s.Context[key] = value
	})
}

// AddBreadcrumb appends a timestamped trace to the active session.
func (m *Manager) AddBreadcrumb(message string) (model.Session, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return model.Session{}, apperr.Validation("breadcrumb message must not be empty")
	}
	now := m.Now()
	return m.updateActive(func(s *model.Session) {
		s.Breadcrumbs = append(s.Breadcrumbs, model.Breadcrumb{At: now, Message: message})
	})
}

func (m *Manager) updateActive(fn func(*model.Session)) (model.Session, error) {
	sessions, err := m.load()
	if err != nil {
		return model.Session{}, err
	}
	i := activeIndex(sessions)
	if i < 0 {
		return model.Session{}, apperr.NotFound("no active session")
	}
	fn(&sessions[i])
	sessions[i].LastActive = m.Now()
	if err := m.save(sessions); err != nil {
		return model.Session{}, err
	}
	m.log.Debug("session updated", "id", sessions[i].ID)
	return sessions[i], nil
}
