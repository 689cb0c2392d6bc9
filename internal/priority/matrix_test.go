package priority_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
	"github.com/Tiliavir/gh-wizard/internal/model"
	"github.com/Tiliavir/gh-wizard/internal/priority"
	"github.com/Tiliavir/gh-wizard/internal/session"
	"github.com/Tiliavir/gh-wizard/internal/storage"
)

func setup(t *testing.T) (*priority.Matrix, *session.Manager) {
	t.Helper()
	store := storage.NewJSONStore(t.TempDir())
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	sessions := session.NewManager(store, nil)
	sessions.Now = clock
	m := priority.NewMatrix(store, sessions, nil)
	m.Now = clock
	return m, sessions
}

func TestAddThenList(t *testing.T) {
	m, _ := setup(t)

	added, err := m.Add(priority.NewTask{Title: "Fix bug", Quadrant: "urgent-important"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	tasks, err := m.List(priority.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("List = %d tasks, want 1", len(tasks))
	}
	got := tasks[0]
	if got.ID != added.ID || got.Title != "Fix bug" || got.Quadrant != model.UrgentImportant || got.Status != model.TaskOpen {
		t.Errorf("List[0] = %+v", got)
	}
	if got.SessionID != nil {
		t.Errorf("SessionID = %v, want nil without an active session", *got.SessionID)
	}
}

func TestAddValidation(t *testing.T) {
	m, _ := setup(t)

	tests := []struct {
		name string
		in   priority.NewTask
	}{
		{"unknown quadrant", priority.NewTask{Title: "x", Quadrant: "someday"}},
		{"empty quadrant", priority.NewTask{Title: "x"}},
		{"empty title", priority.NewTask{Title: "  ", Quadrant: "q1"}},
		{"negative estimate", priority.NewTask{Title: "x", Quadrant: "q1", EstimateMinutes: -5}},
	}
	for _, tt := range tests {
		if _, err := m.Add(tt.in); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("%s: err = %v, want validation", tt.name, err)
		}
	}
	tasks, _ := m.List(priority.Filter{IncludeDone: true})
	if len(tasks) != 0 {
		t.Errorf("rejected tasks must not be stored, got %d", len(tasks))
	}
}

func TestAddLinksSession(t *testing.T) {
	m, sessions := setup(t)

	s, err := sessions.Start("feature work", "")
	if err != nil {
		t.Fatal(err)
	}
	linked, err := m.Add(priority.NewTask{Title: "write tests", Quadrant: "q2"})
	if err != nil {
		t.Fatal(err)
	}
	if linked.SessionID == nil || *linked.SessionID != s.ID {
		t.Errorf("SessionID = %v, want %s", linked.SessionID, s.ID)
	}

	unlinked, err := m.Add(priority.NewTask{Title: "inbox zero", Quadrant: "q4", NoSession: true})
	if err != nil {
		t.Fatal(err)
	}
	if unlinked.SessionID != nil {
		t.Errorf("NoSession task linked to %s", *unlinked.SessionID)
	}

	if _, err := m.Add(priority.NewTask{Title: "x", Quadrant: "q1", SessionID: "missing"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown session: err = %v, want not found", err)
	}

	bySession, err := m.List(priority.Filter{SessionID: s.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(bySession) != 1 || bySession[0].ID != linked.ID {
		t.Errorf("session filter = %+v", bySession)
	}
}

func TestListOrderAndGrouping(t *testing.T) {
	m, _ := setup(t)

	for _, in := range []priority.NewTask{
		{Title: "someday", Quadrant: "not-urgent-not-important"},
		{Title: "call back", Quadrant: "urgent-not-important"},
		{Title: "outage", Quadrant: "urgent-important"},
		{Title: "roadmap", Quadrant: "not-urgent-important"},
		{Title: "hotfix", Quadrant: "q1"},
	} {
		if _, err := m.Add(in); err != nil {
			t.Fatalf("Add %q: %v", in.Title, err)
		}
	}

	tasks, err := m.List(priority.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	want := []string{"outage", "hotfix", "roadmap", "call back", "someday"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("titles = %v, want %v", titles, want)
			break
		}
	}

	groups, err := m.Grouped(priority.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 4 {
		t.Errorf("Grouped has %d quadrants, want 4", len(groups))
	}
	if len(groups[model.UrgentImportant]) != 2 || len(groups[model.NotUrgentNotImportant]) != 1 {
		t.Errorf("unexpected grouping %+v", groups)
	}

	only, err := m.List(priority.Filter{Quadrant: model.UrgentNotImportant})
	if err != nil {
		t.Fatal(err)
	}
	if len(only) != 1 || only[0].Title != "call back" {
		t.Errorf("quadrant filter = %+v", only)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	m, _ := setup(t)
	task, _ := m.Add(priority.NewTask{Title: "Fix bug", Quadrant: "q1"})

	done, changed, err := m.Complete(task.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !changed || done.Status != model.TaskDone || done.CompletedAt == nil {
		t.Errorf("first Complete = %+v changed=%v", done, changed)
	}
	firstAt := *done.CompletedAt

	again, changed, err := m.Complete(task.ID)
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if changed {
		t.Error("second Complete reported a change")
	}
	if !again.CompletedAt.Equal(firstAt) {
		t.Errorf("CompletedAt moved from %v to %v", firstAt, *again.CompletedAt)
	}

	if _, _, err := m.Complete("unknown"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Complete unknown: err = %v, want not found", err)
	}

	open, _ := m.List(priority.Filter{})
	if len(open) != 0 {
		t.Errorf("done task listed without IncludeDone: %+v", open)
	}
	all, _ := m.List(priority.Filter{IncludeDone: true})
	if len(all) != 1 {
		t.Errorf("IncludeDone list = %d, want 1", len(all))
	}
}

func TestGet(t *testing.T) {
	m, _ := setup(t)
	task, _ := m.Add(priority.NewTask{Title: "Review PR", Quadrant: "q3", Description: "#42", EstimateMinutes: 15})
	got, err := m.Get(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != "#42" || got.EstimateMinutes != 15 {
		t.Errorf("Get = %+v", got)
	}
	if _, err := m.Get("nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get unknown: err = %v", err)
	}
}
