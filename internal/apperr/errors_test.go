package apperr_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		want string
	}{
		{"validation", apperr.Validation("unknown quadrant %q", "q9"), apperr.ErrValidation, `invalid input: unknown quadrant "q9"`},
		{"not found", apperr.NotFound("task %s", "abc"), apperr.ErrNotFound, "not found: task abc"},
		{"conflict", apperr.Conflict("session %q is active", "A"), apperr.ErrConflict, `conflict: session "A" is active`},
		{"storage", apperr.Storage(fs.ErrPermission, "reading %s", "tasks.json"), apperr.ErrStorage, "storage error: reading tasks.json: permission denied"},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.kind) {
			t.Errorf("%s: errors.Is(%v, %v) = false", tt.name, tt.err, tt.kind)
		}
		if tt.err.Error() != tt.want {
			t.Errorf("%s: Error() = %q, want %q", tt.name, tt.err.Error(), tt.want)
		}
	}
}

func TestStorageKeepsCause(t *testing.T) {
	err := apperr.Storage(fs.ErrNotExist, "open")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected cause to be reachable, got %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{apperr.Validation("x"), 1},
		{apperr.NotFound("x"), 1},
		{apperr.Conflict("x"), 1},
		{apperr.Storage(errors.New("disk"), "x"), 2},
		{errors.New("plain"), 1},
	}
	for _, tt := range tests {
		if got := apperr.ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
