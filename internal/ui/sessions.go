package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/gh-wizard/internal/model"
)

var statusMarkers = map[model.SessionStatus]string{
	model.SessionActive:    okStyle.Render("●"),
	model.SessionPaused:    warnStyle.Render("‖"),
	model.SessionCompleted: dimStyle.Render("✓"),
}

// RenderSessions lists sessions one per line, in the given order.
func RenderSessions(sessions []model.Session) string {
	if len(sessions) == 0 {
		return "No sessions yet. Start one with: gh wizard session start <name>"
	}
	var b strings.Builder
	for _, s := range sessions {
		fmt.Fprintf(&b, "%s %s  %-30s %s  %s\n",
			statusMarkers[s.Status], s.ID, s.Name,
			dimStyle.Render(s.LastActive.Format("2006-01-02 15:04")),
			dimStyle.Render(string(s.Status)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderSession shows one session with its note, context and breadcrumbs.
func RenderSession(s model.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", headerStyle.Render(s.Name), dimStyle.Render(s.ID))
	fmt.Fprintf(&b, "  Status:      %s\n", s.Status)
	fmt.Fprintf(&b, "  Started:     %s\n", s.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "  Last active: %s (%s ago)\n", s.LastActive.Format("2006-01-02 15:04"),
		time.Since(s.LastActive).Round(time.Minute))
	if s.Note != "" {
		fmt.Fprintf(&b, "  Note:        %s\n", s.Note)
	}
	if len(s.Context) > 0 {
		keys := make([]string, 0, len(s.Context))
		for k := range s.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("  Context:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "    %s = %s\n", k, s.Context[k])
		}
	}
	if len(s.Breadcrumbs) > 0 {
		b.WriteString("  Breadcrumbs:\n")
		for _, c := range s.Breadcrumbs {
			fmt.Fprintf(&b, "    %s  %s\n", dimStyle.Render(c.At.Format("15:04")), c.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
