package priority

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/Tiliavir/gh-wizard/internal/apperr"
	"github.com/Tiliavir/gh-wizard/internal/model"
)

// Step is one stage of a broken-down task.
type Step struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	EstimateMinutes int    `json:"estimate_minutes"`
	Priority        string `json:"priority"`
}

type workflow struct {
	name     string
	keywords []string
	steps    []Step
}

// workflows are tried in order; the first one with a keyword in the title wins.
var workflows = []workflow{
	{
		name:     "release",
		keywords: []string{"release", "ship"},
		steps: []Step{
			{"Update CHANGELOG", "Document all changes in CHANGELOG", 10, "high"},
			{"Run Test Suite", "Execute full test suite to ensure quality", 15, "high"},
			{"Create Release Branch", "Branch from main for release", 5, "high"},
			{"Tag Version", "Create git tag with version", 2, "high"},
			{"Push Changes", "Push branch and tags to the remote", 3, "high"},
			{"Draft Release Notes", "Write the release notes", 15, "high"},
		},
	},
	{
		name:     "feature",
		keywords: []string{"feature", "implement", "add", "build"},
		steps: []Step{
			{"Create Feature Branch", "Branch from main", 3, "normal"},
			{"Implement Feature", "Write the actual feature code", 120, "normal"},
			{"Add Tests", "Write unit and integration tests", 30, "normal"},
			{"Update Documentation", "Update docs with new feature", 20, "normal"},
			{"Create Pull Request", "Open PR with description", 10, "normal"},
			{"Address Code Review", "Make changes from review", 20, "normal"},
			{"Merge", "Merge PR to main", 5, "normal"},
		},
	},
	{
		name:     "bugfix",
		keywords: []string{"bugfix", "hotfix", "fix", "bug", "crash"},
		steps: []Step{
			{"Reproduce Bug", "Create minimal reproduction", 15, "normal"},
			{"Write Failing Test", "Capture the bug in a test that fails", 10, "normal"},
			{"Fix Bug", "Implement the fix", 30, "normal"},
			{"Verify Tests Pass", "Run test suite", 5, "normal"},
			{"Create PR", "Open pull request", 5, "normal"},
		},
	},
	{
		name:     "refactor",
		keywords: []string{"refactor", "cleanup", "restructure"},
		steps: []Step{
			{"Plan Refactoring", "Document what needs to change", 30, "normal"},
			{"Run Tests (before)", "Ensure tests pass before changes", 5, "normal"},
			{"Implement Changes", "Refactor the code", 120, "normal"},
			{"Run Tests (after)", "Verify tests still pass", 5, "normal"},
			{"Update Documentation", "Update docs if API changed", 20, "normal"},
			{"Create PR", "Open pull request", 5, "normal"},
		},
	},
}

var genericSteps = []Step{
	{"Plan", "Break down the work", 15, "high"},
	{"Implement", "Do the work", 60, "normal"},
	{"Test", "Verify it works", 20, "high"},
	{"Document", "Update docs", 15, "normal"},
}

// Breakdown splits a task into steps by the first workflow whose keyword
// appears as a word in the title. Titles matching no workflow get a generic
// plan and an empty workflow name.
func Breakdown(title string) (string, []Step) {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, wf := range workflows {
		for _, kw := range wf.keywords {
			if slices.Contains(words, kw) {
				return wf.name, slices.Clone(wf.steps)
			}
		}
	}
	return "", slices.Clone(genericSteps)
}

// TotalMinutes adds up the step estimates.
func TotalMinutes(steps []Step) int {
	total := 0
	for _, s := range steps {
		total += s.EstimateMinutes
	}
	return total
}

// AddBreakdown breaks title down and adds every step to quadrant as a task
// whose parent is title.
func (m *Matrix) AddBreakdown(title, quadrant string) ([]model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.Validation("task title must not be empty")
	}
	if _, err := model.ParseQuadrant(quadrant); err != nil {
		return nil, apperr.Validation("%v", err)
	}
	_, steps := Breakdown(title)
	added := make([]model.Task, 0, len(steps))
	for _, s := range steps {
		t, err := m.Add(NewTask{
			Title:           fmt.Sprintf("%s: %s", title, s.Name),
			Quadrant:        quadrant,
			Description:     s.Description,
			EstimateMinutes: s.EstimateMinutes,
			Parent:          title,
		})
		if err != nil {
			return added, err
		}
		added = append(added, t)
	}
	m.log.Info("task broken down", "title", title, "steps", len(added))
	return added, nil
}

// Progress counts the finished steps of one broken-down task.
type Progress struct {
	Parent string `json:"parent"`
	Done   int    `json:"done"`
	Total  int    `json:"total"`
}

// Complete reports whether every step is done.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Done >= p.Total
}

// Percent is the finished share of steps, 0 to 100.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total) * 100
}

// OverallPercent is the finished share over all steps of all tasks.
func OverallPercent(items []Progress) float64 {
	var sum Progress
	for _, p := range items {
		sum.Done += p.Done
		sum.Total += p.Total
	}
	return sum.Percent()
}

// Progress returns step progress per broken-down task, in the order the
// tasks were first broken down.
func (m *Matrix) Progress() ([]Progress, error) {
	tasks, err := m.load()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	var out []Progress
	index := map[string]int{}
	for _, t := range tasks {
		if t.Parent == "" {
			continue
		}
		i, ok := index[t.Parent]
		if !ok {
			i = len(out)
			index[t.Parent] = i
			out = append(out, Progress{Parent: t.Parent})
		}
		out[i].Total++
		if t.Done() {
			out[i].Done++
		}
	}
	return out, nil
}
