package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/pebble-churn/pkg/workload"
)

// Stats counts what a run has done so far.
type Stats struct {
	Operations int
	Inserted   int
	Updated    int
	Deleted    int
	NoOps      int
}

// Add records one result.
func (s *Stats) Add(res workload.Result) {
	s.Operations++
	if res.NoOp() {
		s.NoOps++
		return
	}
	switch res.Op.Action {
	case workload.ActionInsert:
		s.Inserted += res.Count
	case workload.ActionUpdate:
		s.Updated += len(res.IDs)
	case workload.ActionDelete:
		s.Deleted += res.Count
	}
}

// View renders the counters on one line.
func (s Stats) View() string {
	cell := func(label string, n int, style lipgloss.Style) string {
		return style.Render(fmt.Sprintf("%d", n)) + " " + mutedStyle.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell("ops", s.Operations, titleStyle.UnsetMarginBottom()), "   ",
		cell("inserted", s.Inserted, insertStyle), "   ",
		cell("updated", s.Updated, updateStyle), "   ",
		cell("deleted", s.Deleted, deleteStyle), "   ",
		cell("no-op", s.NoOps, mutedStyle),
	)
}

// LogView displays the latest report lines
type LogView struct {
	Logs   []string
	MaxLen int
}

// NewLogView creates a new log view
func NewLogView(maxLen int) LogView {
	return LogView{
		Logs:   make([]string, 0),
		MaxLen: maxLen,
	}
}

// AddLog adds a log entry
func (l *LogView) AddLog(entry string) {
	l.Logs = append(l.Logs, entry)
	if len(l.Logs) > l.MaxLen {
		l.Logs = l.Logs[1:]
	}
}

// View renders the log view
func (l LogView) View() string {
	if len(l.Logs) == 0 {
		return boxStyle.Render(mutedStyle.Render("Waiting for the first operation"))
	}

	var b strings.Builder
	for i, log := range l.Logs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render("• "))
		b.WriteString(log)
	}

	return boxStyle.Render(b.String())
}
