package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marshallshelly/pebble-churn/pkg/workload"
)

// RunMode is the phase the live view is in
type RunMode int

const (
	ModeRunning RunMode = iota
	ModeStopping
	ModeDone
)

// RunModel is the Bubbletea model that follows a workload run
type RunModel struct {
	mode     RunMode
	title    string
	subtitle string
	total    int
	spinner  spinner.Model
	progress progress.Model
	stats    Stats
	logs     LogView
	reason   workload.StopReason
	err      error
	cancel   context.CancelFunc
	width    int
}

// NewRunModel creates the live view. total is the iteration budget, 0 for
// an open-ended run. cancel stops the run.
func NewRunModel(title, subtitle string, total int, cancel context.CancelFunc) RunModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = infoStyle

	return RunModel{
		mode:     ModeRunning,
		title:    title,
		subtitle: subtitle,
		total:    total,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		logs:     NewLogView(10),
		cancel:   cancel,
	}
}

// Messages
type operationMsg struct {
	iteration int
	result    workload.Result
}

type stoppedMsg struct {
	reason workload.StopReason
}

type runDoneMsg struct {
	err error
}

// Init initializes the model
func (m RunModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(60, max(10, msg.Width-20))
		return m, nil

	case operationMsg:
		m.stats.Add(msg.result)
		m.logs.AddLog(fmt.Sprintf("%s %s", mutedStyle.Render(fmt.Sprintf("#%d", msg.iteration)), FormatResult(msg.result)))
		return m, nil

	case stoppedMsg:
		m.reason = msg.reason
		return m, nil

	case runDoneMsg:
		m.mode = ModeDone
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.mode == ModeRunning {
				m.mode = ModeStopping
				m.cancel()
				return m, nil
			}
			// A second request while the run unwinds leaves at once.
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m RunModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if m.subtitle != "" {
		b.WriteString(subtitleStyle.Render(m.subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.mode {
	case ModeRunning:
		b.WriteString(m.spinner.View() + " " + infoStyle.Render("Running"))
	case ModeStopping:
		b.WriteString(m.spinner.View() + " " + warningStyle.Render("Stopping"))
	case ModeDone:
		b.WriteString(m.doneLine())
	}
	b.WriteString("\n\n")

	if m.total > 0 {
		pct := float64(m.stats.Operations) / float64(m.total)
		b.WriteString(m.progress.ViewAs(min(pct, 1)))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d", m.stats.Operations, m.total)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.stats.View())
	b.WriteString("\n")
	b.WriteString(m.logs.View())

	if m.mode != ModeDone {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(FormatKey("q/ctrl+c", "stop")))
	}
	b.WriteString("\n")
	return b.String()
}

func (m RunModel) doneLine() string {
	if m.err != nil {
		return dangerStyle.Render("Failed: " + m.err.Error())
	}
	if m.reason == workload.StopInterrupted {
		return warningStyle.Render("Interrupted by user")
	}
	return successStyle.Render(fmt.Sprintf("Done after %d operations", m.stats.Operations))
}

// Err returns the run's error once the model is done.
func (m RunModel) Err() error {
	return m.err
}

// programReporter forwards workload progress into a running program.
type programReporter struct {
	p *tea.Program
}

func (r programReporter) Operation(n int, res workload.Result) {
	r.p.Send(operationMsg{iteration: n, result: res})
}

func (r programReporter) Stopped(reason workload.StopReason) {
	r.p.Send(stoppedMsg{reason: reason})
}

// RunLive shows the live view while run executes. run receives the
// reporter to hand to the workload driver; cancel must stop it.
func RunLive(title, subtitle string, total int, cancel context.CancelFunc, run func(workload.Reporter) error) error {
	p := tea.NewProgram(NewRunModel(title, subtitle, total, cancel))

	done := make(chan error, 1)
	go func() {
		err := run(programReporter{p: p})
		done <- err
		p.Send(runDoneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return fmt.Errorf("live view failed: %w", err)
	}

	// The view may have been left early; wait for the run to unwind.
	cancel()
	return <-done
}
