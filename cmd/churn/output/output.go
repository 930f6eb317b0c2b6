package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/pebble-churn/pkg/workload"
)

var (
	// Color styles for terminal output
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// Printer writes styled lines to w.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Stdout prints to standard output.
var Stdout = New(os.Stdout)

func (p *Printer) line(icon string, format string, args ...any) {
	_, _ = fmt.Fprint(p.w, icon)
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	p.line(successStyle.Render("✓ "), format, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	p.line(warningStyle.Render("⚠ "), format, args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	p.line(errorStyle.Render("✗ "), format, args...)
}

// Info prints an info message
func (p *Printer) Info(format string, args ...any) {
	p.line(infoStyle.Render("ℹ "), format, args...)
}

// Muted prints a muted message
func (p *Printer) Muted(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Statement prints a SQL statement and its arguments. It matches
// runtime.TraceFunc.
func (p *Printer) Statement(sql string, args []any) {
	sql = strings.Join(strings.Fields(sql), " ")
	if len(args) == 0 {
		p.Muted("  %s", sql)
		return
	}
	p.Muted("  %s %v", sql, args)
}

// Info prints an info message to stdout
func Info(format string, args ...any) { Stdout.Info(format, args...) }

// Reporter prints workload progress: effects as successes, no-ops as
// warnings.
type Reporter struct {
	P *Printer
}

// Operation implements workload.Reporter.
func (r Reporter) Operation(_ int, res workload.Result) {
	if res.NoOp() {
		r.P.Warning("%s", res)
		return
	}
	r.P.Success("%s", res)
}

// Stopped implements workload.Reporter.
func (r Reporter) Stopped(reason workload.StopReason) {
	if reason == workload.StopInterrupted {
		r.P.Info("Interrupted by user")
	}
}
