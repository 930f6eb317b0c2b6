package workload

import (
	"fmt"
	"io"
)

// StopReason says why a run ended.
type StopReason int

const (
	// StopCompleted means the iteration budget was used up.
	StopCompleted StopReason = iota
	// StopInterrupted means the run's context was cancelled.
	StopInterrupted
	// StopFailed means an operation returned an error.
	StopFailed
)

func (r StopReason) String() string {
	switch r {
	case StopCompleted:
		return "completed"
	case StopInterrupted:
		return "interrupted"
	case StopFailed:
		return "failed"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Reporter receives the progress of a run. Calls come from the driver's
// goroutine.
type Reporter interface {
	// Operation is called once per finished iteration, numbered from 1.
	Operation(iteration int, res Result)
	// Stopped is called once when the run ends.
	Stopped(reason StopReason)
}

// TextReporter writes one plain line per event.
type TextReporter struct {
	W io.Writer
}

func (t TextReporter) Operation(_ int, res Result) {
	fmt.Fprintln(t.W, res.String())
}

func (t TextReporter) Stopped(reason StopReason) {
	if reason == StopInterrupted {
		fmt.Fprintln(t.W, "Interrupted by user")
	}
}

type nopReporter struct{}

func (nopReporter) Operation(int, Result) {}
func (nopReporter) Stopped(StopReason)    {}
