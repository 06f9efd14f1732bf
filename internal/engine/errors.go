package engine

import (
	"errors"
	"image"
	"time"

	"github.com/ConserveLee/aim-assist/internal/engine/aim"
)

// Tick fault categories. Causes are wrapped beneath them.
var (
	ErrCapture    = errors.New("capture failed")
	ErrFocusCheck = errors.New("focus check failed")
	ErrDetection  = errors.New("detection failed")
	ErrActuation  = errors.New("actuation failed")
	ErrPanic      = errors.New("tick panicked")
)

// TickResult classifies how a tick ended
type TickResult int

const (
	TickSkipped TickResult = iota // Gate closed, nothing captured
	TickMissed                    // Frame processed, nothing engaged
	TickEngaged                   // Target clicked
	TickFailed                    // Abandoned on a fault
)

func (r TickResult) String() string {
	switch r {
	case TickSkipped:
		return "skipped"
	case TickMissed:
		return "missed"
	case TickEngaged:
		return "engaged"
	case TickFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TickOutcome is the aggregated result of one tick
type TickOutcome struct {
	Result   TickResult
	Boxes    int
	Target   aim.Candidate
	Aim      image.Point
	Err      error
	Duration time.Duration
}
