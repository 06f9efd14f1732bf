package engine

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ConserveLee/aim-assist/internal/config"
	"github.com/ConserveLee/aim-assist/internal/constants"
	"github.com/ConserveLee/aim-assist/internal/engine/aim"
	"github.com/ConserveLee/aim-assist/internal/engine/screen"
)

// LoopStatus represents the current state of the loop
type LoopStatus int

const (
	StatusIdle LoopStatus = iota
	StatusRunning
)

// FrameSource captures a screen rectangle
type FrameSource interface {
	Capture(region image.Rectangle) (*screen.Frame, error)
}

// Gate reports whether the target application is focused
type Gate interface {
	IsTargetWindowActive(name string) (bool, error)
}

// Detector returns candidate boxes for a frame
type Detector interface {
	Detect(f *screen.Frame, p config.DetectorSettings) ([]screen.Box, error)
}

// Actuator moves the pointer and clicks
type Actuator interface {
	Engage(p image.Point, min, max time.Duration) error
}

// Renderer receives the preview image of every processed tick
type Renderer func(img image.Image)

// Deps bundles the loop collaborators
type Deps struct {
	Source   FrameSource
	Gate     Gate
	Detector Detector
	Actuator Actuator
	Rand     aim.Rand
	Render   Renderer
}

// Stats counts tick results since construction
type Stats struct {
	Ticks       int64
	Engagements int64
	Faults      int64
}

// Loop is the timer-driven capture, detect, select, actuate cycle
type Loop struct {
	Status   LoopStatus
	Interval time.Duration

	// Callbacks for UI updates
	LogFunc    func(string)                 // For persistent logs (History)
	StatusFunc func(string)                 // For transient status (Label)
	DebugFunc  func(string, ...interface{}) // For console debug

	deps     Deps
	settings *config.Store
	tracking aim.Tracking // Written by the loop goroutine under trackMu
	trackMu  sync.RWMutex

	stopChan   chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	lastStatus string

	ticks       atomic.Int64
	engagements atomic.Int64
	faults      atomic.Int64
}

// NewLoop creates an idle loop
func NewLoop(deps Deps, settings *config.Store, logFunc func(string), statusFunc func(string), debugFunc func(string, ...interface{})) *Loop {
	return &Loop{
		Status:     StatusIdle,
		Interval:   constants.TickInterval,
		LogFunc:    logFunc,
		StatusFunc: statusFunc,
		DebugFunc:  debugFunc,
		deps:       deps,
		settings:   settings,
		stopChan:   make(chan struct{}),
	}
}

// Start arms the timer. Calling it while running does nothing.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.Status == StatusRunning {
		l.mu.Unlock()
		return
	}
	l.Status = StatusRunning
	l.stopChan = make(chan struct{}) // Re-make channel for restart ability
	l.mu.Unlock()

	l.LogFunc("Assist started.")
	l.DebugFunc("Loop started, interval %v", l.Interval)
	l.wg.Add(1)

	go l.loop(l.stopChan)
}

// Stop disarms the timer and waits for an in-flight tick to finish
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Status == StatusIdle {
		return
	}

	close(l.stopChan)
	l.wg.Wait()
	l.Status = StatusIdle
	l.LogFunc("Assist stopped.")
	l.setStatus("Status: Stopped")
}

// Running reports whether the timer is armed
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Status == StatusRunning
}

// Tracking returns the state published by the last finished tick
func (l *Loop) Tracking() aim.Tracking {
	l.trackMu.RLock()
	defer l.trackMu.RUnlock()
	return l.tracking
}

// Stats returns counters since construction
func (l *Loop) Stats() Stats {
	return Stats{
		Ticks:       l.ticks.Load(),
		Engagements: l.engagements.Load(),
		Faults:      l.faults.Load(),
	}
}

// loop runs ticks one at a time. The timer is re-armed only after a tick returns,
// so a slow tick delays the next one instead of overlapping it.
func (l *Loop) loop(stop <-chan struct{}) {
	defer l.wg.Done()
	timer := time.NewTimer(l.Interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			select {
			case <-stop:
				return
			default:
			}

			next, outcome := l.Tick(l.settings.Snapshot(), l.tracking)
			l.trackMu.Lock()
			l.tracking = next
			l.trackMu.Unlock()
			l.report(outcome)
			timer.Reset(l.Interval)
		}
	}
}

// Tick runs one cycle against the given settings snapshot and tracking state and
// returns the next tracking state. Faults never escape; they land in the outcome.
func (l *Loop) Tick(s config.Settings, tr aim.Tracking) (next aim.Tracking, out TickOutcome) {
	start := time.Now()
	next = tr

	defer func() {
		if r := recover(); r != nil {
			next = tr
			out = TickOutcome{Result: TickFailed, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
		out.Duration = time.Since(start)
	}()

	// 1. Gate first: nothing else runs while the target is not focused
	active, err := l.deps.Gate.IsTargetWindowActive(s.WindowName)
	if err != nil {
		return tr, TickOutcome{Result: TickSkipped, Err: fmt.Errorf("%w: %w", ErrFocusCheck, err)}
	}
	if !active {
		return tr, TickOutcome{Result: TickSkipped}
	}

	// 2. Capture Screen
	frame, err := l.deps.Source.Capture(s.Capture)
	if err != nil {
		return tr, TickOutcome{Result: TickFailed, Err: fmt.Errorf("%w: %w", ErrCapture, err)}
	}

	// 3. Detect
	boxes, err := l.deps.Detector.Detect(frame, s.Detector)
	if err != nil {
		return tr, TickOutcome{Result: TickFailed, Err: fmt.Errorf("%w: %w", ErrDetection, err)}
	}

	// 4. Select
	zone := aim.Zone{Center: s.Crosshair(), Radius: s.Radius, Wide: s.WideMode}
	colors := screen.ColorRange{HueLow: s.HueLow, HueHigh: s.HueHigh, SatMin: s.SatMin, ValMin: s.ValMin}
	validate := func(r image.Rectangle) bool {
		return screen.IsValidRegion(frame.Crop(r), colors, s.MinColorRatio)
	}
	selector := aim.NewSelector(l.deps.Rand, s.BypassProbability, s.HeadshotProbability)
	target, point, found := selector.Select(boxes, zone, validate)

	out = TickOutcome{Result: TickMissed, Boxes: len(boxes)}
	if !found {
		next = tr.Missed()
		l.render(frame)
		return next, out
	}

	// 5. Actuate, then update tracking
	out.Target = target
	out.Aim = point
	if err := l.deps.Actuator.Engage(point, s.SmoothMin, s.SmoothMax); err != nil {
		out.Result = TickFailed
		out.Err = fmt.Errorf("%w: %w", ErrActuation, err)
		return tr.Missed(), out
	}

	out.Result = TickEngaged
	next = tr.Engaged(target.Center)
	l.render(frame)
	return next, out
}

func (l *Loop) render(frame *screen.Frame) {
	if l.deps.Render == nil {
		return
	}
	l.deps.Render(frame.Resize(constants.PreviewWidth, constants.PreviewHeight))
}

// report turns a tick outcome into at most one notification
func (l *Loop) report(out TickOutcome) {
	l.ticks.Add(1)

	switch out.Result {
	case TickSkipped:
		if out.Err != nil {
			l.DebugFunc("Tick skipped: %v", out.Err)
		}
		l.setStatus("Status: Waiting for target window...")
	case TickMissed:
		l.setStatus(fmt.Sprintf("Status: Scanning... (%d boxes)", out.Boxes))
	case TickEngaged:
		l.engagements.Add(1)
		msg := fmt.Sprintf("Engaged target at (%d, %d), aim (%d, %d)",
			out.Target.Center.X, out.Target.Center.Y, out.Aim.X, out.Aim.Y)
		if out.Target.Bypassed {
			msg += " [bypass]"
		}
		l.LogFunc(msg)
		l.setStatus("Status: Engaged")
	case TickFailed:
		l.faults.Add(1)
		msg := fmt.Sprintf("Tick error: %v", out.Err)
		l.LogFunc(msg)
		l.DebugFunc("%s", msg)
	}
}

// setStatus skips repeats so a 5ms loop does not flood the label
func (l *Loop) setStatus(msg string) {
	if msg == l.lastStatus {
		return
	}
	l.lastStatus = msg
	l.StatusFunc(msg)
}
