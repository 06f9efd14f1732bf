package input

import (
	"fmt"
	"image"
	"time"

	"github.com/go-vgo/robotgo"
)

// Pointer injects pointer motion and primary button events
type Pointer interface {
	Move(x, y int) error
	Press() error
	Release() error
}

// Rand draws values in [0,1)
type Rand interface {
	Float64() float64
}

// RobotgoPointer drives the system pointer through robotgo
type RobotgoPointer struct{}

func (RobotgoPointer) Move(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (RobotgoPointer) Press() error {
	return robotgo.Toggle("left")
}

func (RobotgoPointer) Release() error {
	return robotgo.Toggle("left", "up")
}

// Actuator moves to a point, waits a random reaction delay, then clicks.
// Every step blocks the caller.
type Actuator struct {
	pointer Pointer
	rng     Rand
	sleep   func(time.Duration)
	pulse   time.Duration
}

// NewActuator creates an actuator with a fixed press-to-release gap
func NewActuator(pointer Pointer, rng Rand, pulse time.Duration) *Actuator {
	return &Actuator{
		pointer: pointer,
		rng:     rng,
		sleep:   time.Sleep,
		pulse:   pulse,
	}
}

// SetSleepFunc replaces time.Sleep (tests record delays instead of waiting)
func (a *Actuator) SetSleepFunc(f func(time.Duration)) {
	a.sleep = f
}

// Delay draws a duration uniformly from [min, max]
func (a *Actuator) Delay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(a.rng.Float64()*float64(max-min))
}

// Engage runs move, wait, press, pulse, release in that order
func (a *Actuator) Engage(p image.Point, min, max time.Duration) error {
	if err := a.pointer.Move(p.X, p.Y); err != nil {
		return fmt.Errorf("move to (%d, %d): %w", p.X, p.Y, err)
	}

	a.sleep(a.Delay(min, max))

	return a.Click()
}

// Click issues one press/release pulse
func (a *Actuator) Click() error {
	if err := a.pointer.Press(); err != nil {
		return fmt.Errorf("press: %w", err)
	}
	a.sleep(a.pulse)
	if err := a.pointer.Release(); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	return nil
}
