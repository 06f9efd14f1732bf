// Package aim picks the target to engage and the point to hit on it.
package aim

import (
	"image"

	"github.com/ConserveLee/aim-assist/internal/constants"
	"github.com/ConserveLee/aim-assist/internal/engine/screen"
)

// Rand is the source of the selector's probability draws, values in [0,1)
type Rand interface {
	Float64() float64
}

// Zone is the square engagement box around the crosshair
type Zone struct {
	Center image.Point
	Radius int
	Wide   bool // Doubles the radius
}

// EffectiveRadius returns the radius after wide mode is applied
func (z Zone) EffectiveRadius() int {
	if z.Wide {
		return z.Radius * constants.WideModeFactor
	}
	return z.Radius
}

// Contains uses the max metric: the zone is a square, not a circle
func (z Zone) Contains(p image.Point) bool {
	r := z.EffectiveRadius()
	return abs(p.X-z.Center.X) <= r && abs(p.Y-z.Center.Y) <= r
}

// Candidate is a box considered during one selection pass
type Candidate struct {
	Box       screen.Box
	Center    image.Point
	Validated bool // Passed the color check
	Bypassed  bool // Accepted without passing the color check
}

// Validator evaluates the frame region under a box
type Validator func(r image.Rectangle) bool

// Selector is a greedy first-match picker. It never scores boxes.
type Selector struct {
	rng Rand

	BypassProbability   float64
	HeadshotProbability float64
}

// NewSelector creates a selector drawing from rng
func NewSelector(rng Rand, bypass, headshot float64) *Selector {
	return &Selector{
		rng:                 rng,
		BypassProbability:   bypass,
		HeadshotProbability: headshot,
	}
}

// Select walks boxes in order and returns the first one that is inside the zone and
// either passes validate or wins the bypass draw. The bypass draw only happens when
// validation fails and wins with a draw below BypassProbability.
func (s *Selector) Select(boxes []screen.Box, zone Zone, validate Validator) (Candidate, image.Point, bool) {
	for _, b := range boxes {
		c := Candidate{Box: b, Center: b.Center()}
		if !zone.Contains(c.Center) {
			continue
		}

		c.Validated = validate != nil && validate(b.Rect)
		if !c.Validated {
			c.Bypassed = s.rng.Float64() < s.BypassProbability
		}
		if !c.Validated && !c.Bypassed {
			continue
		}

		return c, s.AimPoint(c), true
	}
	return Candidate{}, image.Point{}, false
}

// AimPoint picks the upper quarter with HeadshotProbability, else the lower three quarters.
// X is always the box center.
func (s *Selector) AimPoint(c Candidate) image.Point {
	r := c.Box.Rect
	h := r.Dy()

	y := r.Min.Y + (3*h)/4
	if s.rng.Float64() < s.HeadshotProbability {
		y = r.Min.Y + h/4
	}
	return image.Point{X: c.Center.X, Y: y}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
