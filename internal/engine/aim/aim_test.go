package aim

import (
	"image"
	"math/rand/v2"
	"testing"

	"github.com/ConserveLee/aim-assist/internal/engine/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays a fixed sequence of draws and fails the test when it runs dry
type scripted struct {
	t     *testing.T
	draws []float64
}

func (s *scripted) Float64() float64 {
	s.t.Helper()
	require.NotEmpty(s.t, s.draws, "unexpected random draw")
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v
}

func boxAt(cx, cy, w, h int) screen.Box {
	tl := image.Pt(cx-w/2, cy-h/2)
	return screen.Box{Rect: image.Rectangle{Min: tl, Max: tl.Add(image.Pt(w, h))}, Weight: 1}
}

var zone = Zone{Center: image.Pt(960, 540), Radius: 50}

func TestZoneContains(t *testing.T) {
	tests := []struct {
		name string
		p    image.Point
		wide bool
		want bool
	}{
		{"inside", image.Pt(1000, 560), false, true},
		{"edge x", image.Pt(1010, 540), false, true},
		{"edge corner", image.Pt(910, 590), false, true},
		{"just past x", image.Pt(1015, 540), false, false},
		{"just past y", image.Pt(960, 591), false, false},
		// Euclidean distance here is ~63, the square still holds it
		{"square corner", image.Pt(1005, 585), false, true},
		{"wide mode doubles", image.Pt(1015, 540), true, true},
		{"wide edge", image.Pt(860, 640), true, true},
		{"past wide edge", image.Pt(859, 540), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := zone
			z.Wide = tt.wide
			assert.Equal(t, tt.want, z.Contains(tt.p))
		})
	}
}

func TestEffectiveRadius(t *testing.T) {
	assert.Equal(t, 50, zone.EffectiveRadius())
	wide := zone
	wide.Wide = true
	assert.Equal(t, 100, wide.EffectiveRadius())
}

func TestSelectEmpty(t *testing.T) {
	s := NewSelector(&scripted{t: t}, 0.8, 0.8)
	_, _, ok := s.Select(nil, zone, func(image.Rectangle) bool { return true })
	assert.False(t, ok)
}

func TestSelectAllOutside(t *testing.T) {
	s := NewSelector(&scripted{t: t}, 0.8, 0.8)
	boxes := []screen.Box{boxAt(100, 100, 40, 100), boxAt(1500, 540, 40, 100)}
	called := false
	_, _, ok := s.Select(boxes, zone, func(image.Rectangle) bool { called = true; return true })
	assert.False(t, ok)
	assert.False(t, called, "validator must not run for boxes outside the zone")
}

func TestSelectFirstMatch(t *testing.T) {
	b1 := boxAt(200, 200, 40, 100)  // outside
	b2 := boxAt(970, 540, 40, 100)  // inside, fails validation, bypass draw loses
	b3 := boxAt(990, 560, 40, 100)  // inside, passes
	b4 := boxAt(960, 540, 200, 400) // inside, would be closer and bigger

	// 0.9 loses the bypass draw for b2, 0.5 picks the upper quarter for b3
	rng := &scripted{t: t, draws: []float64{0.9, 0.5}}
	s := NewSelector(rng, 0.8, 0.8)

	validate := func(r image.Rectangle) bool { return r == b3.Rect }
	c, p, ok := s.Select([]screen.Box{b1, b2, b3, b4}, zone, validate)

	require.True(t, ok)
	assert.Equal(t, b3, c.Box)
	assert.True(t, c.Validated)
	assert.False(t, c.Bypassed)
	assert.Equal(t, image.Pt(990, b3.Rect.Min.Y+25), p)
	assert.Empty(t, rng.draws)
}

func TestSelectBypass(t *testing.T) {
	b := boxAt(960, 540, 40, 100)

	// 0.1 wins the bypass draw, 0.95 picks the lower point
	rng := &scripted{t: t, draws: []float64{0.1, 0.95}}
	s := NewSelector(rng, 0.8, 0.8)

	c, p, ok := s.Select([]screen.Box{b}, zone, func(image.Rectangle) bool { return false })
	require.True(t, ok)
	assert.False(t, c.Validated)
	assert.True(t, c.Bypassed)
	assert.Equal(t, image.Pt(960, b.Rect.Min.Y+75), p)
}

func TestSelectBypassThreshold(t *testing.T) {
	b := boxAt(960, 540, 40, 100)
	reject := func(image.Rectangle) bool { return false }

	tests := []struct {
		name   string
		bypass float64
		draws  []float64
		want   bool
	}{
		{"draw at probability loses", 0.8, []float64{0.8}, false},
		{"draw just below probability wins", 0.8, []float64{0.7999, 0.5}, true},
		{"always bypass takes zero", 1, []float64{0, 0.5}, true},
		{"always bypass takes near one", 1, []float64{0.9999999, 0.5}, true},
		{"never bypass rejects zero", 0, []float64{0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scripted{t: t, draws: tt.draws}
			s := NewSelector(rng, tt.bypass, 0.8)
			c, _, ok := s.Select([]screen.Box{b}, zone, reject)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.want, c.Bypassed)
			assert.Empty(t, rng.draws)
		})
	}
}

func TestAimPointDistribution(t *testing.T) {
	const trials = 10000
	s := NewSelector(rand.New(rand.NewPCG(1, 2)), 0.8, 0.8)
	c := Candidate{
		Box:    screen.Box{Rect: image.Rect(300, 200, 340, 300)},
		Center: image.Pt(320, 250),
	}

	upper, lower := 0, 0
	for i := 0; i < trials; i++ {
		p := s.AimPoint(c)
		assert.Equal(t, 320, p.X)
		switch p.Y {
		case 225:
			upper++
		case 275:
			lower++
		default:
			t.Fatalf("unexpected aim y %d", p.Y)
		}
	}
	assert.InDelta(t, 0.8, float64(upper)/trials, 0.02)
	assert.InDelta(t, 0.2, float64(lower)/trials, 0.02)
}

func TestBypassDistribution(t *testing.T) {
	const trials = 10000
	s := NewSelector(rand.New(rand.NewPCG(7, 11)), 0.8, 0.8)
	boxes := []screen.Box{boxAt(960, 540, 40, 100)}
	reject := func(image.Rectangle) bool { return false }

	accepted := 0
	for i := 0; i < trials; i++ {
		if _, _, ok := s.Select(boxes, zone, reject); ok {
			accepted++
		}
	}
	assert.InDelta(t, 0.8, float64(accepted)/trials, 0.02)
}

func TestTrackingMissStreak(t *testing.T) {
	var tr Tracking
	tr = tr.Engaged(image.Pt(970, 540))
	require.True(t, tr.HasLast)
	require.Zero(t, tr.Misses)

	for i := 1; i <= 5; i++ {
		tr = tr.Missed()
		assert.Equal(t, i, tr.Misses)
		assert.True(t, tr.HasLast, "miss %d must keep the last center", i)
		assert.Equal(t, image.Pt(970, 540), tr.LastCenter)
	}

	tr = tr.Missed()
	assert.Equal(t, 6, tr.Misses)
	assert.False(t, tr.HasLast)

	tr = tr.Missed()
	assert.Equal(t, 7, tr.Misses)

	tr = tr.Engaged(image.Pt(1000, 500))
	assert.Zero(t, tr.Misses)
	assert.True(t, tr.HasLast)
	assert.Equal(t, image.Pt(1000, 500), tr.LastCenter)
}
