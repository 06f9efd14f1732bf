package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/ConserveLee/aim-assist/internal/constants"
	"gopkg.in/yaml.v3"
)

// DetectorSettings holds the HOG scan tunables
type DetectorSettings struct {
	Stride      int     `yaml:"stride"`       // Window stride in pixels (both axes)
	Padding     int     `yaml:"padding"`      // Padding margin in pixels (both axes)
	Scale       float64 `yaml:"scale"`        // Pyramid factor between scan levels
	HitThresh   float64 `yaml:"hit_thresh"`   // SVM distance threshold
	FinalThresh float64 `yaml:"final_thresh"` // Grouping threshold
}

// Settings is the full set of runtime tunables. A tick works on a copy.
type Settings struct {
	Radius   int  `yaml:"radius"`
	WideMode bool `yaml:"wide_mode"`
	CrossX   int  `yaml:"crosshair_x"`
	CrossY   int  `yaml:"crosshair_y"`

	SmoothMin  time.Duration `yaml:"smooth_min"`
	SmoothMax  time.Duration `yaml:"smooth_max"`
	ClickPulse time.Duration `yaml:"-"`

	HeadshotProbability float64 `yaml:"headshot_probability"`
	BypassProbability   float64 `yaml:"bypass_probability"`

	HueLow        int     `yaml:"hue_low"`
	HueHigh       int     `yaml:"hue_high"`
	SatMin        int     `yaml:"sat_min"`
	ValMin        int     `yaml:"val_min"`
	MinColorRatio float64 `yaml:"min_color_ratio"`
	MaxColorRatio float64 `yaml:"max_color_ratio"` // Kept for parity, never enforced

	Detector DetectorSettings `yaml:"detector"`

	WindowName string          `yaml:"window_name"`
	Capture    image.Rectangle `yaml:"-"`
}

// Default returns settings populated from constants
func Default() Settings {
	return Settings{
		Radius:              constants.EngagementRadius,
		CrossX:              constants.CrosshairX,
		CrossY:              constants.CrosshairY,
		SmoothMin:           constants.SmoothMin,
		SmoothMax:           constants.SmoothMax,
		ClickPulse:          constants.ClickPulse,
		HeadshotProbability: constants.HeadshotProbability,
		BypassProbability:   constants.ValidatorBypassProbability,
		HueLow:              constants.HueLow,
		HueHigh:             constants.HueHigh,
		SatMin:              constants.SatMin,
		ValMin:              constants.ValMin,
		MinColorRatio:       constants.MinColorRatio,
		MaxColorRatio:       constants.MaxColorRatio,
		Detector: DetectorSettings{
			Stride:      constants.DetectStride,
			Padding:     constants.DetectPadding,
			Scale:       constants.DetectScale,
			HitThresh:   constants.DetectHitThresh,
			FinalThresh: constants.DetectFinalThresh,
		},
		WindowName: constants.TargetWindowName,
		Capture: image.Rect(constants.CaptureX, constants.CaptureY,
			constants.CaptureX+constants.CaptureWidth, constants.CaptureY+constants.CaptureHeight),
	}
}

// Crosshair returns the engagement zone reference point
func (s Settings) Crosshair() image.Point {
	return image.Point{X: s.CrossX, Y: s.CrossY}
}

// Validate checks value ranges
func (s Settings) Validate() error {
	var errs []error
	if s.Radius <= 0 {
		errs = append(errs, fmt.Errorf("radius must be positive, got %d", s.Radius))
	}
	if s.SmoothMin < 0 || s.SmoothMax < s.SmoothMin {
		errs = append(errs, fmt.Errorf("smoothing range [%v, %v] is invalid", s.SmoothMin, s.SmoothMax))
	}
	if s.HeadshotProbability < 0 || s.HeadshotProbability > 1 {
		errs = append(errs, fmt.Errorf("headshot probability %.2f out of [0,1]", s.HeadshotProbability))
	}
	if s.BypassProbability < 0 || s.BypassProbability > 1 {
		errs = append(errs, fmt.Errorf("bypass probability %.2f out of [0,1]", s.BypassProbability))
	}
	if s.HueLow < 0 || s.HueHigh > 255 || s.HueLow > s.HueHigh {
		errs = append(errs, fmt.Errorf("hue range [%d, %d] is invalid", s.HueLow, s.HueHigh))
	}
	if s.MinColorRatio < 0 || s.MinColorRatio > 1 {
		errs = append(errs, fmt.Errorf("min color ratio %.2f out of [0,1]", s.MinColorRatio))
	}
	if s.Detector.Stride <= 0 || s.Detector.Padding < 0 || s.Detector.Scale <= 1 {
		errs = append(errs, fmt.Errorf("detector settings %+v are invalid", s.Detector))
	}
	return errors.Join(errs...)
}

// LoadFile reads a YAML document over the defaults. Fields left out keep their default.
func LoadFile(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return s, nil
}

// Store is the shared, live-editable settings holder
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStore creates a store seeded with s
func NewStore(s Settings) *Store {
	return &Store{settings: s}
}

// Snapshot returns a copy of the current settings
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

// Update applies fn to the settings under the write lock
func (st *Store) Update(fn func(*Settings)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn(&st.settings)
}

// SetWideMode toggles the doubled engagement radius
func (st *Store) SetWideMode(on bool) {
	st.Update(func(s *Settings) { s.WideMode = on })
}

// SetRadius sets the base engagement radius, ignoring non-positive values
func (st *Store) SetRadius(r int) {
	if r <= 0 {
		return
	}
	st.Update(func(s *Settings) { s.Radius = r })
}

// SetSmoothMinSpin sets the smoothing lower bound from a 1-100 spin value
func (st *Store) SetSmoothMinSpin(v int) {
	d := SpinToDuration(v)
	st.Update(func(s *Settings) { s.SmoothMin = d })
}

// SetSmoothMaxSpin sets the smoothing upper bound from a 1-100 spin value
func (st *Store) SetSmoothMaxSpin(v int) {
	d := SpinToDuration(v)
	st.Update(func(s *Settings) { s.SmoothMax = d })
}

// SpinToDuration maps a spin value (hundredths of a second) to a duration, clamped to the spin range
func SpinToDuration(v int) time.Duration {
	if v < constants.SmoothSpinMin {
		v = constants.SmoothSpinMin
	}
	if v > constants.SmoothSpinMax {
		v = constants.SmoothSpinMax
	}
	return time.Duration(v) * constants.SmoothSpinScale
}

// DurationToSpin is the inverse of SpinToDuration
func DurationToSpin(d time.Duration) int {
	return int(d / constants.SmoothSpinScale)
}
