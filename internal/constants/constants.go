package constants

import "time"

// Control Loop
const (
	TickInterval = 5 * time.Millisecond // Fixed timer period while running

	// Tracking
	MissResetThreshold = 5 // Forget the last engaged target once misses exceed this
)

// Capture
const (
	CaptureX      = 0
	CaptureY      = 0
	CaptureWidth  = 1920
	CaptureHeight = 1080

	// Render handoff (preview sink)
	PreviewWidth  = 800
	PreviewHeight = 450
)

// Engagement Zone
const (
	CrosshairX       = 960 // Reference point, center of the capture rectangle
	CrosshairY       = 540
	EngagementRadius = 50
	WideModeFactor   = 2 // Radius multiplier when wide mode is on
)

// Targeting Randomness
const (
	ValidatorBypassProbability = 0.8 // Accept an in-zone candidate without the color check
	HeadshotProbability        = 0.8 // Aim at the upper quarter instead of the lower three quarters
)

// Actuation Timing
const (
	SmoothMin  = 50 * time.Millisecond  // Lower bound of the move-to-click delay
	SmoothMax  = 150 * time.Millisecond // Upper bound of the move-to-click delay
	ClickPulse = 20 * time.Millisecond  // Press to release gap, not exposed

	// UI spin boxes express smoothing in hundredths of a second
	SmoothSpinMin   = 1
	SmoothSpinMax   = 100
	SmoothSpinScale = 10 * time.Millisecond
)

// Color Validation (0-255 scale, so the default hue band is blue, not purple)
const (
	HueLow        = 140
	HueHigh       = 160
	SatMin        = 50
	ValMin        = 50
	MinColorRatio = 0.02
	MaxColorRatio = 0.3 // Carried in config, not enforced by the validator
)

// HOG Detector
const (
	DetectStride      = 4
	DetectPadding     = 8
	DetectScale       = 1.02
	DetectHitThresh   = 0.0
	DetectFinalThresh = 2.0
)

// Focus Gate
const (
	TargetWindowName = "TEST"
)

// Logging
const (
	MaxLogLines = 100
)
