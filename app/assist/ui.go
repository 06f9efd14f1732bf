package assist

import (
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/ConserveLee/aim-assist/internal/config"
	"github.com/ConserveLee/aim-assist/internal/constants"
	"github.com/ConserveLee/aim-assist/internal/engine"
	"github.com/ConserveLee/aim-assist/internal/engine/detect"
	"github.com/ConserveLee/aim-assist/internal/engine/focus"
	"github.com/ConserveLee/aim-assist/internal/engine/input"
	"github.com/ConserveLee/aim-assist/internal/engine/screen"
	"github.com/ConserveLee/aim-assist/internal/logger"
)

// NewAssistPanel creates the control panel and live preview.
// The returned func releases the detector and stops the loop.
func NewAssistPanel(store *config.Store) (fyne.CanvasObject, func()) {
	// --- Data Binding ---
	logData := binding.NewStringList()
	statusData := binding.NewString()
	statusData.Set("Status: Ready")

	console, err := logger.NewConsole()
	if err != nil {
		fmt.Printf("console logger unavailable: %v\n", err)
	}
	appLogger := logger.NewAppLogger(logData, console)

	logCallback := func(msg string) { appLogger.Info("%s", msg) }
	statusCallback := func(msg string) { statusData.Set(msg) }
	debugCallback := func(format string, args ...interface{}) { appLogger.Debug(format, args...) }

	// --- Preview (render sink) ---
	blank := image.NewRGBA(image.Rect(0, 0, constants.PreviewWidth, constants.PreviewHeight))
	preview := canvas.NewImageFromImage(blank)
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(constants.PreviewWidth, constants.PreviewHeight))

	render := func(img image.Image) {
		fyne.Do(func() {
			preview.Image = img
			preview.Refresh()
		})
	}

	// --- Loop Initialization ---
	settings := store.Snapshot()
	capturer := screen.NewCapturer(settings.Capture)
	capturer.SetDebugFunc(debugCallback)

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	actuator := input.NewActuator(input.RobotgoPointer{}, rng, settings.ClickPulse)

	detector, detErr := detect.NewHOGDetector()

	var loop *engine.Loop
	if detErr == nil {
		loop = engine.NewLoop(engine.Deps{
			Source:   capturer,
			Gate:     focus.NewGate(focus.RobotgoTitle),
			Detector: detector,
			Actuator: actuator,
			Rand:     rng,
			Render:   render,
		}, store, logCallback, statusCallback, debugCallback)
	} else {
		appLogger.Error("Detector unavailable: %v", detErr)
	}

	// --- UI Components ---

	// 1. Smoothing (hundredths of a second)
	smoothMinLabel := widget.NewLabel("")
	smoothMaxLabel := widget.NewLabel("")
	smoothMin := widget.NewSlider(constants.SmoothSpinMin, constants.SmoothSpinMax)
	smoothMax := widget.NewSlider(constants.SmoothSpinMin, constants.SmoothSpinMax)
	smoothMin.Step, smoothMax.Step = 1, 1
	smoothMin.SetValue(float64(config.DurationToSpin(settings.SmoothMin)))
	smoothMax.SetValue(float64(config.DurationToSpin(settings.SmoothMax)))
	smoothMinLabel.SetText(fmt.Sprintf("Aim Smoothness Min: %.2fs", settings.SmoothMin.Seconds()))
	smoothMaxLabel.SetText(fmt.Sprintf("Aim Smoothness Max: %.2fs", settings.SmoothMax.Seconds()))
	smoothMin.OnChanged = func(v float64) {
		store.SetSmoothMinSpin(int(v))
		smoothMinLabel.SetText(fmt.Sprintf("Aim Smoothness Min: %.2fs", v/100))
	}
	smoothMax.OnChanged = func(v float64) {
		store.SetSmoothMaxSpin(int(v))
		smoothMaxLabel.SetText(fmt.Sprintf("Aim Smoothness Max: %.2fs", v/100))
	}

	// 2. Zone
	radiusLabel := widget.NewLabel(fmt.Sprintf("Engagement Radius: %d", settings.Radius))
	radius := widget.NewSlider(10, 300)
	radius.Step = 5
	radius.SetValue(float64(settings.Radius))
	radius.OnChanged = func(v float64) {
		store.SetRadius(int(v))
		radiusLabel.SetText(fmt.Sprintf("Engagement Radius: %d", int(v)))
	}

	wideCheck := widget.NewCheck("Wide Mode", store.SetWideMode)
	wideCheck.SetChecked(settings.WideMode)

	// 3. Target window
	windowEntry := widget.NewEntry()
	windowEntry.SetText(settings.WindowName)
	windowEntry.OnChanged = func(name string) {
		store.Update(func(s *config.Settings) { s.WindowName = name })
	}

	// 4. Status & Logs
	statusLabel := widget.NewLabelWithData(statusData)
	statusLabel.TextStyle = fyne.TextStyle{Bold: true}

	logList := widget.NewListWithData(
		logData,
		func() fyne.CanvasObject { return widget.NewLabel("Log entry template") },
		func(i binding.DataItem, o fyne.CanvasObject) { o.(*widget.Label).Bind(i.(binding.String)) },
	)

	// Auto-scroll
	logData.AddListener(binding.NewDataListener(func() {
		list, _ := logData.Get()
		if len(list) > 0 {
			logList.ScrollToBottom()
		}
	}))

	// 5. Buttons
	startBtn := widget.NewButton("Start", nil)
	stopBtn := widget.NewButton("Stop", nil)
	stopBtn.Disable()
	if loop == nil {
		startBtn.Disable()
	}

	startBtn.OnTapped = func() {
		statusData.Set("Status: Running")
		startBtn.Disable()
		stopBtn.Enable()
		loop.Start()
	}

	stopBtn.OnTapped = func() {
		loop.Stop()
		st := loop.Stats()
		appLogger.Info("Ticks: %d, engagements: %d, faults: %d", st.Ticks, st.Engagements, st.Faults)
		stopBtn.Disable()
		startBtn.Enable()
	}

	// --- Layout ---
	controls := container.NewVBox(
		preview,
		container.NewGridWithColumns(2,
			container.NewVBox(smoothMinLabel, smoothMin),
			container.NewVBox(smoothMaxLabel, smoothMax),
		),
		container.NewGridWithColumns(2,
			container.NewVBox(radiusLabel, radius),
			container.NewVBox(wideCheck, container.NewBorder(nil, nil, widget.NewLabel("Window:"), nil, windowEntry)),
		),
		statusLabel,
		container.NewHBox(startBtn, stopBtn),
		widget.NewSeparator(),
		widget.NewLabel("Log:"),
	)

	cleanup := func() {
		if loop != nil {
			loop.Stop()
		}
		if detector != nil {
			detector.Close()
		}
		appLogger.Sync()
	}

	return container.NewBorder(controls, nil, nil, nil, logList), cleanup
}
