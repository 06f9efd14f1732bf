package main

import (
	"flag"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/ConserveLee/aim-assist/internal/config"
	"github.com/ConserveLee/aim-assist/internal/constants"
	"github.com/ConserveLee/aim-assist/internal/engine/aim"
	"github.com/ConserveLee/aim-assist/internal/engine/detect"
	"github.com/ConserveLee/aim-assist/internal/engine/screen"
)

func main() {
	screenPath := flag.String("screen", "debug_screen.png", "captured screen to analyse")
	configPath := flag.String("config", "", "optional YAML settings")
	seed := flag.Uint64("seed", 1, "seed for the selection draws")
	wide := flag.Bool("wide", false, "enable wide mode")
	previewPath := flag.String("preview", "", "write the resized preview PNG here")
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		s, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			return
		}
		settings = s
	}
	settings.WideMode = settings.WideMode || *wide

	img, err := screen.LoadImage(*screenPath)
	if err != nil {
		fmt.Printf("Failed to load screen: %v\n", err)
		return
	}
	frame := screen.FrameFromImage(img)
	fmt.Printf("Screen size: %dx%d\n", frame.Width(), frame.Height())

	detector, err := detect.NewHOGDetector()
	if err != nil {
		fmt.Printf("Failed to init detector: %v\n", err)
		return
	}
	defer detector.Close()

	boxes, err := detector.Detect(frame, settings.Detector)
	if err != nil {
		fmt.Printf("Detection failed: %v\n", err)
		return
	}

	zone := aim.Zone{Center: settings.Crosshair(), Radius: settings.Radius, Wide: settings.WideMode}
	colors := screen.ColorRange{HueLow: settings.HueLow, HueHigh: settings.HueHigh, SatMin: settings.SatMin, ValMin: settings.ValMin}
	fmt.Printf("Zone: center %v radius %d (effective %d)\n", zone.Center, zone.Radius, zone.EffectiveRadius())
	fmt.Printf("\n=== %d boxes ===\n", len(boxes))

	for i, b := range boxes {
		fraction, _ := screen.ColorFraction(frame.Crop(b.Rect), colors)
		fmt.Printf("  [%d] %v center=%v inZone=%v color=%.1f%% valid=%v\n",
			i, b.Rect, b.Center(), zone.Contains(b.Center()), fraction*100, fraction >= settings.MinColorRatio)
	}

	selector := aim.NewSelector(rand.New(rand.NewPCG(*seed, *seed)), settings.BypassProbability, settings.HeadshotProbability)
	target, point, ok := selector.Select(boxes, zone, func(r image.Rectangle) bool {
		return screen.IsValidRegion(frame.Crop(r), colors, settings.MinColorRatio)
	})
	if ok {
		fmt.Printf("\nSelected %v (validated=%v, bypassed=%v) aim at %v\n",
			target.Box.Rect, target.Validated, target.Bypassed, point)
	} else {
		fmt.Println("\nNo target selected")
	}

	if *previewPath != "" {
		if err := screen.SavePNG(*previewPath, frame.Resize(constants.PreviewWidth, constants.PreviewHeight)); err != nil {
			fmt.Printf("Failed to write preview: %v\n", err)
			return
		}
		fmt.Printf("Preview written to %s\n", *previewPath)
	}
}
