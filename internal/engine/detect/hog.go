// Package detect wraps the OpenCV people detector.
package detect

import (
	"errors"
	"fmt"
	"image"

	"github.com/ConserveLee/aim-assist/internal/config"
	"github.com/ConserveLee/aim-assist/internal/engine/screen"
	"gocv.io/x/gocv"
)

// HOGDetector finds upright people with OpenCV's default people SVM
type HOGDetector struct {
	hog gocv.HOGDescriptor
}

// NewHOGDetector loads the default people detector
func NewHOGDetector() (*HOGDetector, error) {
	hog := gocv.NewHOGDescriptor()

	people := gocv.HOGDefaultPeopleDetector()
	defer people.Close()

	if err := hog.SetSVMDetector(people); err != nil {
		hog.Close()
		return nil, fmt.Errorf("failed to set people detector: %w", err)
	}
	return &HOGDetector{hog: hog}, nil
}

// Detect scans the frame and returns boxes in OpenCV's output order
func (d *HOGDetector) Detect(f *screen.Frame, p config.DetectorSettings) ([]screen.Box, error) {
	if f == nil || f.Width() == 0 || f.Height() == 0 {
		return nil, errors.New("empty frame")
	}

	// 4-channel capture buffer to 3-channel BGR working layout
	mat, err := gocv.ImageToMatRGB(f.RGBA())
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.New("converted frame is empty")
	}

	rects := d.hog.DetectMultiScaleWithParams(
		mat,
		p.HitThresh,
		image.Pt(p.Stride, p.Stride),
		image.Pt(p.Padding, p.Padding),
		p.Scale,
		p.FinalThresh,
		false,
	)

	origin := f.Bounds().Min
	boxes := make([]screen.Box, 0, len(rects))
	for _, r := range rects {
		// gocv does not surface the SVM weights; every kept detection counts as 1
		boxes = append(boxes, screen.Box{Rect: r.Add(origin), Weight: 1})
	}
	return boxes, nil
}

// Close releases the OpenCV descriptor
func (d *HOGDetector) Close() error {
	return d.hog.Close()
}
