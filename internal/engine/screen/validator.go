package screen

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorRange is an HSV window on a 0-255 scale for every channel.
// Hue bounds are inclusive. The default 140-160 band is blue on this scale; the same
// numbers on OpenCV's 0-179 hue scale would select purple instead.
type ColorRange struct {
	HueLow  int
	HueHigh int
	SatMin  int
	ValMin  int
}

// ColorFraction returns the share of pixels in img falling inside cr.
// ok is false for a zero-area image.
func ColorFraction(img image.Image, cr ColorRange) (fraction float64, ok bool) {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total <= 0 {
		return 0, false
	}

	hits := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if inRange(img.At(x, y), cr) {
				hits++
			}
		}
	}
	return float64(hits) / float64(total), true
}

// IsValidRegion reports whether at least minFraction of img lies in the color range.
// A zero-area region is never valid.
func IsValidRegion(img image.Image, cr ColorRange, minFraction float64) bool {
	fraction, ok := ColorFraction(img, cr)
	if !ok {
		return false
	}
	return fraction >= minFraction
}

func inRange(c color.Color, cr ColorRange) bool {
	col, _ := colorful.MakeColor(c)
	h, s, v := col.Hsv()

	// go-colorful yields hue in [0,360) and s,v in [0,1]; rescale to bytes
	hue := int(math.Round(h * 255 / 360))
	sat := int(math.Round(s * 255))
	val := int(math.Round(v * 255))

	return hue >= cr.HueLow && hue <= cr.HueHigh && sat >= cr.SatMin && val >= cr.ValMin
}
