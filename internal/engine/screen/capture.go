package screen

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/kbinani/screenshot"
	xdraw "golang.org/x/image/draw"
)

// Frame is one captured RGBA buffer. It is never written to after capture.
type Frame struct {
	img *image.RGBA
}

// NewFrame wraps a captured buffer
func NewFrame(img *image.RGBA) *Frame {
	return &Frame{img: img}
}

// FrameFromImage copies any image into a frame (used for files and tests)
func FrameFromImage(src image.Image) *Frame {
	if rgba, ok := src.(*image.RGBA); ok {
		return NewFrame(rgba)
	}
	b := src.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, src, b.Min, draw.Src)
	return NewFrame(rgba)
}

func (f *Frame) Bounds() image.Rectangle { return f.img.Bounds() }
func (f *Frame) Width() int              { return f.img.Bounds().Dx() }
func (f *Frame) Height() int             { return f.img.Bounds().Dy() }

// RGBA exposes the capture-native buffer
func (f *Frame) RGBA() *image.RGBA { return f.img }

// Crop returns the part of the frame inside r. The result shares pixels with the frame
// and may be empty when r falls outside the frame.
func (f *Frame) Crop(r image.Rectangle) image.Image {
	return f.img.SubImage(r.Intersect(f.img.Bounds()))
}

// Resize scales the frame into a new w x h buffer
func (f *Frame) Resize(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), f.img, f.img.Bounds(), xdraw.Src, nil)
	return dst
}

// Capturer grabs a fixed screen rectangle
type Capturer struct {
	Region image.Rectangle

	lastFrame *Frame
	debugFunc func(string, ...interface{})
}

// NewCapturer creates a capturer for region (virtual screen coordinates)
func NewCapturer(region image.Rectangle) *Capturer {
	return &Capturer{
		Region:    region,
		debugFunc: func(string, ...interface{}) {},
	}
}

// SetDebugFunc sets the debug logging function
func (c *Capturer) SetDebugFunc(f func(string, ...interface{})) {
	c.debugFunc = f
}

// Capture returns the current contents of the region
func (c *Capturer) Capture(region image.Rectangle) (*Frame, error) {
	if region.Empty() {
		region = c.Region
	}
	if screenshot.NumActiveDisplays() == 0 {
		return nil, errors.New("no active display")
	}

	img, err := screenshot.CaptureRect(region)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %v: %w", region, err)
	}
	c.lastFrame = NewFrame(img)
	return c.lastFrame, nil
}

// SaveDebugScreenshot writes the last captured frame to path
func (c *Capturer) SaveDebugScreenshot(path string) error {
	if c.lastFrame == nil {
		return errors.New("no frame captured yet")
	}
	c.debugFunc("Saving debug screenshot to %s", path)
	return SavePNG(path, c.lastFrame.RGBA())
}

// LoadImage loads an image from the filesystem
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// SavePNG encodes img to path
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
