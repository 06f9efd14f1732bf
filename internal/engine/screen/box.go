package screen

import "image"

// Box is one detection in frame coordinates
type Box struct {
	Rect   image.Rectangle
	Weight float64 // Confidence, never negative
}

// Center returns the integer center of the box
func (b Box) Center() image.Point {
	return image.Point{
		X: b.Rect.Min.X + b.Rect.Dx()/2,
		Y: b.Rect.Min.Y + b.Rect.Dy()/2,
	}
}
