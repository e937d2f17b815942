// Package geometry holds the pure math behind the crop editor: degree/radian
// conversion, rotated bounding boxes and the zoom floor that keeps a crop
// rectangle inside a rotated image.
package geometry

import "math"

// Rect is a crop rectangle expressed in the coordinate space of the rotated
// bounding box of the source image, not the original image space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RotatedSize returns the axis-aligned bounding box of a w×h rectangle
// rotated by deg degrees.
func RotatedSize(w, h, deg float64) (float64, float64) {
	rad := Radians(deg)
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))
	return cos*w + sin*h, sin*w + cos*h
}

// MinZoomFloor is returned whenever the crop or image dimensions are not yet
// known, and is the hard lower bound on any zoom value.
const MinZoomFloor = 0.1

// MinZoom computes the smallest zoom level at which the crop rectangle still
// fits inside the image rotated by deg degrees. Callers must clamp any
// externally supplied zoom up to this value on every rotation or crop change.
func MinZoom(crop Rect, imgW, imgH float64, deg float64) float64 {
	if crop.Empty() || imgW <= 0 || imgH <= 0 {
		return MinZoomFloor
	}
	rw, rh := RotatedSize(crop.Width, crop.Height, deg)
	return math.Max(math.Max(rw/imgW, rh/imgH), MinZoomFloor)
}
