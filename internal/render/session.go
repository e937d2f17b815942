package render

import (
	"image"

	"github.com/fotoflesz/printshop-backend/internal/geometry"
)

// Session models one photo-editing session: the loaded source, the current
// rotation, crop rectangle and zoom. It enforces the zoom floor on every
// rotation or crop change, not just when zoom input arrives.
type Session struct {
	src      image.Image
	srcW     float64
	srcH     float64
	rotation float64
	crop     geometry.Rect
	zoom     float64
}

func NewSession() *Session {
	return &Session{zoom: 1}
}

// SetSource replaces the photo wholesale and resets rotation, crop and zoom.
func (s *Session) SetSource(img image.Image) {
	s.src = img
	s.srcW, s.srcH = 0, 0
	if img != nil {
		b := img.Bounds()
		s.srcW = float64(b.Dx())
		s.srcH = float64(b.Dy())
	}
	s.rotation = 0
	s.crop = geometry.Rect{}
	s.zoom = 1
}

func (s *Session) Source() image.Image { return s.src }

func (s *Session) SetRotation(deg float64) {
	if deg < -180 {
		deg = -180
	}
	if deg > 180 {
		deg = 180
	}
	s.rotation = deg
	s.clampZoom()
}

func (s *Session) Rotation() float64 { return s.rotation }

func (s *Session) SetCrop(crop geometry.Rect) {
	s.crop = crop
	s.clampZoom()
}

func (s *Session) Crop() geometry.Rect { return s.crop }

func (s *Session) SetZoom(z float64) {
	s.zoom = z
	s.clampZoom()
}

func (s *Session) Zoom() float64 { return s.zoom }

func (s *Session) MinZoom() float64 {
	return geometry.MinZoom(s.crop, s.srcW, s.srcH, s.rotation)
}

func (s *Session) clampZoom() {
	if min := s.MinZoom(); s.zoom < min {
		s.zoom = min
	}
}
