// Package render produces print-ready crops: it rasterizes a source photo
// rotated by the session angle, extracts the crop rectangle from the rotated
// bounding box and resamples it to the requested output size.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/fotoflesz/printshop-backend/internal/geometry"
	"github.com/fotoflesz/printshop-backend/internal/platform/logger"
)

var ErrDecode = errors.New("decode source image")

const (
	// QualityExport keeps the final artifact near-lossless.
	QualityExport = 1.0
	// QualityPreview trades fidelity for speed on the live preview path.
	QualityPreview = 0.8
)

type Renderer struct {
	log *logger.Logger
}

func NewRenderer(log *logger.Logger) *Renderer {
	return &Renderer{log: log.With("component", "Renderer")}
}

// Decode reads a source image from raw bytes. JPEG, PNG and GIF are accepted.
func Decode(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Render rotates src by angleDeg about its center, extracts crop (expressed in
// rotated-bounding-box coordinates), resamples it to crop.Width×outScale by
// crop.Height×outScale (at least 1×1) and encodes the result as JPEG at the
// given quality (0..1].
func (r *Renderer) Render(src image.Image, crop geometry.Rect, angleDeg, outScale, quality float64) ([]byte, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrDecode)
	}
	if crop.Empty() {
		return nil, fmt.Errorf("empty crop rectangle")
	}

	b := src.Bounds()
	srcW := float64(b.Dx())
	srcH := float64(b.Dy())
	bboxWf, bboxHf := geometry.RotatedSize(srcW, srcH, angleDeg)
	bboxW := int(math.Ceil(bboxWf))
	bboxH := int(math.Ceil(bboxHf))

	// Rotated intermediate raster sized to the bounding box.
	dc := gg.NewContext(bboxW, bboxH)
	dc.RotateAbout(geometry.Radians(angleDeg), float64(bboxW)/2, float64(bboxH)/2)
	dc.DrawImageAnchored(src, bboxW/2, bboxH/2, 0.5, 0.5)
	rotated := dc.Image()

	cropped, err := extract(rotated, crop)
	if err != nil {
		return nil, err
	}

	outW := scaleDim(crop.Width, outScale)
	outH := scaleDim(crop.Height, outScale)
	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality(quality)}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	r.log.Debug("rendered crop",
		"angle_deg", angleDeg,
		"out_w", outW,
		"out_h", outH,
		"bytes", buf.Len(),
	)
	return buf.Bytes(), nil
}

// extract copies the crop sub-rectangle out of the rotated raster, clamped to
// the raster bounds.
func extract(rotated image.Image, crop geometry.Rect) (*image.RGBA, error) {
	cropW := int(math.Round(crop.Width))
	cropH := int(math.Round(crop.Height))
	x0 := int(math.Round(crop.X))
	y0 := int(math.Round(crop.Y))

	rb := rotated.Bounds()
	srcRect := image.Rect(x0, y0, x0+cropW, y0+cropH).Intersect(rb)
	if srcRect.Empty() {
		return nil, fmt.Errorf("crop rectangle %v lies outside rotated bounds %v", crop, rb)
	}

	out := image.NewRGBA(image.Rect(0, 0, cropW, cropH))
	draw.Draw(out, image.Rect(0, 0, srcRect.Dx(), srcRect.Dy()), rotated, srcRect.Min, draw.Src)
	return out, nil
}

func scaleDim(v, scale float64) int {
	d := int(math.Round(v * scale))
	if d < 1 {
		return 1
	}
	return d
}

func jpegQuality(q float64) int {
	if q <= 0 || q > 1 {
		return 100
	}
	quality := int(math.Round(q * 100))
	if quality < 1 {
		quality = 1
	}
	return quality
}
