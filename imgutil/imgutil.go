// Package imgutil provides image.Image wrappers used to prepare a
// picture for the printer's fixed 384-dot printhead before raster
// conversion: integer upscaling, sideways rotation, and DPI-aware
// scaling to a target dot width.
package imgutil

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Scale is an integer nearest-neighbor upscaling image.Image wrapper,
// useful for blowing up a small pixel-art source without blurring it.
type Scale struct {
	Image image.Image
	Scale int
}

// ColorModel implements image.Image.
func (s *Scale) ColorModel() color.Model {
	return s.Image.ColorModel()
}

// Bounds implements image.Image.
func (s *Scale) Bounds() image.Rectangle {
	r := s.Image.Bounds()
	return image.Rect(r.Min.X*s.Scale, r.Min.Y*s.Scale,
		r.Max.X*s.Scale, r.Max.Y*s.Scale)
}

// At implements image.Image.
func (s *Scale) At(x, y int) color.Color {
	if x < 0 {
		x = x - s.Scale + 1
	}
	if y < 0 {
		y = y - s.Scale + 1
	}
	return s.Image.At(x/s.Scale, y/s.Scale)
}

// LeftRotate is a 90 degree rotating image.Image wrapper, used when a
// label should print sideways along the feed direction.
type LeftRotate struct {
	Image image.Image
}

// ColorModel implements image.Image.
func (lr *LeftRotate) ColorModel() color.Model {
	return lr.Image.ColorModel()
}

// Bounds implements image.Image.
func (lr *LeftRotate) Bounds() image.Rectangle {
	r := lr.Image.Bounds()
	// Min is inclusive, Max is exclusive.
	return image.Rect(r.Min.Y, -(r.Max.X - 1), r.Max.Y, -(r.Min.X - 1))
}

// At implements image.Image.
func (lr *LeftRotate) At(x, y int) color.Color {
	return lr.Image.At(-y, x)
}

// ScaleToDotWidth resizes img to targetDots wide, preserving aspect
// ratio, using a bilinear filter. Unlike Scale, which only does
// integer nearest-neighbor blow-ups, this is for fitting an arbitrary
// photo or document render to the printhead's fixed dot width, the way
// cmd/t50print needs before raster.FromImage thresholds it.
func ScaleToDotWidth(img image.Image, targetDots int) image.Image {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || targetDots == srcW {
		return img
	}
	targetH := int(float64(srcH) * float64(targetDots) / float64(srcW))
	if targetH < 1 {
		targetH = 1
	}
	dst := image.NewGray(image.Rect(0, 0, targetDots, targetH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
