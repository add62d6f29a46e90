// Package raster converts a packed monochrome bitmap between the two
// layouts this printer family's protocol cares about: the row-major,
// MSB-first layout a raster source hands us, and the column-major,
// LSB-first layout the printhead consumes once centered on its fixed
// 384-dot canvas.
//
// It is the generalized descendant of the teacher repository's imgutil
// package: where imgutil wraps an image.Image to lazily rotate or scale
// pixels, this package operates directly on already-packed 1bpp bytes,
// because the dithering stage that would produce them is out of scope
// here.
package raster

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidParam is returned for malformed dimensions or empty input.
var ErrInvalidParam = errors.New("raster: invalid parameter")

// ToColumnMajor takes a row-major, MSB-first bitmap of w×h pixels and
// returns the same pixels repacked LSB-first, reinterpreted as outCols
// columns of outBPL bytes each. outCols equals h; outBPL equals the
// input's bytes-per-row, ⌈w/8⌉. This is a −90° rotation folded into a
// repacking: no bytes are moved, only bit order within each byte flips.
func ToColumnMajor(input []byte, w, h int) (out []byte, outCols, outBPL int) {
	inBPL := (w + 7) / 8
	outBPL = inBPL
	outCols = h
	out = make([]byte, outBPL*outCols)
	for y := 0; y < h; y++ {
		rowOff := y * inBPL
		for x := 0; x < w; x++ {
			bit := (input[rowOff+x/8] >> uint(7-x%8)) & 1
			if bit != 0 {
				out[rowOff+x/8] |= 1 << uint(x%8)
			}
		}
	}
	return out, outCols, outBPL
}

// CenterInPrinthead places numCols columns, each inDots LSB-first bits
// wide, into a canvas canvasDots wide, horizontally centering each
// column with zero padding. The centering offset is an integer
// division, which biases one dot to the left when the gap is odd; this
// reproduces the source driver's behavior exactly rather than rounding
// it away (see the design notes on this open question). If inDots is
// greater than or equal to canvasDots, the column is truncated on the
// right: centering is skipped and the leftmost canvasDots bits are
// kept.
func CenterInPrinthead(in []byte, numCols, inDots, canvasDots int) (canvas []byte, canvasBPL int) {
	canvasBPL = (canvasDots + 7) / 8
	canvas = make([]byte, canvasBPL*numCols)
	if inDots <= 0 || numCols <= 0 {
		return canvas, canvasBPL
	}

	inBPL := (inDots + 7) / 8
	offset := (canvasDots - inDots) / 2
	if inDots >= canvasDots {
		offset = 0
	}

	for col := 0; col < numCols; col++ {
		inOff := col * inBPL
		outOff := col * canvasBPL
		for d := 0; d < inDots; d++ {
			dot := offset + d
			if dot < 0 || dot >= canvasDots {
				continue
			}
			bit := (in[inOff+d/8] >> uint(d%8)) & 1
			if bit != 0 {
				canvas[outOff+dot/8] |= 1 << uint(dot%8)
			}
		}
	}
	return canvas, canvasBPL
}

// FromImage packs an image.Image into a row-major, MSB-first 1bpp
// bitmap using a flat luminance threshold. It is a crude stand-in for
// the self-contained Bayer-dithering stage this repository does not
// implement (that stage is a non-goal here); it exists so that
// cmd/t50print and the tests in this package have a quick way to turn
// an arbitrary picture into raster input, grounded on the same
// per-pixel RGBA thresholding the teacher's makeBitmapData performs
// inline rather than through a dedicated dithering pass.
func FromImage(img image.Image, threshold uint8) (data []byte, w, h int) {
	b := img.Bounds()
	w, h = b.Dx(), b.Dy()
	bpl := (w + 7) / 8
	data = make([]byte, bpl*h)
	thr := uint32(threshold) << 8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			lum := (r*299 + g*587 + bl*114) / 1000
			if lum < thr {
				data[y*bpl+x/8] |= 1 << uint(7-x%8)
			}
		}
	}
	return data, w, h
}

// BytesPerLine returns ⌈w/8⌉, the row/column stride used throughout
// this package.
func BytesPerLine(w int) int {
	return (w + 7) / 8
}

// Validate reports whether data is large enough to hold h rows of a
// w-pixel-wide, MSB-first bitmap.
func Validate(data []byte, w, h int) error {
	want := BytesPerLine(w) * h
	if len(data) < want {
		return fmt.Errorf("%w: need %d bytes for %d×%d, got %d", ErrInvalidParam, want, w, h, len(data))
	}
	return nil
}
