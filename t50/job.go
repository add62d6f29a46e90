package t50

import (
	"fmt"

	"github.com/halfbyte/t50pro/lzma"
	"github.com/halfbyte/t50pro/printbuf"
	"github.com/halfbyte/t50pro/raster"
)

// PrintheadDots is the fixed printhead width this device family uses,
// regardless of label size: 48 mm at 8 dots/mm.
const PrintheadDots = 384

// Job accumulates one page's raster data from NewJob until
// Engine.PrintPage builds and sends it. Its raster buffer is zeroed at
// creation and mutated in place by WriteLine.
type Job struct {
	width, height int
	bpl           int
	raster        []byte
	opts          printbuf.Options
}

// NewJob allocates a zeroed raster buffer for a width×height page.
func NewJob(width, height int, opts printbuf.Options) (*Job, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty job dimensions %dx%d", ErrInvalidParam, width, height)
	}
	bpl := raster.BytesPerLine(width)
	return &Job{
		width:  width,
		height: height,
		bpl:    bpl,
		raster: make([]byte, bpl*height),
		opts:   opts,
	}, nil
}

// WriteLine copies a row-major, MSB-first scanline into row y of the
// job's raster buffer.
func (j *Job) WriteLine(y int, line []byte) error {
	if y < 0 || y >= j.height {
		return fmt.Errorf("%w: row %d out of range [0,%d)", ErrInvalidParam, y, j.height)
	}
	if err := raster.Validate(line, j.width, 1); err != nil {
		return err
	}
	copy(j.raster[y*j.bpl:(y+1)*j.bpl], line[:j.bpl])
	return nil
}

// buildBuffers runs the raster → column-major → centered-canvas →
// print-buffer stages of the pipeline, without compressing.
func (j *Job) buildBuffers() ([][]byte, error) {
	colMajor, numCols, _ := raster.ToColumnMajor(j.raster, j.width, j.height)
	canvas, canvasBPL := raster.CenterInPrinthead(colMajor, numCols, j.width, PrintheadDots)

	buffers, err := printbuf.Split(canvas, canvasBPL, numCols, j.opts)
	if err != nil {
		return nil, err
	}
	if len(buffers) == 0 {
		return nil, fmt.Errorf("%w: page produced no print buffers", ErrInvalidParam)
	}
	return buffers, nil
}

// build runs the full raster → column-major → centered canvas →
// print buffers → LZMA pipeline, returning the compressed stream, the
// average compressed bytes per buffer (input to CalcSpeed), and the
// buffer count.
func (j *Job) build() (compressed []byte, avgPerBuffer float64, nBuffers int, err error) {
	buffers, err := j.buildBuffers()
	if err != nil {
		return nil, 0, 0, err
	}

	var flat []byte
	for _, b := range buffers {
		flat = append(flat, b...)
	}

	compressed = lzma.CompressAlone(flat)
	avgPerBuffer = float64(len(compressed)) / float64(len(buffers))
	return compressed, avgPerBuffer, len(buffers), nil
}
