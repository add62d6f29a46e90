package raster

import (
	"image"
	"image/color"
	"math/bits"
	"testing"
)

func countBits(data []byte) int {
	n := 0
	for _, b := range data {
		n += bits.OnesCount8(b)
	}
	return n
}

func TestToColumnMajorPreservesPixelCount(t *testing.T) {
	cases := []struct{ w, h int }{
		{8, 8}, {16, 4}, {24, 1}, {40, 30}, {9, 5}, {1, 1}, {3, 7},
	}
	for _, c := range cases {
		bpl := BytesPerLine(c.w)
		input := make([]byte, bpl*c.h)
		for i := range input {
			input[i] = 0xFF
		}
		out, cols, obpl := ToColumnMajor(input, c.w, c.h)
		if cols != c.h {
			t.Fatalf("w=%d h=%d: outCols = %d, want %d", c.w, c.h, cols, c.h)
		}
		if obpl != bpl {
			t.Fatalf("w=%d h=%d: outBPL = %d, want %d", c.w, c.h, obpl, bpl)
		}
		if c.w%8 == 0 {
			if got, want := countBits(out), countBits(input); got != want {
				t.Fatalf("w=%d h=%d: bit count %d, want %d", c.w, c.h, got, want)
			}
		} else {
			// Non-aligned widths: the padding bits in the last byte of
			// each row must not appear as set bits anywhere after
			// repacking (they were never part of the w-pixel image).
			for row := 0; row < c.h; row++ {
				lastByte := out[row*obpl+obpl-1]
				usedBits := c.w % 8
				mask := byte(0xFF) << uint(usedBits)
				if lastByte&mask != 0 {
					t.Fatalf("w=%d h=%d: stray high bits in last byte of row %d", c.w, c.h, row)
				}
			}
		}
	}
}

func TestCenterInPrintheadWidthAndBitCount(t *testing.T) {
	cases := []struct{ inDots, canvasDots, numCols int }{
		{64, 384, 10}, {384, 384, 3}, {1, 384, 5}, {383, 384, 2},
	}
	for _, c := range cases {
		inBPL := BytesPerLine(c.inDots)
		in := make([]byte, inBPL*c.numCols)
		for i := range in {
			in[i] = 0xFF
		}
		// Clear high padding bits beyond inDots within each column so
		// the bit count is exactly numCols*inDots.
		for col := 0; col < c.numCols; col++ {
			for d := c.inDots; d < inBPL*8; d++ {
				in[col*inBPL+d/8] &^= 1 << uint(d%8)
			}
		}
		canvas, bpl := CenterInPrinthead(in, c.numCols, c.inDots, c.canvasDots)
		if bpl != 48 {
			t.Fatalf("inDots=%d: canvasBPL = %d, want 48", c.inDots, bpl)
		}
		if len(canvas) != bpl*c.numCols {
			t.Fatalf("inDots=%d: len(canvas) = %d, want %d", c.inDots, len(canvas), bpl*c.numCols)
		}
		if c.inDots <= c.canvasDots {
			want := countBits(in)
			if got := countBits(canvas); got != want {
				t.Fatalf("inDots=%d: bit count %d, want %d", c.inDots, got, want)
			}
		}
	}
}

func TestCenterInPrintheadOddGapBiasesLeft(t *testing.T) {
	// A single dot, canvas of 4 dots: gap is 3, biased left means the
	// dot lands at offset 1 (integer division 3/2 = 1), not offset 2.
	in := []byte{0x01} // bit 0 set
	canvas, bpl := CenterInPrinthead(in, 1, 1, 4)
	if bpl != 1 {
		t.Fatalf("canvasBPL = %d, want 1", bpl)
	}
	if canvas[0] != 0x02 {
		t.Fatalf("canvas[0] = %#02x, want 0x02 (dot at offset 1)", canvas[0])
	}
}

func TestCenterInPrintheadTruncatesRight(t *testing.T) {
	// inDots > canvasDots: expect only the first canvasDots bits kept,
	// starting at offset 0 (no centering).
	inDots, canvasDots := 20, 8
	inBPL := BytesPerLine(inDots)
	in := make([]byte, inBPL)
	for d := 0; d < inDots; d++ {
		in[d/8] |= 1 << uint(d%8)
	}
	canvas, bpl := CenterInPrinthead(in, 1, inDots, canvasDots)
	want := byte(0xFF) // first 8 dots, all set
	if canvas[0] != want || bpl != 1 {
		t.Fatalf("canvas[0] = %#02x bpl=%d, want %#02x bpl=1", canvas[0], bpl, want)
	}
}

func TestFromImageSolidBlack(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	data, w, h := FromImage(img, 128)
	if w != 16 || h != 2 {
		t.Fatalf("got %dx%d, want 16x2", w, h)
	}
	for _, b := range data {
		if b != 0xFF {
			t.Fatalf("expected all-black packing, got %#02x", b)
		}
	}
}
