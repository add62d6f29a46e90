package printbuf

import "testing"

func TestSplitBufferCountAndFlags(t *testing.T) {
	bpl := 48
	totalCols := 200
	canvas := make([]byte, bpl*totalCols)
	for i := range canvas {
		canvas[i] = byte(i)
	}
	opts := Options{MarginTopDots: 1, MarginBottomDots: 1, Density: 7}

	bufs, err := Split(canvas, bpl, totalCols, opts)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	maxCols := 4074 / bpl   // the firmware-dictated column-chunking limit, per spec §4.6/§8
	usable := totalCols - 2 // one dot margin each side
	wantBufs := (usable + maxCols - 1) / maxCols
	if len(bufs) != wantBufs {
		t.Fatalf("got %d buffers, want %d", len(bufs), wantBufs)
	}

	for i, b := range bufs {
		if len(b) != Size {
			t.Fatalf("buffer %d: len %d, want %d", i, len(b), Size)
		}
		pageStart := b[2]&0x02 != 0
		pageEnd := b[2]&0x04 != 0
		prtEnd := b[2]&0x08 != 0
		if i == 0 && !pageStart {
			t.Fatalf("buffer 0: page_st not set")
		}
		if i != 0 && pageStart {
			t.Fatalf("buffer %d: page_st unexpectedly set", i)
		}
		if i == len(bufs)-1 {
			if !pageEnd || !prtEnd {
				t.Fatalf("last buffer: page_end=%v prt_end=%v, want both true", pageEnd, prtEnd)
			}
		} else {
			if pageEnd || prtEnd {
				t.Fatalf("buffer %d: page_end/prt_end unexpectedly set", i)
			}
		}
	}
}

func TestSplitChecksumMatchesRecompute(t *testing.T) {
	bpl := 48
	totalCols := 10
	canvas := make([]byte, bpl*totalCols)
	for i := range canvas {
		canvas[i] = 0xAA
	}
	bufs, err := Split(canvas, bpl, totalCols, Options{MarginTopDots: 1, MarginBottomDots: 1, Density: 3})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	for i, b := range bufs {
		stored := uint16(b[0]) | uint16(b[1])<<8
		chunkCols := int(b[4]) | int(b[5])<<8
		dataEnd := DataOffset + chunkCols*bpl
		got := Checksum(b, dataEnd)
		if got != stored {
			t.Fatalf("buffer %d: checksum mismatch stored=%#04x recomputed=%#04x", i, stored, got)
		}
	}
}

func TestSplitUsesFirmwareColumnLimitNotHeaderDerivedOne(t *testing.T) {
	bpl := 48
	// Margins of 0 clamp to 1 dot each, so 87 canvas columns leave 85
	// printable ones. ⌊4074/48⌋=84 cols/buffer, so those 85 must span two
	// buffers; ⌊4082/48⌋=85 would wrongly fit them in one.
	totalCols := 87
	canvas := make([]byte, bpl*totalCols)
	bufs, err := Split(canvas, bpl, totalCols, Options{MarginTopDots: 0, MarginBottomDots: 0, Density: 0})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(bufs) != 2 {
		t.Fatalf("got %d buffers for 85 columns at bpl=48, want 2 (⌊4074/48⌋=84 cols/buffer)", len(bufs))
	}
}

func TestSplitMarginClamping(t *testing.T) {
	bpl := 48
	totalCols := 2000
	canvas := make([]byte, bpl*totalCols)
	bufs, err := Split(canvas, bpl, totalCols, Options{MarginTopDots: 0, MarginBottomDots: 5000, Density: 0})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(bufs) == 0 {
		t.Fatalf("expected at least one buffer after clamping margins")
	}
}

func TestSplitRejectsEmptyCanvas(t *testing.T) {
	if _, err := Split(nil, 0, 0, Options{}); err == nil {
		t.Fatalf("expected error for empty canvas")
	}
}

func TestSplitRejectsMarginsConsumingEntireCanvas(t *testing.T) {
	bpl := 48
	totalCols := 2 // smaller than the two 1-dot clamped margins would leave room for
	canvas := make([]byte, bpl*totalCols)
	if _, err := Split(canvas, bpl, totalCols, Options{MarginTopDots: 1, MarginBottomDots: 1, Density: 0}); err == nil {
		t.Fatalf("expected error when margins leave nothing to print")
	}
}

func TestPageRegByte1EncodesDensityAndMaterial(t *testing.T) {
	b := pageRegByte1(9)
	if density := (b >> 2) & 0x0F; density != 9 {
		t.Fatalf("density bits = %d, want 9", density)
	}
	if material := (b >> 6) & 0x03; material != 1 {
		t.Fatalf("material bits = %d, want 1", material)
	}
}
