package t50

import "testing"

func TestBuildCommandBTScenario(t *testing.T) {
	f := buildCommandBT(0x11, 0x1234)
	want := [btCommandFrameSize]byte{
		0x7E, 0x5A, 0x0C, 0x00, 0x10, 0x01, 0xAA, 0x11,
		0x47, 0x00, 0x00, 0x01, 0x34, 0x12, 0x00, 0x00,
	}
	if f != want {
		t.Fatalf("got % x, want % x", f, want)
	}
}

func TestChecksumBTOverBytes10To16(t *testing.T) {
	f := buildCommandBT2(0x30, 0x0001, 0x0203)
	cs := checksumBT(f[:])
	want := uint16(0 + 1 + 0x01 + 0x00 + 0x03 + 0x02)
	if cs != want {
		t.Fatalf("checksum = %#04x, want %#04x", cs, want)
	}
}

func TestBuildCommandUSBSingleParam(t *testing.T) {
	f := buildCommandUSB(0x11, 0x1234)
	want := []byte{0xC0, 0x40, 0x12, 0x34, 0x11, 0x00, 0x08, 0x00}
	if len(f) != len(want) {
		t.Fatalf("len = %d, want %d", len(f), len(want))
	}
	for i := range want {
		if f[i] != want[i] {
			t.Fatalf("byte %d = %#02x, want %#02x", i, f[i], want[i])
		}
	}
}

func TestBuildCommandUSBTwoParam(t *testing.T) {
	f := buildCommandUSB2(0x10, 0x0100, 0x003C)
	want := []byte{0xC0, 0x40, 0x01, 0x00, 0x10, 0x00, 0x0A, 0x00, 0x00, 0x3C}
	if len(f) != len(want) {
		t.Fatalf("len = %d, want %d", len(f), len(want))
	}
	for i := range want {
		if f[i] != want[i] {
			t.Fatalf("byte %d = %#02x, want %#02x", i, f[i], want[i])
		}
	}
}

func TestBuildDataFramesBTChecksumAndCount(t *testing.T) {
	payload := make([]byte, 1200) // 3 packets of 500, 500, 200
	for i := range payload {
		payload[i] = byte(i)
	}
	frames, err := buildDataFramesBT(payload)
	if err != nil {
		t.Fatalf("buildDataFramesBT: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	for i, frame := range frames {
		if len(frame) != btTransferFrameSize {
			t.Fatalf("frame %d: len %d, want %d", i, len(frame), btTransferFrameSize)
		}
		if frame[0] != 0x7E || frame[1] != 0x5A || frame[4] != 0x10 || frame[5] != 0x02 {
			t.Fatalf("frame %d: bad transfer frame header", i)
		}
		packet := frame[6:]
		if packet[0] != 0xAA || packet[1] != 0xBB {
			t.Fatalf("frame %d: bad packet magic", i)
		}
		if int(packet[4]) != i {
			t.Fatalf("frame %d: index byte = %d, want %d", i, packet[4], i)
		}
		if int(packet[5]) != 3 {
			t.Fatalf("frame %d: total byte = %d, want 3", i, packet[5])
		}
		stored := uint16(packet[2]) | uint16(packet[3])<<8
		if got := checksumBTDataPacket(packet); got != stored {
			t.Fatalf("frame %d: checksum mismatch stored=%#04x recomputed=%#04x", i, stored, got)
		}
	}
}

func TestBuildDataFramesBTRejectsOverflow(t *testing.T) {
	payload := make([]byte, 256*btDataChunkSize) // needs 256 packets > 255
	if _, err := buildDataFramesBT(payload); err == nil {
		t.Fatalf("expected overflow error for 256-packet payload")
	}
}

func TestBuildDataFramesUSBChunking(t *testing.T) {
	payload := make([]byte, 130)
	chunks := buildDataFramesUSB(payload)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 64 || len(chunks[1]) != 64 || len(chunks[2]) != 2 {
		t.Fatalf("chunk sizes = %d,%d,%d, want 64,64,2", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}
