package t50

import "fmt"

const (
	btDataPacketSize    = 506
	btDataChunkSize     = 500
	btTransferFrameSize = 512
)

// buildDataFramesBT splits payload into ⌈len/500⌉ numbered 506-byte
// data packets, each wrapped in a 512-byte transfer frame. The BT
// packet's total field is a single byte in the firmware's protocol,
// so a payload requiring more than 255 packets (≈125 KB compressed)
// is rejected outright rather than silently overflowing — see the
// design notes on this open question.
func buildDataFramesBT(payload []byte) ([][]byte, error) {
	n := (len(payload) + btDataChunkSize - 1) / btDataChunkSize
	if n == 0 {
		n = 1
	}
	if n > 255 {
		return nil, fmt.Errorf("%w: compressed stream needs %d packets, BT total field only holds 255", ErrInvalidParam, n)
	}

	frames := make([][]byte, n)
	for i := 0; i < n; i++ {
		start := i * btDataChunkSize
		end := start + btDataChunkSize
		if end > len(payload) {
			end = len(payload)
		}

		packet := make([]byte, btDataPacketSize)
		packet[0], packet[1] = 0xAA, 0xBB
		packet[4] = byte(i)
		packet[5] = byte(n)
		copy(packet[6:], payload[start:end])

		cs := checksumBTDataPacket(packet)
		packet[2], packet[3] = byte(cs), byte(cs>>8)

		frame := make([]byte, btTransferFrameSize)
		frame[0], frame[1] = 0x7E, 0x5A
		frame[2], frame[3] = 0xFC, 0x01
		frame[4] = 0x10
		frame[5] = 0x02
		copy(frame[6:], packet)

		frames[i] = frame
	}
	return frames, nil
}

// checksumBTDataPacket sums bytes 4..506 of a data packet (index,
// total and the 500-byte payload region, zero-padding included).
func checksumBTDataPacket(packet []byte) uint16 {
	var sum uint32
	for _, b := range packet[4:btDataPacketSize] {
		sum += uint32(b)
	}
	return uint16(sum)
}
