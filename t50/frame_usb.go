package t50

const usbReportSize = 64

// buildDataFramesUSB chunks payload into plain 64-byte HID reports: no
// index, no checksum, no wrapping frame. The last chunk may be
// shorter than 64 bytes; the transport pads it on write, the same way
// it pads command frames.
func buildDataFramesUSB(payload []byte) [][]byte {
	if len(payload) == 0 {
		return [][]byte{{}}
	}
	var chunks [][]byte
	for start := 0; start < len(payload); start += usbReportSize {
		end := start + usbReportSize
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[start:end])
	}
	return chunks
}
