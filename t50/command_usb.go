package t50

// USB command frames are 8 bytes (10 for two-parameter commands),
// written as a 64-byte zero-padded HID report, with big-endian
// parameters and no checksum. As with the BT builder, this one is
// never shared with it: swapping endianness between the two would
// silently corrupt every on-wire parameter.

const (
	usbCommandFrameSize1 = 8  // one-parameter command
	usbCommandFrameSize2 = 10 // two-parameter command
)

// buildCommandUSB builds a one-parameter USB command frame.
func buildCommandUSB(cmd byte, param uint16) []byte {
	f := make([]byte, usbCommandFrameSize1)
	f[0], f[1] = 0xC0, 0x40
	f[2], f[3] = byte(param>>8), byte(param)
	f[4] = cmd
	f[5] = 0x00
	f[6] = usbCommandFrameSize1
	f[7] = 0x00
	return f
}

// buildCommandUSB2 builds a two-parameter USB command frame.
func buildCommandUSB2(cmd byte, param, param2 uint16) []byte {
	f := make([]byte, usbCommandFrameSize2)
	f[0], f[1] = 0xC0, 0x40
	f[2], f[3] = byte(param>>8), byte(param)
	f[4] = cmd
	f[5] = 0x00
	f[6] = usbCommandFrameSize2
	f[7] = 0x00
	f[8], f[9] = byte(param2>>8), byte(param2)
	return f
}
