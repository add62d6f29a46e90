package t50

import "context"

// Transport is the capability the engine drives: either of the two
// concrete variants, TransportBT or TransportUSB. The two differ in
// framing, endianness, checksum presence and which identification
// commands are available, so neither tries to share an encoder with
// the other; this interface is where that difference is papered over.
type Transport interface {
	SendCmd(ctx context.Context, cmd byte, param uint16) ([]byte, error)
	SendCmdTwo(ctx context.Context, cmd byte, param, param2 uint16) ([]byte, error)
	SendBulkData(ctx context.Context, data []byte, readFinalResponse bool) ([]byte, error)

	ParseStatus(resp []byte) (*Status, error)
	ParseMaterial(resp []byte) (*MaterialInfo, error)
	ValidateResponse(resp []byte, expectedCmd byte) error

	// ParseDeviceName, ParseFirmwareVersion and ParseVersion return
	// ("", false) on USB: the HID response format does not carry
	// these.
	ParseDeviceName(resp []byte) (string, bool)
	ParseFirmwareVersion(resp []byte) (string, bool)
	ParseVersion(resp []byte) (string, bool)

	Close() error
}

// DeviceOpener resolves a device URI — e.g. "btrfcomm://.../AA:BB:..."
// or "usbhid:///dev/hidrawN" — to an open Transport. Implementing one
// for a real desktop Bluetooth/USB stack is outside this package;
// cmd/t50print and cmd/t50info do not implement it either, each
// resolving its -device URI with a plain openTransport function.
type DeviceOpener interface {
	Open(ctx context.Context, uri string) (Transport, error)
}

// RasterSource delivers scanlines with a known header. When BitsPerPixel
// is 8, a grayscale-to-1bpp dithering stage (out of scope for this
// package) must run between it and raster.ToColumnMajor.
type RasterSource interface {
	Width() int
	Height() int
	BytesPerLine() int
	BitsPerPixel() int
	// ReadLine fills buf (BytesPerLine() bytes) with scanline y.
	ReadLine(y int, buf []byte) error
}

// StatusSink receives the reason categories mapped from a parsed
// Status by MapReasons. Nothing in this package calls it: Engine does
// no housekeeping polling of its own, and an external poller can use
// Engine.IsPrinting to stay off the wire during a bulk transfer.
type StatusSink interface {
	Reasons(reasons []string)
}
