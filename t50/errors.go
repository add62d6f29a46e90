package t50

import "errors"

// Error kinds returned by this package. Callers match against these
// with errors.Is; wrapped context is added with fmt.Errorf("%w", ...).
var (
	// ErrInvalidResponse means a frame failed magic/command validation,
	// or was too short to decode.
	ErrInvalidResponse = errors.New("t50: invalid response")

	// ErrCompression means the LZMA encoder rejected its parameters or
	// failed mid-stream.
	ErrCompression = errors.New("t50: compression failed")

	// ErrInvalidParam means a malformed BT address, an unsupported
	// bits-per-pixel, an empty buffer list, or a similar caller error.
	ErrInvalidParam = errors.New("t50: invalid parameter")

	// ErrIO wraps an underlying socket or file error.
	ErrIO = errors.New("t50: i/o error")

	// ErrTimeout means a poll loop exhausted its attempt budget.
	ErrTimeout = errors.New("t50: timed out waiting for the device")

	// ErrDeviceError means the printer reported one or more status
	// error flags while the engine was waiting on it.
	ErrDeviceError = errors.New("t50: device reported an error")
)
