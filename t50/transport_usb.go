package t50

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const (
	usbCmdOuterDeadline = 2 * time.Second
	usbCmdInnerPoll     = 20 * time.Millisecond
	usbCmdTrailingWait  = 50 * time.Millisecond
)

// TransportUSB drives the printer over a hidraw-like USB HID device
// opened read-write. Unlike TransportBT it has no identification
// commands: ParseDeviceName, ParseFirmwareVersion and ParseVersion
// always report false.
type TransportUSB struct {
	file *os.File
	fd   int
}

// OpenUSB opens path (e.g. "/dev/hidrawN") read-write.
func OpenUSB(path string) (*TransportUSB, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	return &TransportUSB{file: f, fd: int(f.Fd())}, nil
}

// pad64 zero-pads frame up to usbReportSize, truncating nothing (a
// command frame never exceeds it).
func pad64(frame []byte) []byte {
	if len(frame) >= usbReportSize {
		return frame
	}
	out := make([]byte, usbReportSize)
	copy(out, frame)
	return out
}

func (t *TransportUSB) writeReport(report []byte) error {
	_, err := unix.Write(t.fd, pad64(report))
	return err
}

func (t *TransportUSB) readReport(ctx context.Context) ([]byte, error) {
	deadline := usbCmdOuterDeadline
	if d, ok := ctx.Deadline(); ok {
		if remaining := time.Until(d); remaining < deadline {
			deadline = remaining
		}
	}
	resp, err := pollRead(t.fd, deadline, usbCmdInnerPoll, usbCmdTrailingWait)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return resp, nil
}

// SendCmd implements Transport.
func (t *TransportUSB) SendCmd(ctx context.Context, cmd byte, param uint16) ([]byte, error) {
	if err := t.writeReport(buildCommandUSB(cmd, param)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return t.readReport(ctx)
}

// SendCmdTwo implements Transport.
func (t *TransportUSB) SendCmdTwo(ctx context.Context, cmd byte, param, param2 uint16) ([]byte, error) {
	if err := t.writeReport(buildCommandUSB2(cmd, param, param2)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return t.readReport(ctx)
}

// SendBulkData implements Transport. USB bulk reports carry no
// per-report acknowledgement; readFinalResponse, when true, polls
// once after the last report is written.
func (t *TransportUSB) SendBulkData(ctx context.Context, data []byte, readFinalResponse bool) ([]byte, error) {
	chunks := buildDataFramesUSB(data)
	for i, chunk := range chunks {
		if err := t.writeReport(chunk); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		if i == len(chunks)-1 && readFinalResponse {
			return t.readReport(ctx)
		}
	}
	return nil, nil
}

// ParseStatus implements Transport.
func (t *TransportUSB) ParseStatus(resp []byte) (*Status, error) { return ParseStatusUSB(resp) }

// ParseMaterial implements Transport.
func (t *TransportUSB) ParseMaterial(resp []byte) (*MaterialInfo, error) {
	return ParseMaterialUSB(resp)
}

// ValidateResponse implements Transport.
func (t *TransportUSB) ValidateResponse(resp []byte, expectedCmd byte) error {
	return ValidateResponseUSB(resp)
}

// ParseDeviceName implements Transport. USB responses never carry a
// device name.
func (t *TransportUSB) ParseDeviceName(resp []byte) (string, bool) { return "", false }

// ParseFirmwareVersion implements Transport.
func (t *TransportUSB) ParseFirmwareVersion(resp []byte) (string, bool) { return "", false }

// ParseVersion implements Transport.
func (t *TransportUSB) ParseVersion(resp []byte) (string, bool) { return "", false }

// Close implements Transport.
func (t *TransportUSB) Close() error { return t.file.Close() }
