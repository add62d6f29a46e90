package t50

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const (
	btDefaultChannel       = 1
	btCmdOuterDeadline     = 2 * time.Second
	btCmdInnerPoll         = 20 * time.Millisecond
	btCmdTrailingWait      = 50 * time.Millisecond
	btCmdWriteChunk        = 512
	btCmdInterChunkDelay   = 10 * time.Millisecond
	btDataSubChunk         = 128
	btDataInterChunkDelay  = 10 * time.Millisecond
	btBufFullFollowupDelay = 20 * time.Millisecond
)

// TransportBT drives the printer over a Bluetooth RFCOMM stream
// socket. It owns the socket for its entire lifetime; no two engines
// may share one.
type TransportBT struct {
	file *os.File
	fd   int
}

// OpenBT connects to addr (an "XX:XX:XX:XX:XX:XX" BD_ADDR) on the
// given RFCOMM channel (0 selects the default, channel 1).
func OpenBT(addr string, channel int) (*TransportBT, error) {
	if channel == 0 {
		channel = btDefaultChannel
	}
	rev, err := parseBDAddr(addr)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_STREAM, unix.BTPROTO_RFCOMM)
	if err != nil {
		return nil, fmt.Errorf("%w: opening RFCOMM socket: %v", ErrIO, err)
	}
	sa := &unix.SockaddrRFCOMM{Addr: rev, Channel: uint8(channel)}
	if err := unix.Connect(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: connecting to %s channel %d: %v", ErrIO, addr, channel, err)
	}

	return &TransportBT{file: os.NewFile(uintptr(fd), "rfcomm"), fd: fd}, nil
}

func (t *TransportBT) sendCmdFrame(ctx context.Context, frame []byte) ([]byte, error) {
	if err := drainNonBlocking(t.fd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := writeChunks(t.fd, frame, btCmdWriteChunk, btCmdInterChunkDelay); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	deadline := btCmdOuterDeadline
	if d, ok := ctx.Deadline(); ok {
		if remaining := time.Until(d); remaining < deadline {
			deadline = remaining
		}
	}
	resp, err := pollRead(t.fd, deadline, btCmdInnerPoll, btCmdTrailingWait)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return resp, nil
}

// SendCmd implements Transport.
func (t *TransportBT) SendCmd(ctx context.Context, cmd byte, param uint16) ([]byte, error) {
	f := buildCommandBT(cmd, param)
	return t.sendCmdFrame(ctx, f[:])
}

// SendCmdTwo implements Transport.
func (t *TransportBT) SendCmdTwo(ctx context.Context, cmd byte, param, param2 uint16) ([]byte, error) {
	f := buildCommandBT2(cmd, param, param2)
	return t.sendCmdFrame(ctx, f[:])
}

// sendDataFrame writes one 512-byte transfer frame as four 128-byte
// sub-chunks, draining and sleeping before each.
func (t *TransportBT) sendDataFrame(frame []byte) error {
	return writeChunks(t.fd, frame, btDataSubChunk, btDataInterChunkDelay)
}

// SendBulkData implements Transport. readFinalResponse, when true,
// polls for a response only after the last data frame, matching the
// firmware's expectation that BT data frames are not acknowledged
// individually.
func (t *TransportBT) SendBulkData(ctx context.Context, data []byte, readFinalResponse bool) ([]byte, error) {
	frames, err := buildDataFramesBT(data)
	if err != nil {
		return nil, err
	}
	for i, frame := range frames {
		if err := t.sendDataFrame(frame); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		if i == len(frames)-1 && readFinalResponse {
			resp, err := pollRead(t.fd, btCmdOuterDeadline, btCmdInnerPoll, btCmdTrailingWait)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrIO, err)
			}
			return resp, nil
		}
	}
	return nil, nil
}

// ParseStatus implements Transport.
func (t *TransportBT) ParseStatus(resp []byte) (*Status, error) { return ParseStatusBT(resp) }

// ParseMaterial implements Transport.
func (t *TransportBT) ParseMaterial(resp []byte) (*MaterialInfo, error) { return ParseMaterialBT(resp) }

// ValidateResponse implements Transport.
func (t *TransportBT) ValidateResponse(resp []byte, expectedCmd byte) error {
	return ValidateResponseBT(resp, expectedCmd)
}

// btIdentityPayload extracts the trailing, NUL-trimmed string payload
// of a BT identification response (RD_DEV_NAME, READ_REV, READ_FWVER),
// which all place their string after the 14-byte common header.
func btIdentityPayload(resp []byte) (string, bool) {
	const off = 14
	if len(resp) <= off {
		return "", false
	}
	s := resp[off:]
	if i := bytes.IndexByte(s, 0x00); i >= 0 {
		s = s[:i]
	}
	if len(s) == 0 {
		return "", false
	}
	return string(s), true
}

// ParseDeviceName implements Transport.
func (t *TransportBT) ParseDeviceName(resp []byte) (string, bool) { return btIdentityPayload(resp) }

// ParseFirmwareVersion implements Transport.
func (t *TransportBT) ParseFirmwareVersion(resp []byte) (string, bool) { return btIdentityPayload(resp) }

// ParseVersion implements Transport.
func (t *TransportBT) ParseVersion(resp []byte) (string, bool) { return btIdentityPayload(resp) }

// Close implements Transport.
func (t *TransportBT) Close() error { return t.file.Close() }
