package t50

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// parseBDAddr parses "XX:XX:XX:XX:XX:XX" into the six bytes expected
// by SockaddrRFCOMM's Addr field, which stores the address in
// reversed byte order.
func parseBDAddr(addr string) ([6]byte, error) {
	var out [6]byte
	parts := strings.Split(addr, ":")
	if len(parts) != 6 {
		return out, fmt.Errorf("%w: BD_ADDR %q must have 6 colon-separated octets", ErrInvalidParam, addr)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return out, fmt.Errorf("%w: BD_ADDR %q: %v", ErrInvalidParam, addr, err)
		}
		out[5-i] = byte(v)
	}
	return out, nil
}

// drainNonBlocking reads and discards any input already waiting on
// fd, without blocking. It is called before every command write so a
// stray response from a previous exchange never gets mistaken for the
// answer to this one.
func drainNonBlocking(fd int) error {
	var buf [512]byte
	for {
		pfds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(pfds, 0)
		if err != nil {
			return err
		}
		if n == 0 || pfds[0].Revents&unix.POLLIN == 0 {
			return nil
		}
		if _, err := unix.Read(fd, buf[:]); err != nil {
			return err
		}
	}
}

// writeChunks writes data to fd in chunks of at most chunkSize bytes,
// draining stray input and sleeping interChunkDelay before each
// chunk, matching the firmware's small serial buffer.
func writeChunks(fd int, data []byte, chunkSize int, interChunkDelay time.Duration) error {
	for off := 0; off < len(data); off += chunkSize {
		end := off + chunkSize
		if end > len(data) {
			end = len(data)
		}
		if err := drainNonBlocking(fd); err != nil {
			return err
		}
		time.Sleep(interChunkDelay)
		if _, err := unix.Write(fd, data[off:end]); err != nil {
			return err
		}
	}
	return nil
}

// pollRead polls fd for input with an inner poll granularity of
// innerPoll, up to outerDeadline total. Once data arrives, it waits
// trailingWait for any more of the same response to trickle in, then
// returns everything read. Returns a nil, nil result (no error, no
// data) if the deadline elapses with nothing received — callers treat
// that as "no response this poll".
func pollRead(fd int, outerDeadline, innerPoll, trailingWait time.Duration) ([]byte, error) {
	deadline := time.Now().Add(outerDeadline)
	for time.Now().Before(deadline) {
		pfds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(pfds, int(innerPoll/time.Millisecond))
		if err != nil {
			return nil, err
		}
		if n == 0 || pfds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		time.Sleep(trailingWait)
		return readAllAvailable(fd)
	}
	return nil, nil
}

// readAllAvailable drains every byte currently waiting on fd without
// blocking past the first read.
func readAllAvailable(fd int) ([]byte, error) {
	var out []byte
	var buf [4096]byte
	for {
		pfds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(pfds, 0)
		if err != nil {
			return out, err
		}
		if n == 0 || pfds[0].Revents&unix.POLLIN == 0 {
			return out, nil
		}
		r, err := unix.Read(fd, buf[:])
		if err != nil {
			return out, err
		}
		if r <= 0 {
			return out, nil
		}
		out = append(out, buf[:r]...)
	}
}
