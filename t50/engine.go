package t50

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// State is one of the engine's print-flow states.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateWaitingReady
	StatePrinting
	StateWaitingBufferReady
	StateTransferring
	StateWaitingComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateWaitingReady:
		return "waiting-ready"
	case StatePrinting:
		return "printing"
	case StateWaitingBufferReady:
		return "waiting-buffer-ready"
	case StateTransferring:
		return "transferring"
	case StateWaitingComplete:
		return "waiting-complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	pollReadyInterval       = 100 * time.Millisecond
	pollReadyMaxAttempts    = 60
	pollPrintingInterval    = 100 * time.Millisecond
	pollPrintingMaxAttempts = 60
	pollBufferInterval      = 20 * time.Millisecond
	pollBufferMaxAttempts   = 200
	pollCompleteInterval    = 100 * time.Millisecond
	pollCompleteMaxAttempts = 300
	bufFullFollowupDelay    = 20 * time.Millisecond

	zippedBulkBlockSize = 512
	dataChunkSize       = 500
)

// Engine binds a Transport to a full print flow: status polling,
// buffer-ready backpressure, compressed data transfer, and completion
// wait. One engine drives one page at a time; it is not safe to call
// PrintPage concurrently with itself.
type Engine struct {
	t      Transport
	logger *log.Logger

	// printing is the only piece of state shared with an external
	// status-polling collaborator. It is set while bulk transfer is in
	// progress so that housekeeping status queries don't interleave
	// commands onto the half-duplex wire mid-transfer.
	printing atomic.Bool

	state State
}

// NewEngine wraps t. logger may be nil, in which case the engine logs
// nothing.
func NewEngine(t Transport, logger *log.Logger) *Engine {
	return &Engine{t: t, logger: logger, state: StateIdle}
}

// State reports the engine's current state.
func (e *Engine) State() State { return e.state }

// IsPrinting reports whether a bulk transfer is currently in
// progress. External status-polling collaborators should treat a true
// result as "no reasons" rather than issuing their own status query.
func (e *Engine) IsPrinting() bool { return e.printing.Load() }

func (e *Engine) logf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

func numDataPackets(n int) int {
	if n == 0 {
		return 1
	}
	return (n + dataChunkSize - 1) / dataChunkSize
}

// PrintPage runs the full print flow for job, from CHECK_DEVICE
// through completion. Density is whatever job was built with (see
// printbuf.Options.Density); START_PRINT itself carries no density
// parameter of its own. A failure aborts the current page; the engine
// is not automatically retried, and a subsequent PrintPage call
// starts a fresh flow from StateChecking.
func (e *Engine) PrintPage(ctx context.Context, job *Job) error {
	defer func() {
		if e.state != StateFailed {
			e.state = StateIdle
		}
	}()

	if err := e.checkDevice(ctx); err != nil {
		e.state = StateFailed
		return err
	}

	if err := e.waitReady(ctx); err != nil {
		e.state = StateFailed
		return err
	}

	if _, err := e.t.SendCmd(ctx, cmdStartPrint, 0); err != nil {
		e.state = StateFailed
		return fmt.Errorf("%w: START_PRINT: %v", ErrIO, err)
	}
	e.state = StatePrinting

	if err := e.waitPrinting(ctx); err != nil {
		e.state = StateFailed
		return err
	}

	cleared := false
	clear := func() {
		if !cleared {
			e.printing.Store(false)
			cleared = true
		}
	}
	defer clear()

	e.state = StateWaitingBufferReady
	e.printing.Store(true)
	if err := e.waitBufferReady(ctx); err != nil {
		if _, stopErr := e.t.SendCmd(ctx, cmdStopPrint, 0); stopErr != nil {
			e.logf("t50: STOP_PRINT after buffer-ready failure also failed: %v", stopErr)
		}
		e.state = StateFailed
		return err
	}

	compressed, avg, nBuffers, err := job.build()
	if err != nil {
		e.state = StateFailed
		return err
	}
	speed := CalcSpeed(avg)

	e.state = StateTransferring
	if err := e.transferCompressed(ctx, compressed, nBuffers, speed); err != nil {
		e.state = StateFailed
		return err
	}

	clear()
	e.state = StateWaitingComplete
	e.waitCompletion(ctx)
	return nil
}

func (e *Engine) checkDevice(ctx context.Context) error {
	e.state = StateChecking
	resp, err := e.t.SendCmd(ctx, cmdCheckDevice, 0)
	if err != nil {
		return fmt.Errorf("%w: CHECK_DEVICE: %v", ErrIO, err)
	}
	if err := e.t.ValidateResponse(resp, cmdCheckDevice); err != nil {
		return err
	}
	return nil
}

func (e *Engine) waitReady(ctx context.Context) error {
	e.state = StateWaitingReady
	for attempt := 0; attempt < pollReadyMaxAttempts; attempt++ {
		resp, err := e.t.SendCmd(ctx, cmdInquirySta, 0)
		if err == nil && resp != nil {
			st, perr := e.t.ParseStatus(resp)
			if perr == nil {
				if st.HasError() {
					return fmt.Errorf("%w: %v", ErrDeviceError, st.ErrorDescriptions())
				}
				if !st.DeviceBusy && !st.Printing {
					return nil
				}
			}
		}
		time.Sleep(pollReadyInterval)
	}
	return fmt.Errorf("%w: device never became ready", ErrTimeout)
}

func (e *Engine) waitPrinting(ctx context.Context) error {
	for attempt := 0; attempt < pollPrintingMaxAttempts; attempt++ {
		resp, err := e.t.SendCmd(ctx, cmdInquirySta, 0)
		if err == nil && resp != nil {
			st, perr := e.t.ParseStatus(resp)
			if perr == nil && st.Printing {
				return nil
			}
		}
		time.Sleep(pollPrintingInterval)
	}
	return fmt.Errorf("%w: device never entered the printing state", ErrTimeout)
}

func (e *Engine) waitBufferReady(ctx context.Context) error {
	for attempt := 0; attempt < pollBufferMaxAttempts; attempt++ {
		resp, err := e.t.SendCmd(ctx, cmdInquirySta, 0)
		if err == nil && resp != nil {
			st, perr := e.t.ParseStatus(resp)
			if perr == nil {
				if st.HasError() {
					return fmt.Errorf("%w: %v", ErrDeviceError, st.ErrorDescriptions())
				}
				if !st.BufFull {
					return nil
				}
			}
		}
		time.Sleep(pollBufferInterval)
	}
	return fmt.Errorf("%w: printer buffer never drained", ErrTimeout)
}

func (e *Engine) transferCompressed(ctx context.Context, compressed []byte, nBuffers, speed int) error {
	packets := numDataPackets(len(compressed))
	if _, err := e.t.SendCmdTwo(ctx, cmdNextZippedBulk, zippedBulkBlockSize, uint16(packets)); err != nil {
		return fmt.Errorf("%w: NEXT_ZIPPEDBULK: %v", ErrIO, err)
	}

	if _, err := e.t.SendBulkData(ctx, compressed, true); err != nil {
		return fmt.Errorf("%w: bulk data transfer: %v", ErrIO, err)
	}

	time.Sleep(bufFullFollowupDelay)

	if _, err := e.t.SendCmdTwo(ctx, cmdBufFull, uint16(len(compressed)), uint16(speed)); err != nil {
		return fmt.Errorf("%w: BUF_FULL: %v", ErrIO, err)
	}
	return nil
}

// waitCompletion polls until the printer reports it is neither
// printing nor busy. A timeout here is logged, not returned as an
// error: the device may simply be slow to report completion.
func (e *Engine) waitCompletion(ctx context.Context) {
	for attempt := 0; attempt < pollCompleteMaxAttempts; attempt++ {
		resp, err := e.t.SendCmd(ctx, cmdInquirySta, 0)
		if err == nil && resp != nil {
			st, perr := e.t.ParseStatus(resp)
			if perr == nil && !st.Printing && !st.DeviceBusy {
				return
			}
		}
		time.Sleep(pollCompleteInterval)
	}
	e.logf("t50: timed out waiting for print completion; continuing")
}
