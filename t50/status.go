package t50

import "fmt"

// Status is the decoded status snapshot, identical in shape across
// both transports even though the two wire layouts that produce it
// differ.
type Status struct {
	BufFull           bool
	LabelRWError      bool
	LabelEnd          bool
	LabelModeError    bool
	RibbonRWError     bool
	RibbonEnd         bool
	LowBattery        bool
	DeviceBusy        bool
	HeadTempHigh      bool
	CoverOpen         bool
	InsertUSB         bool
	Printing          bool
	LabelNotInstalled bool
	PrintCount        uint16
}

// HasError reports whether any of the seven flags the firmware treats
// as error conditions is set: buf_full and the device/media states
// are informational, not error, flags and are excluded.
func (s *Status) HasError() bool {
	return s.LabelRWError || s.LabelEnd || s.LabelModeError ||
		s.RibbonRWError || s.RibbonEnd || s.HeadTempHigh || s.LabelNotInstalled
}

// ErrorDescriptions names each tripped error flag, in bit order.
func (s *Status) ErrorDescriptions() []string {
	var out []string
	if s.LabelRWError {
		out = append(out, "label read/write error")
	}
	if s.LabelEnd {
		out = append(out, "label end")
	}
	if s.LabelModeError {
		out = append(out, "label mode error")
	}
	if s.RibbonRWError {
		out = append(out, "ribbon read/write error")
	}
	if s.RibbonEnd {
		out = append(out, "ribbon end")
	}
	if s.HeadTempHigh {
		out = append(out, "head temperature too high")
	}
	if s.LabelNotInstalled {
		out = append(out, "label not installed")
	}
	return out
}

func decodeStatusBits(msta0, msta1, fsta0, fsta1 byte, printCount uint16) *Status {
	return &Status{
		BufFull:           msta0&0x01 != 0,
		LabelRWError:      msta0&0x02 != 0,
		LabelEnd:          msta0&0x04 != 0,
		LabelModeError:    msta0&0x08 != 0,
		RibbonRWError:     msta0&0x10 != 0,
		RibbonEnd:         msta0&0x20 != 0,
		LowBattery:        msta0&0x40 != 0,
		DeviceBusy:        msta1&0x04 != 0,
		HeadTempHigh:      msta1&0x08 != 0,
		CoverOpen:         fsta0&0x08 != 0,
		InsertUSB:         fsta0&0x10 != 0,
		Printing:          fsta0&0x40 != 0,
		LabelNotInstalled: fsta1&0x01 != 0,
		PrintCount:        printCount,
	}
}

// ParseStatusBT decodes a BT status response. Bytes 14-17 hold the
// flag bytes; bytes 18-19 hold a LE16 print count.
func ParseStatusBT(resp []byte) (*Status, error) {
	if len(resp) < 20 {
		return nil, fmt.Errorf("%w: BT status response too short (%d bytes)", ErrInvalidResponse, len(resp))
	}
	printCount := uint16(resp[18]) | uint16(resp[19])<<8
	return decodeStatusBits(resp[14], resp[15], resp[16], resp[17], printCount), nil
}

// ParseStatusUSB decodes a USB status response. Byte 0 is the command
// echo (ignored here — USB validation does not check it); bytes 1-4
// hold the flag bytes; bytes 5-6 hold a LE16 print count.
func ParseStatusUSB(resp []byte) (*Status, error) {
	if len(resp) < 7 {
		return nil, fmt.Errorf("%w: USB status response too short (%d bytes)", ErrInvalidResponse, len(resp))
	}
	printCount := uint16(resp[5]) | uint16(resp[6])<<8
	return decodeStatusBits(resp[1], resp[2], resp[3], resp[4], printCount), nil
}

// ValidateResponseBT checks the 0x7E/0x5A magic and that byte 7 echoes
// expectedCmd.
func ValidateResponseBT(resp []byte, expectedCmd byte) error {
	if len(resp) < 8 {
		return fmt.Errorf("%w: BT response too short to validate (%d bytes)", ErrInvalidResponse, len(resp))
	}
	if resp[0] != 0x7E || resp[1] != 0x5A {
		return fmt.Errorf("%w: BT response missing magic bytes", ErrInvalidResponse)
	}
	if resp[7] != expectedCmd {
		return fmt.Errorf("%w: BT response echoes cmd %#02x, expected %#02x", ErrInvalidResponse, resp[7], expectedCmd)
	}
	return nil
}

// ValidateResponseUSB checks only that resp is non-empty: unlike the
// BT check, it does not compare any byte of resp against the expected
// command.
func ValidateResponseUSB(resp []byte) error {
	if len(resp) == 0 {
		return fmt.Errorf("%w: empty USB response", ErrInvalidResponse)
	}
	return nil
}
