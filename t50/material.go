package t50

import (
	"encoding/hex"
	"fmt"
)

// MaterialInfo describes the media currently loaded, as reported by
// RETURN_MAT. Remaining and DeviceSN are optional: older firmware
// revisions truncate the response before either field, in which case
// the corresponding pointer is nil rather than a zero value.
type MaterialInfo struct {
	UUID      string // hex of 7 bytes
	Code      string // hex of 8 bytes
	SN        uint16
	LabelType byte
	WidthMM   byte
	HeightMM  byte
	GapMM     byte
	Remaining *uint32
	DeviceSN  *string
}

// Byte offsets within a BT RETURN_MAT response. The first 22 bytes are
// the response frame's own header (magic, echoed command, and so on —
// the same header ValidateResponseBT checks), not part of the
// material payload; uuid and code follow directly after it, then sn,
// then label_type/width/height/gap. sn is oddly big-endian, unlike the
// rest of the BT wire format, and is preserved exactly rather than
// "fixed".
const (
	btMaterialHeaderLen       = 22
	btMaterialUUIDOffset      = 22
	btMaterialUUIDLen         = 7
	btMaterialCodeOffset      = 29
	btMaterialCodeLen         = 8
	btMaterialSNOffset        = 37
	btMaterialLabelTypeOffset = 39
	btMaterialWidthOffset     = 40
	btMaterialHeightOffset    = 41
	btMaterialGapOffset       = 42
	btMaterialRemainingOffset = 43
	btMaterialRemainingEnd    = 47
	btMaterialDeviceSNOffset  = 51
	btMaterialDeviceSNEnd     = 57
)

// ParseMaterialBT decodes a BT RETURN_MAT response.
func ParseMaterialBT(resp []byte) (*MaterialInfo, error) {
	if len(resp) < btMaterialGapOffset+1 {
		return nil, fmt.Errorf("%w: BT material response too short (%d bytes)", ErrInvalidResponse, len(resp))
	}

	mi := &MaterialInfo{
		UUID:      hex.EncodeToString(resp[btMaterialUUIDOffset : btMaterialUUIDOffset+btMaterialUUIDLen]),
		Code:      hex.EncodeToString(resp[btMaterialCodeOffset : btMaterialCodeOffset+btMaterialCodeLen]),
		LabelType: resp[btMaterialLabelTypeOffset],
		WidthMM:   resp[btMaterialWidthOffset],
		HeightMM:  resp[btMaterialHeightOffset],
		GapMM:     resp[btMaterialGapOffset],
	}

	if len(resp) > btMaterialSNOffset+1 {
		mi.SN = uint16(resp[btMaterialSNOffset])<<8 | uint16(resp[btMaterialSNOffset+1])
	}

	if len(resp) >= btMaterialRemainingEnd {
		v := uint32(resp[btMaterialRemainingOffset]) |
			uint32(resp[btMaterialRemainingOffset+1])<<8 |
			uint32(resp[btMaterialRemainingOffset+2])<<16 |
			uint32(resp[btMaterialRemainingOffset+3])<<24
		mi.Remaining = &v
	}

	if len(resp) >= btMaterialDeviceSNEnd {
		sn := decodeBCDPairs(resp[btMaterialDeviceSNOffset:btMaterialDeviceSNEnd])
		mi.DeviceSN = &sn
	}

	return mi, nil
}

// decodeBCDPairs renders each byte of b as a two-digit decimal pair
// and concatenates them, e.g. {0x12, 0x34} -> "1234". This matches
// the BT device serial number's six two-digit-decimal-pair encoding.
func decodeBCDPairs(b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for _, v := range b {
		out = append(out, '0'+v/10%10, '0'+v%10)
	}
	return string(out)
}

// Byte offsets within a USB RETURN_MAT response, inferred from
// reverse-engineering rather than documented by the firmware. Some
// fields may be absent on certain firmware revisions; callers should
// treat the pointer fields as optional rather than assuming zero.
const (
	usbMaterialLabelTypeOffset = 19
	usbMaterialWidthOffset     = 20
	usbMaterialHeightOffset    = 21
	usbMaterialGapOffset       = 22
	usbMaterialSNOffset        = 31
	usbMaterialRemainingOffset = 40
	usbMaterialRemainingEnd    = 44
	usbMaterialDeviceSNOffset  = 44
)

// ParseMaterialUSB decodes a USB RETURN_MAT response.
func ParseMaterialUSB(resp []byte) (*MaterialInfo, error) {
	if len(resp) < usbMaterialGapOffset+1 {
		return nil, fmt.Errorf("%w: USB material response too short (%d bytes)", ErrInvalidResponse, len(resp))
	}

	mi := &MaterialInfo{
		LabelType: resp[usbMaterialLabelTypeOffset],
		WidthMM:   resp[usbMaterialWidthOffset],
		HeightMM:  resp[usbMaterialHeightOffset],
		GapMM:     resp[usbMaterialGapOffset],
	}

	if len(resp) > usbMaterialSNOffset+1 {
		mi.SN = uint16(resp[usbMaterialSNOffset])<<8 | uint16(resp[usbMaterialSNOffset+1])
	}

	if len(resp) >= usbMaterialRemainingEnd {
		v := uint32(resp[usbMaterialRemainingOffset]) |
			uint32(resp[usbMaterialRemainingOffset+1])<<8 |
			uint32(resp[usbMaterialRemainingOffset+2])<<16 |
			uint32(resp[usbMaterialRemainingOffset+3])<<24
		mi.Remaining = &v
	}

	if len(resp) > usbMaterialDeviceSNOffset {
		end := usbMaterialDeviceSNOffset
		for end < len(resp) && resp[end] != 0x00 {
			end++
		}
		if end > usbMaterialDeviceSNOffset {
			sn := string(resp[usbMaterialDeviceSNOffset:end])
			mi.DeviceSN = &sn
		}
	}

	return mi, nil
}
