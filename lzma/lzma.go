// Package lzma implements the literal-only LZMA1 bitstream this
// printer's firmware expects: a range-coded stream with no Lempel-Ziv
// back-references, wrapped in a standard 13-byte LZMA1 header.
//
// It is a direct generalization of google/wuffs's lib/litonlylzma: the
// same range-coding core, but with the header's dictionary size taken
// from this package's DictSize constant, and with the uncompressed
// size written as the traditional "unknown size" sentinel first and
// patched in afterwards (by CompressAlone, or by the caller of Encode
// through PatchSize).
package lzma

import "errors"

// ErrInvalidData is returned by Decode when src is too short or its
// header does not match this package's fixed (lc, lp, pb) triple.
var ErrInvalidData = errors.New("lzma: invalid data")

// ErrUnsupported is returned by Decode when src looks like a valid
// LZMA1 header but the payload uses a feature (a Lempel-Ziv match, an
// unknown-size sentinel left unpatched) this literal-only decoder does
// not implement.
var ErrUnsupported = errors.New("lzma: unsupported data")

const (
	// These three values fix the header byte to 0x5D, matching what
	// the firmware's decoder requires.
	lc = 3
	lp = 0
	pb = 2

	lpMask = (1 << lp) - 1
	pbMask = (1 << pb) - 1

	headerPropsByte = (pb*5+lp)*9 + lc // = 0x5D for (3, 0, 2)

	// HeaderSize is the fixed LZMA1 header length: 1 props byte, 4
	// bytes LE32 dictionary size, 8 bytes LE64 uncompressed size.
	HeaderSize = 13

	// unknownSize is written where the uncompressed-size field goes
	// until Encode knows the final length, at which point it is
	// patched in place.
	unknownSize = ^uint64(0)
)

// DictSize is the dictionary size this printer's firmware declares in
// the LZMA1 header. The encoder has no sliding window of its own (it
// is literal-only), so this value never affects the bitstream other
// than being echoed into the header; it only needs to match what the
// firmware's decoder was built against.
const DictSize = 8192

type prob uint16

const (
	probBits   = 11
	minProb    = 0
	maxProb    = 1 << probBits
	adaptShift = 5
)

func setProbsToOneHalf(p []prob) {
	for i := range p {
		p[i] = 1 << (probBits - 1)
	}
}

type byteProbs [0x100]prob

type rangeEncoder struct {
	dst          []byte
	low          uint64
	width        uint32
	pendingHead  uint8
	pendingExtra uint64
}

func (e *rangeEncoder) shiftLow() {
	if e.low < 0x0_FF00_0000 {
		e.dst = append(e.dst, e.pendingHead+0x00)
		for ; e.pendingExtra > 0; e.pendingExtra-- {
			e.dst = append(e.dst, 0xFF)
		}
		e.pendingHead = uint8(e.low >> 24)
		e.pendingExtra = 0
		e.low = (e.low << 8) & 0xFFFF_FFFF
	} else if e.low < 0x1_0000_0000 {
		e.pendingExtra++
		e.low = (e.low << 8) & 0xFFFF_FFFF
	} else {
		e.dst = append(e.dst, e.pendingHead+0x01)
		for ; e.pendingExtra > 0; e.pendingExtra-- {
			e.dst = append(e.dst, 0x00)
		}
		e.pendingHead = uint8(e.low >> 24)
		e.pendingExtra = 0
		e.low = (e.low << 8) & 0xFFFF_FFFF
	}
}

func (p *prob) encodeBit(e *rangeEncoder, bit uint32) {
	threshold := (e.width >> probBits) * uint32(*p)
	if bit == 0 {
		e.width = threshold
		*p += (maxProb - *p) >> adaptShift
	} else {
		e.low += uint64(threshold)
		e.width -= threshold
		*p -= (*p - minProb) >> adaptShift
	}
	if e.width < (1 << 24) {
		e.width <<= 8
		e.shiftLow()
	}
}

func (p *byteProbs) encodeByte(e *rangeEncoder, b byte) {
	bv := uint32(b)
	index := uint32(1)
	for i := 7; i >= 0; i-- {
		bit := (bv >> uint(i)) & 1
		p[index].encodeBit(e, bit)
		index = index<<1 | bit
	}
}

type rangeDecoder struct {
	src   []byte
	bits  uint32
	width uint32
}

func (p *prob) decodeBit(d *rangeDecoder) (uint32, error) {
	threshold := (d.width >> probBits) * uint32(*p)
	var bit uint32
	if d.bits < threshold {
		bit = 0
		d.width = threshold
		*p += (maxProb - *p) >> adaptShift
	} else {
		bit = 1
		d.bits -= threshold
		d.width -= threshold
		*p -= (*p - minProb) >> adaptShift
	}
	if d.width < (1 << 24) {
		if len(d.src) == 0 {
			return 0, ErrInvalidData
		}
		d.bits = d.bits<<8 | uint32(d.src[0])
		d.width <<= 8
		d.src = d.src[1:]
	}
	return bit, nil
}

func (p *byteProbs) decodeByte(d *rangeDecoder) (byte, error) {
	index := uint32(1)
	for index < 0x100 {
		bit, err := p[index].decodeBit(d)
		if err != nil {
			return 0, err
		}
		index = index<<1 | bit
	}
	return byte(index), nil
}

// writeHeader appends the 13-byte LZMA1 header for dictSize and size
// to dst. size may be unknownSize, in which case the caller is
// expected to patch it in with PatchSize once the true length is
// known.
func writeHeader(dst []byte, dictSize uint32, size uint64) []byte {
	dst = append(dst, headerPropsByte)
	for i := 0; i < 4; i++ {
		dst = append(dst, byte(dictSize>>(8*uint(i))))
	}
	for i := 0; i < 8; i++ {
		dst = append(dst, byte(size>>(8*uint(i))))
	}
	return dst
}

// PatchSize overwrites the uncompressed-size field of a header
// previously written with an unknown size, in place. buf must start
// at the first header byte (the 0x5D props byte).
func PatchSize(buf []byte, size uint64) {
	for i := 0; i < 8; i++ {
		buf[5+i] = byte(size >> (8 * uint(i)))
	}
}

// Encode compresses src into the literal-only LZMA1-alone format,
// appending it to dst, and returns the appended slice along with the
// byte offset within it where the header's size field begins unknown
// (written as the all-ones sentinel) and must later be patched with
// PatchSize. Each call writes its own header and starts a fresh range
// coder, so one call produces one complete stream. Callers can instead
// call CompressAlone, which patches the size immediately.
func Encode(dst []byte, src []byte) (out []byte, sizeFieldOffset int) {
	sizeFieldOffset = len(dst) + 5
	dst = writeHeader(dst, DictSize, unknownSize)

	e := rangeEncoder{width: 0xFFFF_FFFF}
	posProbs := [1 << pb]prob{}
	setProbsToOneHalf(posProbs[:])
	litProbs := [1 << (lc + lp)]byteProbs{}
	for i := range litProbs {
		setProbsToOneHalf(litProbs[i][:])
	}

	pos := uint32(0)
	prev := byte(0)
	for _, curr := range src {
		posProbs[pos&pbMask].encodeBit(&e, 0)
		i := (pos & lpMask) << lc
		j := uint32(prev) >> (8 - lc)
		litProbs[i|j].encodeByte(&e, curr)
		pos++
		prev = curr
	}
	for i := 0; i < 5; i++ {
		e.shiftLow()
	}

	dst = append(dst, e.dst...)
	return dst, sizeFieldOffset
}

// CompressAlone encodes src as a complete, self-contained LZMA1-alone
// stream: header (with the true size already patched in) followed by
// the range-coded payload.
func CompressAlone(src []byte) []byte {
	out, _ := Encode(nil, src)
	PatchSize(out, uint64(len(src)))
	return out
}

// Decode decompresses a complete LZMA1-alone stream produced by this
// package (or by litonlylzma, which shares the same bitstream once the
// dictionary size field is ignored), appending the result to dst.
func Decode(dst []byte, src []byte) ([]byte, error) {
	if len(src) < HeaderSize+5 {
		return dst, ErrInvalidData
	}
	if src[0] != headerPropsByte || src[13] != 0x00 {
		return dst, ErrInvalidData
	}

	size := uint64(0)
	for i := 0; i < 8; i++ {
		size |= uint64(src[5+i]) << uint(8*i)
	}
	if size == unknownSize {
		return dst, ErrUnsupported
	}

	d := rangeDecoder{
		src: src[18:],
		bits: uint32(src[14])<<24 | uint32(src[15])<<16 |
			uint32(src[16])<<8 | uint32(src[17]),
		width: 0xFFFF_FFFF,
	}

	posProbs := [1 << pb]prob{}
	setProbsToOneHalf(posProbs[:])
	litProbs := [1 << (lc + lp)]byteProbs{}
	for i := range litProbs {
		setProbsToOneHalf(litProbs[i][:])
	}

	pos := uint32(0)
	prev := byte(0)
	for n := uint64(0); n < size; n++ {
		bit, err := posProbs[pos&pbMask].decodeBit(&d)
		if err != nil {
			return dst, err
		}
		if bit != 0 {
			return dst, ErrUnsupported
		}
		i := (pos & lpMask) << lc
		j := uint32(prev) >> (8 - lc)
		curr, err := litProbs[i|j].decodeByte(&d)
		if err != nil {
			return dst, err
		}
		dst = append(dst, curr)
		pos++
		prev = curr
	}
	return dst, nil
}
