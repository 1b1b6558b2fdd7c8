// Package bitcoin decodes the bitcoin wire format into views that borrow
// from the input buffer instead of copying it field by field.
package bitcoin

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformed reports consensus bytes the decoder refused: truncated input,
// non-canonical varints, or inconsistent segwit structure.
var ErrMalformed = errors.New("malformed consensus data")

func malformed(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrMalformed)
}

func malformedf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrMalformed)...)
}

// readVarInt decodes a CompactSize integer at off and returns the value and
// the offset past it. Non-canonical encodings are rejected, matching node
// behaviour.
func readVarInt(buf []byte, off int) (uint64, int, error) {
	if off >= len(buf) {
		return 0, 0, malformed("varint: unexpected end of input")
	}
	d := buf[off]
	off++
	switch d {
	case 0xfd:
		if off+2 > len(buf) {
			return 0, 0, malformed("varint16: unexpected end of input")
		}
		v := uint64(binary.LittleEndian.Uint16(buf[off:]))
		if v < 0xfd {
			return 0, 0, malformedf("varint16: non-canonical value %d", v)
		}
		return v, off + 2, nil
	case 0xfe:
		if off+4 > len(buf) {
			return 0, 0, malformed("varint32: unexpected end of input")
		}
		v := uint64(binary.LittleEndian.Uint32(buf[off:]))
		if v <= 0xffff {
			return 0, 0, malformedf("varint32: non-canonical value %d", v)
		}
		return v, off + 4, nil
	case 0xff:
		if off+8 > len(buf) {
			return 0, 0, malformed("varint64: unexpected end of input")
		}
		v := binary.LittleEndian.Uint64(buf[off:])
		if v <= 0xffffffff {
			return 0, 0, malformedf("varint64: non-canonical value %d", v)
		}
		return v, off + 8, nil
	default:
		return uint64(d), off, nil
	}
}

// span addresses a region of the backing buffer. Views hold spans rather
// than sub-slices so that promoting a view only requires copying the buffer.
type span struct {
	off int
	end int
}

func (s span) of(buf []byte) []byte {
	return buf[s.off:s.end]
}

func (s span) len() int {
	return s.end - s.off
}
