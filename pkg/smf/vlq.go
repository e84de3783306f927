package smf

import (
	"errors"
	"fmt"
)

// ErrBadVLQ is returned by readVLQ for a truncated or oversized quantity.
var ErrBadVLQ = errors.New("smf: bad variable-length quantity")

// appendVLQ appends v as a variable-length quantity: 7 data bits per byte,
// most-significant group first, continuation bit set on all but the last
// byte. Values up to 0x0FFFFFFF encode in at most 4 bytes.
func appendVLQ(dst []byte, v uint32) []byte {
	if v == 0 {
		return append(dst, 0)
	}
	var buf [4]byte
	n := 0
	for v > 0 {
		buf[n] = byte(v & 0x7F)
		v >>= 7
		n++
	}
	for i := n - 1; i > 0; i-- {
		dst = append(dst, buf[i]|0x80)
	}
	return append(dst, buf[0])
}

// readVLQ decodes a variable-length quantity starting at data[off] and
// returns the value and the offset of the byte after it.
func readVLQ(data []byte, off int) (uint32, int, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		if off >= len(data) {
			return 0, off, fmt.Errorf("%w: truncated at offset %d", ErrBadVLQ, off)
		}
		b := data[off]
		off++
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, off, nil
		}
	}
	return 0, off, fmt.Errorf("%w: more than 4 bytes", ErrBadVLQ)
}
