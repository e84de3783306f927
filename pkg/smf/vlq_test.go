package smf

import (
	"bytes"
	"errors"
	"testing"
)

func TestVLQ(t *testing.T) {
	tests := []struct {
		v    uint32
		want []byte
	}{
		{0x00, []byte{0x00}},
		{0x40, []byte{0x40}},
		{0x7F, []byte{0x7F}},
		{0x80, []byte{0x81, 0x00}},
		{0x2000, []byte{0xC0, 0x00}},
		{0x3FFF, []byte{0xFF, 0x7F}},
		{0x4000, []byte{0x81, 0x80, 0x00}},
		{0x1FFFFF, []byte{0xFF, 0xFF, 0x7F}},
		{0x200000, []byte{0x81, 0x80, 0x80, 0x00}},
		{0x0FFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}
	for _, tt := range tests {
		got := appendVLQ(nil, tt.v)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("appendVLQ(%#x) = % X, want % X", tt.v, got, tt.want)
		}

		v, off, err := readVLQ(got, 0)
		if err != nil {
			t.Errorf("readVLQ(% X): %v", got, err)
			continue
		}
		if v != tt.v || off != len(got) {
			t.Errorf("readVLQ(% X) = %#x at %d, want %#x at %d", got, v, off, tt.v, len(got))
		}
	}
}

func TestReadVLQErrors(t *testing.T) {
	if _, _, err := readVLQ([]byte{0x81}, 0); !errors.Is(err, ErrBadVLQ) {
		t.Errorf("truncated: error = %v, want ErrBadVLQ", err)
	}
	if _, _, err := readVLQ([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x7F}, 0); !errors.Is(err, ErrBadVLQ) {
		t.Errorf("oversized: error = %v, want ErrBadVLQ", err)
	}
}
