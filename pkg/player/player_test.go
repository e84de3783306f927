package player

import (
	"context"
	"encoding/binary"
	"strings"
	"testing"
)

func TestResolveConfiguredCommand(t *testing.T) {
	p := &External{Command: []string{"fluidsynth", "-ni", "-q", "-a", "alsa"}}
	argv, err := p.resolve("/tmp/tune.mid")
	if err != nil {
		t.Fatal(err)
	}
	want := "fluidsynth -ni -q -a alsa /tmp/tune.mid"
	if got := strings.Join(argv, " "); got != want {
		t.Fatalf("argv = %q, want %q", got, want)
	}
}

func TestResolveDoesNotMutateCommand(t *testing.T) {
	cmd := []string{"timidity"}
	p := &External{Command: cmd}
	p.resolve("a.mid")
	p.resolve("b.mid")
	if len(cmd) != 1 || cmd[0] != "timidity" {
		t.Fatalf("Command was mutated: %v", cmd)
	}
}

func TestPlayMissingBinary(t *testing.T) {
	p := &External{Command: []string{"miditoy-test-no-such-player"}}
	err := p.Play(context.Background(), "tune.mid")
	if err == nil {
		t.Fatal("expected error for missing player binary")
	}
}

func TestClampSample(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32768},
		{2.5, 32767},
		{-3, -32768},
		{0.5, 16383},
	}
	for _, tt := range tests {
		if got := clampSample(tt.in); got != tt.want {
			t.Errorf("clampSample(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	left := []float32{0, 0.5, -0.5, 1}
	right := []float32{0, -0.5, 0.5, -1}
	const rate = 44100

	buf := encodeWAV(left, right, rate)

	dataLen := len(left) * 2 * 2 // frames * channels * 2 bytes
	if len(buf) != 44+dataLen {
		t.Fatalf("len = %d, want %d", len(buf), 44+dataLen)
	}
	if string(buf[0:4]) != "RIFF" || string(buf[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE magic")
	}
	if got := binary.LittleEndian.Uint32(buf[4:8]); got != uint32(36+dataLen) {
		t.Errorf("riff size = %d, want %d", got, 36+dataLen)
	}
	if string(buf[12:16]) != "fmt " {
		t.Fatal("missing fmt chunk")
	}
	if got := binary.LittleEndian.Uint16(buf[20:22]); got != 1 {
		t.Errorf("format = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(buf[22:24]); got != 2 {
		t.Errorf("channels = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(buf[24:28]); got != rate {
		t.Errorf("sample rate = %d, want %d", got, rate)
	}
	if got := binary.LittleEndian.Uint32(buf[28:32]); got != rate*4 {
		t.Errorf("byte rate = %d, want %d", got, rate*4)
	}
	if string(buf[36:40]) != "data" {
		t.Fatal("missing data chunk")
	}
	if got := binary.LittleEndian.Uint32(buf[40:44]); got != uint32(dataLen) {
		t.Errorf("data size = %d, want %d", got, dataLen)
	}

	// First frame is silence, last frame is full scale.
	if got := int16(binary.LittleEndian.Uint16(buf[44:46])); got != 0 {
		t.Errorf("first left sample = %d, want 0", got)
	}
	last := buf[len(buf)-4:]
	if got := int16(binary.LittleEndian.Uint16(last[0:2])); got != 32767 {
		t.Errorf("last left sample = %d, want 32767", got)
	}
	if got := int16(binary.LittleEndian.Uint16(last[2:4])); got != -32768 {
		t.Errorf("last right sample = %d, want -32768", got)
	}
}
