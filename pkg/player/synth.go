package player

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

// SampleRate is the render sample rate in Hz.
const SampleRate = 44100

// block aligns the render loop with common synth effect processing sizes.
const block = 1024

// Renderer turns compiled MIDI bytes into PCM using a SoundFont synth.
// The SoundFont is loaded once and reused; a fresh synthesizer is built per
// render so concurrent renders never share internal state.
type Renderer struct {
	// SoundFontPath locates the .sf2 file.
	SoundFontPath string

	once     sync.Once
	font     *meltysynth.SoundFont
	settings *meltysynth.SynthesizerSettings
	loadErr  error
}

func (r *Renderer) setup() {
	data, err := os.ReadFile(r.SoundFontPath)
	if err != nil {
		r.loadErr = fmt.Errorf("player: load soundfont: %w", err)
		return
	}
	font, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		r.loadErr = fmt.Errorf("player: parse soundfont: %w", err)
		return
	}
	settings := meltysynth.NewSynthesizerSettings(SampleRate)
	settings.BlockSize = block
	r.font = font
	r.settings = settings
}

// Render synthesizes the MIDI bytes to stereo float32 samples.
func (r *Renderer) Render(midiData []byte) (left, right []float32, err error) {
	r.once.Do(r.setup)
	if r.loadErr != nil {
		return nil, nil, r.loadErr
	}

	midi, err := meltysynth.NewMidiFile(bytes.NewReader(midiData))
	if err != nil {
		return nil, nil, fmt.Errorf("player: parse midi: %w", err)
	}
	synth, err := meltysynth.NewSynthesizer(r.font, r.settings)
	if err != nil {
		return nil, nil, fmt.Errorf("player: create synthesizer: %w", err)
	}
	sequencer := meltysynth.NewMidiFileSequencer(synth)
	sequencer.Play(midi, false)

	// Half a second of tail lets releases and reverb decay.
	samples := int(midi.GetLength().Seconds()*SampleRate) + SampleRate/2
	left = make([]float32, samples)
	right = make([]float32, samples)
	for off := 0; off < samples; off += block {
		end := min(off+block, samples)
		sequencer.Render(left[off:end], right[off:end])
	}
	return left, right, nil
}

// RenderWAV synthesizes the MIDI bytes and packages them as a 16-bit
// stereo RIFF/WAVE buffer.
func (r *Renderer) RenderWAV(midiData []byte) ([]byte, error) {
	left, right, err := r.Render(midiData)
	if err != nil {
		return nil, err
	}
	return encodeWAV(left, right, SampleRate), nil
}
