// Package songs provides built-in compositions and parameterized composition
// producers. Everything here builds a score.Composition and hands it to the
// smf compiler; producers never reach into the compiler itself.
package songs

import (
	"github.com/miditoy/miditoy/pkg/score"
	"github.com/miditoy/miditoy/pkg/smf"
)

// MIDI note numbers by name and octave (C4 = middle C = 60).
const (
	// Octave 1
	C1 = 24

	// Octave 2
	C2, D2, E2, F2, G2, A2, B2 = 36, 38, 40, 41, 43, 45, 47

	// Octave 3
	C3, D3, Eb3, E3, F3, Fs3, G3, Gs3, A3, Bb3, B3 = 48, 50, 51, 52, 53, 54, 55, 56, 57, 58, 59

	// Octave 4
	C4, Cs4, D4, Ds4, Eb4, E4, F4, Fs4, G4, Gs4, A4, As4, Bb4, B4 = 60, 61, 62, 63, 63, 64, 65, 66, 67, 68, 69, 70, 70, 71

	// Octave 5
	C5, Cs5, D5, Ds5, Eb5, E5, F5, Fs5, G5, Gs5, A5, As5, B5 = 72, 73, 74, 75, 75, 76, 77, 78, 79, 80, 81, 82, 83

	// Octave 6
	C6 = 84

	// Rest advances the line cursor without sounding a note.
	Rest = -1
)

// Note-value shorthands for catalog definitions.
var (
	Whole      = score.Whole
	Half       = score.Half
	Quarter    = score.Quarter
	Eighth     = score.Eighth
	Sixteenth  = score.Sixteenth
	DotHalf    = score.DotHalf
	DotQuarter = score.DotQuarter
	DotEighth  = score.DotEighth
)

// BeatNote is one step of a sequential line: a pitch (or Rest) and a note
// value. Lines are a convenience for catalog writing; the compiler only
// sees the beat-positioned notes they expand to.
type BeatNote struct {
	Pitch    int
	Duration score.Duration
}

// N is a shorthand constructor for BeatNote.
func N(pitch int, d score.Duration) BeatNote { return BeatNote{Pitch: pitch, Duration: d} }

// R is a rest of the given note value.
func R(d score.Duration) BeatNote { return BeatNote{Pitch: Rest, Duration: d} }

// Line expands a sequential run of notes into beat-positioned score notes,
// starting at beat 1 and advancing the cursor by each note value.
// Catalog definitions use fixed note values, so a bad duration is a
// programming error and panics.
func Line(sig score.TimeSignature, velocity int, notes []BeatNote) []score.Note {
	out := make([]score.Note, 0, len(notes))
	beat := 1.0
	for _, bn := range notes {
		beats, err := bn.Duration.Beats(sig, smf.TicksPerQuarter)
		if err != nil {
			panic(err)
		}
		if bn.Pitch != Rest {
			out = append(out, score.Note{
				Pitch:    bn.Pitch,
				Velocity: velocity,
				Duration: bn.Duration,
				Beat:     beat,
			})
		}
		beat += beats
	}
	return out
}

// Song is a built-in composition: metadata plus a function producing its
// tracks fresh on every call.
type Song struct {
	ID        string
	Name      string
	BPM       float64
	Signature score.TimeSignature
	Tracks    func() []score.Track
}

// Compose builds the song's Composition.
func (s Song) Compose() *score.Composition {
	return &score.Composition{
		BPM:           s.BPM,
		TimeSignature: s.Signature,
		Tracks:        s.Tracks(),
	}
}

// All contains the built-in song catalog.
var All = []Song{
	SongBeethovenSymphony5,
	SongTwinkleStar,
	SongPianoEasy,
	SongPianoMedium,
	SongPianoHard,
	SongPianoExtreme,
}

// ByID returns a song by its ID, or nil if not found.
func ByID(id string) *Song {
	for i := range All {
		if All[i].ID == id {
			return &All[i]
		}
	}
	return nil
}

// IDs returns all song IDs.
func IDs() []string {
	ids := make([]string, len(All))
	for i, s := range All {
		ids[i] = s.ID
	}
	return ids
}
