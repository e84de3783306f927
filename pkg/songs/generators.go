package songs

import (
	"fmt"
	"math/rand"

	"github.com/miditoy/miditoy/pkg/score"
	"github.com/miditoy/miditoy/pkg/smf"
	"github.com/miditoy/miditoy/pkg/theory"
)

// MelodyParams configures the random-walk melody producer.
type MelodyParams struct {
	// Scale is the scale type ("major", "minor", "pentatonic", ...).
	Scale string `json:"scale"`
	// Key is the root note name ("C", "F#", "Bb").
	Key string `json:"key"`
	// Octave is the starting octave, middle C is octave 4.
	Octave int `json:"octave"`
	// NoteCount is how many notes to generate.
	NoteCount int `json:"noteCount"`
	// Rhythm is an optional repeating pattern of duration tokens;
	// defaults to straight eighth notes.
	Rhythm []string `json:"rhythm,omitempty"`
	// Seed drives the random pitch and velocity choices, so the same
	// parameters always produce the same melody.
	Seed int64 `json:"seed"`
	// Instrument is the General MIDI program number.
	Instrument int `json:"instrument"`
}

// Melody builds a single-track composition by walking randomly over the
// notes of a scale. The generator is seeded: identical params yield an
// identical track, keeping compiled output reproducible.
func Melody(bpm float64, sig score.TimeSignature, p MelodyParams) (*score.Composition, error) {
	if p.Scale == "" {
		p.Scale = "major"
	}
	if p.Key == "" {
		p.Key = "C"
	}
	if p.Octave == 0 {
		p.Octave = 4
	}
	if p.NoteCount <= 0 {
		p.NoteCount = 16
	}
	pool, err := theory.Scale(p.Key, p.Scale, p.Octave, 1)
	if err != nil {
		return nil, err
	}

	rhythm := []score.Duration{score.Eighth}
	if len(p.Rhythm) > 0 {
		rhythm = make([]score.Duration, len(p.Rhythm))
		for i, tok := range p.Rhythm {
			rhythm[i] = score.DurationToken(tok)
		}
	}

	rng := rand.New(rand.NewSource(p.Seed))
	notes := make([]score.Note, 0, p.NoteCount)
	beat := 1.0
	for i := 0; i < p.NoteCount; i++ {
		d := rhythm[i%len(rhythm)]
		beats, err := d.Beats(sig, smf.TicksPerQuarter)
		if err != nil {
			return nil, err
		}
		notes = append(notes, score.Note{
			Pitch:    pool[rng.Intn(len(pool))],
			Velocity: 60 + rng.Intn(40),
			Duration: d,
			Beat:     beat,
		})
		beat += beats
	}

	return &score.Composition{
		BPM:           bpm,
		TimeSignature: sig,
		Tracks: []score.Track{{
			Name:       fmt.Sprintf("%s %s melody", p.Key, p.Scale),
			Instrument: p.Instrument,
			Channel:    score.AutoChannel,
			Notes:      notes,
		}},
	}, nil
}

// ChordProgressionParams configures the chord progression producer.
type ChordProgressionParams struct {
	// Chords are chord names such as "Cmaj7", "Am7", "F", "G7".
	Chords []string `json:"chords"`
	// BeatsPerChord is how many beats each chord sustains; defaults to a
	// full bar.
	BeatsPerChord float64 `json:"beatsPerChord"`
	// Octave is the octave of the chord roots.
	Octave int `json:"octave"`
	// Instrument is the General MIDI program number.
	Instrument int `json:"instrument"`
}

// ChordProgression builds a single-track composition sounding each named
// chord in sequence. All notes of a chord share an onset beat; the
// compiler's ordering rules keep simultaneous on/off events well-formed.
func ChordProgression(bpm float64, sig score.TimeSignature, p ChordProgressionParams) (*score.Composition, error) {
	if len(p.Chords) == 0 {
		return nil, fmt.Errorf("songs: chord progression needs at least one chord")
	}
	if p.BeatsPerChord <= 0 {
		p.BeatsPerChord = float64(sig.Numerator)
	}
	if p.Octave == 0 {
		p.Octave = 3
	}

	// Chord length in ticks so arbitrary BeatsPerChord values survive the
	// duration model exactly.
	ticksPerBeat := float64(smf.TicksPerQuarter) * 4 / float64(sig.Denominator)
	length := score.DurationTicks(int(p.BeatsPerChord*ticksPerBeat + 0.5))

	var notes []score.Note
	beat := 1.0
	for _, name := range p.Chords {
		root, chordType, err := theory.ParseChord(name)
		if err != nil {
			return nil, err
		}
		pitches, err := theory.Chord(root, chordType, p.Octave)
		if err != nil {
			return nil, err
		}
		for _, pitch := range pitches {
			notes = append(notes, score.Note{
				Pitch:    pitch,
				Velocity: 70,
				Duration: length,
				Beat:     beat,
			})
		}
		beat += p.BeatsPerChord
	}

	return &score.Composition{
		BPM:           bpm,
		TimeSignature: sig,
		Tracks: []score.Track{{
			Name:       "Chords",
			Instrument: p.Instrument,
			Channel:    score.AutoChannel,
			Notes:      notes,
		}},
	}, nil
}

// DrumPatternParams configures the step-sequenced drum producer. Each
// pattern slice is one boolean per sixteenth-note step.
type DrumPatternParams struct {
	Kick  []bool `json:"kick"`
	Snare []bool `json:"snare"`
	Hihat []bool `json:"hihat"`
	// Repeats plays the pattern this many times; defaults to 1.
	Repeats int `json:"repeats"`
}

// drumHit is short and fixed: percussion voices are triggered, not held.
var drumHit = score.DurationTicks(10)

// DrumPattern builds a percussion track on the General MIDI drum channel.
func DrumPattern(bpm float64, sig score.TimeSignature, p DrumPatternParams) (*score.Composition, error) {
	steps := max(len(p.Kick), max(len(p.Snare), len(p.Hihat)))
	if steps == 0 {
		return nil, fmt.Errorf("songs: drum pattern has no steps")
	}
	if p.Repeats <= 0 {
		p.Repeats = 1
	}

	// One step per sixteenth note.
	stepBeats, err := score.Sixteenth.Beats(sig, smf.TicksPerQuarter)
	if err != nil {
		return nil, err
	}

	voices := []struct {
		pattern  []bool
		note     int
		velocity int
	}{
		{p.Kick, theory.Drums["kick"], 100},
		{p.Snare, theory.Drums["snare"], 90},
		{p.Hihat, theory.Drums["hihat"], 70},
	}

	var notes []score.Note
	for rep := 0; rep < p.Repeats; rep++ {
		base := 1.0 + float64(rep*steps)*stepBeats
		for i := 0; i < steps; i++ {
			for _, v := range voices {
				if i < len(v.pattern) && v.pattern[i] {
					notes = append(notes, score.Note{
						Pitch:    v.note,
						Velocity: v.velocity,
						Duration: drumHit,
						Beat:     base + float64(i)*stepBeats,
					})
				}
			}
		}
	}

	return &score.Composition{
		BPM:           bpm,
		TimeSignature: sig,
		Tracks: []score.Track{{
			Name:    "Drums",
			Channel: score.PercussionChannel,
			Notes:   notes,
		}},
	}, nil
}
