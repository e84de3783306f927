// Package score defines the declarative composition model: a tempo, a time
// signature, and a set of named tracks whose notes are anchored to beat
// positions. A Composition is pure data; it is built once (from literal Go
// values or parsed from JSON) and handed to the smf compiler as an immutable
// input.
//
// Beat positions are 1-indexed: beat 1.0 is the first beat of the piece.
// Note durations are expressed as note-value tokens ("4" for a quarter note,
// "8." for a dotted eighth) or as explicit tick counts; see Duration.
package score

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors. NoteError wraps ErrInvalidNote and carries the track and
// note index of the first offending field.
var (
	ErrInvalidTempo         = errors.New("score: invalid tempo")
	ErrInvalidTimeSignature = errors.New("score: invalid time signature")
	ErrEmptyComposition     = errors.New("score: composition has no tracks")
	ErrInvalidNote          = errors.New("score: invalid note")
)

// NoteError reports an out-of-range or unresolvable field on a single note.
// Note is -1 for track-level fields (instrument, channel).
type NoteError struct {
	Track int
	Note  int
	Field string
	Err   error
}

func (e *NoteError) Error() string {
	if e.Note < 0 {
		return fmt.Sprintf("track %d: %s: %v", e.Track, e.Field, e.Err)
	}
	return fmt.Sprintf("track %d note %d: %s: %v", e.Track, e.Note, e.Field, e.Err)
}

func (e *NoteError) Unwrap() error { return e.Err }

// AutoChannel lets the compiler assign the track a free MIDI channel
// (0,1,2,... skipping the percussion channel 9).
const AutoChannel = -1

// PercussionChannel is the General MIDI percussion channel.
const PercussionChannel = 9

// TimeSignature is a musical meter such as 4/4 or 6/8.
// The denominator must be a power of two.
type TimeSignature struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// Common time signatures.
var (
	Time4_4 = TimeSignature{4, 4}
	Time3_4 = TimeSignature{3, 4}
	Time2_4 = TimeSignature{2, 4}
	Time6_8 = TimeSignature{6, 8}
)

// Note is a single pitched event at a beat position.
type Note struct {
	// Pitch is the MIDI note number, 0-127 (middle C = 60).
	Pitch int `json:"pitch"`
	// Velocity is the attack strength, 1-127. Velocity 0 is reserved for
	// the note-off-as-note-on encoding and is rejected as input.
	Velocity int `json:"velocity"`
	// Duration is the sounding length of the note.
	Duration Duration `json:"duration"`
	// Beat is the onset position in beats from the start, 1-indexed.
	Beat float64 `json:"beat"`
}

// Track is an ordered-by-authoring collection of notes played by one
// instrument. Authoring order of Notes is musically irrelevant; the compiler
// re-orders by time.
type Track struct {
	// Name is a display label, not semantically load-bearing.
	Name string `json:"name"`
	// Instrument is the General MIDI program number, 0-127.
	Instrument int `json:"instrument"`
	// Channel is the MIDI channel 0-15, or AutoChannel.
	Channel int `json:"channel,omitempty"`
	// Notes holds the track's notes in any order.
	Notes []Note `json:"notes"`
}

// Composition is a complete declarative piece.
type Composition struct {
	// BPM is the tempo in beats per minute. One global value; the model has
	// no mid-piece tempo changes.
	BPM float64 `json:"bpm"`
	// TimeSignature is the piece's meter.
	TimeSignature TimeSignature `json:"timeSignature"`
	// Tracks are the simultaneous voices. Order is significant: the first
	// track carries the tempo and time-signature meta events.
	Tracks []Track `json:"tracks"`
}

// Validate checks the composition against the model's invariants and returns
// the first violation found. It has no side effects; a nil return means the
// composition is safe to hand to the compiler.
//
// Checks run in order: tempo, time signature, track presence, then each
// track's instrument/channel and each note's pitch, velocity, duration and
// beat position.
func (c *Composition) Validate() error {
	if c.BPM <= 0 || math.IsInf(c.BPM, 0) || math.IsNaN(c.BPM) {
		return fmt.Errorf("%w: bpm %v", ErrInvalidTempo, c.BPM)
	}
	if err := c.TimeSignature.validate(); err != nil {
		return err
	}
	if len(c.Tracks) == 0 {
		return ErrEmptyComposition
	}
	for ti := range c.Tracks {
		if err := c.Tracks[ti].validate(ti); err != nil {
			return err
		}
	}
	return nil
}

func (ts TimeSignature) validate() error {
	if ts.Numerator <= 0 || ts.Denominator <= 0 {
		return fmt.Errorf("%w: %d/%d", ErrInvalidTimeSignature, ts.Numerator, ts.Denominator)
	}
	if ts.Denominator&(ts.Denominator-1) != 0 {
		return fmt.Errorf("%w: denominator %d is not a power of two", ErrInvalidTimeSignature, ts.Denominator)
	}
	return nil
}

func (t *Track) validate(ti int) error {
	if t.Instrument < 0 || t.Instrument > 127 {
		return &NoteError{Track: ti, Note: -1, Field: "instrument",
			Err: fmt.Errorf("%w: program %d out of range 0-127", ErrInvalidNote, t.Instrument)}
	}
	if t.Channel != AutoChannel && (t.Channel < 0 || t.Channel > 15) {
		return &NoteError{Track: ti, Note: -1, Field: "channel",
			Err: fmt.Errorf("%w: channel %d out of range 0-15", ErrInvalidNote, t.Channel)}
	}
	for ni, n := range t.Notes {
		if n.Pitch < 0 || n.Pitch > 127 {
			return &NoteError{Track: ti, Note: ni, Field: "pitch",
				Err: fmt.Errorf("%w: %d out of range 0-127", ErrInvalidNote, n.Pitch)}
		}
		if n.Velocity < 1 || n.Velocity > 127 {
			return &NoteError{Track: ti, Note: ni, Field: "velocity",
				Err: fmt.Errorf("%w: %d out of range 1-127", ErrInvalidNote, n.Velocity)}
		}
		if err := n.Duration.validate(); err != nil {
			return &NoteError{Track: ti, Note: ni, Field: "duration", Err: err}
		}
		if n.Beat < 1 {
			return &NoteError{Track: ti, Note: ni, Field: "beat",
				Err: fmt.Errorf("%w: beat %v is before beat 1", ErrInvalidNote, n.Beat)}
		}
	}
	return nil
}
