package smf

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/miditoy/miditoy/pkg/score"
)

// ErrTimingResolution is returned when beat math produces an impossible
// tick. The compiler fails closed instead of clamping: a silently clamped
// tick would corrupt playback timing.
var ErrTimingResolution = errors.New("smf: timing resolution error")

// Compile validates the composition and serializes it to Standard MIDI File
// bytes. It is a pure function: no I/O, no retained state, byte-identical
// output for identical input. All validation and resolution errors are
// returned before any serialization work begins.
func Compile(c *score.Composition) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	tracks, err := Resolve(c)
	if err != nil {
		return nil, err
	}
	return Encode(tracks)
}

// Resolve converts every note of the validated composition into absolutely
// timed note-on/note-off events, merges each track's events into one
// time-ordered stream and appends the meta events the file layout requires.
// The returned slices are ordered by tick ascending with note-off sorting
// before note-on at equal ticks; authoring order is preserved within a rank.
func Resolve(c *score.Composition) ([][]Event, error) {
	tempo, err := microsPerQuarter(c.BPM)
	if err != nil {
		return nil, err
	}
	ticksPerBeat := float64(TicksPerQuarter) * 4 / float64(c.TimeSignature.Denominator)

	tracks := make([][]Event, len(c.Tracks))
	nextChannel := 0
	for ti := range c.Tracks {
		t := &c.Tracks[ti]

		channel := t.Channel
		if channel == score.AutoChannel {
			channel = nextChannel % 16
			if channel == score.PercussionChannel {
				nextChannel++
				channel = nextChannel % 16
			}
			nextChannel++
		}

		events := make([]Event, 0, len(t.Notes)*2+3)
		if ti == 0 {
			events = append(events,
				Event{Kind: KindMetaTempo, MicrosPerQuarter: tempo},
				Event{Kind: KindMetaTimeSignature,
					Numerator: c.TimeSignature.Numerator,
					DenomLog2: log2(c.TimeSignature.Denominator)},
			)
		}
		if t.Instrument != 0 {
			events = append(events, Event{Kind: KindProgramChange, Channel: channel, Program: t.Instrument})
		}

		for ni, n := range t.Notes {
			onset := round((n.Beat - 1) * ticksPerBeat)
			length, err := n.Duration.Ticks(TicksPerQuarter)
			if err != nil {
				return nil, &score.NoteError{Track: ti, Note: ni, Field: "duration", Err: err}
			}
			if onset < 0 || length <= 0 {
				return nil, fmt.Errorf("%w: track %d note %d resolves to onset %d length %d",
					ErrTimingResolution, ti, ni, onset, length)
			}
			events = append(events,
				Event{Tick: onset, Kind: KindNoteOn, Channel: channel, Pitch: n.Pitch, Velocity: n.Velocity},
				Event{Tick: onset + length, Kind: KindNoteOff, Channel: channel, Pitch: n.Pitch},
			)
		}

		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Tick != events[j].Tick {
				return events[i].Tick < events[j].Tick
			}
			return events[i].rank() < events[j].rank()
		})

		end := 0
		if len(events) > 0 {
			end = events[len(events)-1].Tick
		}
		events = append(events, Event{Tick: end, Kind: KindEndOfTrack})
		tracks[ti] = events
	}
	return tracks, nil
}

// microsPerQuarter converts BPM to the 3-byte tempo meta payload.
func microsPerQuarter(bpm float64) (int, error) {
	m := round(microsPerMinute / bpm)
	if m < 1 || m > 0xFFFFFF {
		return 0, fmt.Errorf("%w: bpm %v does not fit a tempo event", score.ErrInvalidTempo, bpm)
	}
	return m, nil
}

// round rounds half-up to the nearest integer. Applied identically on every
// compile so the documented sub-tick drift is deterministic.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func log2(v int) int {
	n := 0
	for v > 1 {
		v >>= 1
		n++
	}
	return n
}
