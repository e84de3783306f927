package smf

import "fmt"

// Kind identifies the event types the compiler emits and the reader
// reconstructs.
type Kind int

const (
	KindMetaTempo Kind = iota
	KindMetaTimeSignature
	KindProgramChange
	KindNoteOff
	KindNoteOn
	KindEndOfTrack
)

func (k Kind) String() string {
	switch k {
	case KindMetaTempo:
		return "tempo"
	case KindMetaTimeSignature:
		return "time-signature"
	case KindProgramChange:
		return "program-change"
	case KindNoteOff:
		return "note-off"
	case KindNoteOn:
		return "note-on"
	case KindEndOfTrack:
		return "end-of-track"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a resolved, absolutely-timed MIDI event. Tick is absolute; the
// delta-time encoding happens only at serialization.
//
// Field use by kind:
//
//	note-on/off     Channel, Pitch, Velocity
//	program-change  Channel, Program
//	tempo           MicrosPerQuarter
//	time-signature  Numerator, DenomLog2
type Event struct {
	Tick int
	Kind Kind

	Channel  int
	Pitch    int
	Velocity int
	Program  int

	MicrosPerQuarter int
	Numerator        int
	DenomLog2        int
}

// rank is the equal-tick ordering: meta setup first, then program changes,
// then note-offs before note-ons so a pitch ending and restarting at the
// same instant never appears still-sounding. End-of-track sorts last.
func (e Event) rank() int {
	switch e.Kind {
	case KindMetaTempo:
		return 0
	case KindMetaTimeSignature:
		return 1
	case KindProgramChange:
		return 2
	case KindNoteOff:
		return 3
	case KindNoteOn:
		return 4
	case KindEndOfTrack:
		return 5
	}
	return 6
}
