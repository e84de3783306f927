// Package smf compiles a validated score.Composition into Standard MIDI File
// bytes and decodes SMF bytes back into timed events.
//
// The compiler is a pure, synchronous pipeline: validate, resolve beat
// positions to absolute ticks, merge each track's events into one
// time-ordered stream, delta-encode and serialize. It holds no state between
// calls, so compiles of independent compositions may run concurrently.
// Compiling the same composition twice yields byte-identical output.
package smf

// TicksPerQuarter is the fixed timing resolution declared in the file
// header and shared by every track.
const TicksPerQuarter = 480

// Chunk identifiers.
const (
	headerChunkID = "MThd"
	trackChunkID  = "MTrk"
)

// Channel message status nibbles.
const (
	statusNoteOff       = 0x80
	statusNoteOn        = 0x90
	statusProgramChange = 0xC0
)

// Meta event markers.
const (
	metaStatus        = 0xFF
	metaTempo         = 0x51
	metaTimeSignature = 0x58
	metaEndOfTrack    = 0x2F
)

// microsPerMinute converts BPM to the tempo meta event's microseconds per
// quarter note.
const microsPerMinute = 60_000_000
