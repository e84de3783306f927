package smf

import (
	"fmt"
	"strings"

	"github.com/miditoy/miditoy/pkg/theory"
)

// FileInfo summarizes a decoded SMF buffer.
type FileInfo struct {
	Format   int         `json:"format"`
	Division int         `json:"division"`
	Tempo    float64     `json:"bpm,omitempty"`
	Seconds  float64     `json:"seconds"`
	Tracks   []TrackInfo `json:"tracks"`
}

// TrackInfo summarizes one track of a decoded file.
type TrackInfo struct {
	Track          int  `json:"track"`
	Events         int  `json:"events"`
	NoteEvents     int  `json:"noteEvents"`
	ProgramChanges int  `json:"programChanges"`
	LowestNote     int  `json:"lowestNote,omitempty"`
	HighestNote    int  `json:"highestNote,omitempty"`
	EndTick        int  `json:"endTick"`
	HasNotes       bool `json:"hasNotes"`
}

// Analyze decodes the buffer and reports per-file and per-track statistics.
func Analyze(data []byte) (*FileInfo, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	info := &FileInfo{Format: f.Format, Division: f.Division}

	microsPerQuarterNote := 500_000 // MIDI default: 120 BPM
	maxTick := 0
	for ti, events := range f.Tracks {
		t := TrackInfo{Track: ti}
		for _, e := range events {
			t.Events++
			switch e.Kind {
			case KindNoteOn:
				t.NoteEvents++
				if !t.HasNotes || e.Pitch < t.LowestNote {
					t.LowestNote = e.Pitch
				}
				if !t.HasNotes || e.Pitch > t.HighestNote {
					t.HighestNote = e.Pitch
				}
				t.HasNotes = true
			case KindProgramChange:
				t.ProgramChanges++
			case KindMetaTempo:
				microsPerQuarterNote = e.MicrosPerQuarter
			}
			if e.Tick > t.EndTick {
				t.EndTick = e.Tick
			}
		}
		if t.EndTick > maxTick {
			maxTick = t.EndTick
		}
		info.Tracks = append(info.Tracks, t)
	}
	if f.Division > 0 && microsPerQuarterNote > 0 {
		info.Tempo = float64(microsPerMinute) / float64(microsPerQuarterNote)
		info.Seconds = float64(maxTick) / float64(f.Division) * float64(microsPerQuarterNote) / 1e6
	}
	return info, nil
}

// DumpText renders the decoded event streams as human-readable text, one
// line per event with absolute tick, note name and channel.
func DumpText(data []byte) (string, error) {
	f, err := Decode(data)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for ti, events := range f.Tracks {
		fmt.Fprintf(&b, "Track %d:\n", ti)
		for _, e := range events {
			switch e.Kind {
			case KindNoteOn, KindNoteOff:
				name, octave := theory.NoteName(e.Pitch)
				label := "Note On "
				if e.Kind == KindNoteOff {
					label = "Note Off"
				}
				fmt.Fprintf(&b, "  Tick:%6d  %s %s%d (#%d) Velocity:%d Channel:%d\n",
					e.Tick, label, name, octave, e.Pitch, e.Velocity, e.Channel)
			case KindProgramChange:
				fmt.Fprintf(&b, "  Tick:%6d  Program Change: %d Channel:%d\n", e.Tick, e.Program, e.Channel)
			case KindMetaTempo:
				fmt.Fprintf(&b, "  Tick:%6d  Tempo: %.1f BPM\n",
					e.Tick, float64(microsPerMinute)/float64(e.MicrosPerQuarter))
			case KindMetaTimeSignature:
				fmt.Fprintf(&b, "  Tick:%6d  Time Signature: %d/%d\n", e.Tick, e.Numerator, 1<<e.DenomLog2)
			case KindEndOfTrack:
				fmt.Fprintf(&b, "  Tick:%6d  End Of Track\n", e.Tick)
			}
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
