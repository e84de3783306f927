package smf

import (
	"encoding/binary"
	"fmt"
)

// Encode serializes resolved track event streams into the SMF container:
// one MThd header chunk followed by one MTrk chunk per track. Format is 0
// for a single track and 1 for multiple simultaneous tracks; the division
// field always declares TicksPerQuarter.
//
// Within a track each event is written as a VLQ delta-time from the previous
// event followed by its status/data bytes. Running status is used: the
// status byte is omitted when it repeats, and meta events cancel it.
func Encode(tracks [][]Event) ([]byte, error) {
	if len(tracks) == 0 {
		return nil, fmt.Errorf("smf: no tracks to encode")
	}
	format := 0
	if len(tracks) > 1 {
		format = 1
	}

	buf := make([]byte, 0, 14+len(tracks)*64)
	buf = append(buf, headerChunkID...)
	buf = binary.BigEndian.AppendUint32(buf, 6)
	buf = binary.BigEndian.AppendUint16(buf, uint16(format))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(tracks)))
	buf = binary.BigEndian.AppendUint16(buf, TicksPerQuarter)

	for ti, events := range tracks {
		stream, err := encodeTrack(events)
		if err != nil {
			return nil, fmt.Errorf("smf: track %d: %w", ti, err)
		}
		buf = append(buf, trackChunkID...)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(stream)))
		buf = append(buf, stream...)
	}
	return buf, nil
}

func encodeTrack(events []Event) ([]byte, error) {
	var out []byte
	prevTick := 0
	running := byte(0)

	for _, e := range events {
		if e.Tick < prevTick {
			return nil, fmt.Errorf("%w: tick %d after %d", ErrTimingResolution, e.Tick, prevTick)
		}
		out = appendVLQ(out, uint32(e.Tick-prevTick))
		prevTick = e.Tick

		switch e.Kind {
		case KindNoteOn:
			out = appendChannelEvent(out, &running, statusNoteOn|byte(e.Channel), byte(e.Pitch), byte(e.Velocity))
		case KindNoteOff:
			out = appendChannelEvent(out, &running, statusNoteOff|byte(e.Channel), byte(e.Pitch), byte(e.Velocity))
		case KindProgramChange:
			status := byte(statusProgramChange | byte(e.Channel))
			if status != running {
				out = append(out, status)
				running = status
			}
			out = append(out, byte(e.Program))
		case KindMetaTempo:
			running = 0
			out = append(out, metaStatus, metaTempo, 3,
				byte(e.MicrosPerQuarter>>16), byte(e.MicrosPerQuarter>>8), byte(e.MicrosPerQuarter))
		case KindMetaTimeSignature:
			running = 0
			// 24 MIDI clocks per metronome click, 8 notated 32nds per quarter.
			out = append(out, metaStatus, metaTimeSignature, 4,
				byte(e.Numerator), byte(e.DenomLog2), 24, 8)
		case KindEndOfTrack:
			running = 0
			out = append(out, metaStatus, metaEndOfTrack, 0)
		default:
			return nil, fmt.Errorf("unencodable event kind %v", e.Kind)
		}
	}
	return out, nil
}

func appendChannelEvent(out []byte, running *byte, status, d1, d2 byte) []byte {
	if status != *running {
		out = append(out, status)
		*running = status
	}
	return append(out, d1, d2)
}
