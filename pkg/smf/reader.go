package smf

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrBadFile is returned by Decode for bytes that do not parse as a
// Standard MIDI File.
var ErrBadFile = errors.New("smf: malformed file")

// File is the decoded view of an SMF byte buffer: header fields plus each
// track's events with ticks accumulated back to absolute time.
type File struct {
	Format   int
	Division int
	Tracks   [][]Event
}

// Decode parses SMF bytes into a File. Delta-times are accumulated into
// absolute ticks and running status is honored. Events outside the
// compiler's vocabulary (controllers, pitch bend, sysex, other meta types)
// are skipped; decoding recovers timing and note content, not every byte.
func Decode(data []byte) (*File, error) {
	if len(data) < 14 || string(data[:4]) != headerChunkID {
		return nil, fmt.Errorf("%w: missing MThd header", ErrBadFile)
	}
	headerLen := binary.BigEndian.Uint32(data[4:8])
	if headerLen < 6 {
		return nil, fmt.Errorf("%w: header length %d", ErrBadFile, headerLen)
	}
	f := &File{
		Format:   int(binary.BigEndian.Uint16(data[8:10])),
		Division: int(binary.BigEndian.Uint16(data[12:14])),
	}
	numTracks := int(binary.BigEndian.Uint16(data[10:12]))

	off := 8 + int(headerLen)
	for ti := 0; ti < numTracks; ti++ {
		if off+8 > len(data) {
			return nil, fmt.Errorf("%w: truncated track %d header", ErrBadFile, ti)
		}
		if string(data[off:off+4]) != trackChunkID {
			return nil, fmt.Errorf("%w: track %d: bad chunk id %q", ErrBadFile, ti, data[off:off+4])
		}
		length := int(binary.BigEndian.Uint32(data[off+4 : off+8]))
		off += 8
		if off+length > len(data) {
			return nil, fmt.Errorf("%w: track %d: chunk length %d exceeds buffer", ErrBadFile, ti, length)
		}
		events, err := decodeTrack(data[off : off+length])
		if err != nil {
			return nil, fmt.Errorf("%w: track %d: %v", ErrBadFile, ti, err)
		}
		f.Tracks = append(f.Tracks, events)
		off += length
	}
	return f, nil
}

func decodeTrack(stream []byte) ([]Event, error) {
	var events []Event
	tick := 0
	running := byte(0)
	off := 0

	for off < len(stream) {
		delta, next, err := readVLQ(stream, off)
		if err != nil {
			return nil, err
		}
		off = next
		tick += int(delta)

		if off >= len(stream) {
			return nil, fmt.Errorf("truncated event at offset %d", off)
		}
		status := stream[off]
		if status&0x80 != 0 {
			off++
		} else {
			// Running status: reuse the previous channel status byte.
			if running == 0 {
				return nil, fmt.Errorf("data byte 0x%02X with no running status", status)
			}
			status = running
		}

		switch {
		case status == metaStatus:
			running = 0
			if off >= len(stream) {
				return nil, fmt.Errorf("truncated meta event")
			}
			metaType := stream[off]
			off++
			length, next, err := readVLQ(stream, off)
			if err != nil {
				return nil, err
			}
			off = next
			if off+int(length) > len(stream) {
				return nil, fmt.Errorf("meta event overruns track")
			}
			payload := stream[off : off+int(length)]
			off += int(length)

			switch metaType {
			case metaTempo:
				if length != 3 {
					return nil, fmt.Errorf("tempo meta length %d", length)
				}
				events = append(events, Event{Tick: tick, Kind: KindMetaTempo,
					MicrosPerQuarter: int(payload[0])<<16 | int(payload[1])<<8 | int(payload[2])})
			case metaTimeSignature:
				if length < 2 {
					return nil, fmt.Errorf("time-signature meta length %d", length)
				}
				events = append(events, Event{Tick: tick, Kind: KindMetaTimeSignature,
					Numerator: int(payload[0]), DenomLog2: int(payload[1])})
			case metaEndOfTrack:
				events = append(events, Event{Tick: tick, Kind: KindEndOfTrack})
				return events, nil
			}
			// Other meta types are skipped.

		case status == 0xF0 || status == 0xF7:
			running = 0
			length, next, err := readVLQ(stream, off)
			if err != nil {
				return nil, err
			}
			off = next + int(length)
			if off > len(stream) {
				return nil, fmt.Errorf("sysex overruns track")
			}

		default:
			running = status
			channel := int(status & 0x0F)
			switch status & 0xF0 {
			case statusNoteOn, statusNoteOff:
				if off+2 > len(stream) {
					return nil, fmt.Errorf("truncated note event")
				}
				pitch, velocity := int(stream[off]), int(stream[off+1])
				off += 2
				kind := KindNoteOn
				if status&0xF0 == statusNoteOff || velocity == 0 {
					kind = KindNoteOff
				}
				events = append(events, Event{Tick: tick, Kind: kind,
					Channel: channel, Pitch: pitch, Velocity: velocity})
			case statusProgramChange, 0xD0: // program change, channel pressure
				if off+1 > len(stream) {
					return nil, fmt.Errorf("truncated 1-byte event")
				}
				if status&0xF0 == statusProgramChange {
					events = append(events, Event{Tick: tick, Kind: KindProgramChange,
						Channel: channel, Program: int(stream[off])})
				}
				off++
			case 0xA0, 0xB0, 0xE0: // aftertouch, controller, pitch bend
				if off+2 > len(stream) {
					return nil, fmt.Errorf("truncated 2-byte event")
				}
				off += 2
			default:
				return nil, fmt.Errorf("unknown status byte 0x%02X", status)
			}
		}
	}
	return events, nil
}
