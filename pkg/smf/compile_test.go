package smf

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/miditoy/miditoy/pkg/score"
)

func twoNoteComposition() *score.Composition {
	return &score.Composition{
		BPM:           120,
		TimeSignature: score.Time4_4,
		Tracks: []score.Track{{
			Name:    "Melody",
			Channel: score.AutoChannel,
			Notes: []score.Note{
				{Pitch: 60, Velocity: 96, Duration: score.Quarter, Beat: 1},
				{Pitch: 60, Velocity: 96, Duration: score.Quarter, Beat: 2},
			},
		}},
	}
}

// Two back-to-back quarter notes on one track, checked byte for byte:
// header, tempo and time-signature meta, the note events with their VLQ
// deltas, running status not kicking in across the off/on status change,
// and the end-of-track marker at the final tick.
func TestCompileSingleTrackBytes(t *testing.T) {
	data, err := Compile(twoNoteComposition())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	want := []byte{
		// MThd, length 6, format 0, 1 track, division 480
		'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 0, 0, 1, 0x01, 0xE0,
		// MTrk, length 37
		'M', 'T', 'r', 'k', 0, 0, 0, 37,
		// delta 0, tempo 500000 (120 BPM)
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
		// delta 0, time signature 4/4
		0x00, 0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08,
		// delta 0, note on C4 velocity 96
		0x00, 0x90, 0x3C, 0x60,
		// delta 480, note off C4
		0x83, 0x60, 0x80, 0x3C, 0x00,
		// delta 0, note on C4 again
		0x00, 0x90, 0x3C, 0x60,
		// delta 480, note off
		0x83, 0x60, 0x80, 0x3C, 0x00,
		// delta 0, end of track
		0x00, 0xFF, 0x2F, 0x00,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("compiled bytes\n got % X\nwant % X", data, want)
	}
}

func TestCompileDeterministic(t *testing.T) {
	a, err := Compile(twoNoteComposition())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile(twoNoteComposition())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical compositions compiled to different bytes")
	}
}

// A chord shares one onset; the second note-on and the second note-off ride
// the running status byte of the first.
func TestCompileChordRunningStatus(t *testing.T) {
	c := twoNoteComposition()
	c.Tracks[0].Notes = []score.Note{
		{Pitch: 60, Velocity: 96, Duration: score.Quarter, Beat: 1},
		{Pitch: 64, Velocity: 96, Duration: score.Quarter, Beat: 1},
	}
	data, err := Compile(c)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{
		'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 0, 0, 1, 0x01, 0xE0,
		'M', 'T', 'r', 'k', 0, 0, 0, 34,
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
		0x00, 0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08,
		0x00, 0x90, 0x3C, 0x60,
		0x00, 0x40, 0x60, // running status
		0x83, 0x60, 0x80, 0x3C, 0x00,
		0x00, 0x40, 0x00, // running status
		0x00, 0xFF, 0x2F, 0x00,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("compiled bytes\n got % X\nwant % X", data, want)
	}
}

func TestResolveEqualTickOrdering(t *testing.T) {
	tracks, err := Resolve(twoNoteComposition())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	events := tracks[0]

	// At tick 480 the off for the first note must precede the on for the
	// second, so repeated pitches nest instead of overlapping.
	var at480 []Kind
	for _, e := range events {
		if e.Tick == 480 && (e.Kind == KindNoteOn || e.Kind == KindNoteOff) {
			at480 = append(at480, e.Kind)
		}
	}
	want := []Kind{KindNoteOff, KindNoteOn}
	if !reflect.DeepEqual(at480, want) {
		t.Errorf("kinds at tick 480 = %v, want %v", at480, want)
	}

	for i := 1; i < len(events); i++ {
		if events[i].Tick < events[i-1].Tick {
			t.Fatalf("event %d at tick %d after tick %d", i, events[i].Tick, events[i-1].Tick)
		}
		if events[i].Tick == events[i-1].Tick && events[i].rank() < events[i-1].rank() {
			t.Fatalf("event %d rank %d before rank %d at tick %d",
				i, events[i].rank(), events[i-1].rank(), events[i].Tick)
		}
	}
}

// A whole note with a quarter of the same pitch starting inside it: both
// ons and both offs must survive compilation, pairing first-on/first-off,
// with ticks never going backwards.
func TestCompileOverlappingSamePitch(t *testing.T) {
	c := &score.Composition{
		BPM:           120,
		TimeSignature: score.Time4_4,
		Tracks: []score.Track{{
			Name:    "Pad",
			Channel: score.AutoChannel,
			Notes: []score.Note{
				{Pitch: 60, Velocity: 96, Duration: score.Whole, Beat: 1},
				{Pitch: 60, Velocity: 96, Duration: score.Quarter, Beat: 2},
			},
		}},
	}
	data, err := Compile(c)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var ons, offs, active, lastTick int
	for _, e := range f.Tracks[0] {
		if e.Tick < lastTick {
			t.Fatalf("tick went backwards: %d after %d", e.Tick, lastTick)
		}
		lastTick = e.Tick
		switch e.Kind {
		case KindNoteOn:
			ons++
			active++
		case KindNoteOff:
			offs++
			active--
			if active < 0 {
				t.Fatalf("off at tick %d with no sounding note", e.Tick)
			}
		}
	}
	if ons != 2 || offs != 2 {
		t.Fatalf("got %d ons and %d offs, want 2 and 2", ons, offs)
	}
	if active != 0 {
		t.Fatalf("%d notes left sounding at end of track", active)
	}

	// Each note keeps its own off: the quarter ends at 960, the whole at
	// 1920. Neither release is swallowed by the overlap.
	var offTicks []int
	for _, e := range f.Tracks[0] {
		if e.Kind == KindNoteOff {
			offTicks = append(offTicks, e.Tick)
		}
	}
	if want := []int{960, 1920}; !reflect.DeepEqual(offTicks, want) {
		t.Errorf("off ticks = %v, want %v", offTicks, want)
	}
}

func TestResolveMetaOnFirstTrackOnly(t *testing.T) {
	c := twoNoteComposition()
	c.Tracks = append(c.Tracks, score.Track{
		Name:       "Bass",
		Instrument: 33,
		Channel:    score.AutoChannel,
		Notes:      []score.Note{{Pitch: 36, Velocity: 80, Duration: score.Half, Beat: 1}},
	})
	tracks, err := Resolve(c)
	if err != nil {
		t.Fatal(err)
	}

	if tracks[0][0].Kind != KindMetaTempo || tracks[0][1].Kind != KindMetaTimeSignature {
		t.Errorf("track 0 should open with tempo and time signature, got %v %v",
			tracks[0][0].Kind, tracks[0][1].Kind)
	}
	for _, e := range tracks[1] {
		if e.Kind == KindMetaTempo || e.Kind == KindMetaTimeSignature {
			t.Errorf("track 1 carries meta event %v", e.Kind)
		}
	}

	// Second track declares its instrument; channels are assigned in order.
	if tracks[1][0].Kind != KindProgramChange || tracks[1][0].Program != 33 {
		t.Errorf("track 1 should open with program change 33, got %+v", tracks[1][0])
	}
	if tracks[1][0].Channel != 1 {
		t.Errorf("track 1 channel = %d, want 1", tracks[1][0].Channel)
	}
}

func TestCompileMultiTrackFormat(t *testing.T) {
	c := twoNoteComposition()
	c.Tracks = append(c.Tracks, score.Track{
		Channel: score.AutoChannel,
		Notes:   []score.Note{{Pitch: 48, Velocity: 70, Duration: score.Whole, Beat: 1}},
	})
	data, err := Compile(c)
	if err != nil {
		t.Fatal(err)
	}
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Format != 1 {
		t.Errorf("format = %d, want 1", f.Format)
	}
	if len(f.Tracks) != 2 {
		t.Errorf("tracks = %d, want 2", len(f.Tracks))
	}
}

func TestAutoChannelSkipsPercussion(t *testing.T) {
	c := &score.Composition{BPM: 120, TimeSignature: score.Time4_4}
	for i := 0; i < 11; i++ {
		c.Tracks = append(c.Tracks, score.Track{
			Channel: score.AutoChannel,
			Notes:   []score.Note{{Pitch: 60, Velocity: 90, Duration: score.Quarter, Beat: 1}},
		})
	}
	tracks, err := Resolve(c)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 11}
	for ti, events := range tracks {
		channel := -1
		for _, e := range events {
			if e.Kind == KindNoteOn {
				channel = e.Channel
				break
			}
		}
		if channel != want[ti] {
			t.Errorf("track %d channel = %d, want %d", ti, channel, want[ti])
		}
	}
}

func TestExplicitPercussionChannelKept(t *testing.T) {
	c := twoNoteComposition()
	c.Tracks[0].Channel = score.PercussionChannel
	tracks, err := Resolve(c)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range tracks[0] {
		if e.Kind == KindNoteOn && e.Channel != score.PercussionChannel {
			t.Errorf("channel = %d, want %d", e.Channel, score.PercussionChannel)
		}
	}
}

func TestCompileRoundTrip(t *testing.T) {
	c := twoNoteComposition()
	c.Tracks[0].Instrument = 40
	c.Tracks = append(c.Tracks, score.Track{
		Channel: score.PercussionChannel,
		Notes: []score.Note{
			{Pitch: 36, Velocity: 100, Duration: score.DurationTicks(10), Beat: 1},
			{Pitch: 42, Velocity: 70, Duration: score.DurationTicks(10), Beat: 1.5},
		},
	})

	resolved, err := Resolve(c)
	if err != nil {
		t.Fatal(err)
	}
	data, err := Compile(c)
	if err != nil {
		t.Fatal(err)
	}
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Division != TicksPerQuarter {
		t.Errorf("division = %d, want %d", f.Division, TicksPerQuarter)
	}
	if !reflect.DeepEqual(f.Tracks, resolved) {
		t.Errorf("decoded events differ from resolved events\n got %+v\nwant %+v", f.Tracks, resolved)
	}
}

func TestCompileSixEightTiming(t *testing.T) {
	c := &score.Composition{
		BPM:           90,
		TimeSignature: score.Time6_8,
		Tracks: []score.Track{{
			Channel: score.AutoChannel,
			Notes: []score.Note{
				{Pitch: 60, Velocity: 90, Duration: score.Eighth, Beat: 1},
				{Pitch: 62, Velocity: 90, Duration: score.Eighth, Beat: 2},
			},
		}},
	}
	tracks, err := Resolve(c)
	if err != nil {
		t.Fatal(err)
	}
	// In x/8 meter a beat is an eighth note: 240 ticks at 480 TPQ.
	var onsets []int
	for _, e := range tracks[0] {
		if e.Kind == KindNoteOn {
			onsets = append(onsets, e.Tick)
		}
	}
	if !reflect.DeepEqual(onsets, []int{0, 240}) {
		t.Errorf("onsets = %v, want [0 240]", onsets)
	}
	if tracks[0][1].Numerator != 6 || tracks[0][1].DenomLog2 != 3 {
		t.Errorf("time signature meta = %d/2^%d, want 6/2^3", tracks[0][1].Numerator, tracks[0][1].DenomLog2)
	}
}

func TestCompileRejectsInvalid(t *testing.T) {
	c := twoNoteComposition()
	c.BPM = 0
	if _, err := Compile(c); !errors.Is(err, score.ErrInvalidTempo) {
		t.Errorf("error = %v, want ErrInvalidTempo", err)
	}

	c = twoNoteComposition()
	c.Tracks[0].Notes[0].Duration = score.DurationToken("13")
	_, err := Compile(c)
	var ne *score.NoteError
	if !errors.As(err, &ne) {
		t.Errorf("error = %v, want *NoteError", err)
	}
}

func TestMicrosPerQuarter(t *testing.T) {
	tests := []struct {
		bpm  float64
		want int
	}{
		{120, 500000},
		{60, 1000000},
		{100, 600000},
		{108, 555556},
	}
	for _, tt := range tests {
		got, err := microsPerQuarter(tt.bpm)
		if err != nil {
			t.Errorf("microsPerQuarter(%v): %v", tt.bpm, err)
			continue
		}
		if got != tt.want {
			t.Errorf("microsPerQuarter(%v) = %d, want %d", tt.bpm, got, tt.want)
		}
	}
	if _, err := microsPerQuarter(0.003); err == nil {
		t.Error("tempo too slow for a 3-byte payload should be rejected")
	}
}
