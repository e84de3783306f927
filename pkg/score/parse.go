package score

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// Wire shapes for the JSON input contract. Unknown keys are ignored; missing
// keys fall through to zero values and are caught by Validate.
type compositionJSON struct {
	BPM           float64       `json:"bpm"`
	TimeSignature TimeSignature `json:"timeSignature"`
	Tracks        []trackJSON   `json:"tracks"`
}

type trackJSON struct {
	Name       string     `json:"name"`
	Instrument int        `json:"instrument"`
	Channel    *int       `json:"channel"`
	Notes      []noteJSON `json:"notes"`
}

type noteJSON struct {
	Pitch    int      `json:"pitch"`
	Velocity int      `json:"velocity"`
	Duration Duration `json:"duration"`
	Beat     float64  `json:"beat"`
}

// ParseJSON decodes and validates a composition from its JSON description.
//
// Input is frequently LLM-authored: if decoding fails with a JSON syntax
// error the data is run through jsonrepair and decoded again before giving
// up. Semantic problems (out-of-range pitch, bad duration token, ...) are
// reported via the Validate errors, never repaired.
func ParseJSON(data []byte) (*Composition, error) {
	c, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeJSON decodes a composition without validating it. Callers that
// accept drafts (a piece created before any track is added) use this and
// validate later, at compile time.
func DecodeJSON(data []byte) (*Composition, error) {
	var wire compositionJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return nil, fmt.Errorf("score: parse composition: %w", err)
	}

	c := &Composition{
		BPM:           wire.BPM,
		TimeSignature: wire.TimeSignature,
		Tracks:        make([]Track, len(wire.Tracks)),
	}
	for i, t := range wire.Tracks {
		ch := AutoChannel
		if t.Channel != nil {
			ch = *t.Channel
		}
		track := Track{
			Name:       t.Name,
			Instrument: t.Instrument,
			Channel:    ch,
			Notes:      make([]Note, len(t.Notes)),
		}
		for j, n := range t.Notes {
			track.Notes[j] = Note{
				Pitch:    n.Pitch,
				Velocity: n.Velocity,
				Duration: n.Duration,
				Beat:     n.Beat,
			}
		}
		c.Tracks[i] = track
	}
	return c, nil
}

// MarshalJSON renders the composition in the same wire shape ParseJSON
// accepts, so stored compositions survive a save/load cycle.
func (c *Composition) MarshalJSON() ([]byte, error) {
	wire := compositionJSON{
		BPM:           c.BPM,
		TimeSignature: c.TimeSignature,
		Tracks:        make([]trackJSON, len(c.Tracks)),
	}
	for i, t := range c.Tracks {
		wt := trackJSON{Name: t.Name, Instrument: t.Instrument}
		if t.Channel != AutoChannel {
			ch := t.Channel
			wt.Channel = &ch
		}
		wt.Notes = make([]noteJSON, len(t.Notes))
		for j, n := range t.Notes {
			wt.Notes[j] = noteJSON{Pitch: n.Pitch, Velocity: n.Velocity, Duration: n.Duration, Beat: n.Beat}
		}
		wire.Tracks[i] = wt
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the wire shape, without validating. Absent channel
// keys become AutoChannel, which the zero value cannot express.
func (c *Composition) UnmarshalJSON(data []byte) error {
	dec, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*c = *dec
	return nil
}

// unmarshalJSON unmarshals JSON data into v, attempting to repair malformed
// JSON. If the initial unmarshal fails with a syntax error, it tries to
// repair the JSON using jsonrepair before retrying.
func unmarshalJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}
