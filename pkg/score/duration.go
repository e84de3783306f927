package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnsupportedDuration is returned for a duration token that does not map
// to a known note value.
var ErrUnsupportedDuration = errors.New("score: unsupported duration token")

// Duration is a note length. It is either a note-value token (a fraction of
// a whole note: "1", "2", "4", "8", "16", "32", "64", optionally suffixed
// with "." for dotted or "t" for triplet, or a word alias such as "quarter")
// or an explicit tick count.
//
// In JSON a token is a string and an explicit tick count is a number:
//
//	{"duration": "4"}    quarter note
//	{"duration": "8."}   dotted eighth
//	{"duration": 960}    exactly 960 ticks
type Duration struct {
	token string
	ticks int
}

// Word aliases accepted in addition to the numeric tokens.
var durationAliases = map[string]string{
	"whole":     "1",
	"half":      "2",
	"quarter":   "4",
	"eighth":    "8",
	"sixteenth": "16",
}

// DurationToken returns the Duration for a note-value token.
// The token is not checked here; Validate and Ticks reject unknown tokens.
func DurationToken(tok string) Duration { return Duration{token: tok} }

// DurationTicks returns a Duration of an explicit tick count.
func DurationTicks(ticks int) Duration { return Duration{ticks: ticks} }

// Convenience values for the common note lengths.
var (
	Whole      = DurationToken("1")
	Half       = DurationToken("2")
	Quarter    = DurationToken("4")
	Eighth     = DurationToken("8")
	Sixteenth  = DurationToken("16")
	DotHalf    = DurationToken("2.")
	DotQuarter = DurationToken("4.")
	DotEighth  = DurationToken("8.")
)

// IsZero reports whether d is the zero value (no token, no ticks).
func (d Duration) IsZero() bool { return d.token == "" && d.ticks == 0 }

func (d Duration) String() string {
	if d.token != "" {
		return d.token
	}
	return strconv.Itoa(d.ticks) + "t"
}

// fraction resolves a token to its length as a fraction of a whole note.
func (d Duration) fraction() (float64, error) {
	tok := strings.ToLower(strings.TrimSpace(d.token))
	if alias, ok := durationAliases[tok]; ok {
		tok = alias
	}
	mod := 1.0
	switch {
	case strings.HasSuffix(tok, "."):
		mod = 1.5
		tok = strings.TrimSuffix(tok, ".")
	case strings.HasSuffix(tok, "t"):
		mod = 2.0 / 3.0
		tok = strings.TrimSuffix(tok, "t")
	}
	switch tok {
	case "1", "2", "4", "8", "16", "32", "64":
		n, _ := strconv.Atoi(tok)
		return mod / float64(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedDuration, d.token)
}

// Ticks resolves the duration to a tick count at the given ticks-per-quarter
// resolution. Token fractions are scaled by a whole note (4 quarters) and
// rounded half-up; explicit tick counts pass through unchanged.
func (d Duration) Ticks(ticksPerQuarter int) (int, error) {
	if d.token == "" {
		if d.ticks <= 0 {
			return 0, fmt.Errorf("%w: %d ticks", ErrUnsupportedDuration, d.ticks)
		}
		return d.ticks, nil
	}
	frac, err := d.fraction()
	if err != nil {
		return 0, err
	}
	return int(math.Floor(frac*float64(ticksPerQuarter)*4 + 0.5)), nil
}

// Beats returns the duration's length in beats of the given time signature
// (a quarter note in x/4 time is one beat, in x/8 time two beats). Explicit
// tick counts are interpreted at the given ticks-per-quarter resolution.
// Composition producers use this to advance a beat cursor through a
// sequential line of notes.
func (d Duration) Beats(ts TimeSignature, ticksPerQuarter int) (float64, error) {
	if d.token == "" {
		if d.ticks <= 0 {
			return 0, fmt.Errorf("%w: %d ticks", ErrUnsupportedDuration, d.ticks)
		}
		return float64(d.ticks) * float64(ts.Denominator) / (4 * float64(ticksPerQuarter)), nil
	}
	frac, err := d.fraction()
	if err != nil {
		return 0, err
	}
	return frac * float64(ts.Denominator), nil
}

func (d Duration) validate() error {
	if d.token == "" {
		if d.ticks <= 0 {
			return fmt.Errorf("%w: tick count must be positive, got %d", ErrUnsupportedDuration, d.ticks)
		}
		return nil
	}
	_, err := d.fraction()
	return err
}

// MarshalJSON encodes a token as a JSON string and explicit ticks as a
// JSON number.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.token != "" {
		return json.Marshal(d.token)
	}
	return json.Marshal(d.ticks)
}

// UnmarshalJSON accepts a string token or a number of ticks.
func (d *Duration) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var tok string
		if err := json.Unmarshal(data, &tok); err != nil {
			return err
		}
		*d = Duration{token: tok}
		return nil
	}
	var ticks float64
	if err := json.Unmarshal(data, &ticks); err != nil {
		return err
	}
	if ticks != math.Trunc(ticks) {
		return fmt.Errorf("%w: tick count %v is not an integer", ErrUnsupportedDuration, ticks)
	}
	*d = Duration{ticks: int(ticks)}
	return nil
}
