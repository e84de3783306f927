// Package theory provides the music-theory tables behind the composition
// producers: note-name conversion, chord and scale interval sets and the
// General MIDI percussion map.
package theory

import (
	"fmt"
	"sort"
	"strings"
)

// Names of the twelve chromatic pitches, sharps only.
var Notes = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// MiddleC is the MIDI number of C4.
const MiddleC = 60

// ChordTypes maps a chord type to its semitone intervals above the root.
var ChordTypes = map[string][]int{
	"major": {0, 4, 7},
	"minor": {0, 3, 7},
	"dim":   {0, 3, 6},
	"aug":   {0, 4, 8},
	"maj7":  {0, 4, 7, 11},
	"min7":  {0, 3, 7, 10},
	"dom7":  {0, 4, 7, 10},
	"sus2":  {0, 2, 7},
	"sus4":  {0, 5, 7},
	"9":     {0, 4, 7, 10, 14},
	"maj9":  {0, 4, 7, 11, 14},
	"min9":  {0, 3, 7, 10, 14},
}

// Scales maps a scale type to its semitone intervals above the key.
var Scales = map[string][]int{
	"major":          {0, 2, 4, 5, 7, 9, 11},
	"minor":          {0, 2, 3, 5, 7, 8, 10},
	"pentatonic":     {0, 2, 4, 7, 9},
	"blues":          {0, 3, 5, 6, 7, 10},
	"dorian":         {0, 2, 3, 5, 7, 9, 10},
	"mixolydian":     {0, 2, 4, 5, 7, 9, 10},
	"lydian":         {0, 2, 4, 6, 7, 9, 11},
	"phrygian":       {0, 1, 3, 5, 7, 8, 10},
	"locrian":        {0, 1, 3, 5, 6, 8, 10},
	"harmonic_minor": {0, 2, 3, 5, 7, 8, 11},
	"melodic_minor":  {0, 2, 3, 5, 7, 9, 11},
}

// Drums maps drum voice names to their General MIDI percussion notes
// (played on channel 9).
var Drums = map[string]int{
	"kick":       36,
	"snare":      38,
	"hihat":      42,
	"open_hihat": 46,
	"crash":      49,
	"ride":       51,
	"tom_low":    45,
	"tom_mid":    47,
	"tom_high":   50,
	"clap":       39,
}

// NoteNumber converts a note name ("C", "F#", "Bb") and octave to a MIDI
// note number. Octave 4 holds middle C (C4 = 60).
func NoteNumber(name string, octave int) (int, error) {
	if octave < 0 || octave > 9 {
		return 0, fmt.Errorf("theory: octave %d out of range 0-9", octave)
	}
	if name == "" {
		return 0, fmt.Errorf("theory: empty note name")
	}
	base := strings.ToUpper(name[:1])
	index := -1
	for i, n := range Notes {
		if n == base {
			index = i
			break
		}
	}
	if index < 0 {
		return 0, fmt.Errorf("theory: invalid note name %q", name)
	}
	switch {
	case strings.Contains(name[1:], "#"):
		index++
	case strings.Contains(name[1:], "b"):
		index = (index + 11) % 12
	case len(name) > 1:
		return 0, fmt.Errorf("theory: invalid note name %q", name)
	}
	midi := octave*12 + index + 12
	if midi < 0 || midi > 127 {
		return 0, fmt.Errorf("theory: note %s%d is out of MIDI range", name, octave)
	}
	return midi, nil
}

// NoteName converts a MIDI note number to its sharp-spelled name and octave.
func NoteName(midi int) (string, int) {
	return Notes[((midi-12)%12+12)%12], (midi - 12) / 12
}

// Chord returns the MIDI notes of the named chord type rooted at the given
// note name and octave.
func Chord(root, chordType string, octave int) ([]int, error) {
	intervals, ok := ChordTypes[chordType]
	if !ok {
		return nil, fmt.Errorf("theory: unknown chord type %q", chordType)
	}
	base, err := NoteNumber(root, octave)
	if err != nil {
		return nil, err
	}
	notes := make([]int, 0, len(intervals))
	for _, iv := range intervals {
		if n := base + iv; n <= 127 {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

// Scale returns the MIDI notes of the named scale over numOctaves octaves
// starting at the given key and octave. Notes falling outside the MIDI
// range are dropped.
func Scale(key, scaleType string, octave, numOctaves int) ([]int, error) {
	intervals, ok := Scales[scaleType]
	if !ok {
		return nil, fmt.Errorf("theory: unknown scale type %q", scaleType)
	}
	base, err := NoteNumber(key, octave)
	if err != nil {
		return nil, err
	}
	if numOctaves < 1 {
		numOctaves = 1
	}
	var notes []int
	for o := 0; o < numOctaves; o++ {
		for _, iv := range intervals {
			if n := base + iv + o*12; n >= 0 && n <= 127 {
				notes = append(notes, n)
			}
		}
	}
	return notes, nil
}

// chord suffix spellings as they appear in chord names.
var chordSuffixes = map[string]string{
	"":     "major",
	"m":    "minor",
	"maj":  "major",
	"maj7": "maj7",
	"m7":   "min7",
	"7":    "dom7",
	"dim":  "dim",
	"aug":  "aug",
	"+":    "aug",
	"sus2": "sus2",
	"sus4": "sus4",
	"9":    "9",
	"maj9": "maj9",
	"m9":   "min9",
}

// ParseChord splits a chord name such as "Cmaj7", "Am" or "F#dim" into its
// root note name and chord type.
func ParseChord(name string) (root, chordType string, err error) {
	if name == "" {
		return "", "", fmt.Errorf("theory: empty chord name")
	}
	root = name[:1]
	suffix := name[1:]
	if len(name) > 1 && (name[1] == '#' || name[1] == 'b') {
		root = name[:2]
		suffix = name[2:]
	}
	chordType, ok := chordSuffixes[suffix]
	if !ok {
		if _, known := ChordTypes[suffix]; !known {
			return "", "", fmt.Errorf("theory: unknown chord %q", name)
		}
		chordType = suffix
	}
	return root, chordType, nil
}

// ChordInfo returns a formatted listing of the supported chord types.
func ChordInfo() string {
	return formatIntervals("Supported Chord Types", ChordTypes)
}

// ScaleInfo returns a formatted listing of the supported scale types.
func ScaleInfo() string {
	return formatIntervals("Supported Scale Types", Scales)
}

func formatIntervals(title string, m map[string][]int) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n\n", title)
	for _, name := range names {
		fmt.Fprintf(&b, "%-15s %v\n", name, m[name])
	}
	return b.String()
}
