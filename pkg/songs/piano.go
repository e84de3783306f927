package songs

import "github.com/miditoy/miditoy/pkg/score"

// Finer note values used by the etude pieces.
var (
	ThirtySecond    = score.DurationToken("32")
	DotThirtySecond = score.DurationToken("32.")
	SixtyFourth     = score.DurationToken("64")
	DotSixtyFourth  = score.DurationToken("64.")
	DotSixteenth    = score.DurationToken("16.")
)

// trill is shorter than any note-value token; the model takes explicit
// tick counts for exactly this case.
var trill = score.DurationTicks(15)

func pianoTracks(rightHand, leftHand []BeatNote) func() []score.Track {
	return func() []score.Track {
		return []score.Track{
			{Name: "Right Hand", Instrument: 0, Channel: score.AutoChannel,
				Notes: Line(score.Time4_4, 85, rightHand)},
			{Name: "Left Hand", Instrument: 0, Channel: score.AutoChannel,
				Notes: Line(score.Time4_4, 70, leftHand)},
		}
	}
}

// SongPianoEasy is a beginner piece: C major scale runs over a slow bass.
var SongPianoEasy = Song{
	ID:        "piano_easy",
	Name:      "Piano Etude (easy)",
	BPM:       120,
	Signature: score.Time4_4,
	Tracks: pianoTracks(
		[]BeatNote{
			N(60, Eighth), N(62, Eighth), N(64, Eighth), N(65, Eighth),
			N(67, Eighth), N(69, Eighth), N(71, Eighth), N(72, Quarter),
			N(72, Eighth), N(71, Eighth), N(69, Eighth), N(67, Eighth),
			N(65, Eighth), N(64, Eighth), N(62, Eighth), N(60, Quarter),
			N(67, Quarter), N(69, Eighth), N(71, Eighth), N(72, Quarter),
			N(71, Eighth), N(69, Eighth), N(67, DotQuarter),
			N(65, Quarter), N(64, Eighth), N(62, Eighth), N(60, Half),
		},
		[]BeatNote{
			N(36, Quarter), N(43, Quarter), N(36, Quarter), N(43, Quarter),
			N(41, Quarter), N(48, Quarter), N(41, Quarter), N(48, Quarter),
			N(39, Quarter), N(46, Quarter), N(39, Quarter), N(46, Quarter),
			N(36, Quarter), N(43, Quarter), N(36, Half),
		}),
}

// SongPianoMedium adds faster runs, arpeggios and octave jumps over an
// Alberti bass.
var SongPianoMedium = Song{
	ID:        "piano_medium",
	Name:      "Piano Etude (medium)",
	BPM:       132,
	Signature: score.Time4_4,
	Tracks: pianoTracks(
		[]BeatNote{
			N(60, Sixteenth), N(64, Sixteenth), N(67, Sixteenth), N(72, Sixteenth),
			N(76, Sixteenth), N(79, Sixteenth), N(84, Eighth),
			N(84, Sixteenth), N(79, Sixteenth), N(76, Sixteenth), N(72, Sixteenth),
			N(67, Sixteenth), N(64, Sixteenth), N(60, Eighth),
			N(72, DotSixteenth), N(76, DotSixteenth), N(79, DotSixteenth), N(84, DotEighth),
			N(79, DotSixteenth), N(76, DotSixteenth), N(72, DotEighth),
			N(69, DotSixteenth), N(72, DotSixteenth), N(76, DotSixteenth), N(81, DotEighth),
			N(76, DotSixteenth), N(72, DotSixteenth), N(69, DotEighth),
			N(48, Sixteenth), N(60, Sixteenth), N(72, Sixteenth), N(84, Eighth),
			N(72, Sixteenth), N(60, Sixteenth), N(48, Quarter),
		},
		[]BeatNote{
			N(36, Sixteenth), N(43, Sixteenth), N(48, Sixteenth), N(43, Sixteenth),
			N(36, Sixteenth), N(43, Sixteenth), N(48, Sixteenth), N(43, Sixteenth),
			N(41, Sixteenth), N(48, Sixteenth), N(53, Sixteenth), N(48, Sixteenth),
			N(41, Sixteenth), N(48, Sixteenth), N(53, Sixteenth), N(48, Sixteenth),
			N(39, Sixteenth), N(46, Sixteenth), N(51, Sixteenth), N(46, Sixteenth),
			N(39, Sixteenth), N(46, Sixteenth), N(51, Sixteenth), N(46, Sixteenth),
			N(36, Sixteenth), N(43, Sixteenth), N(48, Sixteenth), N(43, Sixteenth),
			N(36, Quarter),
		}),
}

// SongPianoHard features chromatic runs, wide arpeggios and interval jumps.
var SongPianoHard = Song{
	ID:        "piano_hard",
	Name:      "Piano Etude (hard)",
	BPM:       160,
	Signature: score.Time4_4,
	Tracks: pianoTracks(
		[]BeatNote{
			N(60, ThirtySecond), N(61, ThirtySecond), N(62, ThirtySecond), N(63, ThirtySecond),
			N(64, ThirtySecond), N(65, ThirtySecond), N(66, ThirtySecond), N(67, ThirtySecond),
			N(68, ThirtySecond), N(69, ThirtySecond), N(70, ThirtySecond), N(71, ThirtySecond),
			N(72, ThirtySecond), N(73, ThirtySecond), N(74, ThirtySecond), N(75, ThirtySecond),
			N(76, Sixteenth), N(79, Sixteenth), N(83, Sixteenth), N(87, Eighth),
			N(72, DotThirtySecond), N(79, DotThirtySecond), N(84, DotThirtySecond), N(91, DotThirtySecond),
			N(96, DotSixteenth), N(91, DotThirtySecond), N(84, DotThirtySecond), N(79, DotThirtySecond),
			N(72, DotSixteenth),
			N(69, DotThirtySecond), N(76, DotThirtySecond), N(81, DotThirtySecond), N(88, DotThirtySecond),
			N(93, DotSixteenth), N(88, DotThirtySecond), N(81, DotThirtySecond), N(76, DotThirtySecond),
			N(69, DotSixteenth),
			N(36, ThirtySecond), N(84, ThirtySecond), N(40, ThirtySecond), N(88, ThirtySecond),
			N(43, ThirtySecond), N(91, ThirtySecond), N(48, Eighth),
		},
		[]BeatNote{
			N(24, DotThirtySecond), N(36, DotThirtySecond), N(43, DotThirtySecond), N(48, DotThirtySecond),
			N(55, DotThirtySecond), N(60, DotThirtySecond), N(67, DotThirtySecond), N(72, DotThirtySecond),
			N(29, DotThirtySecond), N(41, DotThirtySecond), N(48, DotThirtySecond), N(53, DotThirtySecond),
			N(60, DotThirtySecond), N(65, DotThirtySecond), N(72, DotThirtySecond), N(77, DotThirtySecond),
			N(27, DotThirtySecond), N(39, DotThirtySecond), N(46, DotThirtySecond), N(51, DotThirtySecond),
			N(58, DotThirtySecond), N(63, DotThirtySecond), N(70, DotThirtySecond), N(75, DotThirtySecond),
			N(24, Sixteenth), N(36, Sixteenth), N(48, Sixteenth), N(60, Eighth),
		}),
}

// SongPianoExtreme pushes tempo and texture: rapid chromatics, trills and
// extreme register jumps.
var SongPianoExtreme = Song{
	ID:        "piano_extreme",
	Name:      "Piano Etude (extreme)",
	BPM:       184,
	Signature: score.Time4_4,
	Tracks: pianoTracks(
		append(append(chromaticRun(48, 84, SixtyFourth),
			[]BeatNote{
				N(84, ThirtySecond),
				N(84, DotSixtyFourth), N(91, DotSixtyFourth), N(96, DotSixtyFourth), N(103, DotSixtyFourth),
				N(108, DotThirtySecond), N(103, DotSixtyFourth), N(96, DotSixtyFourth), N(91, DotSixtyFourth),
				N(84, DotThirtySecond),
				N(81, DotSixtyFourth), N(88, DotSixtyFourth), N(93, DotSixtyFourth), N(100, DotSixtyFourth),
				N(105, DotThirtySecond), N(100, DotSixtyFourth), N(93, DotSixtyFourth), N(88, DotSixtyFourth),
				N(81, DotThirtySecond),
				N(36, SixtyFourth), N(96, SixtyFourth), N(36, SixtyFourth), N(96, SixtyFourth),
				N(36, SixtyFourth), N(96, SixtyFourth), N(36, SixtyFourth), N(96, SixtyFourth),
			}...),
			[]BeatNote{
				N(72, trill), N(74, trill), N(72, trill), N(74, trill),
				N(72, trill), N(74, trill), N(72, trill), N(74, trill),
				N(76, trill), N(78, trill), N(76, trill), N(78, trill),
				N(76, trill), N(78, trill), N(76, Eighth),
			}...),
		[]BeatNote{
			N(12, ThirtySecond), N(24, ThirtySecond), N(36, ThirtySecond), N(48, ThirtySecond),
			N(60, ThirtySecond), N(72, ThirtySecond), N(84, ThirtySecond), N(96, ThirtySecond),
			N(17, ThirtySecond), N(29, ThirtySecond), N(41, ThirtySecond), N(53, ThirtySecond),
			N(65, ThirtySecond), N(77, ThirtySecond), N(89, ThirtySecond), N(101, ThirtySecond),
			N(15, ThirtySecond), N(27, ThirtySecond), N(39, ThirtySecond), N(51, ThirtySecond),
			N(63, ThirtySecond), N(75, ThirtySecond), N(87, ThirtySecond), N(99, ThirtySecond),
			N(12, DotSixtyFourth), N(24, DotSixtyFourth), N(36, DotSixtyFourth), N(48, DotSixtyFourth),
			N(60, DotSixtyFourth), N(72, DotSixtyFourth), N(84, DotSixtyFourth), N(96, DotSixteenth),
			N(24, SixtyFourth), N(36, SixtyFourth), N(24, SixtyFourth), N(36, SixtyFourth),
			N(29, SixtyFourth), N(41, SixtyFourth), N(29, SixtyFourth), N(41, SixtyFourth),
			N(27, SixtyFourth), N(39, SixtyFourth), N(27, SixtyFourth), N(39, SixtyFourth),
			N(24, Sixteenth),
		}),
}

// chromaticRun builds an ascending chromatic line from lo up to (but not
// including) hi, every note the same value.
func chromaticRun(lo, hi int, d score.Duration) []BeatNote {
	run := make([]BeatNote, 0, hi-lo)
	for p := lo; p < hi; p++ {
		run = append(run, N(p, d))
	}
	return run
}
