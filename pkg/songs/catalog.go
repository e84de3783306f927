package songs

import "github.com/miditoy/miditoy/pkg/score"

// SongBeethovenSymphony5 is the opening theme of Beethoven's Symphony
// No. 5, melody plus bass accompaniment.
var SongBeethovenSymphony5 = Song{
	ID:        "beethoven_symphony5",
	Name:      "Beethoven Symphony No. 5 (theme)",
	BPM:       108,
	Signature: score.Time2_4,
	Tracks: func() []score.Track {
		melody := []BeatNote{
			// The "fate knocking" motif.
			N(G4, Eighth), N(G4, Eighth), N(G4, Eighth), N(D4, DotQuarter),
			N(F4, Eighth), N(F4, Eighth), N(F4, Eighth), N(C4, DotQuarter),
			N(G4, Eighth), N(G4, Eighth), N(G4, Eighth), N(D4, DotQuarter),
			N(F4, Eighth), N(F4, Eighth), N(F4, Eighth), N(C4, DotQuarter),

			// Development.
			N(G4, Eighth), N(A4, Eighth), N(B4, Eighth), N(C5, Quarter),
			N(B4, Eighth), N(A4, Eighth), N(G4, Quarter),
			N(F4, Eighth), N(G4, Eighth), N(A4, Eighth), N(B4, Quarter),
			N(A4, Eighth), N(G4, Eighth), N(F4, Quarter),

			// Broken chord sequence.
			N(C5, Sixteenth), N(E5, Sixteenth), N(G5, Sixteenth), N(E5, Sixteenth),
			N(C5, Sixteenth), N(G4, Eighth),
			N(F4, Sixteenth), N(C4, Sixteenth), N(D4, Sixteenth), N(F4, Eighth), N(G4, Quarter),

			// Ending.
			N(G4, Quarter), N(F4, Quarter), N(D4, DotQuarter), N(C4, Half),
		}

		bass := []BeatNote{
			N(G2, Eighth), N(G2, Eighth), N(G2, Eighth), N(D2, DotQuarter),
			N(F2, Eighth), N(F2, Eighth), N(F2, Eighth), N(C2, DotQuarter),
			N(G2, Eighth), N(G2, Eighth), N(G2, Eighth), N(D2, DotQuarter),
			N(F2, Eighth), N(F2, Eighth), N(F2, Eighth), N(C2, DotQuarter),

			N(G2, Eighth), N(A2, Eighth), N(B2, Eighth), N(C3, Quarter),
			N(B2, Eighth), N(A2, Eighth), N(G2, Quarter),
			N(F2, Eighth), N(G2, Eighth), N(A2, Eighth), N(B2, Quarter),
			N(A2, Eighth), N(G2, Eighth), N(F2, Quarter),

			N(C3, Sixteenth), N(E3, Sixteenth), N(G3, Sixteenth), N(E3, Sixteenth),
			N(C3, Sixteenth), N(G2, Eighth),
			N(F2, Sixteenth), N(C2, Sixteenth), N(D2, Sixteenth), N(F2, Eighth), N(G2, Quarter),

			N(G2, Quarter), N(F2, Quarter), N(D2, DotQuarter), N(C2, Half),
		}

		return []score.Track{
			{Name: "Melody", Instrument: 0, Channel: score.AutoChannel,
				Notes: Line(score.Time2_4, 80, melody)},
			{Name: "Bass", Instrument: 0, Channel: score.AutoChannel,
				Notes: Line(score.Time2_4, 60, bass)},
		}
	},
}

// SongTwinkleStar is Twinkle Twinkle Little Star with a simple broken-chord
// accompaniment.
var SongTwinkleStar = Song{
	ID:        "twinkle_star",
	Name:      "Twinkle Twinkle Little Star",
	BPM:       100,
	Signature: score.Time4_4,
	Tracks: func() []score.Track {
		melody := []BeatNote{
			N(C4, Quarter), N(C4, Quarter), N(G4, Quarter), N(G4, Quarter),
			N(A4, Quarter), N(A4, Quarter), N(G4, Half),
			N(F4, Quarter), N(F4, Quarter), N(E4, Quarter), N(E4, Quarter),
			N(D4, Quarter), N(D4, Quarter), N(C4, Half),
			N(G4, Quarter), N(G4, Quarter), N(F4, Quarter), N(F4, Quarter),
			N(E4, Quarter), N(E4, Quarter), N(D4, Half),
			N(G4, Quarter), N(G4, Quarter), N(F4, Quarter), N(F4, Quarter),
			N(E4, Quarter), N(E4, Quarter), N(D4, Half),
			N(C4, Quarter), N(C4, Quarter), N(G4, Quarter), N(G4, Quarter),
			N(A4, Quarter), N(A4, Quarter), N(G4, Half),
			N(F4, Quarter), N(F4, Quarter), N(E4, Quarter), N(E4, Quarter),
			N(D4, Quarter), N(D4, Quarter), N(C4, Half),
		}

		accomp := []BeatNote{
			N(C3, Quarter), N(E3, Quarter), N(G3, Quarter), N(E3, Quarter),
			N(F3, Quarter), N(A3, Quarter), N(C3, Half),
			N(F3, Quarter), N(A3, Quarter), N(C3, Quarter), N(E3, Quarter),
			N(G3, Quarter), N(B3, Quarter), N(C3, Half),
			N(C3, Quarter), N(E3, Quarter), N(F3, Quarter), N(A3, Quarter),
			N(C3, Quarter), N(E3, Quarter), N(G3, Half),
			N(C3, Quarter), N(E3, Quarter), N(F3, Quarter), N(A3, Quarter),
			N(C3, Quarter), N(E3, Quarter), N(G3, Half),
			N(C3, Quarter), N(E3, Quarter), N(G3, Quarter), N(E3, Quarter),
			N(F3, Quarter), N(A3, Quarter), N(C3, Half),
			N(F3, Quarter), N(A3, Quarter), N(C3, Quarter), N(E3, Quarter),
			N(G3, Quarter), N(B3, Quarter), N(C3, Half),
		}

		return []score.Track{
			{Name: "Melody", Instrument: 0, Channel: score.AutoChannel,
				Notes: Line(score.Time4_4, 80, melody)},
			{Name: "Accompaniment", Instrument: 0, Channel: score.AutoChannel,
				Notes: Line(score.Time4_4, 60, accomp)},
		}
	},
}
