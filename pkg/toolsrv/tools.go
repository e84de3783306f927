package toolsrv

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/miditoy/miditoy/pkg/library"
	"github.com/miditoy/miditoy/pkg/player"
	"github.com/miditoy/miditoy/pkg/score"
	"github.com/miditoy/miditoy/pkg/smf"
	"github.com/miditoy/miditoy/pkg/songs"
	"github.com/miditoy/miditoy/pkg/storage"
	"github.com/miditoy/miditoy/pkg/theory"
)

// Service binds the composition toolkit to a tool server: compositions
// live in the library, compiled .mid artifacts in the file store.
type Service struct {
	Library *library.Library
	Store   storage.FileStore
	Player  *player.External
}

// Register registers all tools on srv.
func (s *Service) Register(srv *Server) error {
	return srv.Register(
		s.createTool(),
		s.addMelodyTool(),
		s.addChordProgressionTool(),
		s.addDrumPatternTool(),
		s.composeTool(),
		s.generateSongTool(),
		s.analyzeTool(),
		s.dumpTool(),
		s.listFilesTool(),
		s.listChordTypesTool(),
		s.listScaleTypesTool(),
		s.playTool(),
	)
}

func parseTimeSignature(s string) (score.TimeSignature, error) {
	if s == "" {
		return score.Time4_4, nil
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return score.TimeSignature{}, fmt.Errorf("%w: %q", score.ErrInvalidTimeSignature, s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return score.TimeSignature{}, fmt.Errorf("%w: %q", score.ErrInvalidTimeSignature, s)
	}
	d, err := strconv.Atoi(strings.TrimSpace(den))
	if err != nil {
		return score.TimeSignature{}, fmt.Errorf("%w: %q", score.ErrInvalidTimeSignature, s)
	}
	return score.TimeSignature{Numerator: n, Denominator: d}, nil
}

// midiName normalizes a composition name to its artifact path.
func midiName(name string) string {
	if strings.HasSuffix(name, ".mid") || strings.HasSuffix(name, ".midi") {
		return name
	}
	return name + ".mid"
}

func trimMIDI(name string) string {
	name = strings.TrimSuffix(name, ".midi")
	return strings.TrimSuffix(name, ".mid")
}

// writeMIDI compiles c and stores the artifact under name's .mid path.
func (s *Service) writeMIDI(ctx context.Context, name string, c *score.Composition) (string, int, error) {
	data, err := smf.Compile(c)
	if err != nil {
		return "", 0, err
	}
	path := midiName(name)
	w, err := s.Store.Write(ctx, path)
	if err != nil {
		return "", 0, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", 0, err
	}
	if err := w.Close(); err != nil {
		return "", 0, err
	}
	return path, len(data), nil
}

// edit applies fn to the named composition, recompiles and stores the
// resulting artifact.
func (s *Service) edit(ctx context.Context, name string, fn func(*score.Composition) error) (map[string]any, error) {
	name = trimMIDI(name)
	c, err := s.Library.Update(ctx, name, fn)
	if err != nil {
		return nil, err
	}
	path, size, err := s.writeMIDI(ctx, name, c)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"file":   path,
		"bytes":  size,
		"tracks": len(c.Tracks),
	}, nil
}

type createArgs struct {
	// Name identifies the composition; the compiled artifact is <name>.mid.
	Name string `json:"name"`
	// BPM is the tempo in beats per minute; defaults to 120.
	BPM float64 `json:"bpm,omitempty"`
	// TimeSignature such as "4/4" or "6/8"; defaults to "4/4".
	TimeSignature string `json:"timeSignature,omitempty"`
}

func (s *Service) createTool() *Tool {
	return MustNewTool("create_midi_file",
		"Create a new, empty MIDI composition with a tempo and time signature. Add content with the add_* tools.",
		func(ctx context.Context, a createArgs) (any, error) {
			if a.Name == "" {
				return nil, fmt.Errorf("toolsrv: composition name is required")
			}
			if a.BPM == 0 {
				a.BPM = 120
			}
			sig, err := parseTimeSignature(a.TimeSignature)
			if err != nil {
				return nil, err
			}
			name := trimMIDI(a.Name)
			c := &score.Composition{BPM: a.BPM, TimeSignature: sig}
			if err := s.Library.Put(ctx, name, c); err != nil {
				return nil, err
			}
			return map[string]any{
				"name":          name,
				"file":          midiName(name),
				"bpm":           a.BPM,
				"timeSignature": fmt.Sprintf("%d/%d", sig.Numerator, sig.Denominator),
			}, nil
		})
}

type addMelodyArgs struct {
	// Name of an existing composition created with create_midi_file.
	Name string `json:"name"`
	songs.MelodyParams
}

func (s *Service) addMelodyTool() *Tool {
	return MustNewTool("add_melody_to_midi",
		"Add a generated melody track to an existing composition. The melody walks randomly over a scale; identical parameters always produce the same melody.",
		func(ctx context.Context, a addMelodyArgs) (any, error) {
			return s.edit(ctx, a.Name, func(c *score.Composition) error {
				m, err := songs.Melody(c.BPM, c.TimeSignature, a.MelodyParams)
				if err != nil {
					return err
				}
				c.Tracks = append(c.Tracks, m.Tracks...)
				return nil
			})
		})
}

type addChordsArgs struct {
	Name string `json:"name"`
	songs.ChordProgressionParams
}

func (s *Service) addChordProgressionTool() *Tool {
	return MustNewTool("add_chord_progression",
		"Add a chord progression track to an existing composition. Chords are named like \"Cmaj7\", \"Am\", \"G7\".",
		func(ctx context.Context, a addChordsArgs) (any, error) {
			return s.edit(ctx, a.Name, func(c *score.Composition) error {
				p, err := songs.ChordProgression(c.BPM, c.TimeSignature, a.ChordProgressionParams)
				if err != nil {
					return err
				}
				c.Tracks = append(c.Tracks, p.Tracks...)
				return nil
			})
		})
}

type addDrumsArgs struct {
	Name string `json:"name"`
	songs.DrumPatternParams
}

func (s *Service) addDrumPatternTool() *Tool {
	return MustNewTool("add_drum_pattern",
		"Add a step-sequenced drum track to an existing composition. Each pattern is one boolean per sixteenth-note step.",
		func(ctx context.Context, a addDrumsArgs) (any, error) {
			return s.edit(ctx, a.Name, func(c *score.Composition) error {
				d, err := songs.DrumPattern(c.BPM, c.TimeSignature, a.DrumPatternParams)
				if err != nil {
					return err
				}
				c.Tracks = append(c.Tracks, d.Tracks...)
				return nil
			})
		})
}

type composeArgs struct {
	// Name identifies the composition; the compiled artifact is <name>.mid.
	Name string `json:"name"`
	// Composition is the full declarative piece: bpm, timeSignature and
	// tracks of beat-positioned notes.
	Composition score.Composition `json:"composition"`
}

func (s *Service) composeTool() *Tool {
	return MustNewTool("compose_midi",
		"Compile a complete declarative composition (tempo, time signature, tracks of beat-positioned notes) into a MIDI file in one call.",
		func(ctx context.Context, a composeArgs) (any, error) {
			if a.Name == "" {
				return nil, fmt.Errorf("toolsrv: composition name is required")
			}
			name := trimMIDI(a.Name)
			if err := s.Library.Put(ctx, name, &a.Composition); err != nil {
				return nil, err
			}
			path, size, err := s.writeMIDI(ctx, name, &a.Composition)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"file":   path,
				"bytes":  size,
				"tracks": len(a.Composition.Tracks),
			}, nil
		})
}

type generateSongArgs struct {
	// Song is the catalog ID, e.g. "beethoven_symphony5" or "piano_hard".
	Song string `json:"song"`
	// Name overrides the output name; defaults to the song ID.
	Name string `json:"name,omitempty"`
}

func (s *Service) generateSongTool() *Tool {
	return MustNewTool("generate_song",
		"Render one of the built-in demo songs to a MIDI file. Song IDs: "+strings.Join(songs.IDs(), ", ")+".",
		func(ctx context.Context, a generateSongArgs) (any, error) {
			song := songs.ByID(a.Song)
			if song == nil {
				return nil, fmt.Errorf("toolsrv: unknown song %q (have %s)", a.Song, strings.Join(songs.IDs(), ", "))
			}
			name := a.Name
			if name == "" {
				name = song.ID
			}
			name = trimMIDI(name)
			c := song.Compose()
			if err := s.Library.Put(ctx, name, c); err != nil {
				return nil, err
			}
			path, size, err := s.writeMIDI(ctx, name, c)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"song":  song.Name,
				"file":  path,
				"bytes": size,
			}, nil
		})
}

func (s *Service) readMIDI(ctx context.Context, name string) ([]byte, error) {
	r, err := s.Store.Read(ctx, midiName(name))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

type fileArgs struct {
	// Name of the MIDI file, with or without the .mid suffix.
	Name string `json:"name"`
}

func (s *Service) analyzeTool() *Tool {
	return MustNewTool("analyze_midi_file",
		"Summarize a stored MIDI file: format, tempo, duration, and per-track note counts.",
		func(ctx context.Context, a fileArgs) (any, error) {
			data, err := s.readMIDI(ctx, a.Name)
			if err != nil {
				return nil, err
			}
			return smf.Analyze(data)
		})
}

func (s *Service) dumpTool() *Tool {
	return MustNewTool("convert_midi_to_text",
		"Dump a stored MIDI file as a human-readable event listing.",
		func(ctx context.Context, a fileArgs) (any, error) {
			data, err := s.readMIDI(ctx, a.Name)
			if err != nil {
				return nil, err
			}
			text, err := smf.DumpText(data)
			if err != nil {
				return nil, err
			}
			return map[string]any{"text": text}, nil
		})
}

func (s *Service) listFilesTool() *Tool {
	return MustNewTool("list_midi_files",
		"List the stored MIDI files with their sizes.",
		func(ctx context.Context, _ struct{}) (any, error) {
			files, err := s.Store.List(ctx, ".mid", ".midi")
			if err != nil {
				return nil, err
			}
			return map[string]any{"files": files}, nil
		})
}

func (s *Service) listChordTypesTool() *Tool {
	return MustNewTool("list_chord_types",
		"List the chord types the progression tool understands, with their intervals.",
		func(context.Context, struct{}) (any, error) {
			return map[string]any{"chords": theory.ChordTypes, "text": theory.ChordInfo()}, nil
		})
}

func (s *Service) listScaleTypesTool() *Tool {
	return MustNewTool("list_scale_types",
		"List the scale types the melody tool understands, with their intervals.",
		func(context.Context, struct{}) (any, error) {
			return map[string]any{"scales": theory.Scales, "text": theory.ScaleInfo()}, nil
		})
}

func (s *Service) playTool() *Tool {
	return MustNewTool("play_midi_file",
		"Play a stored MIDI file through the configured system player.",
		func(ctx context.Context, a fileArgs) (any, error) {
			if s.Player == nil {
				return nil, fmt.Errorf("toolsrv: no player configured")
			}
			local, ok := s.Store.(*storage.Local)
			if !ok {
				return nil, fmt.Errorf("toolsrv: playback needs local storage")
			}
			path, err := local.Abs(midiName(a.Name))
			if err != nil {
				return nil, err
			}
			if err := s.Player.Play(ctx, path); err != nil {
				return nil, err
			}
			return map[string]any{"played": midiName(a.Name)}, nil
		})
}
