// Package player plays compiled MIDI files. Two paths are provided: an
// external synthesizer process (fluidsynth, timidity, or any configured
// command), and an in-process SoundFont renderer that turns a file into
// PCM for environments without a MIDI device.
//
// The compiler has no dependency on this package; playback consumes its
// output and may block for the duration of the audio.
package player

import (
	"context"
	"fmt"
	"os/exec"
)

// known external synthesizers, tried in order when no command is
// configured. Each entry plays a single file path appended as the last
// argument and exits when playback finishes.
var knownPlayers = [][]string{
	{"fluidsynth", "-ni", "-q"},
	{"timidity"},
	{"aplaymidi"},
}

// External plays MIDI files through an external synthesizer process.
type External struct {
	// Command is the player executable plus fixed arguments. If empty,
	// the first of fluidsynth/timidity/aplaymidi found on PATH is used.
	Command []string
}

// resolve returns the command line to run for path.
func (p *External) resolve(path string) ([]string, error) {
	if len(p.Command) > 0 {
		return append(append([]string{}, p.Command...), path), nil
	}
	for _, candidate := range knownPlayers {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return append(append([]string{}, candidate...), path), nil
		}
	}
	return nil, fmt.Errorf("player: no MIDI player found on PATH (tried fluidsynth, timidity, aplaymidi)")
}

// Play runs the external player on the file at path and blocks until
// playback completes or ctx is canceled.
func (p *External) Play(ctx context.Context, path string) error {
	argv, err := p.resolve(path)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("player: %s: %w (%s)", argv[0], err, out)
	}
	return nil
}
