package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miditoy/miditoy/pkg/cli"
	"github.com/miditoy/miditoy/pkg/player"
)

var playCmd = &cobra.Command{
	Use:   "play <file.mid>",
	Short: "Play a MIDI file through a system player",
	Long: `Play a MIDI file through an external player.

The player command can be set in the configuration; otherwise fluidsynth,
timidity and aplaymidi are tried in order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newPlayer().Play(cmd.Context(), args[0])
	},
}

var (
	renderOut       string
	renderSoundFont string
)

var renderCmd = &cobra.Command{
	Use:   "render <file.mid>",
	Short: "Render a MIDI file to WAV with a soundfont",
	Long: `Render a MIDI file offline to a 16-bit stereo WAV file.

Requires an .sf2 soundfont, given with --soundfont or set in the
configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output .wav path (defaults to the input name with .wav)")
	renderCmd.Flags().StringVar(&renderSoundFont, "soundfont", "", "path to an .sf2 soundfont")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	sf := renderSoundFont
	if sf == "" {
		if cfg, err := GetConfig(); err == nil {
			sf = cfg.SoundFont
		}
	}
	if sf == "" {
		return fmt.Errorf("no soundfont: use --soundfont or set soundfont in the configuration")
	}

	midiData, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	r := &player.Renderer{SoundFontPath: sf}
	wav, err := r.RenderWAV(midiData)
	if err != nil {
		return err
	}

	out := renderOut
	if out == "" {
		out = trimExt(args[0]) + ".wav"
	}
	if err := cli.OutputBytes(wav, out); err != nil {
		return err
	}
	cli.PrintSuccess("rendered %s (%s)", out, cli.FormatBytes(int64(len(wav))))
	return nil
}
