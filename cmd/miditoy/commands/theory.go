package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/miditoy/miditoy/pkg/cli"
	"github.com/miditoy/miditoy/pkg/theory"
)

var theoryCmd = &cobra.Command{
	Use:   "theory",
	Short: "Music theory reference",
}

var theoryChordsCmd = &cobra.Command{
	Use:   "chords",
	Short: "List known chord types and their intervals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat == "" {
			fmt.Print(theory.ChordInfo())
			return nil
		}
		return cli.Output(theory.ChordTypes, outputOpts())
	},
}

var theoryScalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List known scale types and their intervals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat == "" {
			fmt.Print(theory.ScaleInfo())
			return nil
		}
		return cli.Output(theory.Scales, outputOpts())
	},
}

var theoryNoteCmd = &cobra.Command{
	Use:   "note <name> [octave]",
	Short: "Show the MIDI number for a note name",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		octave := 4
		if len(args) == 2 {
			o, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bad octave %q", args[1])
			}
			octave = o
		}
		n, err := theory.NoteNumber(args[0], octave)
		if err != nil {
			return err
		}
		name, oct := theory.NoteName(n)
		return cli.Output(map[string]any{
			"midi": n,
			"name": fmt.Sprintf("%s%d", name, oct),
		}, outputOpts())
	},
}

func init() {
	theoryCmd.AddCommand(theoryChordsCmd)
	theoryCmd.AddCommand(theoryScalesCmd)
	theoryCmd.AddCommand(theoryNoteCmd)
	rootCmd.AddCommand(theoryCmd)
}
