package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miditoy/miditoy/pkg/cli"
	"github.com/miditoy/miditoy/pkg/smf"
	"github.com/miditoy/miditoy/pkg/songs"
)

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "Built-in song catalog",
}

var songsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in songs",
	RunE: func(cmd *cobra.Command, args []string) error {
		type row struct {
			ID        string  `json:"id"`
			Name      string  `json:"name"`
			BPM       float64 `json:"bpm"`
			Signature string  `json:"timeSignature"`
		}
		rows := make([]row, len(songs.All))
		for i, s := range songs.All {
			rows[i] = row{
				ID:        s.ID,
				Name:      s.Name,
				BPM:       s.BPM,
				Signature: fmt.Sprintf("%d/%d", s.Signature.Numerator, s.Signature.Denominator),
			}
		}
		return cli.Output(rows, outputOpts())
	},
}

var songsGenOut string

var songsGenerateCmd = &cobra.Command{
	Use:   "generate <song-id>",
	Short: "Compile a built-in song to a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song := songs.ByID(args[0])
		if song == nil {
			return fmt.Errorf("unknown song %q (have %s)", args[0], strings.Join(songs.IDs(), ", "))
		}
		data, err := smf.Compile(song.Compose())
		if err != nil {
			return err
		}
		out := songsGenOut
		if out == "" {
			out = song.ID + ".mid"
		}
		if err := cli.OutputBytes(data, out); err != nil {
			return err
		}
		cli.PrintSuccess("%s -> %s (%s)", song.Name, out, cli.FormatBytes(int64(len(data))))
		return nil
	},
}

func init() {
	songsGenerateCmd.Flags().StringVar(&songsGenOut, "out", "", "output .mid path (defaults to <song-id>.mid)")
	songsCmd.AddCommand(songsListCmd)
	songsCmd.AddCommand(songsGenerateCmd)
	rootCmd.AddCommand(songsCmd)
}
