package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/miditoy/miditoy/pkg/cli"
	"github.com/miditoy/miditoy/pkg/smf"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Stored MIDI artifacts",
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored MIDI files",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		files, err := store.List(cmd.Context(), ".mid", ".midi")
		if err != nil {
			return err
		}
		return cli.Output(files, outputOpts())
	},
}

var filesJQ string

var filesAnalyzeCmd = &cobra.Command{
	Use:   "analyze <name>",
	Short: "Summarize a stored MIDI file",
	Long: `Summarize a stored MIDI file: format, tempo, duration, per-track
note counts. With --jq the summary is filtered through a jq expression.

Examples:
  miditoy files analyze song.mid
  miditoy files analyze song.mid --jq '.seconds'
  miditoy files analyze song.mid --jq '.tracks[] | {track, noteEvents}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readStored(cmd, args[0])
		if err != nil {
			return err
		}
		info, err := smf.Analyze(data)
		if err != nil {
			return err
		}
		if filesJQ == "" {
			return cli.Output(info, outputOpts())
		}
		return outputJQ(info, filesJQ)
	},
}

var filesDumpCmd = &cobra.Command{
	Use:   "dump <name>",
	Short: "Dump a stored MIDI file as a readable event listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readStored(cmd, args[0])
		if err != nil {
			return err
		}
		text, err := smf.DumpText(data)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	},
}

func init() {
	filesAnalyzeCmd.Flags().StringVar(&filesJQ, "jq", "", "filter the summary through a jq expression")
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesAnalyzeCmd)
	filesCmd.AddCommand(filesDumpCmd)
	rootCmd.AddCommand(filesCmd)
}

func readStored(cmd *cobra.Command, name string) ([]byte, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	r, err := store.Read(cmd.Context(), name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// outputJQ runs a jq expression over v (via its JSON form) and prints each
// result on its own line.
func outputJQ(v any, expr string) error {
	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid jq expression %q: %w", expr, err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	iter := query.Run(doc)
	for {
		out, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := out.(error); ok {
			return err
		}
		line, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Println(string(line))
	}
	return nil
}
