package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/miditoy/miditoy/pkg/cli"
	"github.com/miditoy/miditoy/pkg/score"
	"github.com/miditoy/miditoy/pkg/smf"
)

var (
	compileFile string
	compileOut  string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a declarative composition into a MIDI file",
	Long: `Compile a composition file (JSON or YAML) into a Standard MIDI File.

The composition describes a tempo, a time signature, and tracks of notes
at 1-indexed beat positions. Compilation is deterministic.

Examples:
  miditoy compile -f song.json -o song.mid
  cat song.json | miditoy compile -f - -o song.mid`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileFile, "file", "f", "", "composition file (JSON or YAML, - for stdin)")
	compileCmd.Flags().StringVar(&compileOut, "out", "", "output .mid path (defaults to the input name with .mid)")
	compileCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	c, err := loadComposition(compileFile)
	if err != nil {
		return err
	}
	data, err := smf.Compile(c)
	if err != nil {
		return err
	}

	out := compileOut
	if out == "" {
		if compileFile == "-" {
			out = "out.mid"
		} else {
			out = trimExt(compileFile) + ".mid"
		}
	}
	if err := cli.OutputBytes(data, out); err != nil {
		return err
	}
	cli.PrintSuccess("compiled %s (%s, %d tracks)", out, cli.FormatBytes(int64(len(data))), len(c.Tracks))
	return nil
}

// loadComposition reads a composition in JSON or YAML form. JSON goes
// straight to the repairing parser; YAML is re-encoded as JSON first so
// both forms share one wire contract.
func loadComposition(path string) (*score.Composition, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read composition: %w", err)
	}

	if looksLikeJSON(data) {
		return score.ParseJSON(data)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return score.ParseJSON(jsonData)
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

func trimExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
