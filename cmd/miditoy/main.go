// Package main is the entry point for the miditoy CLI.
//
// Usage:
//
//	miditoy [flags] <command> [subcommand] [args]
//
// Commands:
//
//	compile       - Compile a declarative composition into a MIDI file
//	play          - Play a MIDI file through a system player
//	render        - Render a MIDI file to WAV with a soundfont
//	serve         - Run the tool server (stdio or WebSocket)
//	songs         - Built-in song catalog (list, generate)
//	theory        - Music theory reference (chords, scales, note)
//	files         - Stored MIDI artifacts (list, analyze, dump)
//	compositions  - Composition library (list, show, delete)
//	config        - Configuration management
//	version       - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/miditoy/miditoy/cmd/miditoy/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
