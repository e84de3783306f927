package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miditoy/miditoy/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage the miditoy configuration (~/.miditoy/config.yaml).

Keys:
  output_dir  directory for compiled .mid artifacts
  soundfont   path to an .sf2 soundfont for offline rendering
  player      MIDI player command (space separated)
  storage     artifact backend: local or s3
  s3_bucket   bucket for the s3 backend
  s3_prefix   key prefix for the s3 backend
  listen      WebSocket listen address for serve --listen`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return cli.Output(cfg, outputOpts())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		switch key {
		case "output_dir":
			cfg.OutputDir = value
		case "soundfont":
			cfg.SoundFont = value
		case "player":
			cfg.Player = strings.Fields(value)
		case "storage":
			if value != "local" && value != "s3" {
				return fmt.Errorf("storage must be local or s3")
			}
			cfg.Storage = value
		case "s3_bucket":
			cfg.S3Bucket = value
		case "s3_prefix":
			cfg.S3Prefix = value
		case "listen":
			cfg.Listen = value
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		cli.PrintSuccess("%s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
