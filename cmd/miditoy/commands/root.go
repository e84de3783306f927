package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/miditoy/miditoy/pkg/cli"
	"github.com/miditoy/miditoy/pkg/library"
	"github.com/miditoy/miditoy/pkg/player"
	"github.com/miditoy/miditoy/pkg/storage"
)

var (
	// Global flags
	verbose      bool
	outputFormat string

	// Global configuration (loaded at init time)
	globalConfig  *cli.Config
	configLoadErr error
)

var rootCmd = &cobra.Command{
	Use:   "miditoy",
	Short: "Declarative MIDI composition toolkit",
	Long: `miditoy - compose, compile, inspect and play Standard MIDI Files.

Compositions are declarative: a tempo, a time signature, and tracks of
notes placed at beat positions. The compiler turns them into .mid files
deterministically, so the same composition always yields the same bytes.

Configuration is stored in ~/.miditoy/config.yaml.

Examples:
  # Compile a composition file to MIDI
  miditoy compile -f song.json -o song.mid

  # Render one of the built-in demo songs
  miditoy songs generate beethoven_symphony5

  # Inspect a MIDI file
  miditoy files analyze song.mid
  miditoy files analyze song.mid --jq '.tracks[].noteEvents'

  # Run the tool server over stdio
  miditoy serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: yaml, json")
}

func initConfig() {
	cfg, err := cli.LoadConfig()
	if err != nil {
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

// GetConfig returns the global configuration, or the load error deferred
// from startup.
func GetConfig() (*cli.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, configLoadErr
		}
		return nil, fmt.Errorf("configuration not initialized")
	}
	return globalConfig, nil
}

// IsVerbose reports whether --verbose was given.
func IsVerbose() bool { return verbose }

func outputOpts() cli.OutputOptions {
	return cli.OutputOptions{Format: cli.OutputFormat(outputFormat)}
}

// openStore returns the artifact store selected by the configuration.
func openStore() (storage.FileStore, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	switch cfg.Storage {
	case "", "local":
		dir := cfg.OutputDir
		if dir == "" {
			paths, err := cli.NewPaths()
			if err != nil {
				return nil, err
			}
			dir = paths.FilesDir()
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		return storage.NewLocal(dir)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("storage is s3 but s3_bucket is not configured")
		}
		return storage.NewS3(newS3Client(), cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// newS3Client builds an S3 client from the standard AWS environment
// variables. AWS_ENDPOINT_URL supports S3-compatible stores (MinIO, R2).
func newS3Client() *s3.Client {
	opts := s3.Options{
		Region: os.Getenv("AWS_REGION"),
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			}, nil
		}),
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if ep := os.Getenv("AWS_ENDPOINT_URL"); ep != "" {
		opts.BaseEndpoint = aws.String(ep)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// openLibrary opens the composition library at ~/.miditoy/data.
func openLibrary() (*library.Library, error) {
	paths, err := cli.NewPaths()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(paths.DataDir(), 0755); err != nil {
		return nil, err
	}
	return library.Open(library.Options{Dir: paths.DataDir()})
}

// newPlayer builds the external MIDI player from the configuration.
func newPlayer() *player.External {
	p := &player.External{}
	if cfg, err := GetConfig(); err == nil {
		p.Command = cfg.Player
	}
	return p
}
