package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the base configuration directory name.
	DefaultBaseDir = ".miditoy"
	// DefaultConfigFile is the configuration filename.
	DefaultConfigFile = "config.yaml"
)

// Config is the persisted miditoy configuration.
type Config struct {
	// OutputDir is where compiled .mid artifacts are written.
	// Defaults to ~/.miditoy/files.
	OutputDir string `yaml:"output_dir,omitempty"`

	// SoundFont is the path to an .sf2 soundfont for offline rendering.
	SoundFont string `yaml:"soundfont,omitempty"`

	// Player overrides the MIDI player command; the file path is appended.
	// Empty means autodetect (fluidsynth, timidity, aplaymidi).
	Player []string `yaml:"player,omitempty"`

	// Storage selects the artifact backend: "local" (default) or "s3".
	Storage string `yaml:"storage,omitempty"`

	// S3Bucket is the bucket for the s3 backend.
	S3Bucket string `yaml:"s3_bucket,omitempty"`

	// S3Prefix is an optional key prefix for the s3 backend.
	S3Prefix string `yaml:"s3_prefix,omitempty"`

	// Listen is the WebSocket listen address for serve --listen.
	Listen string `yaml:"listen,omitempty"`

	configPath string
}

// Paths resolves the miditoy directory layout under the user's home.
type Paths struct {
	HomeDir string
}

// NewPaths creates a Paths rooted at the user's home directory.
func NewPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{HomeDir: home}, nil
}

// BaseDir returns ~/.miditoy.
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// ConfigFile returns ~/.miditoy/config.yaml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.BaseDir(), DefaultConfigFile)
}

// DataDir returns ~/.miditoy/data, the composition library's home.
func (p *Paths) DataDir() string {
	return filepath.Join(p.BaseDir(), "data")
}

// FilesDir returns ~/.miditoy/files, the default artifact directory.
func (p *Paths) FilesDir() string {
	return filepath.Join(p.BaseDir(), "files")
}

// EnsureBaseDir creates the base directory if it doesn't exist.
func (p *Paths) EnsureBaseDir() error {
	return os.MkdirAll(p.BaseDir(), 0755)
}

// LoadConfig reads the configuration, returning defaults if the file does
// not exist yet.
func LoadConfig() (*Config, error) {
	paths, err := NewPaths()
	if err != nil {
		return nil, err
	}
	cfg := &Config{configPath: paths.ConfigFile()}
	data, err := os.ReadFile(cfg.configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", cfg.configPath, err)
	}
	return cfg, nil
}

// Save writes the configuration back to its file, creating the directory
// if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		paths, err := NewPaths()
		if err != nil {
			return err
		}
		c.configPath = paths.ConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(c.configPath, data, 0644)
}
