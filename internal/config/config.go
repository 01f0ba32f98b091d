package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Nomadcxx/torrentsink/internal/apperrors"
)

// FileName is the config file looked up in the working directory first
const FileName = "config.toml"

// Config holds all torrentsink configuration
type Config struct {
	SourceFolder     string `toml:"source_folder"`
	DestFolder       string `toml:"dest_folder"`
	TorrentsFilename string `toml:"torrents_filename"`
	MediaFilename    string `toml:"media_filename"`

	LogLevel string `toml:"log_level,omitempty"` // trace, debug, info, warn, error
	Workers  int    `toml:"workers,omitempty"`   // extract/normalize workers, 1 = sequential

	// Directory of the loaded file; relative manifest names resolve against it
	baseDir string
}

// requiredKeys are the keys every config file must define
var requiredKeys = []string{"source_folder", "dest_folder", "torrents_filename", "media_filename"}

// DefaultConfig returns a config with example values
func DefaultConfig() *Config {
	return &Config{
		SourceFolder:     "/path/to/torrents",
		DestFolder:       "/path/to/renamed",
		TorrentsFilename: "torrents.txt",
		MediaFilename:    "media.txt",
		LogLevel:         "info",
		Workers:          1,
	}
}

// ConfigPath returns the config file to use: ./config.toml when present,
// otherwise the user config directory.
func ConfigPath() (string, error) {
	if _, err := os.Stat(FileName); err == nil {
		return filepath.Abs(FileName)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(configDir, "torrentsink", FileName), nil
}

// Load reads and checks the config file. An empty path uses ConfigPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, &apperrors.ConfigError{Path: FileName, Err: err}
		}
		path = p
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &apperrors.ConfigError{Path: path, Err: err}
	}

	for _, key := range requiredKeys {
		if !meta.IsDefined(key) {
			return nil, &apperrors.ConfigError{Path: path, Field: key}
		}
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.baseDir = filepath.Dir(abs)

	if err := cfg.Validate(); err != nil {
		return nil, &apperrors.ConfigError{Path: path, Err: err}
	}

	return &cfg, nil
}

// Save writes the config to path as TOML
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	fields := map[string]string{
		"source_folder":     c.SourceFolder,
		"dest_folder":       c.DestFolder,
		"torrents_filename": c.TorrentsFilename,
		"media_filename":    c.MediaFilename,
	}
	for _, key := range requiredKeys {
		if fields[key] == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	info, err := os.Stat(c.SourceFolder)
	if err != nil {
		return fmt.Errorf("source folder %s: %w", c.SourceFolder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source folder %s is not a directory", c.SourceFolder)
	}

	src, _ := filepath.Abs(c.SourceFolder)
	dst, _ := filepath.Abs(c.DestFolder)
	if src == dst {
		return fmt.Errorf("dest folder must differ from source folder: %s", c.DestFolder)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Workers)
	}

	return nil
}

// TorrentsManifestPath returns where the torrent-name manifest is written
func (c *Config) TorrentsManifestPath() string {
	return c.resolve(c.TorrentsFilename)
}

// MediaManifestPath returns where the media-name manifest is written
func (c *Config) MediaManifestPath() string {
	return c.resolve(c.MediaFilename)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.baseDir == "" {
		return name
	}
	return filepath.Join(c.baseDir, name)
}
