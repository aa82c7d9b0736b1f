package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markpad/markpad/pkg/resync"
	"github.com/pelletier/go-toml/v2"
)

// Default $MARKPAD_HOME/config content
const DefaultConfigContent = `
[core]
extensions = ["md", "markdown", "txt"]

[editor]
history_limit = 50
checkpoint_delay_ms = 500
save_delay_ms = 1000
scroll_quiet_ms = 50

[share]
origin = "https://markpad.app"
max_url_length = 2000
shortener_endpoint = "https://tinyurl.com/api-create.php"
`

var (
	// Lazy-load configuration and ensure a single read
	configOnce      resync.Once
	configSingleton *Config
)

// Note: Fields must be public for toml package to unmarshall
type ConfigFile struct {
	Core   ConfigCore
	Editor ConfigEditor
	Share  ConfigShare
	Remote ConfigRemote
}
type ConfigCore struct {
	Extensions []string
}
type ConfigEditor struct {
	HistoryLimit      int `toml:"history_limit"`
	CheckpointDelayMs int `toml:"checkpoint_delay_ms"`
	SaveDelayMs       int `toml:"save_delay_ms"`
	ScrollQuietMs     int `toml:"scroll_quiet_ms"`
}
type ConfigShare struct {
	Origin            string
	MaxURLLength      int    `toml:"max_url_length"`
	ShortenerEndpoint string `toml:"shortener_endpoint"`
}
type ConfigRemote struct {
	// "s3" mirrors the draft to a bucket; empty keeps drafts local only
	Type       string
	Endpoint   string
	AccessKey  string `toml:"access_key"`
	SecretKey  string `toml:"secret_key"`
	BucketName string `toml:"bucket_name"`
	Secure     bool
}

func (e ConfigEditor) CheckpointDelay() time.Duration {
	return time.Duration(e.CheckpointDelayMs) * time.Millisecond
}
func (e ConfigEditor) SaveDelay() time.Duration {
	return time.Duration(e.SaveDelayMs) * time.Millisecond
}
func (e ConfigEditor) ScrollQuiet() time.Duration {
	return time.Duration(e.ScrollQuietMs) * time.Millisecond
}

type Config struct {
	// HomeDir is $MARKPAD_HOME, defaulting to ~/.markpad
	HomeDir string

	ConfigFile ConfigFile
}

// CurrentConfig returns the current config, reading it on first call.
// Failing to read a malformed config file is fatal: guessing at editor
// settings would be worse than stopping.
func CurrentConfig() *Config {
	configOnce.Do(func() {
		dir := homeDir()
		writeDefaultConfig(dir)
		var err error
		configSingleton, err = ReadConfigFromDirectory(dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	})
	return configSingleton
}

// writeDefaultConfig materializes the default config file on first run so
// users have something to edit. Best-effort: a read-only home simply keeps
// using the built-in defaults.
func writeDefaultConfig(dir string) {
	path := filepath.Join(dir, "config")
	if _, err := os.Stat(path); err == nil {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	os.WriteFile(path, []byte(DefaultConfigContent), 0644)
}

// ResetConfig forces the next CurrentConfig call to reread the file system.
// Only useful in tests.
func ResetConfig() {
	configOnce.Reset()
	configSingleton = nil
}

func homeDir() string {
	if dir := os.Getenv("MARKPAD_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".markpad"
	}
	return filepath.Join(home, ".markpad")
}

// ReadConfigFromDirectory loads <dir>/config, falling back to the built-in
// defaults when the file does not exist.
func ReadConfigFromDirectory(dir string) (*Config, error) {
	content, err := os.ReadFile(filepath.Join(dir, "config"))
	if os.IsNotExist(err) {
		content = []byte(DefaultConfigContent)
	} else if err != nil {
		return nil, err
	}

	var configFile ConfigFile
	if err := toml.Unmarshal(content, &configFile); err != nil {
		return nil, fmt.Errorf("unparsable config file in %s: %w", dir, err)
	}
	if t := configFile.Remote.Type; t != "" && t != "s3" {
		return nil, fmt.Errorf("unsupported remote type %q in %s", t, dir)
	}

	return &Config{
		HomeDir:    dir,
		ConfigFile: configFile,
	}, nil
}

// SetVerboseLevel overrides the default verbose level
func (c *Config) SetVerboseLevel(level VerboseLevel) *Config {
	CurrentLogger().SetVerboseLevel(level)
	return c
}

func (c *Config) DraftPath() string {
	return filepath.Join(c.HomeDir, "draft.yaml")
}

// DraftStore returns the configured draft store: the local file by default,
// an S3 bucket when a remote is configured.
func (c *Config) DraftStore() (DraftStore, error) {
	remote := c.ConfigFile.Remote
	if remote.Type == "s3" {
		return NewS3DraftStore(remote.Endpoint, remote.AccessKey, remote.SecretKey, remote.BucketName, remote.Secure)
	}
	return NewFileDraftStore(c.DraftPath()), nil
}

// Sharer builds the share boundary from the configured origin, threshold and
// shortening service.
func (c *Config) Sharer() *Sharer {
	share := c.ConfigFile.Share
	var shortener Shortener
	if share.ShortenerEndpoint != "" {
		shortener = NewHTTPShortener(share.ShortenerEndpoint)
	}
	return NewSharer(share.Origin, share.MaxURLLength, shortener)
}

// SessionOptions translates the config into session options.
func (c *Config) SessionOptions() []func(*Session) {
	e := c.ConfigFile.Editor
	options := []func(*Session){
		WithHistoryLimit(e.HistoryLimit),
	}
	if e.CheckpointDelayMs > 0 {
		options = append(options, WithCheckpointDelay(e.CheckpointDelay()))
	}
	if e.SaveDelayMs > 0 {
		options = append(options, WithSaveDelay(e.SaveDelay()))
	}
	if len(c.ConfigFile.Core.Extensions) > 0 {
		options = append(options, WithExtensions(c.ConfigFile.Core.Extensions))
	}
	return options
}
