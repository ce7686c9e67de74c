// Package config holds the preview server settings.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "preview.yaml"

// Config contains all tunable preview parameters.
// These can be overridden via preview.yaml and command-line flags.
type Config struct {
	Host string `yaml:"host"` // Interface to bind, empty for all (default: "")
	Port int    `yaml:"port"` // Listen port (default: 8000)

	FrontendDir string `yaml:"frontendDir"` // Root holding <lang>/views, <lang>/partials and statics (default: src/frontend)
	Language    string `yaml:"language"`    // Template language directory (default: en-us)
	Strict      bool   `yaml:"strict"`      // Fail renders on missing partials (default: false)

	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"` // Graceful shutdown bound (default: 5s)

	LiveReload       bool          `yaml:"liveReload"`       // Push reload events over SSE on template changes (default: false)
	DebounceDuration time.Duration `yaml:"debounceDuration"` // File watcher debounce (default: 300ms)

	Gzip bool `yaml:"gzip"` // Compress responses for clients that accept gzip (default: false)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Host:             "",
		Port:             8000,
		FrontendDir:      "src/frontend",
		Language:         "en-us",
		ShutdownTimeout:  5 * time.Second,
		DebounceDuration: 300 * time.Millisecond,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values that cannot work and clamps the rest into range.
func (c *Config) Validate() error {
	// the preview lives at a fixed address, so 0 (any free port) is refused
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.FrontendDir == "" {
		return errors.New("frontendDir must not be empty")
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("language %q: %w", c.Language, err)
	}

	// Timeouts
	if c.ShutdownTimeout < 1*time.Second {
		c.ShutdownTimeout = 1 * time.Second
	}
	if c.ShutdownTimeout > 60*time.Second {
		c.ShutdownTimeout = 60 * time.Second
	}
	if c.DebounceDuration < 10*time.Millisecond {
		c.DebounceDuration = 10 * time.Millisecond
	}
	if c.DebounceDuration > 5*time.Second {
		c.DebounceDuration = 5 * time.Second
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// RegisterFlags binds command-line overrides for c onto fs. Call after
// Load so flags win over the file.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Host, "host", c.Host, "The host/IP to bind to (empty for all interfaces)")
	fs.IntVar(&c.Port, "port", c.Port, "The port to listen on")
	fs.StringVar(&c.FrontendDir, "frontend", c.FrontendDir, "Frontend directory holding views, partials and statics")
	fs.StringVar(&c.Language, "lang", c.Language, "Template language directory")
	fs.BoolVar(&c.Strict, "strict", c.Strict, "Fail renders when a partial is missing")
	fs.BoolVar(&c.LiveReload, "live", c.LiveReload, "Enable live reload on template changes")
	fs.BoolVar(&c.Gzip, "gzip", c.Gzip, "Enable gzip compression")
}
