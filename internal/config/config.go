// Package config provides the client configuration: defaults, an optional
// TOML file and the environment variable names the command line binds to.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables read by the client command line.
const (
	EnvConfig   = "TASKTRACKER_CONFIG"
	EnvBaseURL  = "TASKTRACKER_URL"
	EnvTimeout  = "TASKTRACKER_TIMEOUT"
	EnvStrict   = "TASKTRACKER_STRICT"
	EnvCAFile   = "TASKTRACKER_CA"
	EnvLogLevel = "TASKTRACKER_LOG_LEVEL"
)

// Defaults.
const (
	DefaultBaseURL    = "http://localhost:8080"
	DefaultTimeout    = 10 * time.Second
	DefaultLogLevel   = "warn"
	DefaultConfigFile = "tasktracker.toml"
)

// Options holds the configuration values for the client.
type Options struct {
	// BaseURL is the address of the remote collection service.
	BaseURL string `toml:"base_url"`

	// Timeout bounds a single HTTP call. Zero leaves the transport default.
	Timeout time.Duration `toml:"timeout"`

	// Strict surfaces collection errors to the caller instead of
	// swallowing them.
	Strict bool `toml:"strict"`

	// CAFile is an optional PEM bundle trusted for https base URLs.
	CAFile string `toml:"ca_file"`

	// LogLevel is the zap level name.
	LogLevel string `toml:"log_level"`

	// Config is the path to the TOML file the other values were read from.
	Config string `toml:"-"`
}

// Default returns Options populated with default values.
func Default() *Options {
	return &Options{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
		Config:   DefaultConfigFile,
	}
}

// Load overlays the TOML file at path onto opts. A missing file is not an
// error; keys absent from the file keep their current values.
func Load(path string, opts *Options) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, opts); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	opts.Config = path
	return nil
}

// Validate reports whether the options can be used to build a client.
func (o *Options) Validate() error {
	u, err := url.Parse(o.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", o.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base url %q: scheme must be http or https", o.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base url %q: missing host", o.BaseURL)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s: must not be negative", o.Timeout)
	}
	return nil
}
