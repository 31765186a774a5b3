// Package config loads the settings used by the tplhttp command: listener
// options, template discovery and logging.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-tplhttp/pkg/logging"
)

var (
	ErrFileNotFound = errors.New("config: file not found")
	ErrEmptyFile    = errors.New("config: file is empty")
)

// Config is the full tplhttp configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	Templates Templates `yaml:"templates"`
	Log       Log       `yaml:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// Templates configures the template engine.
type Templates struct {
	// Dir is the template root on disk. Empty means the embedded defaults.
	Dir       string   `yaml:"dir"`
	Glob      []string `yaml:"glob"`
	Extension string   `yaml:"extension"`
	// Autoescape lists the name suffixes whose output is HTML-escaped. Nil
	// keeps the engine default; an empty list turns escaping off.
	Autoescape []string       `yaml:"autoescape"`
	Strict     bool           `yaml:"strict"`
	Hello      string         `yaml:"hello"`
	Globals    map[string]any `yaml:"globals"`
}

// Log configures logging output.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:              "127.0.0.1:8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		Templates: Templates{
			Glob:   []string{"**/*"},
			Strict: true,
			Hello:  "hello.html",
		},
		Log: Log{
			Level:  "info",
			Format: string(logging.FormatText),
		},
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes YAML from r on top of Default and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ReadHeaderTimeout < 0 {
		errs = append(errs, errors.New("server.read_header_timeout must not be negative"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must not be negative"))
	}
	if strings.TrimSpace(c.Templates.Hello) == "" {
		errs = append(errs, errors.New("templates.hello is required"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", string(logging.FormatText), string(logging.FormatJSON):
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Logging converts the log section into a logging.Config writing to out.
func (c Config) Logging(out io.Writer) logging.Config {
	return logging.Config{
		Level:  logging.ParseLevel(c.Log.Level),
		Format: logging.ParseFormat(c.Log.Format),
		Output: out,
	}
}
