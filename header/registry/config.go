package registry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the file form of a Registry configuration:
//
//	log-level: debug
//	log-format: json
//	defaults: true
//	default-kind: unstructured
//	headers:
//	  x-original-message-id: resilient-message-id
//	  x-mailer: unique-unstructured
//
// Kinds are named as in KindNames.
type Config struct {
	LogLevel    string            `yaml:"log-level"`
	LogFormat   string            `yaml:"log-format"`
	Defaults    *bool             `yaml:"defaults"`
	DefaultKind string            `yaml:"default-kind"`
	Headers     map[string]string `yaml:"headers"`
}

// ErrUnknownKind is returned when a configuration names a kind that does not
// exist.
var ErrUnknownKind = errors.New("unknown header field kind")

// LoadConfig decodes and validates a YAML configuration. Unknown keys are an
// error.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Config
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to decode registry configuration: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadConfigFile reads the configuration from the named file.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Validate checks the log settings and that every kind named exists.
func (c *Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log-level: %w", err)
		}
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log-format %q: must be text or json", c.LogFormat)
	}

	if c.DefaultKind != "" {
		if _, ok := KindByName(c.DefaultKind); !ok {
			return fmt.Errorf("default-kind: %w %q", ErrUnknownKind, c.DefaultKind)
		}
	}

	for name, kn := range c.Headers {
		if name == "" {
			return fmt.Errorf("headers: %w", ErrEmptyName)
		}
		if _, ok := KindByName(kn); !ok {
			return fmt.Errorf("headers: %s: %w %q", name, ErrUnknownKind, kn)
		}
	}

	return nil
}

// NewLogger builds a logger writing to out as configured. The level defaults
// to info and the format to text.
func (c *Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(out)

	if c.LogLevel != "" {
		lvl, err := logrus.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log-level: %w", err)
		}
		l.SetLevel(lvl)
	}

	if strings.EqualFold(c.LogFormat, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	return l, nil
}

// Options converts the configuration into Registry options. The logger is
// not included, see NewLogger.
func (c *Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var opts []Option
	if c.Defaults != nil && !*c.Defaults {
		opts = append(opts, WithoutDefaults())
	}

	if c.DefaultKind != "" {
		k, _ := KindByName(c.DefaultKind)
		opts = append(opts, WithDefaultKind(k))
	}

	for name, kn := range c.Headers {
		k, _ := KindByName(kn)
		opts = append(opts, WithKind(name, k))
	}

	return opts, nil
}

// NewRegistry builds a Registry from the configuration, logging to logOut.
func (c *Config) NewRegistry(logOut io.Writer) (*Registry, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	l, err := c.NewLogger(logOut)
	if err != nil {
		return nil, err
	}

	return New(append(opts, WithLogger(l))...), nil
}
