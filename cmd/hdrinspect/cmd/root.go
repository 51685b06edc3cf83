package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/emersion/go-mbox"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailhdr/header"
	"github.com/zostay/go-mailhdr/header/field"
	"github.com/zostay/go-mailhdr/header/registry"
)

// settings are the flags shared by every subcommand.
type settings struct {
	configPath string
	logLevel   string
	logFormat  string
	mbox       bool
}

// NewRootCommand builds the hdrinspect command tree.
func NewRootCommand() *cobra.Command {
	s := &settings{}

	rootCmd := &cobra.Command{
		Use:           "hdrinspect",
		Short:         "Tools for looking at how message header fields are parsed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&s.configPath, "config", "c", "", "registry configuration file (YAML)")
	pf.StringVar(&s.logLevel, "log-level", "", "log level, overrides the configuration")
	pf.StringVar(&s.logFormat, "log-format", "", "log format (text or json), overrides the configuration")
	pf.BoolVar(&s.mbox, "mbox", false, "read the input as an mbox file holding many messages")

	rootCmd.AddCommand(newInspectCommand(s), newDiffCommand(s))

	return rootCmd
}

// Execute runs hdrinspect with the command-line arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// newRegistry builds the registry from the configuration file and flags. Logs
// go to the command's error output.
func (s *settings) newRegistry(cmd *cobra.Command) (*registry.Registry, logrus.FieldLogger, error) {
	c := &registry.Config{}
	if s.configPath != "" {
		var err error
		c, err = registry.LoadConfigFile(s.configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to load configuration: %w", err)
		}
	}

	if s.logLevel != "" {
		c.LogLevel = s.logLevel
	}
	if s.logFormat != "" {
		c.LogFormat = s.logFormat
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := c.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	opts, err := c.Options()
	if err != nil {
		return nil, nil, err
	}

	return registry.New(append(opts, registry.WithLogger(logger))...), logger, nil
}

// eachHeader parses the header of every message in the named file, or of
// standard input for "-", and calls fn with each. The counter n starts at 1.
func (s *settings) eachHeader(
	cmd *cobra.Command,
	path string,
	fn func(n int, h *header.Header) error,
) error {
	reg, logger, err := s.newRegistry(cmd)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	parse := func(n int, r io.Reader) error {
		h, _, err := header.ParseMessage(r, header.WithRegistry(reg))
		var badStart *field.BadStartError
		if errors.As(err, &badStart) {
			logger.WithFields(logrus.Fields{
				"message": n,
				"skipped": len(badStart.BadStart),
			}).Warn("skipped junk at the start of the header")
		} else if err != nil {
			return fmt.Errorf("message %d: %w", n, err)
		}
		return fn(n, h)
	}

	if !s.mbox {
		return parse(1, in)
	}

	mr := mbox.NewReader(in)
	for n := 1; ; n++ {
		r, err := mr.NextMessage()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("unable to read mbox message %d: %w", n, err)
		}

		if err := parse(n, r); err != nil {
			return err
		}
	}
}
