package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yamlembed/yamlembed/internal/embedder"
)

// embedOptions maps the effective settings onto embedder options.
func embedOptions(s settings) embedder.Options {
	return embedder.Options{
		Input:             s.input,
		Output:            s.output,
		Source:            s.cfg.Input,
		Language:          s.cfg.Language,
		Identifier:        s.cfg.Identifier,
		Package:           s.cfg.Package,
		EscapeBackslashes: s.cfg.EscapeBackslashes,
	}
}

// runEmbed is the root command: one embed with the effective settings.
func runEmbed(cmd *cobra.Command, flags *globalFlags) error {
	s, err := loadSettings(cmd, flags)
	if err != nil {
		return err
	}

	log, cleanup, err := newLogger(cmd, flags, s)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Debug("Loaded settings", settingsFields(s)...)

	res, err := embedder.New(log).Embed(embedOptions(s))
	if err != nil {
		return err
	}

	log.Info("Embedded file",
		zap.String("input", res.Input),
		zap.String("output", res.Output),
		zap.Int("lines", res.Lines),
		zap.Int("bytes", res.Bytes),
		zap.Bool("changed", res.Changed))

	fmt.Fprintf(cmd.OutOrStdout(), "Embedded %s into %s\n", s.cfg.Input, s.cfg.Output)
	return nil
}

func settingsFields(s settings) []zap.Field {
	path := s.path
	if path == "" {
		path = "(defaults)"
	}
	return []zap.Field{
		zap.String("config", path),
		zap.String("language", s.cfg.Language),
		zap.String("identifier", s.cfg.Identifier),
		zap.Bool("escape_backslashes", s.cfg.EscapeBackslashes),
	}
}
