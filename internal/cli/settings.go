package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yamlembed/yamlembed/internal/config"
	"github.com/yamlembed/yamlembed/internal/logging"
)

// settings is the effective configuration for one command run.
type settings struct {
	cfg  config.Config
	base string // directory relative config paths resolve against
	path string // config file used, "" when running on defaults

	// input and output are cfg.Input and cfg.Output made absolute. Paths
	// from the config file resolve against base, paths from flags against
	// the working directory.
	input  string
	output string
}

// workDir returns the --chdir directory or the process working directory.
func workDir(flags *globalFlags) (string, error) {
	if flags.dir != "" {
		return filepath.Abs(flags.dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// loadSettings applies the precedence chain flags > config file > defaults
// and validates the result.
func loadSettings(cmd *cobra.Command, flags *globalFlags) (settings, error) {
	dir, err := workDir(flags)
	if err != nil {
		return settings{}, err
	}

	var s settings
	if flags.configPath != "" {
		path := flags.configPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		s.cfg, err = config.Load(path)
		s.path = path
		s.base = filepath.Dir(path)
	} else {
		s.cfg, s.path, err = config.LoadDir(dir)
		s.base = dir
	}
	if err != nil {
		return settings{}, err
	}

	s.input, s.output = s.cfg.Resolve(s.base)
	ov := flags.overrides(cmd)
	if ov.Input != "" {
		s.input = config.ResolvePath(dir, ov.Input)
	}
	if ov.Output != "" {
		s.output = config.ResolvePath(dir, ov.Output)
	}
	ov.Apply(&s.cfg)

	if err := s.cfg.Validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

// newLogger builds the zap logger for s, writing console output to the
// command's stderr.
func newLogger(cmd *cobra.Command, flags *globalFlags, s settings) (*zap.Logger, func(), error) {
	file := s.cfg.Log.File
	if file != "" && !filepath.IsAbs(file) {
		file = filepath.Join(s.base, file)
	}
	return logging.New(logging.Options{
		Level:   s.cfg.Log.Level,
		File:    file,
		Verbose: flags.verbose,
		Console: cmd.ErrOrStderr(),
	})
}
