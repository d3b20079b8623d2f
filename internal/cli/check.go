package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamlembed/yamlembed/internal/embedder"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail if the generated file is missing or out of date",
		Long: `Render the output in memory and compare it with the file on disk.
Nothing is written. Exits non-zero when the output needs regenerating,
which makes it suitable for CI.

Examples:
  yamlembed check
  yamlembed check --config build/yamlembed.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}

			log, cleanup, err := newLogger(cmd, flags, s)
			if err != nil {
				return err
			}
			defer cleanup()

			log.Debug("Checking output", settingsFields(s)...)

			_, err = embedder.New(log).Check(embedOptions(s))
			if errors.Is(err, embedder.ErrStale) {
				return fmt.Errorf("output %s is stale; run yamlembed to regenerate", s.cfg.Output)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", s.cfg.Output)
			return nil
		},
	}
}
