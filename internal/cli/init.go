package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yamlembed/yamlembed/internal/config"
	"github.com/yamlembed/yamlembed/internal/ignore"
)

func newInitCmd(flags *globalFlags) *cobra.Command {
	var (
		format       string
		force        bool
		addGitignore bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a yamlembed config file in the current directory",
		Long: `Write yamlembed.toml (or yamlembed.yaml with --format yaml) holding the
default settings, with any of --input, --output, --name, --lang, --package
and --escape-backslashes applied on top.

Examples:
  yamlembed init
  yamlembed init --lang go --output internal/lots/lots_gen.go --name LotsYAML
  yamlembed init --format yaml --gitignore`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workDir(flags)
			if err != nil {
				return err
			}

			ext := strings.ToLower(format)
			if ext != "toml" && ext != "yaml" {
				return fmt.Errorf("unknown format %q; valid formats: toml, yaml", format)
			}
			path := filepath.Join(dir, "yamlembed."+ext)

			if existing := config.Locate(dir); existing != "" && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", filepath.Base(existing))
			}

			cfg := config.Default()
			flags.overrides(cmd).Apply(&cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filepath.Base(path))

			if addGitignore {
				return ensureIgnored(cmd, dir, cfg.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "config file format: toml, yaml")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.Flags().BoolVar(&addGitignore, "gitignore", false, "add the generated file to .gitignore")

	return cmd
}

// ensureIgnored adds output to dir's .gitignore unless a pattern already
// covers it.
func ensureIgnored(cmd *cobra.Command, dir, output string) error {
	rel := output
	if filepath.IsAbs(output) {
		r, err := filepath.Rel(dir, output)
		if err != nil {
			return fmt.Errorf("gitignore: %w", err)
		}
		rel = r
	}

	changed, err := ignore.Ensure(dir, rel)
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", filepath.ToSlash(rel), ignore.FileName)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already ignored\n", filepath.ToSlash(rel))
	}
	return nil
}
