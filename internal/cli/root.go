// Package cli defines the Cobra command tree for the yamlembed CLI.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// execute builds a fresh command tree and runs it with args.
func execute(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "yamlembed",
		Short: "Embed a YAML file into a source file as a string constant",
		Long: `yamlembed reads a YAML text file and writes a source file that declares
its content as a string constant, so a compiled program carries the data
without reading the file at runtime.

With no flags and no config file it reads lots.yaml and writes src/lots.h:

  const char* LOTS_YAML = "...";

Settings come from yamlembed.toml (or yamlembed.yaml) in the working
directory, overridden by flags. Run 'yamlembed init' to write one.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmbed(cmd, flags)
		},
	}

	flags.register(cmd)

	cmd.AddCommand(
		newCheckCmd(flags),
		newInitCmd(flags),
		newLangsCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "yamlembed %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
