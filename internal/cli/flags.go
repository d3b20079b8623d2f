package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yamlembed/yamlembed/internal/config"
	"github.com/yamlembed/yamlembed/internal/render"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	dir        string
	configPath string
	verbose    bool

	input             string
	output            string
	identifier        string
	language          string
	pkg               string
	escapeBackslashes bool
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.dir, "chdir", "C", "", "run as if started in this directory")
	pf.StringVarP(&f.configPath, "config", "c", "", "config file (default: yamlembed.toml or yamlembed.yaml in the working directory)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	pf.StringVarP(&f.input, "input", "i", "", "YAML file to embed (default lots.yaml)")
	pf.StringVarP(&f.output, "output", "o", "", "file to write (default src/lots.h)")
	pf.StringVarP(&f.identifier, "name", "n", "", "constant name (default LOTS_YAML)")
	pf.StringVarP(&f.language, "lang", "l", "", "output language: "+joinLanguages())
	pf.StringVar(&f.pkg, "package", "", "Go package name for go and go-embed output (default: output directory name)")
	pf.BoolVar(&f.escapeBackslashes, "escape-backslashes", false, "also escape backslashes in the input")
}

// overrides converts the flags the user actually set into config overrides.
func (f *globalFlags) overrides(cmd *cobra.Command) config.Overrides {
	o := config.Overrides{
		Input:      f.input,
		Output:     f.output,
		Identifier: f.identifier,
		Language:   f.language,
		Package:    f.pkg,
	}
	if cmd.Flags().Changed("escape-backslashes") {
		v := f.escapeBackslashes
		o.EscapeBackslashes = &v
	}
	return o
}

func joinLanguages() string {
	return strings.Join(render.Languages(), ", ")
}
