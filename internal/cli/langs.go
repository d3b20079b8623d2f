package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamlembed/yamlembed/internal/render"
)

var languageDescriptions = map[string]string{
	"c":        `single line: const char* NAME = "...";`,
	"go":       "Go file with a string constant",
	"go-embed": "Go file using a //go:embed directive (input must be under the output directory)",
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported output languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range render.Languages() {
				marker := " "
				if name == render.DefaultLanguage {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-9s %s\n", marker, name, languageDescriptions[name])
			}
		},
	}
}
