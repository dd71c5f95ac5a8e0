package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qifconv-dev/qifconv/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "qifconv",
		Short:   "Convert bank CSV exports to QIF and back",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "path to qifconv.yaml (default ~/.qifconv/qifconv.yaml)")

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newTemplatesCommand())
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
