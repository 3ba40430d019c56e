package commands

import (
	"github.com/spf13/cobra"

	"github.com/piotrekio/mquery/internal/buildinfo"
)

// globalOptions are shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// The root command itself prints a statement file.
func NewRootCommand() *cobra.Command {
	var global globalOptions
	var query queryOptions

	rootCmd := &cobra.Command{
		Use:   "mquery <file>",
		Short: "Read and filter mBank history exports",
		Long: "mquery prints the transactions of an mBank CSV history export grouped by day,\n" +
			"optionally filtered and followed by income and expense totals.",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.MatchAll(cobra.ExactArgs(1), statementFileExists),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], &global, &query)
		},
	}

	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mquery/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.verbose, "verbose", "v", false, "log each processing step to stderr")
	addQueryFlags(rootCmd, &query)

	rootCmd.AddCommand(newConfigCommand(&global))

	return rootCmd
}
