package commands

import (
	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "teller",
		Short:   "Personal banking account ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", ".", "data directory holding teller.yaml and the ledger")

	rootCmd.AddCommand(
		newInitCommand(&dir),
		newOpenCommand(&dir),
		newDepositCommand(&dir),
		newWithdrawCommand(&dir),
		newPayCommand(&dir),
		newShowCommand(&dir),
		newListCommand(&dir),
		newStatementCommand(&dir),
	)

	return rootCmd
}
