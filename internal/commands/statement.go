package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/model"
	"github.com/tellerkit/teller/internal/statement"
)

func newStatementCommand(dataDir *string) *cobra.Command {
	var outPath string
	var checkPath string

	cmd := &cobra.Command{
		Use:   "statement <holder>",
		Short: "Export an account's history as CSV",
		Long: `Export an account's history as CSV.

With --check, read a previously exported statement instead and report
whether it still matches the account's history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath != "" && checkPath != "" {
				return fmt.Errorf("--out and --check cannot be combined")
			}

			s, err := openSession(cmd, *dataDir)
			if err != nil {
				return err
			}
			acct, err := s.account(args[0])
			if err != nil {
				return err
			}

			switch {
			case checkPath != "":
				return checkStatement(cmd, checkPath, acct)
			case outPath == "":
				return statement.WriteTransactions(cmd.OutOrStdout(), acct.Transactions())
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating statement file: %w", err)
			}
			if err := statement.WriteTransactions(f, acct.Transactions()); err != nil {
				f.Close()
				return fmt.Errorf("writing statement: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing statement file: %w", err)
			}
			s.log.Info().Str("holder", args[0]).Str("file", outPath).Msg("statement written")
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s\n", len(acct.Transactions()), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&checkPath, "check", "", "verify an exported statement against the account")

	return cmd
}

func checkStatement(cmd *cobra.Command, path string, acct *model.Account) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	txns := acct.Transactions()
	if err := statement.Verify(f, txns); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Statement %s matches %d transactions\n", path, len(txns))
	return nil
}
