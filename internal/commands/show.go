package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/model"
)

func newShowCommand(dataDir *string) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "show [holder]",
		Short: "Show an account and its history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byNumber := cmd.Flags().Changed("number")
			if byNumber == (len(args) == 1) {
				return fmt.Errorf("give either a holder or --number")
			}

			s, err := openSession(cmd, *dataDir)
			if err != nil {
				return err
			}

			var acct *model.Account
			if byNumber {
				var ok bool
				if acct, ok = s.store.GetByNumber(number); !ok {
					return fmt.Errorf("no account with number %d", number)
				}
			} else if acct, err = s.account(args[0]); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printBankName(out, s)
			printAccount(out, acct)
			return nil
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "look up by account number instead of holder")

	return cmd
}

// printBankName writes the configured bank name as a heading, if set.
func printBankName(out io.Writer, s *session) {
	if s.cfg.Bank.Name != "" {
		fmt.Fprintf(out, "%s\n\n", s.cfg.Bank.Name)
	}
}

func printAccount(out io.Writer, acct *model.Account) {
	fmt.Fprintf(out, "Account %d (%s)\n", acct.Number(), acct.Kind())
	fmt.Fprintf(out, "Holder: %s\n", acct.Holder())
	fmt.Fprintf(out, "Balance: %s\n", acct.Balance().StringFixed(2))

	switch acct.Kind() {
	case model.KindSavings:
		fmt.Fprintf(out, "Interest rate: %s\n", acct.InterestRate())
	case model.KindChecking:
		fmt.Fprintf(out, "Overdraft limit: %s\n", acct.OverdraftLimit().StringFixed(2))
	case model.KindLoanMortgage:
		fmt.Fprintf(out, "Loan amount: %s\n", acct.LoanAmount().StringFixed(2))
		fmt.Fprintf(out, "Interest rate: %s\n", acct.InterestRate())
		fmt.Fprintf(out, "Term: %d months\n", acct.LoanTermMonths())
		printMonthlyPayment(out, acct)
	}

	txns := acct.Transactions()
	if len(txns) == 0 {
		fmt.Fprintln(out, "No transactions")
		return
	}
	fmt.Fprintln(out, "Transactions:")
	for _, txn := range txns {
		fmt.Fprintf(out, "  %s  %-5s  %-19s  %12s\n",
			txn.FormattedDate(), txn.ID, txn.Description, txn.Amount.StringFixed(2))
	}
}

func newListCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, *dataDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printBankName(out, s)
			if s.store.Len() == 0 {
				fmt.Fprintln(out, "No accounts")
				return nil
			}
			for _, acct := range s.store.All() {
				fmt.Fprintf(out, "%-8d %-14s %-20s %12s\n",
					acct.Number(), acct.Kind(), acct.Holder(), acct.Balance().StringFixed(2))
			}
			return nil
		},
	}
}
