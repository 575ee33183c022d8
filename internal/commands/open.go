package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/model"
)

type openOptions struct {
	number    int
	kind      string
	balance   string
	rate      string
	overdraft string
	loan      string
	term      int
}

func newOpenCommand(dataDir *string) *cobra.Command {
	var opts openOptions

	cmd := &cobra.Command{
		Use:   "open <holder>",
		Short: "Open a new account",
		Long: `Open a new account for a holder. Each holder has at most one account.

Kinds: basic, savings, checking, loan_mortgage. Unset --rate, --overdraft
and --term fall back to the defaults in teller.yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, *dataDir)
			if err != nil {
				return err
			}
			return runOpen(cmd, s, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.number, "number", 0, "account number (required)")
	_ = cmd.MarkFlagRequired("number")
	cmd.Flags().StringVar(&opts.kind, "kind", string(model.KindBasic), "account kind")
	cmd.Flags().StringVar(&opts.balance, "balance", "0", "opening balance")
	cmd.Flags().StringVar(&opts.rate, "rate", "", "annual interest rate, e.g. 0.06")
	cmd.Flags().StringVar(&opts.overdraft, "overdraft", "", "checking overdraft limit")
	cmd.Flags().StringVar(&opts.loan, "loan", "", "loan principal (loan_mortgage)")
	cmd.Flags().IntVar(&opts.term, "term", 0, "loan term in months (loan_mortgage)")

	return cmd
}

func runOpen(cmd *cobra.Command, s *session, holder string, opts openOptions) error {
	if holder == "" {
		return fmt.Errorf("holder name is required")
	}
	if _, ok := s.store.GetByName(holder); ok {
		return fmt.Errorf("holder %q already has an account", holder)
	}
	if s.store.NumberInUse(opts.number, holder) {
		return fmt.Errorf("account number %d is already in use", opts.number)
	}

	acct, err := buildAccount(cmd, s, holder, opts)
	if err != nil {
		return err
	}
	if err := s.save(acct, fmt.Sprintf("open: %s account %d for %s", acct.Kind(), acct.Number(), holder)); err != nil {
		return err
	}
	s.log.Info().Str("holder", holder).Int("number", acct.Number()).Str("kind", string(acct.Kind())).Msg("account opened")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Opened %s account %d for %s\n", acct.Kind(), acct.Number(), holder)
	if txn, ok := acct.LastTransaction(); ok {
		fmt.Fprint(out, model.ReceiptFor(txn).Render())
	}
	if acct.Kind() == model.KindLoanMortgage {
		printMonthlyPayment(out, acct)
	}
	return nil
}

func buildAccount(cmd *cobra.Command, s *session, holder string, opts openOptions) (*model.Account, error) {
	kind, err := model.ParseKind(opts.kind)
	if err != nil {
		return nil, err
	}
	balance, err := parseFlagDecimal("balance", opts.balance)
	if err != nil {
		return nil, err
	}
	defaults := s.cfg.Defaults

	switch kind {
	case model.KindSavings:
		rate, err := parseFlagDecimal("rate", opts.rate)
		if err != nil {
			return nil, err
		}
		if opts.rate == "" {
			if rate, err = defaults.SavingsRateValue(); err != nil {
				return nil, err
			}
		}
		return model.NewSavings(opts.number, holder, balance, rate), nil

	case model.KindChecking:
		overdraft, err := parseFlagDecimal("overdraft", opts.overdraft)
		if err != nil {
			return nil, err
		}
		if opts.overdraft == "" {
			if overdraft, err = defaults.OverdraftLimitValue(); err != nil {
				return nil, err
			}
		}
		return model.NewChecking(opts.number, holder, balance, overdraft), nil

	case model.KindLoanMortgage:
		if opts.loan == "" || opts.rate == "" {
			return nil, fmt.Errorf("loan_mortgage accounts need --loan and --rate")
		}
		loan, err := parseFlagDecimal("loan", opts.loan)
		if err != nil {
			return nil, err
		}
		rate, err := parseFlagDecimal("rate", opts.rate)
		if err != nil {
			return nil, err
		}
		term := opts.term
		if !cmd.Flags().Changed("term") {
			term = defaults.LoanTermMonths
		}
		return model.NewLoanMortgage(opts.number, holder, loan, rate, term), nil

	default:
		if !cmd.Flags().Changed("balance") {
			return model.NewBasic(opts.number, holder), nil
		}
		return model.NewBasicWithBalance(opts.number, holder, balance), nil
	}
}

func parseFlagDecimal(flag, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, s, err)
	}
	return d, nil
}

func printMonthlyPayment(out io.Writer, acct *model.Account) {
	payment, err := acct.MonthlyPayment()
	if err != nil {
		fmt.Fprintf(out, "Monthly payment: unavailable (%v)\n", err)
		return
	}
	fmt.Fprintf(out, "Monthly payment: %s\n", payment.StringFixed(2))
}
