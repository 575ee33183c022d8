package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/model"
)

// operation applies one money movement to an account. Declined operations
// return an error wrapping model.ErrDeclined.
type operation func(acct *model.Account, amount decimal.Decimal) error

func newDepositCommand(dataDir *string) *cobra.Command {
	return newTransactCommand(dataDir, "deposit", "Deposit money into an account",
		func(acct *model.Account, amount decimal.Decimal) error {
			acct.Deposit(amount)
			return nil
		})
}

func newWithdrawCommand(dataDir *string) *cobra.Command {
	return newTransactCommand(dataDir, "withdraw", "Withdraw money from an account",
		(*model.Account).Withdraw)
}

func newPayCommand(dataDir *string) *cobra.Command {
	return newTransactCommand(dataDir, "pay", "Make a loan payment",
		(*model.Account).MakeLoanPayment)
}

func newTransactCommand(dataDir *string, name, short string, op operation) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <holder> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, *dataDir)
			if err != nil {
				return err
			}
			return runTransact(cmd, s, name, args[0], args[1], op)
		},
	}
}

func runTransact(cmd *cobra.Command, s *session, name, holder, rawAmount string, op operation) error {
	acct, err := s.account(holder)
	if err != nil {
		return err
	}

	log := s.log.With().Str("op", name).Str("holder", holder).Str("amount", rawAmount).Logger()

	amount, err := parseAmount(rawAmount)
	if err == nil {
		err = op(acct, amount)
	}
	if errors.Is(err, model.ErrDeclined) {
		log.Info().Err(err).Msg("declined")
		return fmt.Errorf("%s for %s: %w", name, holder, err)
	}
	if err != nil {
		return err
	}

	if err := s.save(acct, fmt.Sprintf("%s: %s %s", name, holder, amount.StringFixed(2))); err != nil {
		return err
	}
	log.Debug().Str("balance", acct.Balance().String()).Msg("applied")

	txn, _ := acct.LastTransaction()
	fmt.Fprint(cmd.OutOrStdout(), model.ReceiptFor(txn).Render())
	return nil
}

// parseAmount reads a decimal amount. Malformed input is a declined
// operation, not a usage error.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q", model.ErrInvalidAmount, s)
	}
	return d, nil
}
