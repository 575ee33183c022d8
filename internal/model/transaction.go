package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tellerkit/teller/internal/id"
)

// Transaction descriptions recorded by the ledger.
const (
	DescDeposit     = "Deposit"
	DescWithdrawal  = "Withdrawal"
	DescLoanPayment = "Loan Payment"
	DescInitial     = "Initial Transaction"
)

// DateFormat is the layout used when a transaction date is shown to a user.
const DateFormat = "2006-01-02 15:04:05"

// Transaction is one immutable ledger event in an account's history.
type Transaction struct {
	Date        time.Time
	ID          string          // weak pseudo-random token, see id.NewTransactionID
	Amount      decimal.Decimal // recorded as given; direction is in Description
	Description string
}

// NewTransaction stamps the current time and a fresh ID onto amount and description.
// Amounts are stored verbatim, including zero and negative values.
func NewTransaction(amount decimal.Decimal, description string) Transaction {
	return Transaction{
		Date:        time.Now(),
		ID:          id.NewTransactionID(),
		Amount:      amount,
		Description: description,
	}
}

// FormattedDate returns the date as "2006-01-02 15:04:05".
func (t Transaction) FormattedDate() string {
	return t.Date.Format(DateFormat)
}
