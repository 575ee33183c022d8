package model

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Kind selects an account's withdrawal and payment policy.
type Kind string

const (
	KindBasic        Kind = "basic"
	KindSavings      Kind = "savings"
	KindChecking     Kind = "checking"
	KindLoanMortgage Kind = "loan_mortgage"
)

// Kinds lists every account kind in display order.
var Kinds = []Kind{KindBasic, KindSavings, KindChecking, KindLoanMortgage}

// ParseKind maps "savings", "checking", ... to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !slices.Contains(Kinds, k) {
		return "", fmt.Errorf("unknown account kind %q", s)
	}
	return k, nil
}

var monthsPerYear = decimal.NewFromInt(12)

// Account is a bank account with a balance and an append-only history.
// Variant fields are only meaningful for their kind: interestRate for
// savings and loan_mortgage, overdraftLimit for checking, loanAmount and
// loanTermMonths for loan_mortgage.
type Account struct {
	kind           Kind
	number         int
	holder         string
	balance        decimal.Decimal
	history        []Transaction
	interestRate   decimal.Decimal
	overdraftLimit decimal.Decimal
	loanAmount     decimal.Decimal
	loanTermMonths int
}

// NewBasic opens a plain account with zero balance and no history.
func NewBasic(number int, holder string) *Account {
	return &Account{kind: KindBasic, number: number, holder: holder}
}

// NewBasicWithBalance opens a plain account and records the opening
// balance as an "Initial Transaction".
func NewBasicWithBalance(number int, holder string, balance decimal.Decimal) *Account {
	a := NewBasic(number, holder)
	a.open(balance)
	return a
}

// NewSavings opens a savings account. The rate is informational; no interest accrues.
func NewSavings(number int, holder string, balance, interestRate decimal.Decimal) *Account {
	a := NewBasicWithBalance(number, holder, balance)
	a.kind = KindSavings
	a.interestRate = interestRate
	return a
}

// NewChecking opens a checking account that may be overdrawn down to -overdraftLimit.
func NewChecking(number int, holder string, balance, overdraftLimit decimal.Decimal) *Account {
	a := NewBasicWithBalance(number, holder, balance)
	a.kind = KindChecking
	a.overdraftLimit = overdraftLimit
	return a
}

// NewLoanMortgage opens a loan account. Its balance starts at zero and
// tracks payments; loanAmount tracks the outstanding principal.
func NewLoanMortgage(number int, holder string, loanAmount, annualRate decimal.Decimal, termMonths int) *Account {
	return &Account{
		kind:           KindLoanMortgage,
		number:         number,
		holder:         holder,
		interestRate:   annualRate,
		loanAmount:     loanAmount,
		loanTermMonths: termMonths,
	}
}

func (a *Account) open(balance decimal.Decimal) {
	a.balance = balance
	a.history = append(a.history, NewTransaction(balance, DescInitial))
}

func (a *Account) Kind() Kind                      { return a.kind }
func (a *Account) Number() int                     { return a.number }
func (a *Account) Holder() string                  { return a.holder }
func (a *Account) Balance() decimal.Decimal        { return a.balance }
func (a *Account) InterestRate() decimal.Decimal   { return a.interestRate }
func (a *Account) OverdraftLimit() decimal.Decimal { return a.overdraftLimit }
func (a *Account) LoanAmount() decimal.Decimal     { return a.loanAmount }
func (a *Account) LoanTermMonths() int             { return a.loanTermMonths }

// Transactions returns a copy of the history, oldest first.
func (a *Account) Transactions() []Transaction {
	return slices.Clone(a.history)
}

// LastTransaction returns the most recent transaction, if any.
func (a *Account) LastTransaction() (Transaction, bool) {
	if len(a.history) == 0 {
		return Transaction{}, false
	}
	return a.history[len(a.history)-1], true
}

// Deposit adds amount to the balance and records a "Deposit".
// The amount is not validated: a negative deposit lowers the balance.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
	a.record(amount, DescDeposit)
}

// Withdraw removes amount from the balance if the account's policy allows it
// and records a "Withdrawal". A declined withdrawal returns an error wrapping
// ErrDeclined and changes nothing.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	switch a.kind {
	case KindLoanMortgage:
		return ErrWithdrawalNotAllowed
	case KindChecking:
		if amount.GreaterThan(a.balance.Add(a.overdraftLimit)) {
			return ErrOverdraftLimitExceeded
		}
	default:
		if amount.GreaterThan(a.balance) {
			return ErrInsufficientFunds
		}
	}
	a.balance = a.balance.Sub(amount)
	a.record(amount, DescWithdrawal)
	return nil
}

// MonthlyPayment returns the fixed amortized payment for the outstanding
// loan: P*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate and n the term.
// A zero or negative term, or a rate that makes the denominator zero,
// returns ErrLoanTermInvalid.
func (a *Account) MonthlyPayment() (decimal.Decimal, error) {
	if a.kind != KindLoanMortgage {
		return decimal.Zero, ErrNotLoanAccount
	}
	if a.loanTermMonths <= 0 {
		return decimal.Zero, ErrLoanTermInvalid
	}
	r := a.monthlyRate()
	power := decimal.NewFromInt(1).Add(r).Pow(decimal.NewFromInt(int64(a.loanTermMonths)))
	denominator := power.Sub(decimal.NewFromInt(1))
	if denominator.IsZero() {
		return decimal.Zero, ErrLoanTermInvalid
	}
	return a.loanAmount.Mul(r).Mul(power).Div(denominator), nil
}

// MakeLoanPayment applies a payment of at least the monthly payment. The
// balance drops by amount and the principal drops by amount less the
// month's interest. The term is left unchanged.
func (a *Account) MakeLoanPayment(amount decimal.Decimal) error {
	payment, err := a.MonthlyPayment()
	if err != nil {
		return err
	}
	if amount.LessThan(payment) {
		return ErrPaymentBelowMinimum
	}
	interest := a.loanAmount.Mul(a.monthlyRate())
	a.balance = a.balance.Sub(amount)
	a.loanAmount = a.loanAmount.Sub(amount.Sub(interest))
	a.record(amount, DescLoanPayment)
	return nil
}

func (a *Account) monthlyRate() decimal.Decimal {
	return a.interestRate.Div(monthsPerYear)
}

func (a *Account) record(amount decimal.Decimal, description string) {
	a.history = append(a.history, NewTransaction(amount, description))
}

// State is a plain copy of every account field, used for persistence.
type State struct {
	Kind           Kind
	Number         int
	Holder         string
	Balance        decimal.Decimal
	Transactions   []Transaction
	InterestRate   decimal.Decimal
	OverdraftLimit decimal.Decimal
	LoanAmount     decimal.Decimal
	LoanTermMonths int
}

// State returns a snapshot of the account.
func (a *Account) State() State {
	return State{
		Kind:           a.kind,
		Number:         a.number,
		Holder:         a.holder,
		Balance:        a.balance,
		Transactions:   a.Transactions(),
		InterestRate:   a.interestRate,
		OverdraftLimit: a.overdraftLimit,
		LoanAmount:     a.loanAmount,
		LoanTermMonths: a.loanTermMonths,
	}
}

// Restore rebuilds an account from a snapshot without recording any new transactions.
func Restore(s State) (*Account, error) {
	if _, err := ParseKind(string(s.Kind)); err != nil {
		return nil, err
	}
	if s.Holder == "" {
		return nil, fmt.Errorf("account %d has no holder", s.Number)
	}
	return &Account{
		kind:           s.Kind,
		number:         s.Number,
		holder:         s.Holder,
		balance:        s.Balance,
		history:        slices.Clone(s.Transactions),
		interestRate:   s.InterestRate,
		overdraftLimit: s.OverdraftLimit,
		loanAmount:     s.LoanAmount,
		loanTermMonths: s.LoanTermMonths,
	}, nil
}
