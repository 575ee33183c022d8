package model

import (
	"errors"
	"fmt"
)

// ErrDeclined is wrapped by every policy rejection. A declined operation
// leaves the account untouched.
var ErrDeclined = errors.New("operation declined")

var (
	// Withdrawal declines
	ErrInsufficientFunds      = fmt.Errorf("%w: insufficient funds", ErrDeclined)
	ErrOverdraftLimitExceeded = fmt.Errorf("%w: withdrawal amount exceeds overdraft limit", ErrDeclined)
	ErrWithdrawalNotAllowed   = fmt.Errorf("%w: withdrawal not allowed for loan mortgage account", ErrDeclined)

	// Loan payment declines
	ErrNotLoanAccount      = fmt.Errorf("%w: not a loan mortgage account", ErrDeclined)
	ErrPaymentBelowMinimum = fmt.Errorf("%w: payment is less than the monthly payment", ErrDeclined)
	ErrLoanTermInvalid     = fmt.Errorf("%w: monthly payment is undefined for this loan", ErrDeclined)

	// Input declines
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrDeclined)
)
