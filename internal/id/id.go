package id

import (
	"math/rand"
	"strconv"
)

// TransactionIDSpace bounds generated transaction IDs to [0, TransactionIDSpace).
// IDs are not unique; two transactions in one run can share an ID.
const TransactionIDSpace = 100000

// NewTransactionID returns a short pseudo-random transaction ID like "48213".
func NewTransactionID() string {
	return FormatTransactionID(rand.Intn(TransactionIDSpace))
}

// FormatTransactionID renders n as a transaction ID.
func FormatTransactionID(n int) string {
	return strconv.Itoa(n)
}

// ParseTransactionID parses "48213" back into its integer value.
func ParseTransactionID(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= TransactionIDSpace {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// ValidTransactionID reports whether s is a well-formed transaction ID.
// Leading zeros and signs are rejected so that IDs round-trip exactly.
func ValidTransactionID(s string) bool {
	n, err := ParseTransactionID(s)
	return err == nil && FormatTransactionID(n) == s
}
