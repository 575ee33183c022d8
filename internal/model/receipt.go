package model

import (
	"strings"
	"time"
)

// Receipt is a printable summary of a single transaction.
type Receipt struct {
	Date          time.Time
	TransactionID string
	Details       string
}

// NewReceipt creates a Receipt.
func NewReceipt(date time.Time, transactionID, details string) Receipt {
	return Receipt{Date: date, TransactionID: transactionID, Details: details}
}

// ReceiptFor builds a receipt for a recorded transaction, e.g. "Deposit Amount: 250.00".
func ReceiptFor(txn Transaction) Receipt {
	return NewReceipt(txn.Date, txn.ID, txn.Description+" Amount: "+txn.Amount.StringFixed(2))
}

// Render returns the three-line receipt text, each line newline-terminated.
func (r Receipt) Render() string {
	var b strings.Builder
	b.WriteString("Date: ")
	b.WriteString(r.Date.Format(DateFormat))
	b.WriteString("\n")
	b.WriteString("Transaction ID: ")
	b.WriteString(r.TransactionID)
	b.WriteString("\n")
	b.WriteString(r.Details)
	b.WriteString("\n")
	return b.String()
}
