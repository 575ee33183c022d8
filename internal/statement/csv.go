package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tellerkit/teller/internal/id"
	"github.com/tellerkit/teller/internal/model"
)

// Header is the first row of every statement.
const Header = "date,transaction_id,description,amount"

const (
	numFields = 4
	colDate   = 0
	colID     = 1
	colDesc   = 2
	colAmount = 3
)

// WriteTransactions writes a statement (header included), one row per
// transaction in the order given.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(marshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTransactions reads a statement written by WriteTransactions.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if strings.Join(records[0], ",") != Header {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(records[0], ","))
	}

	txns := make([]model.Transaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		txn, err := unmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// marshalTransaction converts a Transaction to a CSV row.
func marshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = txn.FormattedDate()
	row[colID] = txn.ID
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.StringFixed(2)
	return row
}

// unmarshalTransaction converts a CSV row to a Transaction. Dates carry
// no zone and are read as UTC.
func unmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(model.DateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}
	if !id.ValidTransactionID(record[colID]) {
		return model.Transaction{}, fmt.Errorf("invalid transaction_id %q", record[colID])
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		Date:        date,
		ID:          record[colID],
		Amount:      amount,
		Description: record[colDesc],
	}, nil
}

// ErrMismatch is returned by Verify when a statement no longer matches the
// account history.
var ErrMismatch = errors.New("statement does not match account history")

// Verify reads a statement and checks it row by row against want. Dates
// are compared as written, amounts to two decimal places.
func Verify(r io.Reader, want []model.Transaction) error {
	got, err := ReadTransactions(r)
	if err != nil {
		return err
	}
	if len(got) != len(want) {
		return fmt.Errorf("%w: %d rows, account has %d transactions", ErrMismatch, len(got), len(want))
	}
	for i := range want {
		g, w := marshalTransaction(got[i]), marshalTransaction(want[i])
		for col := range w {
			if g[col] != w[col] {
				return fmt.Errorf("%w: row %d %s is %q, want %q",
					ErrMismatch, i+2, strings.Split(Header, ",")[col], g[col], w[col])
			}
		}
	}
	return nil
}
