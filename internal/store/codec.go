package store

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tellerkit/teller/internal/id"
	"github.com/tellerkit/teller/internal/model"
)

// FormatVersion is written to every ledger file.
const FormatVersion = 1

const timeFormat = time.RFC3339Nano

type ledgerFile struct {
	Version  int                      `yaml:"version"`
	Accounts map[string]accountRecord `yaml:"accounts"`
}

type accountRecord struct {
	Kind           string              `yaml:"kind"`
	Number         int                 `yaml:"number"`
	Holder         string              `yaml:"holder"`
	Balance        string              `yaml:"balance"`
	InterestRate   string              `yaml:"interest_rate,omitempty"`
	OverdraftLimit string              `yaml:"overdraft_limit,omitempty"`
	LoanAmount     string              `yaml:"loan_amount,omitempty"`
	LoanTermMonths int                 `yaml:"loan_term_months,omitempty"`
	Transactions   []transactionRecord `yaml:"transactions"`
}

type transactionRecord struct {
	Date        string `yaml:"date"`
	ID          string `yaml:"id"`
	Amount      string `yaml:"amount"`
	Description string `yaml:"description"`
}

// ReadLedger decodes a ledger file keyed by holder name. An empty input
// yields an empty ledger.
func ReadLedger(r io.Reader) (map[string]*model.Account, error) {
	var f ledgerFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return make(map[string]*model.Account), nil
		}
		return nil, fmt.Errorf("decoding ledger: %w", err)
	}
	if f.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported ledger version %d", f.Version)
	}

	accounts := make(map[string]*model.Account, len(f.Accounts))
	for holder, rec := range f.Accounts {
		if rec.Holder != holder {
			return nil, fmt.Errorf("account %q: holder field is %q", holder, rec.Holder)
		}
		acct, err := unmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", holder, err)
		}
		accounts[holder] = acct
	}
	return accounts, nil
}

// WriteLedger encodes the full ledger. Holders are written in sorted order.
func WriteLedger(w io.Writer, accounts map[string]*model.Account) error {
	f := ledgerFile{
		Version:  FormatVersion,
		Accounts: make(map[string]accountRecord, len(accounts)),
	}
	for holder, acct := range accounts {
		f.Accounts[holder] = marshalAccount(acct)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	return enc.Close()
}

// marshalAccount converts an Account to its file record. Decimals are
// written as exact strings.
func marshalAccount(acct *model.Account) accountRecord {
	s := acct.State()
	rec := accountRecord{
		Kind:           string(s.Kind),
		Number:         s.Number,
		Holder:         s.Holder,
		Balance:        s.Balance.String(),
		LoanTermMonths: s.LoanTermMonths,
		Transactions:   make([]transactionRecord, len(s.Transactions)),
	}
	if !s.InterestRate.IsZero() {
		rec.InterestRate = s.InterestRate.String()
	}
	if !s.OverdraftLimit.IsZero() {
		rec.OverdraftLimit = s.OverdraftLimit.String()
	}
	if !s.LoanAmount.IsZero() {
		rec.LoanAmount = s.LoanAmount.String()
	}
	for i, txn := range s.Transactions {
		rec.Transactions[i] = transactionRecord{
			Date:        txn.Date.Format(timeFormat),
			ID:          txn.ID,
			Amount:      txn.Amount.String(),
			Description: txn.Description,
		}
	}
	return rec
}

// unmarshalAccount converts a file record back into an Account.
func unmarshalAccount(rec accountRecord) (*model.Account, error) {
	balance, err := parseDecimal("balance", rec.Balance)
	if err != nil {
		return nil, err
	}
	rate, err := parseDecimal("interest_rate", rec.InterestRate)
	if err != nil {
		return nil, err
	}
	overdraft, err := parseDecimal("overdraft_limit", rec.OverdraftLimit)
	if err != nil {
		return nil, err
	}
	loan, err := parseDecimal("loan_amount", rec.LoanAmount)
	if err != nil {
		return nil, err
	}

	txns := make([]model.Transaction, len(rec.Transactions))
	for i, tr := range rec.Transactions {
		txn, err := unmarshalTransaction(tr)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		txns[i] = txn
	}

	return model.Restore(model.State{
		Kind:           model.Kind(rec.Kind),
		Number:         rec.Number,
		Holder:         rec.Holder,
		Balance:        balance,
		Transactions:   txns,
		InterestRate:   rate,
		OverdraftLimit: overdraft,
		LoanAmount:     loan,
		LoanTermMonths: rec.LoanTermMonths,
	})
}

func unmarshalTransaction(tr transactionRecord) (model.Transaction, error) {
	date, err := time.Parse(timeFormat, tr.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", tr.Date, err)
	}
	if !id.ValidTransactionID(tr.ID) {
		return model.Transaction{}, fmt.Errorf("invalid transaction id %q", tr.ID)
	}
	amount, err := parseDecimal("amount", tr.Amount)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		Date:        date,
		ID:          tr.ID,
		Amount:      amount,
		Description: tr.Description,
	}, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}
