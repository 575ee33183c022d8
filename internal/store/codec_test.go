package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerkit/teller/internal/model"
)

func TestLedgerRoundTrip_AllKinds(t *testing.T) {
	loan := model.NewLoanMortgage(4, "dee", dec("12000"), dec("0.06"), 12)
	require.NoError(t, loan.MakeLoanPayment(dec("1100")))

	accounts := map[string]*model.Account{
		"ana": model.NewBasic(1, "ana"),
		"bo":  model.NewSavings(2, "bo", dec("500.10"), dec("0.02")),
		"cy":  model.NewChecking(3, "cy", dec("100"), dec("50")),
		"dee": loan,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, accounts))

	got, err := ReadLedger(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(accounts))

	for holder, want := range accounts {
		a, ok := got[holder]
		require.True(t, ok, holder)
		assert.Equal(t, want.Kind(), a.Kind())
		assert.Equal(t, want.Number(), a.Number())
		assert.True(t, want.Balance().Equal(a.Balance()), holder)
		assert.True(t, want.InterestRate().Equal(a.InterestRate()), holder)
		assert.True(t, want.OverdraftLimit().Equal(a.OverdraftLimit()), holder)
		assert.True(t, want.LoanAmount().Equal(a.LoanAmount()), holder)
		assert.Equal(t, want.LoanTermMonths(), a.LoanTermMonths())
		assert.Len(t, a.Transactions(), len(want.Transactions()))
	}
}

func TestWriteLedger_DecimalsAsStrings(t *testing.T) {
	var buf bytes.Buffer
	accounts := map[string]*model.Account{
		"ana": model.NewSavings(1, "ana", dec("0.10"), dec("0.02")),
	}
	require.NoError(t, WriteLedger(&buf, accounts))

	out := buf.String()
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, `balance: "0.1"`)
	assert.Contains(t, out, `interest_rate: "0.02"`)
	assert.NotContains(t, out, "overdraft_limit")
}

func TestReadLedger_Empty(t *testing.T) {
	got, err := ReadLedger(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadLedger_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unknown version",
			input: "version: 2\naccounts: {}\n",
			want:  "unsupported ledger version",
		},
		{
			name:  "holder mismatch",
			input: "version: 1\naccounts:\n  ana:\n    kind: basic\n    number: 1\n    holder: bo\n    balance: \"0\"\n",
			want:  "holder field",
		},
		{
			name:  "unknown kind",
			input: "version: 1\naccounts:\n  ana:\n    kind: brokerage\n    number: 1\n    holder: ana\n    balance: \"0\"\n",
			want:  "unknown account kind",
		},
		{
			name:  "bad balance",
			input: "version: 1\naccounts:\n  ana:\n    kind: basic\n    number: 1\n    holder: ana\n    balance: lots\n",
			want:  "parsing balance",
		},
		{
			name: "bad transaction id",
			input: "version: 1\naccounts:\n  ana:\n    kind: basic\n    number: 1\n    holder: ana\n    balance: \"5\"\n" +
				"    transactions:\n      - date: \"2024-01-02T03:04:05Z\"\n        id: \"abc\"\n        amount: \"5\"\n        description: Deposit\n",
			want: "invalid transaction id",
		},
		{
			name: "bad date",
			input: "version: 1\naccounts:\n  ana:\n    kind: basic\n    number: 1\n    holder: ana\n    balance: \"5\"\n" +
				"    transactions:\n      - date: yesterday\n        id: \"12\"\n        amount: \"5\"\n        description: Deposit\n",
			want: "parsing date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLedger(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
