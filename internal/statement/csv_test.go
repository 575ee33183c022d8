package statement

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerkit/teller/internal/model"
)

func at(y, m, d, hh, mm int) time.Time {
	return time.Date(y, time.Month(m), d, hh, mm, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRoundTrip(t *testing.T) {
	txns := []model.Transaction{
		{Date: at(2024, 3, 1, 9, 30), ID: "42", Amount: dec("500"), Description: model.DescInitial},
		{Date: at(2024, 3, 2, 14, 5), ID: "99999", Amount: dec("120.5"), Description: model.DescWithdrawal},
		{Date: at(2024, 3, 3, 0, 0), ID: "0", Amount: dec("-3.25"), Description: model.DescDeposit},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txns))

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(txns))
	for i := range txns {
		assert.True(t, txns[i].Date.Equal(got[i].Date), "row %d date", i)
		assert.Equal(t, txns[i].ID, got[i].ID)
		assert.Equal(t, txns[i].Description, got[i].Description)
		assert.True(t, txns[i].Amount.Equal(got[i].Amount), "row %d amount", i)
	}
}

func TestWriteTransactions_Format(t *testing.T) {
	txns := []model.Transaction{
		{Date: at(2024, 3, 2, 14, 5), ID: "17", Amount: dec("120.5"), Description: model.DescLoanPayment},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txns))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, "2024-03-02 14:05:00,17,Loan Payment,120.50", lines[1])
}

func TestWriteTransactions_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadTransactions_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"wrong header", "when,id,what,how much\n", "unexpected header"},
		{"field count", Header + "\n2024-03-02 14:05:00,17,Deposit\n", "reading statement CSV"},
		{"bad date", Header + "\nyesterday,17,Deposit,1.00\n", "parsing date"},
		{"bad id", Header + "\n2024-03-02 14:05:00,abc,Deposit,1.00\n", "invalid transaction_id"},
		{"bad amount", Header + "\n2024-03-02 14:05:00,17,Deposit,ten\n", "parsing amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTransactions(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadTransactions_NoInput(t *testing.T) {
	got, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVerify(t *testing.T) {
	txns := []model.Transaction{
		{Date: at(2024, 3, 1, 9, 30), ID: "42", Amount: dec("500"), Description: model.DescInitial},
		{Date: at(2024, 3, 2, 14, 5), ID: "7", Amount: dec("20.5"), Description: model.DescDeposit},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txns))
	written := buf.String()

	require.NoError(t, Verify(strings.NewReader(written), txns))

	tests := []struct {
		name string
		want []model.Transaction
		msg  string
	}{
		{"missing row", append(txns, model.Transaction{Date: at(2024, 3, 3, 0, 0), ID: "8", Description: model.DescDeposit}), "2 rows, account has 3"},
		{"changed amount", []model.Transaction{txns[0], {Date: txns[1].Date, ID: "7", Amount: dec("21"), Description: model.DescDeposit}}, "row 3 amount"},
		{"changed id", []model.Transaction{{Date: txns[0].Date, ID: "43", Amount: dec("500"), Description: model.DescInitial}, txns[1]}, "row 2 transaction_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(strings.NewReader(written), tt.want)
			require.ErrorIs(t, err, ErrMismatch)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestVerify_UnreadableStatement(t *testing.T) {
	err := Verify(strings.NewReader("when,id,what,how much\n"), nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}
