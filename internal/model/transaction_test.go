package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClearedStatus(t *testing.T) {
	tests := []struct {
		input string
		want  ClearedStatus
	}{
		{"", StatusUncleared},
		{"*", StatusCleared},
		{"c", StatusCleared},
		{"X", StatusReconciled},
		{"x", StatusReconciled},
		{"R", StatusReconciled},
	}
	for _, tt := range tests {
		got, err := ParseClearedStatus(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}

	_, err := ParseClearedStatus("z")
	assert.Error(t, err)
}

func TestParseInvestmentAction(t *testing.T) {
	got, err := ParseInvestmentAction("Buy")
	require.NoError(t, err)
	assert.Equal(t, ActionBuy, got)

	got, err = ParseInvestmentAction("ReinvDiv")
	require.NoError(t, err)
	assert.Equal(t, ActionReinvestDiv, got)

	// QIF action codes are case-sensitive.
	_, err = ParseInvestmentAction("buy")
	assert.Error(t, err)

	_, err = ParseInvestmentAction("Nonsense")
	assert.Error(t, err)
}

func TestParseInvestmentActionFold(t *testing.T) {
	for _, input := range []string{"buy", "BUY", "Buy"} {
		got, err := ParseInvestmentActionFold(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, ActionBuy, got)
	}

	got, err := ParseInvestmentActionFold("shrsin")
	require.NoError(t, err)
	assert.Equal(t, ActionAddShares, got)

	_, err = ParseInvestmentActionFold("hold")
	assert.Error(t, err)
}

func TestParseAccountType(t *testing.T) {
	for _, code := range []string{"Bank", "Cash", "CCard", "Invst", "Oth A", "Oth L"} {
		got, err := ParseAccountType(code)
		require.NoError(t, err, "code %q", code)
		assert.Equal(t, code, string(got))
	}

	_, err := ParseAccountType("Checking")
	require.Error(t, err)
	var uerr *UnsupportedAccountTypeError
	assert.ErrorAs(t, err, &uerr)
}

func TestAccountTypeShapes(t *testing.T) {
	assert.True(t, AccountTypeBank.IsBanking())
	assert.True(t, AccountTypeCash.IsBanking())
	assert.True(t, AccountTypeCreditCard.IsBanking())
	assert.True(t, AccountTypeAsset.IsBanking())
	assert.True(t, AccountTypeLiability.IsBanking())
	assert.False(t, AccountTypeInvestment.IsBanking())

	assert.True(t, AccountTypeInvestment.IsInvestment())
	assert.False(t, AccountTypeBank.IsInvestment())
}

func TestTransactionList(t *testing.T) {
	var empty TransactionList
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Len())

	banking := TransactionList{Banking: make([]BankingTransaction, 3)}
	assert.False(t, banking.Empty())
	assert.Equal(t, 3, banking.Len())

	invest := TransactionList{Investment: make([]InvestmentTransaction, 2)}
	assert.Equal(t, 2, invest.Len())
}

func TestQIFFileBuckets(t *testing.T) {
	f := NewQIFFile()
	assert.True(t, f.Empty())

	f.AddBanking("Checking", BankingTransaction{Payee: "a"})
	f.AddBanking("Savings", BankingTransaction{Payee: "b"})
	f.AddBanking("Checking", BankingTransaction{Payee: "c"})
	f.AddInvestment("Brokerage", InvestmentTransaction{Security: "AAPL"})

	assert.Equal(t, []string{"Checking", "Savings", "Brokerage"}, f.Order)
	assert.Len(t, f.Banking["Checking"], 2)
	assert.Len(t, f.Banking["Savings"], 1)
	assert.Len(t, f.Investment["Brokerage"], 1)
	assert.False(t, f.Empty())

	f.AddAccount(Account{Name: "Checking", Type: AccountTypeBank})
	acct, ok := f.Account("Checking")
	require.True(t, ok)
	assert.Equal(t, AccountTypeBank, acct.Type)

	_, ok = f.Account("Missing")
	assert.False(t, ok)
}
