package qif

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qifconv-dev/qifconv/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseBankTransactions(t *testing.T) {
	input := `!Type:Bank
D01/15/2023
T-42.50
PGrocery Store
MWeekly run
LFood:Groceries
N1024
C*
^
D01/16/2023
T1200.00
PEmployer
^
`
	f, err := Parse(input)
	require.NoError(t, err)

	txns := f.Banking[model.DefaultAccountName]
	require.Len(t, txns, 2)

	tx := txns[0]
	assert.Equal(t, date(2023, time.January, 15), tx.Date)
	assert.True(t, tx.Amount.Equal(dec("-42.50")))
	assert.Equal(t, "Grocery Store", tx.Payee)
	assert.Equal(t, "Weekly run", tx.Memo)
	assert.Equal(t, "Food:Groceries", tx.Category)
	assert.Equal(t, "1024", tx.Number)
	assert.Equal(t, model.StatusCleared, tx.Status)

	tx = txns[1]
	assert.True(t, tx.Amount.Equal(dec("1200")))
	assert.Equal(t, model.StatusUncleared, tx.Status)
}

func TestParseSplits(t *testing.T) {
	input := `!Type:Bank
D02/01/2023
T-100.00
PHardware Store
SHome:Repair
ELumber
$-60.00
SHome:Garden
$-40.00
^
`
	f, err := Parse(input)
	require.NoError(t, err)

	txns := f.Banking[model.DefaultAccountName]
	require.Len(t, txns, 1)
	splits := txns[0].Splits
	require.Len(t, splits, 2)

	assert.Equal(t, "Home:Repair", splits[0].Category)
	assert.Equal(t, "Lumber", splits[0].Memo)
	assert.True(t, splits[0].Amount.Equal(dec("-60")))
	assert.Equal(t, "Home:Garden", splits[1].Category)
	assert.Empty(t, splits[1].Memo)
	assert.True(t, splits[1].Amount.Equal(dec("-40")))
}

func TestParseAccountBlocks(t *testing.T) {
	input := `!Account
NChecking
TBank
DEveryday account
^
!Type:Bank
D03/01/2023
T-5.00
PCoffee
^
!Account
NBrokerage
TInvst
^
!Type:Invst
D03/02/2023
NBuy
YAAPL
Q10
I150.25
T-1502.50
^
`
	f, err := Parse(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"Checking", "Brokerage"}, f.Order)

	acct, ok := f.Account("Checking")
	require.True(t, ok)
	assert.Equal(t, model.AccountTypeBank, acct.Type)
	assert.Equal(t, "Everyday account", acct.Description)

	require.Len(t, f.Banking["Checking"], 1)
	require.Len(t, f.Investment["Brokerage"], 1)

	inv := f.Investment["Brokerage"][0]
	assert.Equal(t, model.ActionBuy, inv.Action)
	assert.Equal(t, "AAPL", inv.Security)
	require.True(t, inv.Quantity.Valid)
	assert.True(t, inv.Quantity.Decimal.Equal(dec("10")))
	require.True(t, inv.Price.Valid)
	assert.True(t, inv.Price.Decimal.Equal(dec("150.25")))
	assert.True(t, inv.Amount.Equal(dec("-1502.50")))
}

func TestParseInvestmentOptionalFields(t *testing.T) {
	input := `!Type:Invst
D04/01/2023
NDiv
YMSFT
T25.00
^
`
	f, err := Parse(input)
	require.NoError(t, err)

	txns := f.Investment[model.DefaultAccountName]
	require.Len(t, txns, 1)
	assert.False(t, txns[0].Quantity.Valid)
	assert.False(t, txns[0].Price.Valid)
	assert.True(t, txns[0].Commission.IsZero())
}

func TestParseUnterminatedTrailingBlock(t *testing.T) {
	input := "!Type:Bank\nD05/01/2023\nT-1.00\nPKiosk"
	f, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, f.Banking[model.DefaultAccountName], 1)
	assert.Equal(t, "Kiosk", f.Banking[model.DefaultAccountName][0].Payee)
}

func TestParseClearedVariants(t *testing.T) {
	input := `!Type:Bank
D06/01/2023
T1.00
C
^
D06/02/2023
T1.00
CX
^
D06/03/2023
T1.00
CR
^
`
	f, err := Parse(input)
	require.NoError(t, err)
	txns := f.Banking[model.DefaultAccountName]
	require.Len(t, txns, 3)
	assert.Equal(t, model.StatusCleared, txns[0].Status)
	assert.Equal(t, model.StatusReconciled, txns[1].Status)
	assert.Equal(t, model.StatusReconciled, txns[2].Status)
}

func TestParseErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Parse("")
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
	})

	t.Run("text before header", func(t *testing.T) {
		_, err := Parse("D01/01/2023\n")
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, 1, ferr.Line)
	})

	t.Run("unknown type code", func(t *testing.T) {
		_, err := Parse("!Type:Bogus\n")
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		var uerr *model.UnsupportedAccountTypeError
		assert.ErrorAs(t, err, &uerr)
	})

	t.Run("bad date reports line", func(t *testing.T) {
		_, err := Parse("!Type:Bank\nD99/99/9999\n")
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, 2, ferr.Line)
		assert.Equal(t, "D99/99/9999", ferr.Text)
	})

	t.Run("bad amount", func(t *testing.T) {
		_, err := Parse("!Type:Bank\nD01/01/2023\nTabc\n")
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, 3, ferr.Line)
	})

	t.Run("unknown investment action", func(t *testing.T) {
		_, err := Parse("!Type:Invst\nD01/01/2023\nNHold\n")
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
	})
}

func TestParseListSections(t *testing.T) {
	input := `!Type:Cat
NFood:Groceries
DEveryday food
^
NSalary
I
^
!Type:Class
NWork
DBillable
^
!Type:Memorized
KC
T-10.00
PCoffee
^
!Type:Bank
D01/01/2023
T-5.00
PCoffee
^
`
	f, err := Parse(input)
	require.NoError(t, err)

	require.Len(t, f.Categories, 2)
	assert.Equal(t, model.Category{Name: "Food:Groceries", Description: "Everyday food"}, f.Categories[0])
	assert.Equal(t, "Salary", f.Categories[1].Name)

	require.Len(t, f.Classes, 1)
	assert.Equal(t, model.Class{Name: "Work", Description: "Billable"}, f.Classes[0])

	// Memorized blocks are consumed without producing transactions.
	require.Len(t, f.Banking[model.DefaultAccountName], 1)
	assert.Equal(t, "Coffee", f.Banking[model.DefaultAccountName][0].Payee)
}

func TestParseUnknownOnlyBlock(t *testing.T) {
	input := `!Type:Bank
Zmystery
^
D01/01/2023
T-5.00
^
`
	f, err := Parse(input)
	require.NoError(t, err)
	// A block holding only unrecognized tags commits nothing.
	require.Len(t, f.Banking[model.DefaultAccountName], 1)
	assert.True(t, f.Banking[model.DefaultAccountName][0].Amount.Equal(dec("-5")))
}

func TestParseIgnoresUnknownTags(t *testing.T) {
	input := `!Type:Bank
D07/01/2023
T3.00
Zmystery
^
`
	f, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, f.Banking[model.DefaultAccountName], 1)
}
