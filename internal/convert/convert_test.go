package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qifconv-dev/qifconv/internal/model"
	"github.com/qifconv-dev/qifconv/internal/template"
)

func bankTemplate() *model.CSVTemplate {
	tpl := model.NewCSVTemplate("checking", model.AccountTypeBank)
	tpl.DateFormat = "%Y-%m-%d"
	tpl.FieldMapping = model.NewFieldMapping(
		model.FieldDate, "Date",
		model.FieldAmount, "Amount",
		model.FieldPayee, "Description",
		model.FieldNumber, "Check Number",
		model.FieldMemo, "Memo",
		model.FieldCategory, "Category",
	)
	return tpl
}

func TestCSVToQIF(t *testing.T) {
	csvText := `Date,Amount,Description,Check Number,Memo,Category
2023-01-01,100.50,Grocery Store,123,Weekly groceries,Food:Groceries
`
	out, err := CSVToQIF(csvText, bankTemplate(), "Checking")
	require.NoError(t, err)

	want := `!Account
NChecking
TBank
^
!Type:Bank
D01/01/2023
T100.50
PGrocery Store
MWeekly groceries
LFood:Groceries
N123
^
`
	assert.Equal(t, want, out)
}

func TestCSVToQIFDefaultAccountName(t *testing.T) {
	csvText := "Date,Amount\n2023-01-01,1.00\n"
	out, err := CSVToQIF(csvText, bankTemplate(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Nchecking\n")
}

func TestQIFToCSV(t *testing.T) {
	qifText := `!Type:Bank
D01/01/2023
T100.50
PGrocery Store
MWeekly groceries
LFood:Groceries
N123
^
`
	out, err := QIFToCSV(qifText, bankTemplate(), "")
	require.NoError(t, err)

	want := `Date,Amount,Description,Check Number,Memo,Category
2023-01-01,100.5,Grocery Store,123,Weekly groceries,Food:Groceries
`
	assert.Equal(t, want, out)
}

func TestRoundTripPreservesData(t *testing.T) {
	csvText := `Date,Amount,Description,Check Number,Memo,Category
2023-01-01,100.5,Grocery Store,123,Weekly groceries,Food:Groceries
2023-01-02,-42.0,Landlord,,January,Housing:Rent
`
	tpl := bankTemplate()

	qifText, err := CSVToQIF(csvText, tpl, "Checking")
	require.NoError(t, err)

	back, err := QIFToCSV(qifText, tpl, "Checking")
	require.NoError(t, err)
	assert.Equal(t, csvText, back)
}

func TestQIFRoundTripMultiAccount(t *testing.T) {
	qifText := `!Account
NChecking
TBank
^
!Type:Bank
D02/01/2023
T-5.00
PCoffee
^
!Account
NSavings
TBank
^
!Type:Bank
D02/02/2023
T500.00
PDeposit
^
`
	tpl := bankTemplate()

	out, err := QIFToCSV(qifText, tpl, "Savings")
	require.NoError(t, err)
	assert.Contains(t, out, "Deposit")
	assert.NotContains(t, out, "Coffee")

	// Empty account name selects the first bucket.
	out, err = QIFToCSV(qifText, tpl, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Coffee")
}

func TestCSVToQIFTransferDetection(t *testing.T) {
	tpl := bankTemplate()
	tpl.DetectTransfers = true

	csvText := `Date,Amount,Description,Check Number,Memo,Category
2023-03-01,-500.0,Transfer to Savings,,,
2023-03-01,500.0,Transfer from Checking,,,
`
	out, err := CSVToQIF(csvText, tpl, "Checking")
	require.NoError(t, err)
	assert.Contains(t, out, "L[Savings]\n")
	assert.Contains(t, out, "L[Checking]\n")
}

func TestConvertInvalidTemplate(t *testing.T) {
	tpl := bankTemplate()
	tpl.FieldMapping = model.NewFieldMapping(model.FieldPayee, "Description")

	_, err := CSVToQIF("Description\nx\n", tpl, "")
	require.Error(t, err)
	var verr template.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = QIFToCSV("!Type:Bank\nD01/01/2023\n^\n", tpl, "")
	assert.Error(t, err)
}

func TestQIFToCSVShapeMismatch(t *testing.T) {
	qifText := "!Type:Invst\nD01/01/2023\nNBuy\nT-1.00\n^\n"

	_, err := QIFToCSV(qifText, bankTemplate(), "")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no banking transactions"))
}
