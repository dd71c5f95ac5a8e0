package template

import (
	"sort"

	"github.com/qifconv-dev/qifconv/internal/model"
)

// Default returns the built-in template with the given name, or nil.
func Default(name string) *model.CSVTemplate {
	if build, ok := defaults[name]; ok {
		return build()
	}
	return nil
}

// DefaultNames lists the built-in template names, sorted.
func DefaultNames() []string {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns all built-in templates.
func Defaults() []*model.CSVTemplate {
	templates := make([]*model.CSVTemplate, 0, len(defaults))
	for _, name := range DefaultNames() {
		templates = append(templates, defaults[name]())
	}
	return templates
}

var defaults = map[string]func() *model.CSVTemplate{
	"bank":         bankTemplate,
	"credit_card":  creditCardTemplate,
	"debit_credit": debitCreditTemplate,
	"investment":   investmentTemplate,
}

func bankTemplate() *model.CSVTemplate {
	tpl := model.NewCSVTemplate("bank", model.AccountTypeBank)
	tpl.Description = "Generic bank export with a single signed Amount column"
	tpl.DateFormat = "%Y-%m-%d"
	tpl.FieldMapping = model.NewFieldMapping(
		model.FieldDate, "Date",
		model.FieldAmount, "Amount",
		model.FieldPayee, "Description",
		model.FieldNumber, "Reference",
		model.FieldMemo, "Memo",
		model.FieldCategory, "Category",
	)
	return tpl
}

func creditCardTemplate() *model.CSVTemplate {
	tpl := model.NewCSVTemplate("credit_card", model.AccountTypeCreditCard)
	tpl.Description = "Credit card export; charges arrive positive and flip sign"
	tpl.DateFormat = "%m/%d/%Y"
	tpl.FieldMapping = model.NewFieldMapping(
		model.FieldDate, "Transaction Date",
		model.FieldAmount, "Amount",
		model.FieldPayee, "Description",
		model.FieldCategory, "Category",
	)
	tpl.AmountMultiplier = map[string]float64{"Amount": -1}
	return tpl
}

func debitCreditTemplate() *model.CSVTemplate {
	tpl := model.NewCSVTemplate("debit_credit", model.AccountTypeBank)
	tpl.Description = "Bank export with separate Debit and Credit columns"
	tpl.DateFormat = "%Y-%m-%d"
	tpl.FieldMapping = model.NewFieldMapping(
		model.FieldDate, "Date",
		model.FieldAmount, "Credit",
		model.FieldPayee, "Description",
		model.FieldMemo, "Memo",
	)
	tpl.AmountColumns = []string{"Debit", "Credit"}
	tpl.AmountMultiplier = map[string]float64{"Debit": -1}
	return tpl
}

func investmentTemplate() *model.CSVTemplate {
	tpl := model.NewCSVTemplate("investment", model.AccountTypeInvestment)
	tpl.Description = "Brokerage export of trades, dividends and transfers"
	tpl.DateFormat = "%Y-%m-%d"
	tpl.FieldMapping = model.NewFieldMapping(
		model.FieldDate, "Date",
		model.FieldAction, "Action",
		model.FieldSecurity, "Security",
		model.FieldQuantity, "Quantity",
		model.FieldPrice, "Price",
		model.FieldAmount, "Amount",
		model.FieldCommission, "Commission",
		model.FieldMemo, "Memo",
		model.FieldCategory, "Category",
	)
	return tpl
}
