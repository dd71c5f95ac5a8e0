package csvconv

import (
	"encoding/csv"
	"strings"

	"github.com/qifconv-dev/qifconv/internal/amount"
	"github.com/qifconv-dev/qifconv/internal/dateutil"
	"github.com/qifconv-dev/qifconv/internal/model"
)

func newWriter(b *strings.Builder, tpl *model.CSVTemplate) *csv.Writer {
	cw := csv.NewWriter(b)
	if tpl.Delimiter != "" {
		cw.Comma = rune(tpl.Delimiter[0])
	}
	return cw
}

// csvDateFormat is the output pattern when the template has none.
const csvDateFormat = "%Y-%m-%d"

// Generate renders transactions as CSV text: a header row of the template's
// column names in mapping order, then one row per transaction. Absent fields
// render as empty strings; numbers use the shortest form ("100.5", not
// "100.50"). An empty transaction list yields a valid header-only output.
func Generate(list model.TransactionList, tpl *model.CSVTemplate) (string, error) {
	if !tpl.AccountType.IsBanking() && !tpl.AccountType.IsInvestment() {
		return "", &model.UnsupportedAccountTypeError{Type: string(tpl.AccountType)}
	}

	var b strings.Builder
	cw := newWriter(&b, tpl)

	if err := cw.Write(tpl.FieldMapping.Columns()); err != nil {
		return "", err
	}

	if tpl.AccountType.IsInvestment() {
		for _, tx := range list.Investment {
			if err := cw.Write(investmentRow(tx, tpl)); err != nil {
				return "", err
			}
		}
	} else {
		for _, tx := range list.Banking {
			if err := cw.Write(bankingRow(tx, tpl)); err != nil {
				return "", err
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func bankingRow(tx model.BankingTransaction, tpl *model.CSVTemplate) []string {
	row := make([]string, 0, tpl.FieldMapping.Len())
	for _, field := range tpl.FieldMapping.Fields() {
		row = append(row, bankingField(tx, field, tpl))
	}
	return row
}

func bankingField(tx model.BankingTransaction, field string, tpl *model.CSVTemplate) string {
	switch field {
	case model.FieldDate:
		return dateutil.Format(tx.Date, dateFormat(tpl))
	case model.FieldAmount:
		return amount.Shortest(tx.Amount)
	case model.FieldPayee:
		return tx.Payee
	case model.FieldMemo:
		return tx.Memo
	case model.FieldCategory:
		return renderCategory(tx.Category, tpl)
	case model.FieldNumber:
		return tx.Number
	}
	return ""
}

func investmentRow(tx model.InvestmentTransaction, tpl *model.CSVTemplate) []string {
	row := make([]string, 0, tpl.FieldMapping.Len())
	for _, field := range tpl.FieldMapping.Fields() {
		row = append(row, investmentField(tx, field, tpl))
	}
	return row
}

func investmentField(tx model.InvestmentTransaction, field string, tpl *model.CSVTemplate) string {
	switch field {
	case model.FieldDate:
		return dateutil.Format(tx.Date, dateFormat(tpl))
	case model.FieldAmount:
		return amount.Shortest(tx.Amount)
	case model.FieldAction:
		return string(tx.Action)
	case model.FieldSecurity:
		return tx.Security
	case model.FieldQuantity:
		if !tx.Quantity.Valid {
			return ""
		}
		return amount.Quantity(tx.Quantity.Decimal)
	case model.FieldPrice:
		if !tx.Price.Valid {
			return ""
		}
		return amount.Shortest(tx.Price.Decimal)
	case model.FieldCommission:
		if tx.Commission.IsZero() {
			return ""
		}
		return amount.Shortest(tx.Commission)
	case model.FieldMemo:
		return tx.Memo
	case model.FieldCategory:
		if tx.Account != "" {
			return "[" + tx.Account + "]"
		}
		return renderCategory(tx.Category, tpl)
	}
	return ""
}

func dateFormat(tpl *model.CSVTemplate) string {
	if tpl.DateFormat != "" {
		return tpl.DateFormat
	}
	return csvDateFormat
}

// renderCategory maps the canonical ":" hierarchy separator back to the
// template's category_format.
func renderCategory(category string, tpl *model.CSVTemplate) string {
	sep := tpl.CategoryFormat
	if sep != "" && sep != ":" {
		return strings.ReplaceAll(category, ":", sep)
	}
	return category
}
