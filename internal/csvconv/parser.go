// Package csvconv maps CSV rows to canonical transactions and back, driven
// by a declarative CSVTemplate.
package csvconv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qifconv-dev/qifconv/internal/amount"
	"github.com/qifconv-dev/qifconv/internal/dateutil"
	"github.com/qifconv-dev/qifconv/internal/model"
)

// MappingError reports a template whose field mapping lacks a required
// canonical field.
type MappingError struct {
	Field string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("template field mapping is missing required field %q", e.Field)
}

// RowError reports the first row/field that failed coercion. Row is the
// 1-based line number in the input, counting skipped and header rows.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Parse maps CSV text to canonical transactions using the template. The
// template's account type selects the transaction shape. Parsing is
// all-or-nothing: the first failing field aborts with a RowError.
func Parse(text string, tpl *model.CSVTemplate) (model.TransactionList, error) {
	if !tpl.FieldMapping.Has(model.FieldDate) {
		return model.TransactionList{}, &MappingError{Field: model.FieldDate}
	}
	if !tpl.FieldMapping.Has(model.FieldAmount) {
		return model.TransactionList{}, &MappingError{Field: model.FieldAmount}
	}
	if !tpl.AccountType.IsBanking() && !tpl.AccountType.IsInvestment() {
		return model.TransactionList{}, &model.UnsupportedAccountTypeError{Type: string(tpl.AccountType)}
	}

	rows, firstRow, err := readRows(text, tpl)
	if err != nil {
		return model.TransactionList{}, err
	}

	cols, rows, firstRow, err := resolveColumns(rows, firstRow, tpl)
	if err != nil {
		return model.TransactionList{}, err
	}

	var list model.TransactionList
	for i, rec := range rows {
		row := rowReader{record: rec, columns: cols, line: firstRow + i, tpl: tpl}
		if tpl.AccountType.IsInvestment() {
			tx, err := parseInvestmentRow(row)
			if err != nil {
				return model.TransactionList{}, err
			}
			list.Investment = append(list.Investment, tx)
		} else {
			tx, err := parseBankingRow(row)
			if err != nil {
				return model.TransactionList{}, err
			}
			list.Banking = append(list.Banking, tx)
		}
	}
	return list, nil
}

// readRows splits the input into records, dropping skip_rows leading rows.
// firstRow is the 1-based line number of the first returned record.
func readRows(text string, tpl *model.CSVTemplate) ([][]string, int, error) {
	cr := csv.NewReader(strings.NewReader(text))
	if tpl.Delimiter != "" {
		cr.Comma = rune(tpl.Delimiter[0])
	}
	cr.FieldsPerRecord = -1 // rows may carry unmapped trailing columns

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading csv: %w", err)
	}

	if tpl.SkipRows >= len(records) {
		return nil, tpl.SkipRows + 1, nil
	}
	return records[tpl.SkipRows:], tpl.SkipRows + 1, nil
}

// resolveColumns builds the column-name → index table. With a header row the
// table comes from the header; without one, mapped column names are 0-based
// indexes in decimal notation.
func resolveColumns(rows [][]string, firstRow int, tpl *model.CSVTemplate) (map[string]int, [][]string, int, error) {
	cols := make(map[string]int)
	if tpl.HasHeader {
		if len(rows) == 0 {
			return cols, nil, firstRow, nil
		}
		for i, name := range rows[0] {
			cols[strings.TrimSpace(name)] = i
		}
		return cols, rows[1:], firstRow + 1, nil
	}

	for _, col := range tpl.FieldMapping.Columns() {
		idx, err := strconv.Atoi(col)
		if err != nil || idx < 0 {
			return nil, nil, 0, fmt.Errorf("template without header row maps %q: column names must be 0-based indexes", col)
		}
		cols[col] = idx
	}
	for _, col := range tpl.AmountColumns {
		if _, ok := cols[col]; ok {
			continue
		}
		if idx, err := strconv.Atoi(col); err == nil && idx >= 0 {
			cols[col] = idx
		}
	}
	return cols, rows, firstRow, nil
}

// rowReader resolves mapped canonical fields against one record.
type rowReader struct {
	record  []string
	columns map[string]int
	line    int
	tpl     *model.CSVTemplate
}

// value returns the raw cell for a canonical field ("" when the field is
// unmapped or the column is missing from this row) plus the column name.
func (r rowReader) value(field string) (string, string) {
	col, ok := r.tpl.FieldMapping.Column(field)
	if !ok {
		return "", ""
	}
	return r.cell(col), col
}

func (r rowReader) cell(col string) string {
	idx, ok := r.columns[col]
	if !ok || idx >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[idx])
}

func (r rowReader) errf(col string, err error) error {
	return &RowError{Row: r.line, Column: col, Err: err}
}

// date parses the mapped date cell, using the template's date_format as a
// strict hint when present and auto-detection otherwise.
func (r rowReader) date() (time.Time, error) {
	raw, col := r.value(model.FieldDate)
	d, err := dateutil.Parse(raw, r.tpl.DateFormat)
	if err != nil {
		return time.Time{}, r.errf(col, err)
	}
	return d, nil
}

// amountValue parses the transaction amount, combining amount_columns when
// more than one is named (debit/credit column pairs), otherwise reading the
// mapped amount column. Multipliers scale by source column name.
func (r rowReader) amountValue() (decimal.Decimal, error) {
	if len(r.tpl.AmountColumns) > 1 {
		total := decimal.Zero
		seen := false
		for _, col := range r.tpl.AmountColumns {
			raw := r.cell(col)
			if raw == "" {
				continue
			}
			d, err := amount.Parse(raw)
			if err != nil {
				return decimal.Decimal{}, r.errf(col, err)
			}
			total = total.Add(r.scale(d, col))
			seen = true
		}
		if !seen {
			_, col := r.value(model.FieldAmount)
			return decimal.Decimal{}, r.errf(col, fmt.Errorf("no amount value present"))
		}
		return total, nil
	}

	raw, col := r.value(model.FieldAmount)
	d, err := amount.Parse(raw)
	if err != nil {
		return decimal.Decimal{}, r.errf(col, err)
	}
	return r.scale(d, col), nil
}

// optionalDecimal parses a mapped numeric cell; blank means absent, not zero.
func (r rowReader) optionalDecimal(field string) (decimal.NullDecimal, error) {
	raw, col := r.value(field)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := amount.Parse(raw)
	if err != nil {
		return decimal.NullDecimal{}, r.errf(col, err)
	}
	return decimal.NewNullDecimal(r.scale(d, col)), nil
}

func (r rowReader) scale(d decimal.Decimal, col string) decimal.Decimal {
	if m, ok := r.tpl.AmountMultiplier[col]; ok {
		return d.Mul(decimal.NewFromFloat(m))
	}
	return d
}

// category normalizes the hierarchy separator to ":".
func (r rowReader) category() string {
	raw, _ := r.value(model.FieldCategory)
	sep := r.tpl.CategoryFormat
	if sep != "" && sep != ":" {
		return strings.ReplaceAll(raw, sep, ":")
	}
	return raw
}

func parseBankingRow(r rowReader) (model.BankingTransaction, error) {
	date, err := r.date()
	if err != nil {
		return model.BankingTransaction{}, err
	}
	amt, err := r.amountValue()
	if err != nil {
		return model.BankingTransaction{}, err
	}

	payee, _ := r.value(model.FieldPayee)
	memo, _ := r.value(model.FieldMemo)
	number, _ := r.value(model.FieldNumber)

	return model.BankingTransaction{
		Date:     date,
		Amount:   amt,
		Payee:    payee,
		Memo:     memo,
		Category: r.category(),
		Number:   number,
	}, nil
}

func parseInvestmentRow(r rowReader) (model.InvestmentTransaction, error) {
	date, err := r.date()
	if err != nil {
		return model.InvestmentTransaction{}, err
	}
	amt, err := r.amountValue()
	if err != nil {
		return model.InvestmentTransaction{}, err
	}

	tx := model.InvestmentTransaction{
		Date:   date,
		Amount: amt,
	}

	if raw, col := r.value(model.FieldAction); raw != "" {
		action, err := model.ParseInvestmentActionFold(raw)
		if err != nil {
			return model.InvestmentTransaction{}, r.errf(col, err)
		}
		tx.Action = action
	}

	tx.Security, _ = r.value(model.FieldSecurity)
	tx.Memo, _ = r.value(model.FieldMemo)
	tx.Category = r.category()

	if tx.Quantity, err = r.optionalDecimal(model.FieldQuantity); err != nil {
		return model.InvestmentTransaction{}, err
	}
	if tx.Price, err = r.optionalDecimal(model.FieldPrice); err != nil {
		return model.InvestmentTransaction{}, err
	}

	// Commission defaults to zero when blank or unmapped.
	commission, err := r.optionalDecimal(model.FieldCommission)
	if err != nil {
		return model.InvestmentTransaction{}, err
	}
	if commission.Valid {
		tx.Commission = commission.Decimal
	}

	return tx, nil
}
