package qif

import (
	"errors"
	"strings"

	"github.com/qifconv-dev/qifconv/internal/amount"
	"github.com/qifconv-dev/qifconv/internal/dateutil"
	"github.com/qifconv-dev/qifconv/internal/model"
)

// ErrNoTransactions is returned when a generator is given nothing to emit.
var ErrNoTransactions = errors.New("no transactions to generate")

// qifDateFormat is the output date pattern: zero-padded MM/DD/YYYY.
const qifDateFormat = "%m/%d/%Y"

// Generate renders a homogeneous transaction list as QIF text: one
// !Type:<code> header followed by one block per transaction in input order.
// The account type selects which side of the list is used; it must be a
// supported type and the list must be non-empty.
func Generate(list model.TransactionList, accountType model.AccountType) (string, error) {
	if !accountType.IsBanking() && !accountType.IsInvestment() {
		return "", &model.UnsupportedAccountTypeError{Type: string(accountType)}
	}
	if accountType.IsInvestment() {
		if len(list.Investment) == 0 {
			return "", ErrNoTransactions
		}
	} else if len(list.Banking) == 0 {
		return "", ErrNoTransactions
	}

	var b strings.Builder
	writeSection(&b, list, accountType)
	return b.String(), nil
}

// GenerateFile renders a whole QIFFile: an !Account block before each
// bucket's typed section, so multi-account files import under the right
// accounts. Buckets emit in first-appearance order, followed by category and
// class list sections when present.
func GenerateFile(f *model.QIFFile) (string, error) {
	if f.Empty() && len(f.Categories) == 0 && len(f.Classes) == 0 {
		return "", ErrNoTransactions
	}

	var b strings.Builder
	for _, name := range f.Order {
		if txns, ok := f.Banking[name]; ok {
			at := model.AccountTypeBank
			if acct, ok := f.Account(name); ok {
				at = acct.Type
				writeAccountBlock(&b, acct)
			} else if name != model.DefaultAccountName {
				writeAccountBlock(&b, model.Account{Name: name, Type: at})
			}
			writeSection(&b, model.TransactionList{Banking: txns}, at)
			continue
		}
		if txns, ok := f.Investment[name]; ok {
			acct, found := f.Account(name)
			if !found {
				acct = model.Account{Name: name, Type: model.AccountTypeInvestment}
			}
			if found || name != model.DefaultAccountName {
				writeAccountBlock(&b, acct)
			}
			writeSection(&b, model.TransactionList{Investment: txns}, model.AccountTypeInvestment)
		}
	}

	if len(f.Categories) > 0 {
		b.WriteString(typePrefix + typeCategory + "\n")
		for _, c := range f.Categories {
			writeTag(&b, 'N', c.Name)
			writeTag(&b, 'D', c.Description)
			b.WriteString("^\n")
		}
	}
	if len(f.Classes) > 0 {
		b.WriteString(typePrefix + typeClass + "\n")
		for _, c := range f.Classes {
			writeTag(&b, 'N', c.Name)
			writeTag(&b, 'D', c.Description)
			b.WriteString("^\n")
		}
	}
	return b.String(), nil
}

func writeAccountBlock(b *strings.Builder, acct model.Account) {
	b.WriteString(accountHeader + "\n")
	writeTag(b, 'N', acct.Name)
	writeTag(b, 'T', string(acct.Type))
	writeTag(b, 'D', acct.Description)
	b.WriteString("^\n")
}

func writeSection(b *strings.Builder, list model.TransactionList, at model.AccountType) {
	b.WriteString(typePrefix + string(at) + "\n")
	if at.IsInvestment() {
		for _, tx := range list.Investment {
			writeInvestment(b, tx)
		}
		return
	}
	for _, tx := range list.Banking {
		writeBanking(b, tx)
	}
}

// writeBanking emits fields in fixed order: D, T, C, P, M, L, N, A lines,
// then S/E/$ per split, then the block terminator.
func writeBanking(b *strings.Builder, tx model.BankingTransaction) {
	writeTag(b, 'D', dateutil.Format(tx.Date, qifDateFormat))
	writeTag(b, 'T', amount.Fixed(tx.Amount))
	if tx.Status != model.StatusUncleared {
		writeTag(b, 'C', string(tx.Status))
	}
	writeTag(b, 'P', tx.Payee)
	writeTag(b, 'M', tx.Memo)
	writeTag(b, 'L', tx.Category)
	writeTag(b, 'N', tx.Number)
	for _, line := range tx.Address {
		b.WriteString("A" + line + "\n")
	}
	for _, s := range tx.Splits {
		b.WriteString("S" + s.Category + "\n")
		writeTag(b, 'E', s.Memo)
		b.WriteString("$" + amount.Fixed(s.Amount) + "\n")
	}
	b.WriteString("^\n")
}

// writeInvestment emits fields in fixed order: D, N, Y, Q, I, T, O, M, L, C.
func writeInvestment(b *strings.Builder, tx model.InvestmentTransaction) {
	writeTag(b, 'D', dateutil.Format(tx.Date, qifDateFormat))
	writeTag(b, 'N', string(tx.Action))
	writeTag(b, 'Y', tx.Security)
	if tx.Quantity.Valid {
		writeTag(b, 'Q', amount.Quantity(tx.Quantity.Decimal))
	}
	if tx.Price.Valid {
		writeTag(b, 'I', amount.Shortest(tx.Price.Decimal))
	}
	writeTag(b, 'T', amount.Fixed(tx.Amount))
	if !tx.Commission.IsZero() {
		writeTag(b, 'O', amount.Fixed(tx.Commission))
	}
	writeTag(b, 'M', tx.Memo)
	if tx.Account != "" {
		writeTag(b, 'L', "["+tx.Account+"]")
	} else {
		writeTag(b, 'L', tx.Category)
	}
	if tx.Status != model.StatusUncleared {
		writeTag(b, 'C', string(tx.Status))
	}
	b.WriteString("^\n")
}

// writeTag emits one tag line, omitting absent values entirely.
func writeTag(b *strings.Builder, tag byte, value string) {
	if value == "" {
		return
	}
	b.WriteByte(tag)
	b.WriteString(value)
	b.WriteByte('\n')
}
