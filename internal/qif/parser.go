// Package qif implements the QIF tagged-text format: a line-based parser
// producing per-account transaction buckets, and the inverse generator.
//
// QIF has no formal grammar. It is single-character-tag, line-delimited text:
// section headers are "!Type:<code>" and "!Account", a line containing only
// "^" terminates the current block, and every other line's first character
// names a field whose value is the remainder of the line.
package qif

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/qifconv-dev/qifconv/internal/amount"
	"github.com/qifconv-dev/qifconv/internal/dateutil"
	"github.com/qifconv-dev/qifconv/internal/model"
)

// FormatError reports a malformed QIF line or tag value.
type FormatError struct {
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("qif line %d: %v (%q)", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("qif line %d: malformed input %q", e.Line, e.Text)
}

func (e *FormatError) Unwrap() error { return e.Err }

const (
	typePrefix    = "!Type:"
	accountHeader = "!Account"

	typeCategory  = "Cat"
	typeClass     = "Class"
	typeMemorized = "Memorized"
)

type parserState int

const (
	stateHeader parserState = iota
	stateAccount
	stateTransaction
	stateCategory
	stateClass
	stateSkip
)

// parser is the mutable state threaded over input lines: the active account
// context, the active record shape, and whichever block is accumulating.
type parser struct {
	file    *model.QIFFile
	state   parserState
	account string // active account context, "" until an !Account block commits
	invest  bool   // active record shape

	acct    model.Account // accumulating !Account block
	cat     model.Category
	cls     model.Class
	bank    model.BankingTransaction
	inv     model.InvestmentTransaction
	pending bool // the accumulating transaction has at least one field

	line int
}

// Parse tokenizes QIF text into a QIFFile grouped by account. Parsing is
// fail-fast: the first malformed line or unparseable value aborts with a
// FormatError and no partial file is returned.
func Parse(text string) (*model.QIFFile, error) {
	p := &parser{file: model.NewQIFFile()}

	sawHeader := false
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		p.line++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "!") {
			if err := p.header(line); err != nil {
				return nil, err
			}
			sawHeader = true
			continue
		}

		if !sawHeader {
			return nil, &FormatError{Line: p.line, Text: line,
				Err: fmt.Errorf("no recognized QIF content before this line")}
		}

		if line == "^" {
			p.endBlock()
			continue
		}

		if err := p.tagLine(line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading qif input: %w", err)
	}

	if !sawHeader {
		return nil, &FormatError{Line: p.line, Text: "",
			Err: fmt.Errorf("no recognized QIF content")}
	}

	// Files are supposed to end every block with "^", but a trailing
	// unterminated block is committed rather than dropped.
	p.endBlock()
	return p.file, nil
}

// header handles "!"-prefixed lines. A header arriving mid-transaction
// flushes the accumulated fields first.
func (p *parser) header(line string) error {
	if p.pending {
		p.flushTransaction()
	}

	if strings.HasPrefix(line, accountHeader) {
		p.state = stateAccount
		p.acct = model.Account{}
		return nil
	}

	if strings.HasPrefix(line, typePrefix) {
		code := strings.TrimSpace(line[len(typePrefix):])
		switch code {
		case typeCategory:
			p.state = stateCategory
			p.cat = model.Category{}
			return nil
		case typeClass:
			p.state = stateClass
			p.cls = model.Class{}
			return nil
		case typeMemorized:
			// Memorized transaction lists carry no convertible data;
			// consume the section.
			p.state = stateSkip
			return nil
		}
		at, err := model.ParseAccountType(code)
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.invest = at.IsInvestment()
		p.state = stateTransaction
		return nil
	}

	return &FormatError{Line: p.line, Text: line,
		Err: fmt.Errorf("unrecognized section header")}
}

// endBlock commits whatever is accumulating when a "^" terminator arrives.
func (p *parser) endBlock() {
	switch p.state {
	case stateAccount:
		p.file.AddAccount(p.acct)
		p.account = p.acct.Name
		p.acct = model.Account{}
		p.state = stateHeader
	case stateTransaction:
		p.flushTransaction()
	case stateCategory:
		if p.cat != (model.Category{}) {
			p.file.AddCategory(p.cat)
			p.cat = model.Category{}
		}
	case stateClass:
		if p.cls != (model.Class{}) {
			p.file.AddClass(p.cls)
			p.cls = model.Class{}
		}
	}
}

func (p *parser) flushTransaction() {
	if !p.pending {
		return
	}
	name := p.account
	if name == "" {
		name = model.DefaultAccountName
	}
	if p.invest {
		p.file.AddInvestment(name, p.inv)
	} else {
		p.file.AddBanking(name, p.bank)
	}
	p.bank = model.BankingTransaction{}
	p.inv = model.InvestmentTransaction{}
	p.pending = false
}

func (p *parser) tagLine(line string) error {
	tag := line[0]
	value := line[1:]

	switch p.state {
	case stateAccount:
		return p.accountTag(tag, value, line)
	case stateTransaction:
		if p.invest {
			return p.investmentTag(tag, value, line)
		}
		return p.bankingTag(tag, value, line)
	case stateCategory:
		switch tag {
		case 'N':
			p.cat.Name = value
		case 'D':
			p.cat.Description = value
		}
		// Tax, income/expense and budget tags are ignored.
		return nil
	case stateClass:
		switch tag {
		case 'N':
			p.cls.Name = value
		case 'D':
			p.cls.Description = value
		}
		return nil
	case stateSkip:
		return nil
	}
	// Tag lines directly after an !Account block's terminator, before any
	// !Type header. Nothing to attach them to; ignore.
	return nil
}

func (p *parser) accountTag(tag byte, value, line string) error {
	switch tag {
	case 'N':
		p.acct.Name = value
	case 'T':
		at, err := model.ParseAccountType(value)
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.acct.Type = at
	case 'D':
		p.acct.Description = value
	}
	// Other account tags (credit limit, statement balance) are ignored.
	return nil
}

func (p *parser) bankingTag(tag byte, value, line string) error {
	switch tag {
	case 'D':
		d, err := dateutil.Parse(value, "")
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.bank.Date = d
	case 'T', 'U':
		a, err := amount.Parse(value)
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.bank.Amount = a
	case 'C':
		p.bank.Status = parseClearedTag(value)
	case 'P':
		p.bank.Payee = value
	case 'M':
		p.bank.Memo = value
	case 'L':
		p.bank.Category = value
	case 'N':
		p.bank.Number = value
	case 'A':
		p.bank.Address = append(p.bank.Address, value)
	case 'S':
		p.bank.Splits = append(p.bank.Splits, model.SplitTransaction{Category: value})
	case 'E':
		s := p.openSplit()
		s.Memo = value
	case '$':
		a, err := amount.Parse(value)
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		s := p.openSplit()
		s.Amount = a
	default:
		// Unrecognized tags are ignored for forward compatibility and do not
		// open a transaction on their own.
		return nil
	}
	p.pending = true
	return nil
}

// openSplit returns the split currently accumulating. E and $ lines arriving
// before any S line open an uncategorized split so order association holds.
func (p *parser) openSplit() *model.SplitTransaction {
	if len(p.bank.Splits) == 0 {
		p.bank.Splits = append(p.bank.Splits, model.SplitTransaction{})
	}
	return &p.bank.Splits[len(p.bank.Splits)-1]
}

func (p *parser) investmentTag(tag byte, value, line string) error {
	switch tag {
	case 'D':
		d, err := dateutil.Parse(value, "")
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.inv.Date = d
	case 'N':
		a, err := model.ParseInvestmentAction(value)
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.inv.Action = a
	case 'Y':
		p.inv.Security = value
	case 'Q':
		q, err := amount.Parse(value)
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.inv.Quantity = decimal.NewNullDecimal(q)
	case 'I':
		pr, err := amount.Parse(value)
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.inv.Price = decimal.NewNullDecimal(pr)
	case 'T', 'U':
		a, err := amount.Parse(value)
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.inv.Amount = a
	case 'O':
		c, err := amount.Parse(value)
		if err != nil {
			return &FormatError{Line: p.line, Text: line, Err: err}
		}
		p.inv.Commission = c
	case 'C':
		p.inv.Status = parseClearedTag(value)
	case 'M':
		p.inv.Memo = value
	case 'L':
		// Bracketed categories on investment records name the transfer
		// account.
		if name, ok := strings.CutPrefix(value, "["); ok && strings.HasSuffix(name, "]") {
			p.inv.Account = strings.TrimSuffix(name, "]")
		} else {
			p.inv.Category = value
		}
	case 'P':
		// Payee text on investment records is unused.
	default:
		return nil
	}
	p.pending = true
	return nil
}

// parseClearedTag maps the value of a present C line. A present-but-blank C
// line means cleared; only an absent line means uncleared.
func parseClearedTag(value string) model.ClearedStatus {
	if value == "" {
		return model.StatusCleared
	}
	if s, err := model.ParseClearedStatus(value); err == nil {
		return s
	}
	return model.StatusUncleared
}
