// Package transfer identifies transfer pairs among banking transactions and
// links them with QIF "[Account]" categories.
package transfer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/qifconv-dev/qifconv/internal/model"
)

// Recognizer matches opposite-amount transaction pairs within a date window
// and extracts transfer accounts from bracketed categories.
type Recognizer struct {
	// MaxDayGap is the largest date difference, in days, between the two
	// sides of a transfer.
	MaxDayGap int
	// Tolerance is the largest absolute difference between the two amounts.
	Tolerance decimal.Decimal

	pattern *regexp.Regexp
}

// New builds a Recognizer for the given transfer category pattern (the
// template's transfer_pattern). An empty pattern uses the default bracketed
// form.
func New(pattern string) (*Recognizer, error) {
	if pattern == "" {
		pattern = model.DefaultTransferPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling transfer pattern: %w", err)
	}
	return &Recognizer{
		MaxDayGap: 1,
		Tolerance: decimal.New(1, -2), // 0.01
		pattern:   re,
	}, nil
}

// TransferAccount extracts the account name from a transfer category like
// "[Savings]". The boolean reports whether the category is a transfer.
func (r *Recognizer) TransferAccount(category string) (string, bool) {
	m := r.pattern.FindStringSubmatch(category)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}

// Pair returns index pairs (from, to) of transactions that look like the two
// sides of one transfer: opposite signs, amounts within Tolerance, dates
// within MaxDayGap.
func (r *Recognizer) Pair(txns []model.BankingTransaction) [][2]int {
	var pairs [][2]int
	used := make(map[int]bool)

	for i := range txns {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(txns); j++ {
			if used[j] {
				continue
			}
			if !r.matches(txns[i], txns[j]) {
				continue
			}
			if txns[i].Amount.IsNegative() {
				pairs = append(pairs, [2]int{i, j})
			} else {
				pairs = append(pairs, [2]int{j, i})
			}
			used[i], used[j] = true, true
			break
		}
	}
	return pairs
}

// Link fills in transfer categories for detected pairs, deriving account
// names from "transfer to X" / "transfer from X" payee text when the
// category is not already a transfer. The input slice is returned with
// linked copies in place.
func (r *Recognizer) Link(txns []model.BankingTransaction) []model.BankingTransaction {
	for _, pair := range r.Pair(txns) {
		from, to := pair[0], pair[1]
		if _, ok := r.TransferAccount(txns[from].Category); !ok {
			if name := payeeAccount(txns[from].Payee, "to"); name != "" {
				txns[from].Category = "[" + name + "]"
			}
		}
		if _, ok := r.TransferAccount(txns[to].Category); !ok {
			if name := payeeAccount(txns[to].Payee, "from"); name != "" {
				txns[to].Category = "[" + name + "]"
			}
		}
	}
	return txns
}

func (r *Recognizer) matches(a, b model.BankingTransaction) bool {
	if a.Amount.Sign()*b.Amount.Sign() >= 0 {
		return false
	}
	diff := a.Amount.Abs().Sub(b.Amount.Abs()).Abs()
	if diff.GreaterThan(r.Tolerance) {
		return false
	}
	days := a.Date.Sub(b.Date).Hours() / 24
	if days < 0 {
		days = -days
	}
	return int(days) <= r.MaxDayGap
}

var payeeAccountRe = regexp.MustCompile(`(?i)transfer\s+(to|from)\s+(\w[\w ]*)`)

// payeeAccount pulls an account name out of payee text like
// "Transfer to Savings" for the requested direction.
func payeeAccount(payee, direction string) string {
	m := payeeAccountRe.FindStringSubmatch(payee)
	if m == nil || !strings.EqualFold(m[1], direction) {
		return ""
	}
	return strings.TrimSpace(m[2])
}
