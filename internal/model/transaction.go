package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ClearedStatus is the reconciliation state of a transaction. The constant
// values are the QIF wire characters.
type ClearedStatus string

const (
	StatusUncleared  ClearedStatus = ""
	StatusCleared    ClearedStatus = "*"
	StatusReconciled ClearedStatus = "X"
)

// ParseClearedStatus converts a QIF cleared-status character to its canonical
// status. Legacy variants ("c" for cleared, "R"/"x" for reconciled) are
// accepted on input; only "*" and "X" are emitted on output.
func ParseClearedStatus(s string) (ClearedStatus, error) {
	switch s {
	case "":
		return StatusUncleared, nil
	case "*", "c":
		return StatusCleared, nil
	case "X", "x", "R":
		return StatusReconciled, nil
	}
	return StatusUncleared, fmt.Errorf("unknown cleared status %q", s)
}

// InvestmentAction is a QIF investment action code (the N field of an
// investment transaction).
type InvestmentAction string

const (
	ActionBuy            InvestmentAction = "Buy"
	ActionBuyX           InvestmentAction = "BuyX"
	ActionSell           InvestmentAction = "Sell"
	ActionSellX          InvestmentAction = "SellX"
	ActionDividend       InvestmentAction = "Div"
	ActionDividendX      InvestmentAction = "DivX"
	ActionInterestIncome InvestmentAction = "IntInc"
	ActionReinvestDiv    InvestmentAction = "ReinvDiv"
	ActionCapGainLong    InvestmentAction = "CGLong"
	ActionCapGainShort   InvestmentAction = "CGShort"
	ActionAddShares      InvestmentAction = "ShrsIn"
	ActionRemoveShares   InvestmentAction = "ShrsOut"
	ActionStockSplit     InvestmentAction = "StkSplit"
	ActionTransferIn     InvestmentAction = "XIn"
	ActionTransferOut    InvestmentAction = "XOut"
)

var investmentActions = []InvestmentAction{
	ActionBuy, ActionBuyX, ActionSell, ActionSellX,
	ActionDividend, ActionDividendX, ActionInterestIncome, ActionReinvestDiv,
	ActionCapGainLong, ActionCapGainShort,
	ActionAddShares, ActionRemoveShares, ActionStockSplit,
	ActionTransferIn, ActionTransferOut,
}

// ParseInvestmentAction converts a QIF action code to an InvestmentAction.
// The match is case-sensitive: QIF files carry the exact canonical codes.
func ParseInvestmentAction(s string) (InvestmentAction, error) {
	for _, a := range investmentActions {
		if s == string(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown investment action %q", s)
}

// ParseInvestmentActionFold is the case-insensitive variant used for CSV
// input, where action columns are frequently upper- or lower-cased.
func ParseInvestmentActionFold(s string) (InvestmentAction, error) {
	for _, a := range investmentActions {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown investment action %q", s)
}

// SplitTransaction is one sub-allocation line of a banking transaction.
// Splits are informational; their sum is not checked against the parent
// amount.
type SplitTransaction struct {
	Category string
	Memo     string
	Amount   decimal.Decimal
}

// BankingTransaction is a bank, cash, credit card, asset or liability
// transaction. Time-of-day on Date is ignored for output.
type BankingTransaction struct {
	Date     time.Time
	Amount   decimal.Decimal
	Payee    string
	Memo     string
	Category string // colon-delimited hierarchy, or "[Account]" for transfers
	Number   string // check/reference number
	Status   ClearedStatus
	Address  []string
	Splits   []SplitTransaction
}

// InvestmentTransaction is a security trade, income event or share movement.
// Quantity and Price use NullDecimal: a dividend has no quantity, which is
// observably different from a zero-quantity trade in generated output.
type InvestmentTransaction struct {
	Date       time.Time
	Action     InvestmentAction
	Security   string
	Quantity   decimal.NullDecimal
	Price      decimal.NullDecimal
	Amount     decimal.Decimal
	Commission decimal.Decimal
	Memo       string
	Category   string
	Account    string // transfer account, rendered as the L field when set
	Status     ClearedStatus
}

// TransactionList is the tagged union of the two transaction shapes. Exactly
// one side is populated; the account type in play selects which.
type TransactionList struct {
	Banking    []BankingTransaction
	Investment []InvestmentTransaction
}

// Len returns the number of transactions on whichever side is populated.
func (l TransactionList) Len() int {
	if len(l.Investment) > 0 {
		return len(l.Investment)
	}
	return len(l.Banking)
}

// Empty reports whether the list holds no transactions of either shape.
func (l TransactionList) Empty() bool {
	return len(l.Banking) == 0 && len(l.Investment) == 0
}
