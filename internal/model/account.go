package model

// AccountType classifies a QIF account. The constant values are the exact
// strings used in !Type: headers and !Account blocks.
type AccountType string

const (
	AccountTypeBank       AccountType = "Bank"
	AccountTypeCash       AccountType = "Cash"
	AccountTypeCreditCard AccountType = "CCard"
	AccountTypeInvestment AccountType = "Invst"
	AccountTypeAsset      AccountType = "Oth A"
	AccountTypeLiability  AccountType = "Oth L"
)

// UnsupportedAccountTypeError reports an account type outside the closed set,
// or one a generator cannot handle.
type UnsupportedAccountTypeError struct {
	Type string
}

func (e *UnsupportedAccountTypeError) Error() string {
	return "unsupported account type \"" + e.Type + "\""
}

// ParseAccountType converts a QIF type code to an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountTypeBank, AccountTypeCash, AccountTypeCreditCard,
		AccountTypeInvestment, AccountTypeAsset, AccountTypeLiability:
		return AccountType(s), nil
	}
	return "", &UnsupportedAccountTypeError{Type: s}
}

// IsInvestment reports whether transactions under this type take the
// investment shape.
func (t AccountType) IsInvestment() bool {
	return t == AccountTypeInvestment
}

// IsBanking reports whether transactions under this type take the banking
// shape. Oth A and Oth L are banking-shaped.
func (t AccountType) IsBanking() bool {
	switch t {
	case AccountTypeBank, AccountTypeCash, AccountTypeCreditCard,
		AccountTypeAsset, AccountTypeLiability:
		return true
	}
	return false
}

// Account is a named account declared in a QIF !Account block.
type Account struct {
	Name        string
	Type        AccountType
	Description string
}
