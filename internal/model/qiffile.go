package model

// DefaultAccountName buckets transactions parsed outside any !Account
// context.
const DefaultAccountName = "Default"

// Category is a category list entry from a !Type:Cat section.
type Category struct {
	Name        string
	Description string
}

// Class is a class list entry from a !Type:Class section.
type Class struct {
	Name        string
	Description string
}

// QIFFile is a parsed QIF stream: declared accounts plus per-account
// transaction buckets. A bucket key appears in at most one of the two maps
// for a given record-type header, but the same name may recur under different
// headers across a file; each occurrence appends.
type QIFFile struct {
	Accounts   []Account
	Categories []Category
	Classes    []Class
	Banking    map[string][]BankingTransaction
	Investment map[string][]InvestmentTransaction

	// Order lists bucket keys in first-appearance order, so generated output
	// is deterministic.
	Order []string
}

// NewQIFFile returns an empty QIFFile with initialized buckets.
func NewQIFFile() *QIFFile {
	return &QIFFile{
		Banking:    make(map[string][]BankingTransaction),
		Investment: make(map[string][]InvestmentTransaction),
	}
}

// AddAccount appends a declared account.
func (f *QIFFile) AddAccount(a Account) {
	f.Accounts = append(f.Accounts, a)
}

// AddCategory appends a category list entry.
func (f *QIFFile) AddCategory(c Category) {
	f.Categories = append(f.Categories, c)
}

// AddClass appends a class list entry.
func (f *QIFFile) AddClass(c Class) {
	f.Classes = append(f.Classes, c)
}

// AddBanking appends a banking transaction to the named bucket.
func (f *QIFFile) AddBanking(account string, tx BankingTransaction) {
	f.noteBucket(account)
	f.Banking[account] = append(f.Banking[account], tx)
}

// AddInvestment appends an investment transaction to the named bucket.
func (f *QIFFile) AddInvestment(account string, tx InvestmentTransaction) {
	f.noteBucket(account)
	f.Investment[account] = append(f.Investment[account], tx)
}

func (f *QIFFile) noteBucket(account string) {
	if _, ok := f.Banking[account]; ok {
		return
	}
	if _, ok := f.Investment[account]; ok {
		return
	}
	f.Order = append(f.Order, account)
}

// Account returns the declared account with the given name, if any.
func (f *QIFFile) Account(name string) (Account, bool) {
	for _, a := range f.Accounts {
		if a.Name == name {
			return a, true
		}
	}
	return Account{}, false
}

// Empty reports whether the file holds no transactions of either shape.
func (f *QIFFile) Empty() bool {
	return len(f.Banking) == 0 && len(f.Investment) == 0
}
