// Package convert composes a parser and a generator per direction. It
// performs no format logic of its own: templates are validated, the format
// engine does the work, and the result is returned as one in-memory string.
package convert

import (
	"fmt"

	"github.com/qifconv-dev/qifconv/internal/csvconv"
	"github.com/qifconv-dev/qifconv/internal/model"
	"github.com/qifconv-dev/qifconv/internal/qif"
	"github.com/qifconv-dev/qifconv/internal/template"
	"github.com/qifconv-dev/qifconv/internal/transfer"
)

// CSVToQIF converts CSV text to QIF text using the template. accountName
// names the QIF account the transactions land under; empty means the
// template name.
func CSVToQIF(csvText string, tpl *model.CSVTemplate, accountName string) (string, error) {
	if errs := template.Validate(tpl); len(errs) > 0 {
		return "", fmt.Errorf("invalid template: %w", errs[0])
	}

	list, err := csvconv.Parse(csvText, tpl)
	if err != nil {
		return "", err
	}

	if tpl.DetectTransfers && len(list.Banking) > 0 {
		rec, err := transfer.New(tpl.TransferPattern)
		if err != nil {
			return "", err
		}
		list.Banking = rec.Link(list.Banking)
	}

	if accountName == "" {
		accountName = tpl.Name
	}

	file := model.NewQIFFile()
	file.AddAccount(model.Account{
		Name:        accountName,
		Type:        tpl.AccountType,
		Description: tpl.Description,
	})
	if tpl.AccountType.IsInvestment() {
		for _, tx := range list.Investment {
			file.AddInvestment(accountName, tx)
		}
	} else {
		for _, tx := range list.Banking {
			file.AddBanking(accountName, tx)
		}
	}

	return qif.GenerateFile(file)
}

// QIFToCSV converts QIF text to CSV text using the template. accountName
// selects which account's bucket to render; empty means the first bucket of
// the template's shape.
func QIFToCSV(qifText string, tpl *model.CSVTemplate, accountName string) (string, error) {
	if errs := template.Validate(tpl); len(errs) > 0 {
		return "", fmt.Errorf("invalid template: %w", errs[0])
	}

	file, err := qif.Parse(qifText)
	if err != nil {
		return "", err
	}

	list, err := extract(file, tpl.AccountType, accountName)
	if err != nil {
		return "", err
	}

	return csvconv.Generate(list, tpl)
}

// extract pulls one account's transactions of the requested shape out of a
// parsed file.
func extract(file *model.QIFFile, at model.AccountType, accountName string) (model.TransactionList, error) {
	if at.IsInvestment() {
		if accountName != "" {
			txns, ok := file.Investment[accountName]
			if !ok {
				return model.TransactionList{}, fmt.Errorf("no investment transactions for account %q", accountName)
			}
			return model.TransactionList{Investment: txns}, nil
		}
		for _, name := range file.Order {
			if txns, ok := file.Investment[name]; ok {
				return model.TransactionList{Investment: txns}, nil
			}
		}
		return model.TransactionList{}, fmt.Errorf("no investment transactions in input")
	}

	if accountName != "" {
		txns, ok := file.Banking[accountName]
		if !ok {
			return model.TransactionList{}, fmt.Errorf("no banking transactions for account %q", accountName)
		}
		return model.TransactionList{Banking: txns}, nil
	}
	for _, name := range file.Order {
		if txns, ok := file.Banking[name]; ok {
			return model.TransactionList{Banking: txns}, nil
		}
	}
	return model.TransactionList{}, fmt.Errorf("no banking transactions in input")
}
