package template

import (
	"fmt"
	"regexp"

	"github.com/qifconv-dev/qifconv/internal/model"
)

// ValidationError describes a single template problem.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("template %s: %s", e.Field, e.Reason)
}

// Validate checks a template against the schema contract and returns every
// violation found.
func Validate(tpl *model.CSVTemplate) []ValidationError {
	var errs []ValidationError

	if tpl.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Reason: "must not be empty"})
	}

	if !tpl.AccountType.IsBanking() && !tpl.AccountType.IsInvestment() {
		errs = append(errs, ValidationError{
			Field:  "account_type",
			Reason: fmt.Sprintf("unknown account type %q", string(tpl.AccountType)),
		})
	}

	for _, required := range []string{model.FieldDate, model.FieldAmount} {
		if !tpl.FieldMapping.Has(required) {
			errs = append(errs, ValidationError{
				Field:  "field_mapping",
				Reason: fmt.Sprintf("missing required field %q", required),
			})
		}
	}
	for _, field := range tpl.FieldMapping.Fields() {
		if !model.IsCanonicalField(field) {
			errs = append(errs, ValidationError{
				Field:  "field_mapping",
				Reason: fmt.Sprintf("unknown canonical field %q", field),
			})
		}
	}

	if len(tpl.Delimiter) > 1 {
		errs = append(errs, ValidationError{Field: "delimiter", Reason: "must be a single character"})
	}

	if tpl.SkipRows < 0 {
		errs = append(errs, ValidationError{Field: "skip_rows", Reason: "must not be negative"})
	}

	if tpl.TransferPattern != "" {
		if _, err := regexp.Compile(tpl.TransferPattern); err != nil {
			errs = append(errs, ValidationError{
				Field:  "transfer_pattern",
				Reason: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	return errs
}
