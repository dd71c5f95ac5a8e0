package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Canonical field names a CSV template may map onto.
const (
	FieldDate       = "date"
	FieldAmount     = "amount"
	FieldPayee      = "payee"
	FieldMemo       = "memo"
	FieldCategory   = "category"
	FieldNumber     = "number"
	FieldAction     = "action"
	FieldSecurity   = "security"
	FieldQuantity   = "quantity"
	FieldPrice      = "price"
	FieldCommission = "commission"
)

// CanonicalFields lists the recognized canonical field names.
var CanonicalFields = []string{
	FieldDate, FieldAmount, FieldPayee, FieldMemo, FieldCategory,
	FieldNumber, FieldAction, FieldSecurity, FieldQuantity, FieldPrice,
	FieldCommission,
}

// IsCanonicalField reports whether name is a recognized canonical field.
func IsCanonicalField(name string) bool {
	for _, f := range CanonicalFields {
		if f == name {
			return true
		}
	}
	return false
}

// FieldMapping is an ordered, key-unique association from canonical field
// name to CSV column name. Iteration order is the order fields were added
// (for YAML templates, document order), which fixes generated column order.
type FieldMapping struct {
	fields  []string
	columns map[string]string
}

// NewFieldMapping builds a mapping from alternating field, column pairs.
func NewFieldMapping(pairs ...string) FieldMapping {
	var m FieldMapping
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set associates a canonical field with a CSV column, replacing any previous
// association for the same field without changing its position.
func (m *FieldMapping) Set(field, column string) {
	if m.columns == nil {
		m.columns = make(map[string]string)
	}
	if _, ok := m.columns[field]; !ok {
		m.fields = append(m.fields, field)
	}
	m.columns[field] = column
}

// Column returns the CSV column mapped to a canonical field.
func (m FieldMapping) Column(field string) (string, bool) {
	col, ok := m.columns[field]
	return col, ok
}

// Has reports whether the canonical field is mapped.
func (m FieldMapping) Has(field string) bool {
	_, ok := m.columns[field]
	return ok
}

// Fields returns the canonical field names in mapping order.
func (m FieldMapping) Fields() []string {
	return m.fields
}

// Columns returns the CSV column names in mapping order.
func (m FieldMapping) Columns() []string {
	cols := make([]string, len(m.fields))
	for i, f := range m.fields {
		cols[i] = m.columns[f]
	}
	return cols
}

// Len returns the number of mapped fields.
func (m FieldMapping) Len() int {
	return len(m.fields)
}

// UnmarshalYAML decodes a YAML mapping preserving document order.
func (m *FieldMapping) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("field_mapping must be a mapping, got %s", value.Tag)
	}
	*m = FieldMapping{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var field, column string
		if err := value.Content[i].Decode(&field); err != nil {
			return fmt.Errorf("field_mapping key: %w", err)
		}
		if err := value.Content[i+1].Decode(&column); err != nil {
			return fmt.Errorf("field_mapping value for %q: %w", field, err)
		}
		if m.Has(field) {
			return fmt.Errorf("field_mapping: duplicate field %q", field)
		}
		m.Set(field, column)
	}
	return nil
}

// MarshalYAML encodes the mapping in field order.
func (m FieldMapping) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range m.fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f},
			&yaml.Node{Kind: yaml.ScalarNode, Value: m.columns[f]},
		)
	}
	return node, nil
}

// CSVTemplate declares how CSV columns correspond to canonical transaction
// fields, plus formatting options. Templates are treated as read-only values
// by the format engine.
type CSVTemplate struct {
	Name             string             `yaml:"name"`
	Description      string             `yaml:"description,omitempty"`
	AccountType      AccountType        `yaml:"account_type"`
	FieldMapping     FieldMapping       `yaml:"field_mapping"`
	Delimiter        string             `yaml:"delimiter"`
	HasHeader        bool               `yaml:"has_header"`
	DateFormat       string             `yaml:"date_format"`
	SkipRows         int                `yaml:"skip_rows"`
	AmountColumns    []string           `yaml:"amount_columns"`
	AmountMultiplier map[string]float64 `yaml:"amount_multiplier,omitempty"`
	CategoryFormat   string             `yaml:"category_format"`
	DetectTransfers  bool               `yaml:"detect_transfers"`
	TransferPattern  string             `yaml:"transfer_pattern"`
}

// Template option defaults.
const (
	DefaultDelimiter       = ","
	DefaultDateFormat      = "%m/%d/%Y"
	DefaultCategoryFormat  = ":"
	DefaultTransferPattern = `^\[(.+)\]$`
)

// NewCSVTemplate returns a template with option defaults applied.
func NewCSVTemplate(name string, accountType AccountType) *CSVTemplate {
	return &CSVTemplate{
		Name:            name,
		AccountType:     accountType,
		Delimiter:       DefaultDelimiter,
		HasHeader:       true,
		DateFormat:      DefaultDateFormat,
		AmountColumns:   []string{"Amount"},
		CategoryFormat:  DefaultCategoryFormat,
		TransferPattern: DefaultTransferPattern,
	}
}

// UnmarshalYAML decodes a template, filling omitted options with defaults so
// that absent has_header reads as true.
func (t *CSVTemplate) UnmarshalYAML(value *yaml.Node) error {
	type raw CSVTemplate
	r := raw(*NewCSVTemplate("", ""))
	if err := value.Decode(&r); err != nil {
		return err
	}
	*t = CSVTemplate(r)
	return nil
}
