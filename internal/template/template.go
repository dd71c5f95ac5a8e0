// Package template persists CSVTemplate definitions as YAML files in a
// templates directory and validates them before use.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/qifconv-dev/qifconv/internal/model"
)

// Load reads and validates a template YAML file.
func Load(path string) (*model.CSVTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	var tpl model.CSVTemplate
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if errs := Validate(&tpl); len(errs) > 0 {
		return nil, fmt.Errorf("invalid template %s: %w", path, errs[0])
	}
	return &tpl, nil
}

// Save writes a template to a YAML file.
func Save(path string, tpl *model.CSVTemplate) error {
	data, err := yaml.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("marshaling template: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return nil
}

// LoadByName loads "<dir>/<name>.yaml".
func LoadByName(dir, name string) (*model.CSVTemplate, error) {
	return Load(filepath.Join(dir, name+".yaml"))
}

// SaveByName saves a template as "<dir>/<name>.yaml", creating dir if needed.
func SaveByName(dir string, tpl *model.CSVTemplate) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating templates dir: %w", err)
	}
	return Save(filepath.Join(dir, tpl.Name+".yaml"), tpl)
}

// List returns the names of the templates stored in dir, sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading templates dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a stored template by name.
func Delete(dir, name string) error {
	path := filepath.Join(dir, name+".yaml")
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting template %q: %w", name, err)
	}
	return nil
}
