package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qifconv-dev/qifconv/internal/config"
	"github.com/qifconv-dev/qifconv/internal/convert"
	"github.com/qifconv-dev/qifconv/internal/model"
	"github.com/qifconv-dev/qifconv/internal/template"
)

func newConvertCommand() *cobra.Command {
	var templateName string
	var accountName string

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert between CSV and QIF (direction from file extensions)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			if templateName == "" {
				templateName = cfg.DefaultTemplate
			}
			if templateName == "" {
				return fmt.Errorf("no template given (use --template or set default_template)")
			}

			tpl, err := resolveTemplate(cfg.TemplatesDir, templateName)
			if err != nil {
				return err
			}
			if cfg.DateFormat != "" {
				tpl.DateFormat = cfg.DateFormat
			}

			return runConvert(args[0], args[1], tpl, accountName)
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "template name or path to a template YAML file")
	cmd.Flags().StringVarP(&accountName, "account", "a", "", "account name (defaults to the template name)")

	return cmd
}

// resolveTemplate treats names containing a path separator or .yaml suffix as
// file paths; otherwise it looks in the templates dir, then the built-ins.
func resolveTemplate(dir, name string) (*model.CSVTemplate, error) {
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, ".yaml") {
		return template.Load(name)
	}
	if tpl, err := template.LoadByName(dir, name); err == nil {
		return tpl, nil
	}
	if tpl := template.Default(name); tpl != nil {
		return tpl, nil
	}
	return nil, fmt.Errorf("template %q not found in %s or built-ins", name, dir)
}

func runConvert(inPath, outPath string, tpl *model.CSVTemplate, accountName string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var out string
	switch direction(inPath, outPath) {
	case "csv2qif":
		out, err = convert.CSVToQIF(string(data), tpl, accountName)
	case "qif2csv":
		out, err = convert.QIFToCSV(string(data), tpl, accountName)
	default:
		return fmt.Errorf("cannot infer direction from %q and %q (expected .csv/.qif pair)", inPath, outPath)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Printf("Converted %s -> %s\n", inPath, outPath)
	return nil
}

func direction(inPath, outPath string) string {
	in := strings.ToLower(filepath.Ext(inPath))
	out := strings.ToLower(filepath.Ext(outPath))
	switch {
	case in == ".csv" && out == ".qif":
		return "csv2qif"
	case in == ".qif" && out == ".csv":
		return "qif2csv"
	}
	return ""
}
