package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qifconv-dev/qifconv/internal/config"
	"github.com/qifconv-dev/qifconv/internal/template"
)

func newInitCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config and built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "base directory (default ~/.qifconv)")

	return cmd
}

func runInit(dir string) error {
	cfg := config.Default()
	configPath := config.DefaultPath()
	if dir != "" {
		cfg.TemplatesDir = filepath.Join(dir, "templates")
		configPath = filepath.Join(dir, "qifconv.yaml")
	}

	if err := os.MkdirAll(cfg.TemplatesDir, 0o755); err != nil {
		return fmt.Errorf("creating templates dir: %w", err)
	}
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	for _, tpl := range template.Defaults() {
		if err := template.SaveByName(cfg.TemplatesDir, tpl); err != nil {
			return err
		}
	}

	fmt.Printf("Initialized qifconv at %s\n", filepath.Dir(configPath))
	return nil
}
