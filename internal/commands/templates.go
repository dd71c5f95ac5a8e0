package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/qifconv-dev/qifconv/internal/config"
	"github.com/qifconv-dev/qifconv/internal/template"
)

func newTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage CSV templates",
	}

	cmd.AddCommand(newTemplatesListCommand())
	cmd.AddCommand(newTemplatesShowCommand())
	cmd.AddCommand(newTemplatesDeleteCommand())

	return cmd
}

func newTemplatesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored and built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}

			stored, err := template.List(cfg.TemplatesDir)
			if err != nil {
				return err
			}
			for _, name := range stored {
				fmt.Println(name)
			}
			for _, name := range template.DefaultNames() {
				fmt.Printf("%s (built-in)\n", name)
			}
			return nil
		},
	}
}

func newTemplatesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a template as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}

			tpl, err := resolveTemplate(cfg.TemplatesDir, args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(tpl)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newTemplatesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			return template.Delete(cfg.TemplatesDir, args[0])
		},
	}
}
