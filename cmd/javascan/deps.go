package main

import (
	"os"

	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/service"
	"github.com/spf13/cobra"
)

func depsCmd() *cobra.Command {
	var (
		depsFormat string
		depsJSON   bool
		depsConfig string
	)

	cmd := &cobra.Command{
		Use:   "deps [path]",
		Short: "Parse build manifests and classify dependencies",
		Long: `Locate Maven and Gradle manifests under a repository, extract declared
dependencies, and classify them against the vulnerability and staleness
rule tables.

Examples:
  javascan deps .
  javascan deps --json path/to/repo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			if err := validateRoot(root); err != nil {
				return err
			}

			cfg, err := loadConfiguration(depsConfig)
			if err != nil {
				return err
			}

			loader := service.NewConfigurationLoader()
			table, err := loader.LoadRules(cfg)
			if err != nil {
				return err
			}

			report, err := service.NewManifestService(cfg, table).Parse(cmd.Context(), root)
			if err != nil {
				return err
			}

			format := domain.OutputFormatText
			if depsJSON || depsFormat == "json" {
				format = domain.OutputFormatJSON
			} else if depsFormat == "yaml" {
				format = domain.OutputFormatYAML
			}

			return service.NewOutputFormatter().WriteDependencies(report, format, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&depsFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&depsJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&depsConfig, "config", "c", "",
		"Path to config file")

	return cmd
}

func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return domain.NewInvalidInputError("repository path does not exist: "+root, err)
	}
	if !info.IsDir() {
		return domain.NewInvalidInputError("repository path is not a directory: "+root, nil)
	}
	return nil
}
