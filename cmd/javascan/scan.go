package main

import (
	"os"

	"github.com/javascan-dev/javascan/app"
	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/service"
	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	var (
		scanFormat  string
		scanJSON    bool
		scanConfig  string
		scanFileCap int
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan Java sources for anti-patterns",
		Long: `Run the line-level anti-pattern detectors over all Java source files
under a repository, without the other analysis passes.

Examples:
  javascan scan .
  javascan scan --json --file-cap 100 path/to/repo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			if err := validateRoot(root); err != nil {
				return err
			}

			cfg, err := loadConfiguration(scanConfig)
			if err != nil {
				return err
			}

			loader := service.NewConfigurationLoader()
			table, err := loader.LoadRules(cfg)
			if err != nil {
				return err
			}

			files, err := app.NewFileHelper().CollectJavaFiles(root, cfg.Analysis.ExcludeDirs, cfg.Analysis.RespectGitignore)
			if err != nil {
				return err
			}

			resp, err := service.NewScanService(cfg, table).Scan(cmd.Context(), domain.ScanRequest{
				Root:    root,
				Files:   files,
				FileCap: scanFileCap,
			})
			if err != nil {
				return err
			}

			format := domain.OutputFormatText
			if scanJSON || scanFormat == "json" {
				format = domain.OutputFormatJSON
			} else if scanFormat == "yaml" {
				format = domain.OutputFormatYAML
			}

			return service.NewOutputFormatter().WriteScan(resp, format, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&scanFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&scanJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&scanConfig, "config", "c", "",
		"Path to config file")
	cmd.Flags().IntVar(&scanFileCap, "file-cap", 0,
		"Maximum source files to scan (0 uses the configured limit)")

	return cmd
}
