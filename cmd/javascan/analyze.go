package main

import (
	"fmt"
	"io"
	"os"

	"github.com/javascan-dev/javascan/app"
	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/internal/config"
	"github.com/javascan-dev/javascan/internal/rules"
	"github.com/javascan-dev/javascan/service"
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	jsonOutput   bool
	yamlOutput   bool
	outputPath   string
	configPath   string
	fileCap      int
	showDetails  bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Run the full repository analysis",
		Long: `Run all analysis passes over a Java repository and print the aggregated
report with its health score.

Examples:
  javascan analyze .
  javascan analyze --json path/to/repo
  javascan analyze --format yaml --output report.yaml path/to/repo`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false,
		"Output results as YAML (shorthand for --format yaml)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().IntVar(&fileCap, "file-cap", 0,
		"Maximum source files to scan (0 uses the configured limit)")
	cmd.Flags().BoolVar(&showDetails, "details", false,
		"List individual findings in text output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := loadConfiguration(configPath)
	if err != nil {
		return err
	}

	format := resolveFormat(cfg)

	writer, closeWriter, err := resolveWriter(outputPath)
	if err != nil {
		return err
	}
	defer closeWriter()

	loader := service.NewConfigurationLoader()
	table, err := loader.LoadRules(cfg)
	if err != nil {
		return err
	}

	pm := service.NewProgressManager(format == domain.OutputFormatText && outputPath == "")
	defer pm.Close()

	useCase := buildAnalyzeUseCase(cfg, table, root, pm)

	req := domain.AnalyzeRequest{
		Root:         root,
		FileCap:      fileCap,
		OutputFormat: format,
		OutputWriter: writer,
		ConfigPath:   configPath,
	}

	report, err := useCase.Execute(cmd.Context(), req)
	if err != nil {
		return err
	}

	return useCase.Write(report, req)
}

func buildAnalyzeUseCase(cfg *config.Config, table *rules.Table, root string, pm domain.ProgressManager) *app.AnalyzeUseCase {
	formatter := service.NewOutputFormatter()
	formatter.ShowDetails = showDetails || cfg.Output.ShowDetails

	return app.NewAnalyzeUseCase(
		service.NewManifestService(cfg, table),
		service.NewScanService(cfg, table),
		service.NewCoverageService(cfg),
		service.NewRefactorService(cfg, root),
		service.NewParallelExecutorWithProgress(&cfg.Performance, pm),
		formatter,
		cfg,
	)
}

func loadConfiguration(path string) (*config.Config, error) {
	loader := service.NewConfigurationLoader()
	if path != "" {
		return loader.LoadConfig(path)
	}
	return loader.LoadDefaultConfig(), nil
}

func resolveFormat(cfg *config.Config) domain.OutputFormat {
	switch {
	case jsonOutput || outputFormat == "json":
		return domain.OutputFormatJSON
	case yamlOutput || outputFormat == "yaml":
		return domain.OutputFormatYAML
	case outputFormat == "text":
		return domain.OutputFormatText
	case outputFormat == "":
		if f := domain.OutputFormat(cfg.Output.Format); f == domain.OutputFormatJSON || f == domain.OutputFormatYAML {
			return f
		}
		return domain.OutputFormatText
	default:
		return domain.OutputFormat(outputFormat)
	}
}

func resolveWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
