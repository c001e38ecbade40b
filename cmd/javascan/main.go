package main

import (
	"fmt"
	"os"

	"github.com/javascan-dev/javascan/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "javascan",
		Short: "javascan - Java repository health analyzer",
		Long: `javascan is a static analyzer for Java repositories.
It parses Maven and Gradle manifests, flags vulnerable and outdated
dependencies, scans source files for common anti-patterns, estimates test
coverage, finds refactoring opportunities, and rolls everything into a
0-100 health score.`,
		Version: Version,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(depsCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("javascan version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
