package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sprigconfig/sprigconfig/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "sprigconfig",
		Short: "sprigconfig - deterministic configuration loading and inspection",
		Long: `sprigconfig loads a directory of hierarchical configuration files (base
document, profile overlay, recursive imports) and produces one deterministic
merged configuration with full provenance tracking.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sprigconfig v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Dump command: load, merge, and pretty-print the resolved configuration
	var configDir, profile, format, output, logLevel string
	var revealSecrets bool

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the merged configuration for inspection",
		Long: `Load, merge, and pretty-print the final resolved configuration.

Examples:
  sprigconfig dump --config-dir config --profile dev
  sprigconfig dump --config-dir config --profile prod --secrets
  sprigconfig dump --config-dir config --profile test --format json
  sprigconfig dump --config-dir config --profile dev --output out.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(logger.Config{Level: logLevel, Encoding: "console"}); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return runDump(dumpOptions{
				dir:           configDir,
				profile:       profile,
				format:        format,
				output:        output,
				revealSecrets: revealSecrets,
				stdout:        cmd.OutOrStdout(),
			})
		},
	}

	dumpCmd.Flags().StringVar(&configDir, "config-dir", "",
		"directory containing application.<ext> and optional profile overlays")
	dumpCmd.Flags().StringVar(&profile, "profile", "",
		"active profile to load (dev, test, prod, ...)")
	dumpCmd.Flags().StringVar(&format, "format", "yaml",
		"output format: yaml or json")
	dumpCmd.Flags().StringVar(&output, "output", "",
		"write output to a file instead of stdout")
	dumpCmd.Flags().BoolVar(&revealSecrets, "secrets", false,
		"reveal decrypted secret values (UNSAFE)")
	dumpCmd.Flags().StringVar(&logLevel, "log-level", "warn",
		"log level (debug, info, warn, error)")
	_ = dumpCmd.MarkFlagRequired("config-dir")
	_ = dumpCmd.MarkFlagRequired("profile")

	root.AddCommand(dumpCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
