// Package cli provides the Cobra command structure for bundlemap.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/danspam/bundlemap/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root bundlemap command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "bundlemap",
		Short: "A JavaScript bundler that emits Source Map v3 documents",
		Long: `bundlemap concatenates JavaScript resources into named bundles,
minifies them, and emits Source Map v3 documents so browser developer
tools can map minified positions back to the original files.

Bundles are declared in a bundlemap.yaml file. Artifacts are written
atomically, so a crashed build never leaves a torn bundle or a map that
disagrees with its code.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
