package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/danspam/bundlemap/internal/configloader"
	"github.com/danspam/bundlemap/internal/logging"
	"github.com/danspam/bundlemap/internal/ui/pretty"
	"github.com/danspam/bundlemap/pkg/bundle"
	"github.com/danspam/bundlemap/pkg/config"
	"github.com/danspam/bundlemap/pkg/langdetect"
	"github.com/danspam/bundlemap/pkg/minify"
	"github.com/danspam/bundlemap/pkg/minify/esbuildmin"
	"github.com/danspam/bundlemap/pkg/runner"
)

// ErrBuildFailed is returned when at least one bundle failed to build.
var ErrBuildFailed = errors.New("build failed")

type buildFlags struct {
	format string
}

func newBuildCommand() *cobra.Command {
	var cfg config.Config
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the configured bundles",
		Long:  buildLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, &cfg, flags)
		},
	}

	addBuildFlags(cmd, &cfg, flags)

	return cmd
}

const buildLongDescription = `Build every bundle declared in the configuration.

Each bundle's resources are concatenated in declared order, minified,
and written to the output directory together with a Source Map v3
document. The minified file ends with a sourceMappingURL comment
pointing at the map.

Examples:
  bundlemap build                    # Build using discovered bundlemap.yaml
  bundlemap build --config ci.yaml   # Build from an explicit config file
  bundlemap build --engine esbuild   # Minify through esbuild
  bundlemap build --debug-mode       # Concatenate without minifying or writing
  bundlemap build --format table     # Per-bundle table output`

func runBuild(cmd *cobra.Command, cfg *config.Config, flags *buildFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The explicit config path lives on the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldEngine, finalCfg.Engine,
		logging.FieldDebug, finalCfg.Debug,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldOutput, finalCfg.OutputDir,
	)

	if len(finalCfg.Bundles) == 0 {
		logger.Warn("no bundles configured; run 'bundlemap init' to create a starter config")
		return nil
	}

	requests := runner.RequestsFromConfig(finalCfg, loadResult.BaseDir)
	warnNonScriptResources(logger, requests)

	buildRunner := runner.New(bundle.New(newMinifier(finalCfg.Engine)))

	logger.Debug("starting build",
		logging.FieldResources, len(requests),
		logging.FieldWorkingDir, loadResult.BaseDir,
	)

	result, err := buildRunner.Run(ctx, runner.Options{
		Requests: requests,
		Jobs:     finalCfg.Jobs,
	})
	if err != nil {
		return errors.Join(errors.New("build run failed"), err)
	}

	for _, outcome := range result.Bundles {
		if outcome.Error != nil {
			logger.Error("bundle failed",
				logging.FieldBundle, outcome.Name,
				logging.FieldError, outcome.Error,
			)
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	if err := report(cmd, result, colorMode, flags.format); err != nil {
		return err
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrBuildFailed
	}
	return nil
}

// newMinifier maps the configured engine to an implementation. The config
// layer has already normalized unknown engines to the native default.
func newMinifier(engine config.Engine) minify.Minifier {
	if engine == config.EngineEsbuild {
		return esbuildmin.New()
	}
	return minify.NewSimple()
}

// warnNonScriptResources flags resources whose content does not look like
// a script language. They still build; the warning catches bundles that
// accidentally pull in CSS or templates.
func warnNonScriptResources(logger *log.Logger, requests []bundle.Request) {
	for _, req := range requests {
		for _, res := range req.Resources {
			content, err := os.ReadFile(res.Path)
			if err != nil {
				// The orchestrator reports unreadable resources itself.
				continue
			}
			if !langdetect.IsScript(res.Path, content) {
				logger.Warn("resource does not look like a script",
					logging.FieldBundle, req.Name,
					logging.FieldResource, res.Path,
					"language", langdetect.Detect(res.Path, content),
				)
			}
		}
	}
}

// report renders the run result in the requested format.
func report(cmd *cobra.Command, result *runner.Result, colorMode, format string) error {
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	switch format {
	case "table":
		termWidth := 0
		if f, ok := out.(*os.File); ok {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil {
				termWidth = w
			}
		}
		formatter := pretty.NewTableFormatter(styles, termWidth)
		if _, err := fmt.Fprint(out, formatter.FormatTable(result)); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
		if _, err := fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats)); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	case "summary":
		if _, err := fmt.Fprint(out, styles.FormatSummary(result.Stats)); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	case "text", "":
		if _, err := fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats)); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	default:
		return fmt.Errorf("invalid format %q: must be text, table, or summary", format)
	}
	return nil
}

func addBuildFlags(cmd *cobra.Command, cfg *config.Config, flags *buildFlags) {
	cmd.Flags().StringVarP(&cfg.OutputDir, "output", "o", "", "output directory for built artifacts")
	cmd.Flags().StringVar(&cfg.BaseURL, "base-url", "", "URL prefix for sourceMappingURL references")
	cmd.Flags().StringVar(&cfg.SourceRoot, "source-root", "", "sourceRoot value for emitted maps")
	cmd.Flags().StringVar((*string)(&cfg.Engine), "engine", "", "minifier engine: native, esbuild")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.Debug, "debug-mode", false,
		"concatenate without minifying; nothing is written to disk")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, summary")
}
