// Package configloader provides configuration loading and resolution.
// It discovers the project's bundlemap config by upward search, merges it
// with environment and CLI overrides, and validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danspam/bundlemap/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreEnv skips environment variable overrides.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// LoadedFrom is the config file that was loaded, empty if none.
	LoadedFrom string

	// BaseDir is the directory resource paths resolve against. It is the
	// loaded file's directory, or the working directory when running on
	// defaults alone.
	BaseDir string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (BUNDLEMAP_*)
//  3. Config file (opts.ExplicitPath, or upward search for bundlemap.yaml)
//  4. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}
	result.BaseDir = workDir

	cfg := config.Default()

	path := opts.ExplicitPath
	if path == "" {
		var err error
		path, err = FindProjectConfig(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover config: %w", err)
		}
	}

	if path != "" {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = path

		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		result.BaseDir = filepath.Dir(absPath)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	result.Warnings = append(result.Warnings, cfg.Normalize()...)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. Unknown keys are
// rejected so typos surface instead of silently building the wrong thing.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return config.FromYAML(content)
}
