// Package config defines core configuration types for bundlemap.
// These types are pure data structures; loading, discovery, and merging
// live in internal/configloader.
package config

import (
	"fmt"

	"github.com/danspam/bundlemap/pkg/minify"
)

// Engine selects the minifier implementation.
type Engine string

const (
	// EngineNative is the built-in token-level minifier (default).
	EngineNative Engine = "native"

	// EngineEsbuild minifies through esbuild. Produces smaller output
	// but only segment-granularity source maps.
	EngineEsbuild Engine = "esbuild"
)

// IsValid returns true for a recognized engine.
func (e Engine) IsValid() bool {
	return e == EngineNative || e == EngineEsbuild
}

// ResourceConfig names one input file of a bundle.
type ResourceConfig struct {
	// Path locates the file, relative to the config file's directory.
	Path string `yaml:"path"`

	// Name overrides the identifier recorded in the source map.
	// Defaults to the path's base name.
	Name string `yaml:"name,omitempty"`

	// Dynamic marks request-time generated content. Bundles containing
	// dynamic resources fail to build; the flag exists so hosts can
	// declare them and get a clear error instead of a stale map.
	Dynamic bool `yaml:"dynamic,omitempty"`
}

// BundleConfig describes one bundle.
type BundleConfig struct {
	// Name is the bundle's logical name.
	Name string `yaml:"name"`

	// Resources are the inputs in concatenation order.
	Resources []ResourceConfig `yaml:"resources"`
}

// MinifyConfig mirrors minify.Options with optional fields, so absent
// keys fall back to the documented defaults.
type MinifyConfig struct {
	CollapseConstructors *bool  `yaml:"collapse_constructors,omitempty"`
	EvalSafeRenaming     *bool  `yaml:"eval_safe_renaming,omitempty"`
	LegacyQuirks         *bool  `yaml:"legacy_quirks,omitempty"`
	FunctionScopedCatch  *bool  `yaml:"function_scoped_catch,omitempty"`
	Renaming             string `yaml:"renaming,omitempty"`
	Layout               string `yaml:"layout,omitempty"`
	StripDeadCode        *bool  `yaml:"strip_dead_code,omitempty"`
	StripDebug           *bool  `yaml:"strip_debug,omitempty"`
}

// Options resolves the configured values over the defaults. Unrecognized
// enum values produce a warning and fall back to the default rather than
// failing the build.
func (c MinifyConfig) Options() (minify.Options, []string) {
	opts := minify.DefaultOptions()
	var warnings []string

	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&opts.CollapseConstructors, c.CollapseConstructors)
	setBool(&opts.EvalSafeRenaming, c.EvalSafeRenaming)
	setBool(&opts.LegacyQuirks, c.LegacyQuirks)
	setBool(&opts.FunctionScopedCatch, c.FunctionScopedCatch)
	setBool(&opts.StripDeadCode, c.StripDeadCode)
	setBool(&opts.StripDebug, c.StripDebug)

	if c.Renaming != "" {
		if mode := minify.RenamingMode(c.Renaming); mode.IsValid() {
			opts.Renaming = mode
		} else {
			warnings = append(warnings, fmt.Sprintf(
				"unrecognized renaming mode %q, using %q", c.Renaming, opts.Renaming))
		}
	}
	if c.Layout != "" {
		if layout := minify.OutputLayout(c.Layout); layout.IsValid() {
			opts.Layout = layout
		} else {
			warnings = append(warnings, fmt.Sprintf(
				"unrecognized output layout %q, using %q", c.Layout, opts.Layout))
		}
	}

	return opts, warnings
}

// Config is the full bundlemap configuration.
type Config struct {
	// OutputDir receives the built artifacts.
	OutputDir string `yaml:"output_dir"`

	// BaseURL is the URL prefix under which OutputDir is served; it
	// forms the sourceMappingURL references.
	BaseURL string `yaml:"base_url"`

	// SourceRoot optionally prefixes every source in emitted maps.
	SourceRoot string `yaml:"source_root,omitempty"`

	// Debug builds passthrough bundles without maps.
	Debug bool `yaml:"debug,omitempty"`

	// Engine selects the minifier implementation.
	Engine Engine `yaml:"engine,omitempty"`

	// Jobs caps concurrent bundle builds; 0 means NumCPU.
	Jobs int `yaml:"jobs,omitempty"`

	// Minify configures the minifier for all bundles.
	Minify MinifyConfig `yaml:"minify,omitempty"`

	// Bundles lists the bundles to build.
	Bundles []BundleConfig `yaml:"bundles"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		OutputDir: "dist",
		Engine:    EngineNative,
	}
}

// Normalize applies fallbacks for unrecognized enum values, returning a
// warning per fallback.
func (c *Config) Normalize() []string {
	var warnings []string

	if c.Engine == "" {
		c.Engine = EngineNative
	} else if !c.Engine.IsValid() {
		warnings = append(warnings, fmt.Sprintf(
			"unrecognized engine %q, using %q", c.Engine, EngineNative))
		c.Engine = EngineNative
	}

	_, minifyWarnings := c.Minify.Options()
	return append(warnings, minifyWarnings...)
}

// Validate reports configuration errors that cannot be defaulted away.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Bundles))
	for _, b := range c.Bundles {
		if b.Name == "" {
			return fmt.Errorf("bundle with empty name")
		}
		if seen[b.Name] {
			return fmt.Errorf("duplicate bundle name %q", b.Name)
		}
		seen[b.Name] = true

		if len(b.Resources) == 0 {
			return fmt.Errorf("bundle %q has no resources", b.Name)
		}
		for _, r := range b.Resources {
			if r.Path == "" {
				return fmt.Errorf("bundle %q has a resource with no path", b.Name)
			}
		}
	}
	return nil
}
