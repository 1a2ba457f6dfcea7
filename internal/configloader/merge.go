package configloader

import "github.com/danspam/bundlemap/pkg/config"

// merge combines two configurations, with override taking precedence over
// base. Scalars overwrite when non-zero; the Debug flag can only be turned
// on by an override, never off; bundle lists replace wholesale.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.SourceRoot != "" {
		result.SourceRoot = override.SourceRoot
	}
	if override.Engine != "" {
		result.Engine = override.Engine
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Debug {
		result.Debug = true
	}

	result.Minify = mergeMinify(base.Minify, override.Minify)

	if override.Bundles != nil {
		result.Bundles = override.Bundles
	}

	return &result
}

// mergeMinify overlays the override's set fields. Pointer fields carry an
// explicit absent state, so a configured false still wins over base.
func mergeMinify(base, override config.MinifyConfig) config.MinifyConfig {
	result := base

	setBool := func(dst **bool, src *bool) {
		if src != nil {
			*dst = src
		}
	}
	setBool(&result.CollapseConstructors, override.CollapseConstructors)
	setBool(&result.EvalSafeRenaming, override.EvalSafeRenaming)
	setBool(&result.LegacyQuirks, override.LegacyQuirks)
	setBool(&result.FunctionScopedCatch, override.FunctionScopedCatch)
	setBool(&result.StripDeadCode, override.StripDeadCode)
	setBool(&result.StripDebug, override.StripDebug)

	if override.Renaming != "" {
		result.Renaming = override.Renaming
	}
	if override.Layout != "" {
		result.Layout = override.Layout
	}

	return result
}
