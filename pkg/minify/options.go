package minify

// RenamingMode controls identifier renaming.
type RenamingMode string

const (
	// RenamingNone keeps all identifiers (default).
	RenamingNone RenamingMode = "none"

	// RenamingAggressive renames every local identifier.
	RenamingAggressive RenamingMode = "aggressive"

	// RenamingKeepLocalization renames locals except identifiers carrying
	// the localization prefix, which tooling rewrites after minification.
	RenamingKeepLocalization RenamingMode = "aggressive-keep-l10n"
)

// IsValid returns true for a recognized renaming mode.
func (m RenamingMode) IsValid() bool {
	switch m {
	case RenamingNone, RenamingAggressive, RenamingKeepLocalization:
		return true
	}
	return false
}

// OutputLayout controls line breaking in minified output.
type OutputLayout string

const (
	// LayoutSingleLine collapses output onto as few lines as possible
	// (default).
	LayoutSingleLine OutputLayout = "single-line"

	// LayoutMultiLine keeps one statement line per input line.
	LayoutMultiLine OutputLayout = "multi-line"
)

// IsValid returns true for a recognized output layout.
func (l OutputLayout) IsValid() bool {
	switch l {
	case LayoutSingleLine, LayoutMultiLine:
		return true
	}
	return false
}

// Options is the minifier configuration surface. Every knob is honored
// by minifiers that can express it; a minifier documents the knobs it
// ignores.
type Options struct {
	// CollapseConstructors rewrites new Object()/new Array() calls to
	// literal form.
	CollapseConstructors bool

	// EvalSafeRenaming permits renaming inside scopes containing eval.
	// Unsafe; off by default.
	EvalSafeRenaming bool

	// LegacyQuirks keeps output compatible with legacy browsers.
	LegacyQuirks bool

	// FunctionScopedCatch scopes catch variables to the enclosing
	// function, matching pre-ES6 engine behavior.
	FunctionScopedCatch bool

	// Renaming selects the identifier renaming mode.
	Renaming RenamingMode

	// Layout selects the output line layout.
	Layout OutputLayout

	// StripDeadCode removes statically unreachable code.
	StripDeadCode bool

	// StripDebug removes debugger statements.
	StripDebug bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		CollapseConstructors: true,
		EvalSafeRenaming:     false,
		LegacyQuirks:         true,
		FunctionScopedCatch:  true,
		Renaming:             RenamingNone,
		Layout:               LayoutSingleLine,
		StripDeadCode:        true,
		StripDebug:           true,
	}
}
