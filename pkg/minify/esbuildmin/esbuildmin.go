// Package esbuildmin adapts esbuild's transform API to the minify
// capability. esbuild performs full AST-level minification but exposes
// no per-token position callbacks, so this minifier does not satisfy
// minify.Correlating; callers fall back to per-segment mapping.
//
// Legal comments (/*! ... */) are kept inline, which preserves the
// concatenator's source-directive markers through minification.
package esbuildmin

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/danspam/bundlemap/pkg/minify"
)

// Minifier minifies through esbuild.
type Minifier struct{}

// New returns an esbuild-backed minifier.
func New() *Minifier { return &Minifier{} }

// Minify implements minify.Minifier.
//
// Option mapping: Layout drives whitespace minification, Renaming drives
// identifier minification (keep-l10n is treated as aggressive; esbuild
// has no prefix-based exemption), StripDeadCode and CollapseConstructors
// drive syntax minification, StripDebug drops debugger statements, and
// LegacyQuirks pins the output target to ES5. EvalSafeRenaming and
// FunctionScopedCatch have no esbuild equivalent; esbuild is already
// conservative around eval.
func (m *Minifier) Minify(ctx context.Context, src []byte, opts minify.Options) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("minify: %w", ctx.Err())
	default:
	}

	target := api.ESNext
	if opts.LegacyQuirks {
		target = api.ES5
	}

	topts := api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            target,
		MinifyWhitespace:  opts.Layout == minify.LayoutSingleLine,
		MinifyIdentifiers: opts.Renaming != minify.RenamingNone,
		MinifySyntax:      opts.StripDeadCode || opts.CollapseConstructors,
		LegalComments:     api.LegalCommentsInline,
	}
	if opts.StripDebug {
		topts.Drop = api.DropDebugger
	}

	result := api.Transform(string(src), topts)
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Text)
		}
		return nil, fmt.Errorf("minify: esbuild: %s", strings.Join(msgs, "; "))
	}

	return result.Code, nil
}
