package minify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danspam/bundlemap/pkg/minify"
)

type correlation struct {
	original  int
	generated int
	name      string
}

type recordingSink struct {
	events []correlation
}

func (s *recordingSink) Correlate(original, generated int) {
	s.events = append(s.events, correlation{original: original, generated: generated})
}

func (s *recordingSink) CorrelateName(original, generated int, name string) {
	s.events = append(s.events, correlation{original: original, generated: generated, name: name})
}

func minifyString(t *testing.T, src string, opts minify.Options) string {
	t.Helper()

	out, err := minify.NewSimple().Minify(context.Background(), []byte(src), opts)
	require.NoError(t, err)
	return string(out)
}

func TestSimpleMinify(t *testing.T) {
	t.Parallel()

	opts := minify.DefaultOptions()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "collapses whitespace",
			src:  "var a  =  1 ;\n\tvar b = 2 ;",
			want: "var a=1;var b=2;",
		},
		{
			name: "strips line comments",
			src:  "var a = 1; // trailing\nvar b = 2;",
			want: "var a=1;var b=2;",
		},
		{
			name: "strips block comments",
			src:  "var a = /* inline */ 1;",
			want: "var a=1;",
		},
		{
			name: "keeps keyword spacing",
			src:  "function f() { return 1; }",
			want: "function f(){return 1;}",
		},
		{
			name: "keeps string contents",
			src:  `var s = "a  b // not a comment";`,
			want: `var s="a  b // not a comment";`,
		},
		{
			name: "keeps template literals",
			src:  "var t = `x ${ a + 1 } y`;",
			want: "var t=`x ${ a + 1 } y`;",
		},
		{
			name: "regex is not division",
			src:  "var re = /a\\/b [/]/g ; var q = a / b;",
			want: "var re=/a\\/b [/]/g;var q=a/b;",
		},
		{
			name: "plus plus keeps space",
			src:  "a = b + +c;",
			want: "a=b+ +c;",
		},
		{
			name: "division by regex-looking operand keeps space",
			src:  "a = b / /x/.source.length;",
			want: "a=b/ /x/.source.length;",
		},
		{
			name: "newline kept where semicolon insertion could bite",
			src:  "a = b\n(c).d()",
			want: "a=b\n(c).d()",
		},
		{
			name: "newline dropped after semicolon",
			src:  "a();\nb();",
			want: "a();b();",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, minifyString(t, tt.src, opts))
		})
	}
}

func TestSimpleStripDebug(t *testing.T) {
	t.Parallel()

	opts := minify.DefaultOptions()
	assert.Equal(t, "a();b();", minifyString(t, "a();\ndebugger;\nb();", opts))

	opts.StripDebug = false
	assert.Equal(t, "a();debugger;b();", minifyString(t, "a();\ndebugger;\nb();", opts))
}

func TestSimpleMultiLineLayout(t *testing.T) {
	t.Parallel()

	opts := minify.DefaultOptions()
	opts.Layout = minify.LayoutMultiLine

	got := minifyString(t, "var a = 1;\n\nvar b = 2;\n", opts)
	assert.Equal(t, "var a=1;\nvar b=2;", got)
}

func TestSimpleUnterminatedInput(t *testing.T) {
	t.Parallel()

	opts := minify.DefaultOptions()
	ctx := context.Background()

	for _, src := range []string{`var s = "abc`, "/* never closed", "var t = `abc", "var r = /ab"} {
		_, err := minify.NewSimple().Minify(ctx, []byte(src), opts)
		assert.Error(t, err, "src %q", src)
	}
}

func TestSimpleCorrelations(t *testing.T) {
	t.Parallel()

	src := "function  f() {\n  return  total + 1;\n}"
	sink := &recordingSink{}

	out, err := minify.NewSimple().MinifyWithSink(context.Background(), []byte(src), minify.DefaultOptions(), sink)
	require.NoError(t, err)
	assert.Equal(t, "function f(){return total+1;}", string(out))

	require.NotEmpty(t, sink.events)

	// Generated offsets arrive in non-decreasing order and every original
	// offset is a real position in the source.
	prev := -1
	for _, ev := range sink.events {
		assert.GreaterOrEqual(t, ev.generated, prev)
		assert.GreaterOrEqual(t, ev.original, 0)
		assert.Less(t, ev.original, len(src))
		prev = ev.generated
	}

	// Identifiers carry their names; keywords do not.
	var names []string
	for _, ev := range sink.events {
		if ev.name != "" {
			names = append(names, ev.name)
		}
	}
	assert.Equal(t, []string{"f", "total"}, names)
}

func TestOptionEnums(t *testing.T) {
	t.Parallel()

	assert.True(t, minify.RenamingNone.IsValid())
	assert.True(t, minify.RenamingAggressive.IsValid())
	assert.True(t, minify.RenamingKeepLocalization.IsValid())
	assert.False(t, minify.RenamingMode("agressive").IsValid())

	assert.True(t, minify.LayoutSingleLine.IsValid())
	assert.True(t, minify.LayoutMultiLine.IsValid())
	assert.False(t, minify.OutputLayout("compact").IsValid())

	defaults := minify.DefaultOptions()
	assert.Equal(t, minify.RenamingNone, defaults.Renaming)
	assert.Equal(t, minify.LayoutSingleLine, defaults.Layout)
	assert.True(t, defaults.CollapseConstructors)
	assert.False(t, defaults.EvalSafeRenaming)
	assert.True(t, defaults.LegacyQuirks)
	assert.True(t, defaults.FunctionScopedCatch)
	assert.True(t, defaults.StripDeadCode)
	assert.True(t, defaults.StripDebug)
}
