package pretty_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danspam/bundlemap/internal/ui/pretty"
	"github.com/danspam/bundlemap/pkg/bundle"
	"github.com/danspam/bundlemap/pkg/runner"
)

func TestIsColorEnabled(t *testing.T) {
	// Not parallel: reads NO_COLOR.

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))

	t.Setenv("NO_COLOR", "")
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "non-TTY writer disables color")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
}

func TestHumanBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", pretty.HumanBytes(0))
	assert.Equal(t, "512 B", pretty.HumanBytes(512))
	assert.Equal(t, "1.0 KiB", pretty.HumanBytes(1024))
	assert.Equal(t, "1.5 KiB", pretty.HumanBytes(1536))
	assert.Equal(t, "2.0 MiB", pretty.HumanBytes(2*1024*1024))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	out := styles.FormatSummaryOneLine(runner.Stats{})
	assert.Contains(t, out, "No bundles configured")

	out = styles.FormatSummaryOneLine(runner.Stats{
		BundlesRequested: 2,
		BundlesBuilt:     2,
		InputBytes:       2048,
		OutputBytes:      1024,
	})
	assert.Contains(t, out, "2 bundles built")
	assert.Contains(t, out, "2.0 KiB in")
	assert.Contains(t, out, "1.0 KiB out")
	assert.NotContains(t, out, "failed")

	out = styles.FormatSummaryOneLine(runner.Stats{
		BundlesRequested: 2,
		BundlesBuilt:     1,
		BundlesFailed:    1,
	})
	assert.Contains(t, out, "1 bundle built")
	assert.Contains(t, out, "1 failed")
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	out := styles.FormatSummary(runner.Stats{
		BundlesRequested: 1,
		BundlesBuilt:     1,
		InputBytes:       1000,
		OutputBytes:      400,
	})
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "40.0%")
	assert.Contains(t, out, "Build succeeded")

	out = styles.FormatSummary(runner.Stats{BundlesRequested: 1, BundlesFailed: 1})
	assert.Contains(t, out, "Build failed")
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 100)

	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&runner.Result{}))

	result := &runner.Result{
		Bundles: []runner.Outcome{
			{
				Name: "site",
				Artifact: &bundle.Artifact{
					Name:        "site",
					State:       bundle.StateDone,
					CodePath:    "dist/site.js",
					OutputBytes: 2048,
				},
			},
			{
				Name:     "broken",
				Artifact: &bundle.Artifact{Name: "broken", State: bundle.StateFailed},
				Error:    errors.New("resource unavailable"),
			},
		},
	}

	out := formatter.FormatTable(result)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], "BUNDLE")
	assert.Contains(t, out, "site")
	assert.Contains(t, out, "built")
	assert.Contains(t, out, "dist/site.js")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "resource unavailable")
}

func TestFormatTableClampsWidth(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 60)

	long := strings.Repeat("x", 100)
	result := &runner.Result{
		Bundles: []runner.Outcome{
			{Name: "site", Artifact: &bundle.Artifact{
				State:    bundle.StateDone,
				CodePath: "dist/" + long + ".js",
			}},
		},
	}

	out := formatter.FormatTable(result)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 70, "rows stay near the terminal width")
	}
	assert.Contains(t, out, "...", "long paths are truncated from the front")
}
