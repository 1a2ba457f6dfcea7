package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danspam/bundlemap/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordBundle          = "bundle"
	wordBundles         = "bundles"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 bundles built (182.4 KB in, 61.0 KB out), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.BundlesRequested == 0 {
		return s.Dim.Render("No bundles configured") + "\n"
	}

	bundleWord := wordBundles
	if stats.BundlesBuilt == 1 {
		bundleWord = wordBundle
	}

	var parts []string
	built := fmt.Sprintf("%d %s built", stats.BundlesBuilt, bundleWord)
	if stats.BundlesFailed == 0 {
		built = s.Success.Render(built)
	}
	parts = append(parts, built)

	if stats.OutputBytes > 0 {
		parts = append(parts, s.Size.Render(fmt.Sprintf("(%s in, %s out)",
			HumanBytes(stats.InputBytes), HumanBytes(stats.OutputBytes))))
	}

	if stats.BundlesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.BundlesFailed)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Bundles requested: " +
		s.SummaryValue.Render(strconv.Itoa(stats.BundlesRequested)) + "\n")
	builder.WriteString("  Bundles built:     " +
		s.Success.Render(strconv.Itoa(stats.BundlesBuilt)) + "\n")

	if stats.BundlesFailed > 0 {
		builder.WriteString("  Bundles failed:    " +
			s.Failure.Render(strconv.Itoa(stats.BundlesFailed)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Input size:        " +
		s.SummaryValue.Render(HumanBytes(stats.InputBytes)) + "\n")
	builder.WriteString("  Output size:       " +
		s.SummaryValue.Render(HumanBytes(stats.OutputBytes)) + "\n")

	if stats.InputBytes > 0 && stats.OutputBytes > 0 {
		ratio := float64(stats.OutputBytes) / float64(stats.InputBytes) * 100
		builder.WriteString("  Output ratio:      " +
			s.Size.Render(fmt.Sprintf("%.1f%%", ratio)) + "\n")
	}

	builder.WriteString("\n")

	if stats.BundlesFailed > 0 {
		builder.WriteString(s.Failure.Render("Build failed"))
	} else {
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// HumanBytes formats a byte count for display. Counts under a kilobyte
// print as-is; larger counts use binary units with one decimal.
func HumanBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := int64(n) / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
