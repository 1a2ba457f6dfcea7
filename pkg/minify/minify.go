// Package minify defines the minification capability consumed by the
// bundle orchestrator, plus a native token-level minifier that strips
// comments and whitespace while reporting position correlations.
//
// The capability is deliberately a black box: any implementation that
// maps source text to minified text fits behind Minifier. Implementations
// able to report per-token positions additionally satisfy Correlating;
// the orchestrator degrades to per-segment mapping for the rest.
package minify

import "context"

// Sink receives position correlations while minifying. Offsets are byte
// offsets: original into the input buffer, generated into the output
// buffer. Calls arrive in non-decreasing generated-offset order.
type Sink interface {
	// Correlate reports that the output at generatedOffset came from the
	// input at originalOffset.
	Correlate(originalOffset, generatedOffset int)

	// CorrelateName is Correlate for a preserved identifier, carrying
	// its original name.
	CorrelateName(originalOffset, generatedOffset int, name string)
}

// Minifier maps source text to minified text.
type Minifier interface {
	Minify(ctx context.Context, src []byte, opts Options) ([]byte, error)
}

// Correlating is a Minifier that reports per-token position
// correlations while minifying.
type Correlating interface {
	Minifier
	MinifyWithSink(ctx context.Context, src []byte, opts Options, sink Sink) ([]byte, error)
}
