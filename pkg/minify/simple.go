package minify

import (
	"context"
	"fmt"
)

// Simple is a token-level JavaScript minifier. It strips comments and
// collapses whitespace while leaving token text untouched, reporting a
// correlation for every value token it preserves. Of the Options knobs
// it honors Layout and StripDebug; the AST-level knobs (renaming, dead
// code, constructor collapsing) are out of reach at the token level and
// are ignored.
type Simple struct{}

// NewSimple returns the native minifier.
func NewSimple() *Simple { return &Simple{} }

// Minify implements Minifier.
func (s *Simple) Minify(ctx context.Context, src []byte, opts Options) ([]byte, error) {
	return s.MinifyWithSink(ctx, src, opts, nil)
}

// MinifyWithSink implements Correlating. The sink may be nil.
func (s *Simple) MinifyWithSink(ctx context.Context, src []byte, opts Options, sink Sink) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("minify: %w", ctx.Err())
	default:
	}

	w := &tokenWriter{
		src:          src,
		opts:         opts,
		sink:         sink,
		regexAllowed: true,
	}
	if err := w.run(); err != nil {
		return nil, err
	}
	return w.out, nil
}

// regexKeywords are identifiers after which a '/' starts a regular
// expression literal rather than division.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true,
	"of": true, "new": true, "delete": true, "void": true, "throw": true,
	"case": true, "do": true, "else": true, "yield": true, "await": true,
}

// jsKeywords are reserved words and well-known literals that must not be
// reported as identifier names.
var jsKeywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true,
	"if": true, "in": true, "instanceof": true, "let": true, "new": true,
	"null": true, "of": true, "return": true, "super": true,
	"switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "undefined": true, "var": true,
	"void": true, "while": true, "with": true, "yield": true,
	"await": true, "async": true, "static": true, "get": true, "set": true,
}

type tokenWriter struct {
	src  []byte
	opts Options
	sink Sink
	out  []byte

	pendingSpace   bool
	pendingNewline bool
	regexAllowed   bool
	dropSemicolon  bool
}

func (w *tokenWriter) run() error {
	i := 0
	for i < len(w.src) {
		c := w.src[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			w.pendingSpace = true
			i++

		case c == '\n':
			w.pendingNewline = true
			i++

		case c == '/' && i+1 < len(w.src) && w.src[i+1] == '/':
			for i < len(w.src) && w.src[i] != '\n' {
				i++
			}
			w.pendingSpace = true

		case c == '/' && i+1 < len(w.src) && w.src[i+1] == '*':
			end, sawNewline, err := scanBlockComment(w.src, i)
			if err != nil {
				return err
			}
			// A block comment spanning lines is a line terminator for
			// automatic semicolon insertion.
			if sawNewline {
				w.pendingNewline = true
			} else {
				w.pendingSpace = true
			}
			i = end

		case c == '/' && w.regexAllowed:
			end, err := scanRegex(w.src, i)
			if err != nil {
				return err
			}
			w.emit(i, end, tokenValue, "")
			i = end

		case c == '"' || c == '\'':
			end, err := scanString(w.src, i)
			if err != nil {
				return err
			}
			w.emit(i, end, tokenValue, "")
			i = end

		case c == '`':
			end, err := scanTemplate(w.src, i)
			if err != nil {
				return err
			}
			w.emit(i, end, tokenValue, "")
			i = end

		case isIdentStart(c):
			end := i + 1
			for end < len(w.src) && isIdentChar(w.src[end]) {
				end++
			}
			w.emitIdent(i, end)
			i = end

		case c >= '0' && c <= '9' || (c == '.' && i+1 < len(w.src) && w.src[i+1] >= '0' && w.src[i+1] <= '9'):
			end := scanNumber(w.src, i)
			w.emit(i, end, tokenValue, "")
			i = end

		default:
			w.emit(i, i+1, tokenPunct, "")
			i++
		}
	}
	return nil
}

type tokenKind int

const (
	tokenValue tokenKind = iota // string, number, regex, template
	tokenIdent
	tokenPunct
)

func (w *tokenWriter) emitIdent(start, end int) {
	name := string(w.src[start:end])

	if name == "debugger" && w.opts.StripDebug {
		// Swallow the statement with its terminating semicolon.
		w.dropSemicolon = true
		w.regexAllowed = true
		return
	}

	w.emit(start, end, tokenIdent, name)
	w.regexAllowed = regexKeywords[name]
}

func (w *tokenWriter) emit(start, end int, kind tokenKind, name string) {
	first := w.src[start]

	if w.dropSemicolon {
		w.dropSemicolon = false
		if kind == tokenPunct && first == ';' {
			return
		}
	}

	w.writeSeparator(first)

	pos := len(w.out)
	w.out = append(w.out, w.src[start:end]...)

	if w.sink != nil && kind != tokenPunct {
		if name != "" && !jsKeywords[name] {
			w.sink.CorrelateName(start, pos, name)
		} else {
			w.sink.Correlate(start, pos)
		}
	}

	switch kind {
	case tokenValue:
		w.regexAllowed = false
	case tokenPunct:
		w.regexAllowed = first != ')' && first != ']'
	case tokenIdent:
		// emitIdent already decided.
	}
}

// writeSeparator flushes pending whitespace before a token whose first
// byte is next, emitting the minimum separator that keeps the token
// stream unambiguous.
func (w *tokenWriter) writeSeparator(next byte) {
	defer func() {
		w.pendingSpace = false
		w.pendingNewline = false
	}()

	if len(w.out) == 0 {
		return
	}
	last := w.out[len(w.out)-1]

	if w.pendingNewline {
		if w.opts.Layout == LayoutMultiLine {
			w.out = append(w.out, '\n')
			return
		}
		// Single-line layout drops the newline unless removing it could
		// let automatic semicolon insertion change meaning.
		if asiBefore(last) && asiAfter(next) {
			w.out = append(w.out, '\n')
			return
		}
	}

	if w.pendingSpace || w.pendingNewline {
		if needsSpace(last, next) {
			w.out = append(w.out, ' ')
		}
	}
}

// asiBefore reports whether a statement could end at a byte.
func asiBefore(b byte) bool {
	return isIdentChar(b) || b == ')' || b == ']' || b == '}' ||
		b == '"' || b == '\'' || b == '`'
}

// asiAfter reports whether a statement could begin at a byte.
func asiAfter(b byte) bool {
	return isIdentChar(b) || b == '(' || b == '[' || b == '{' ||
		b == '+' || b == '-' || b == '/' || b == '`' || b == '\'' ||
		b == '"' || b == '!' || b == '~'
}

// needsSpace reports whether dropping the whitespace between two bytes
// would merge tokens.
func needsSpace(last, next byte) bool {
	if isIdentChar(last) && isIdentChar(next) {
		return true
	}
	// "+ +x" must not become "++x"; same for minus. "a / /re/" must not
	// become a comment.
	return (last == '+' && next == '+') ||
		(last == '-' && next == '-') ||
		(last == '/' && next == '/')
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func scanBlockComment(src []byte, start int) (end int, sawNewline bool, err error) {
	i := start + 2
	for i+1 < len(src) {
		if src[i] == '\n' {
			sawNewline = true
		}
		if src[i] == '*' && src[i+1] == '/' {
			return i + 2, sawNewline, nil
		}
		i++
	}
	return 0, false, fmt.Errorf("minify: unterminated comment at offset %d", start)
}

func scanString(src []byte, start int) (int, error) {
	quote := src[start]
	i := start + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1, nil
		case '\n':
			return 0, fmt.Errorf("minify: unterminated string at offset %d", start)
		default:
			i++
		}
	}
	return 0, fmt.Errorf("minify: unterminated string at offset %d", start)
}

// scanTemplate scans a template literal including ${} interpolations.
// Strings nested inside interpolations are skipped so their braces and
// backticks do not confuse the depth tracking.
func scanTemplate(src []byte, start int) (int, error) {
	i := start + 1
	depth := 0
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case '$':
			if i+1 < len(src) && src[i+1] == '{' {
				depth++
				i += 2
			} else {
				i++
			}
		case '}':
			if depth > 0 {
				depth--
			}
			i++
		case '"', '\'':
			if depth > 0 {
				end, err := scanString(src, i)
				if err != nil {
					return 0, err
				}
				i = end
			} else {
				i++
			}
		case '`':
			if depth == 0 {
				return i + 1, nil
			}
			end, err := scanTemplate(src, i)
			if err != nil {
				return 0, err
			}
			i = end
		default:
			i++
		}
	}
	return 0, fmt.Errorf("minify: unterminated template literal at offset %d", start)
}

func scanRegex(src []byte, start int) (int, error) {
	i := start + 1
	inClass := false
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case '[':
			inClass = true
			i++
		case ']':
			inClass = false
			i++
		case '/':
			if !inClass {
				i++
				for i < len(src) && isIdentChar(src[i]) {
					i++
				}
				return i, nil
			}
			i++
		case '\n':
			return 0, fmt.Errorf("minify: unterminated regexp at offset %d", start)
		default:
			i++
		}
	}
	return 0, fmt.Errorf("minify: unterminated regexp at offset %d", start)
}

func scanNumber(src []byte, start int) int {
	i := start
	for i < len(src) {
		b := src[i]
		if isIdentChar(b) || b == '.' {
			i++
			continue
		}
		// Exponent sign.
		if (b == '+' || b == '-') && i > start && (src[i-1] == 'e' || src[i-1] == 'E') {
			i++
			continue
		}
		break
	}
	return i
}
