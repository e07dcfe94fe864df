// Package extractor locates prototype-registration calls such as
// data:extend({...}) in raw Lua source and turns each registered table
// literal into a Record. Extraction is tolerant: malformed entries are
// skipped with a diagnostic and never abort the scan of the rest of the
// file.
package extractor

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/protodex/protodex/internal/models"
	"github.com/protodex/protodex/internal/parser"
)

// DefaultCall is the registration call Factorio prototype files use.
const DefaultCall = "data:extend"

// Extractor scans source text for one registration call pattern.
type Extractor struct {
	callName string
	pattern  *regexp.Regexp
	debug    bool
	diag     io.Writer
}

// New creates an Extractor for the given call name, e.g. "data:extend".
// The pattern matched is the call name followed by optional whitespace, an
// opening parenthesis, optional whitespace, and an opening brace.
func New(callName string) *Extractor {
	if callName == "" {
		callName = DefaultCall
	}
	return &Extractor{
		callName: callName,
		pattern:  regexp.MustCompile(regexp.QuoteMeta(callName) + `\s*\(\s*\{`),
		diag:     io.Discard,
	}
}

// SetDebug enables skipped-record diagnostics on w.
func (e *Extractor) SetDebug(w io.Writer) {
	e.debug = true
	e.diag = w
}

// Extract returns every prototype table registered through the extractor's
// call pattern, in order of appearance across all call sites in text.
// Tables without a "type" key are dropped with a diagnostic; they are not
// errors.
func (e *Extractor) Extract(text string) []models.Record {
	var records []models.Record

	content := StripComments(text)
	for _, match := range e.pattern.FindAllStringIndex(content, -1) {
		open := strings.Index(content[match[0]:], "{")
		if open == -1 {
			continue
		}
		open += match[0]

		inner, ok := balancedBraceSpan(content, open)
		if !ok {
			if e.debug {
				fmt.Fprintf(e.diag, "extractor: unbalanced %s call at offset %d\n", e.callName, match[0])
			}
			continue
		}

		for _, literal := range splitTopTables(inner) {
			table := parser.ParseTableLiteral(literal)
			if !table.Has("type") {
				if e.debug {
					fmt.Fprintf(e.diag, "extractor: skipping entry without type key: %.60s\n", literal)
				}
				continue
			}
			records = append(records, table)
		}
	}
	return records
}

// StripComments removes trailing single-line "--" comments line by line.
// A marker only counts as a comment when the number of single and double
// quote characters before it on the line are both even; markers failing the
// check (likely inside a string) are skipped and the scan moves to the next
// one. The heuristic does not understand multi-line strings or escaped
// quotes; it approximates well enough for prototype files and is
// deliberately not a full lexer.
func StripComments(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for offset := 0; ; {
			rel := strings.Index(line[offset:], "--")
			if rel < 0 {
				break
			}
			pos := offset + rel
			before := line[:pos]
			if strings.Count(before, "'")%2 == 0 && strings.Count(before, `"`)%2 == 0 {
				lines[i] = before
				break
			}
			offset = pos + 1
		}
	}
	return strings.Join(lines, "\n")
}

// balancedBraceSpan scans forward from the opening brace at open, counting
// raw brace depth until it returns to zero, and reports the content between
// the outer braces. String state is intentionally not tracked here, so a
// brace inside a quoted string shifts the depth; the argument re-segmentation
// in splitTopTables is string-aware and recovers the common cases.
func balancedBraceSpan(content string, open int) (string, bool) {
	depth := 1
	for pos := open + 1; pos < len(content); pos++ {
		switch content[pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[open+1 : pos], true
			}
		}
	}
	return "", false
}

// splitTopTables re-segments a call's argument content into its top-level
// {...} spans. Nested braces stay inside the current span, quote state is
// tracked with backslash-escaped quotes honored, and whitespace or commas
// between spans are skipped. Text outside any span is ignored, so a stray
// identifier argument simply yields no table.
func splitTopTables(content string) []string {
	var tables []string
	depth := 0
	start := -1
	inString := false
	var quote byte

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case !inString && (c == '"' || c == '\''):
			inString = true
			quote = c
		case inString && c == quote:
			if i == 0 || content[i-1] != '\\' {
				inString = false
			}
		case !inString:
			switch c {
			case '{':
				if depth == 0 {
					start = i
				}
				depth++
			case '}':
				if depth > 0 {
					depth--
					if depth == 0 && start >= 0 {
						tables = append(tables, content[start:i+1])
						start = -1
					}
				}
			}
		}
	}
	return tables
}
