// Package parser implements a tolerant parser for Lua table literals as they
// appear in Factorio prototype definitions. It is a best-effort extractor,
// not a Lua validator: expressions, function calls, and computed keys are not
// understood, and anything unparseable degrades to a plain string value
// rather than an error. Scanning is a single forward-only pass with brace and
// bracket depth counters plus a quote-state flag, so runtime is linear in the
// input even for unbalanced or adversarial text.
package parser

import (
	"strconv"
	"strings"

	"github.com/protodex/protodex/internal/models"
)

// ParseScalar classifies a token and converts it to the most specific Value:
// boolean, quoted string (quotes stripped, no escape processing), number
// (a decimal point selects float, otherwise integer), nested table, or, when
// nothing else matches, the raw trimmed text as a string. An empty token is
// nil. ParseScalar never fails.
func ParseScalar(raw string) models.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Nil()
	}

	switch strings.ToLower(s) {
	case "true":
		return models.BoolValue(true)
	case "false":
		return models.BoolValue(false)
	}

	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return models.StringValue(s[1 : len(s)-1])
		}
	}

	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return models.FloatValue(f)
		}
	} else if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.IntValue(n)
	}

	if strings.HasPrefix(s, "{") {
		return models.TableValue(ParseTable(s))
	}

	return models.StringValue(s)
}

// SplitItems splits the content between an outer brace pair into its
// top-level comma-separated items. A comma only splits when brace depth and
// bracket depth are both zero and the scanner is not inside a quoted string.
// Quote state has no escape handling here: the same quote character that
// opened a string closes it. Items are trimmed; an empty trailing item from a
// trailing comma is dropped. Unterminated strings or unbalanced braces do not
// error, the scanner just accumulates to end of text.
func SplitItems(content string) []string {
	var items []string
	var current strings.Builder
	braces, brackets := 0, 0
	inString := false
	var quote byte

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case !inString && (c == '"' || c == '\''):
			inString = true
			quote = c
		case inString && c == quote:
			inString = false
		case !inString:
			switch c {
			case '{':
				braces++
			case '}':
				braces--
			case '[':
				brackets++
			case ']':
				brackets--
			case ',':
				if braces == 0 && brackets == 0 {
					items = append(items, strings.TrimSpace(current.String()))
					current.Reset()
					continue
				}
			}
		}
		current.WriteByte(c)
	}

	if last := strings.TrimSpace(current.String()); last != "" {
		items = append(items, last)
	}
	return items
}

// FindAssignment returns the index of the first '=' in item that sits at
// zero brace and bracket depth outside any quoted string, or -1 when there
// is none. Unlike SplitItems, a backslash immediately before a closing quote
// keeps the string open. The asymmetry matches the splitter's lack of escape
// handling and is kept as is: changing either side alters which malformed
// inputs parse versus degrade.
func FindAssignment(item string) int {
	braces, brackets := 0, 0
	inString := false
	var quote byte

	for i := 0; i < len(item); i++ {
		c := item[i]
		switch {
		case !inString && (c == '"' || c == '\''):
			inString = true
			quote = c
		case inString && c == quote:
			if i == 0 || item[i-1] != '\\' {
				inString = false
			}
		case !inString:
			switch c {
			case '{':
				braces++
			case '}':
				braces--
			case '[':
				brackets++
			case ']':
				brackets--
			case '=':
				if braces == 0 && brackets == 0 {
					return i
				}
			}
		}
	}
	return -1
}

// ParseTable parses a brace-delimited table literal (or its bare inner
// content) into a Table. Items with a top-level '=' that do not themselves
// start with '{' become keyed entries, everything else lands in the array
// bucket. Duplicate keys are last write wins. ParseTable never returns an
// error; worst case a malformed item becomes a string in the array bucket
// and callers must tolerate partially parsed tables.
func ParseTable(literal string) *models.Table {
	content := strings.TrimSpace(literal)
	stripped := false
	if strings.HasPrefix(content, "{") && strings.HasSuffix(content, "}") {
		content = content[1 : len(content)-1]
		stripped = true
	}

	table := models.NewTable()
	for _, item := range SplitItems(content) {
		if item == "" {
			continue
		}
		if !strings.HasPrefix(item, "{") {
			// An '=' at index 0 cannot carry a key, treat it as an
			// array item like everything else.
			if pos := FindAssignment(item); pos > 0 {
				key := cleanKey(item[:pos])
				table.Set(key, ParseScalar(item[pos+1:]))
				continue
			}
		} else if !stripped && item == content {
			// Unbalanced braces made no progress; recursing on the same
			// text would never terminate. Degrade to a string.
			table.Append(models.StringValue(item))
			continue
		}
		table.Append(ParseScalar(item))
	}
	return table
}

// ParseTableLiteral parses a complete brace-delimited table literal as cut
// out of source text. It is the entry point for callers outside the parsing
// recursion; semantics are those of ParseTable.
func ParseTableLiteral(text string) *models.Table {
	return ParseTable(text)
}

// cleanKey normalizes the key part of an assignment: surrounding [...] from
// bracketed keys is removed first, then surrounding quotes of either kind.
func cleanKey(raw string) string {
	key := strings.TrimSpace(raw)
	if len(key) >= 2 && key[0] == '[' && key[len(key)-1] == ']' {
		key = key[1 : len(key)-1]
	}
	if len(key) >= 2 {
		if (key[0] == '"' && key[len(key)-1] == '"') || (key[0] == '\'' && key[len(key)-1] == '\'') {
			key = key[1 : len(key)-1]
		}
	}
	return key
}
