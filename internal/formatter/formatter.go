// Package formatter produces cosmetic display names from raw prototype
// names, e.g. "cube-iron-ingot" becomes "Iron Ingot". The cleaned name is a
// derived field attached after parsing; the parsed value tree itself is
// never rewritten.
package formatter

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/protodex/protodex/internal/config"
)

// DefaultStripPrefix is the mod prefix removed from names before formatting.
const DefaultStripPrefix = "cube-"

// defaultAbbreviations maps lowercased words to their canonical uppercase
// form after title casing.
var defaultAbbreviations = map[string]string{
	"fx":  "FX",
	"ai":  "AI",
	"ui":  "UI",
	"api": "API",
	"cpu": "CPU",
	"gpu": "GPU",
	"rt":  "RT",
}

// Formatter cleans prototype names for display.
type Formatter struct {
	stripPrefix   string
	abbreviations map[string]string
}

// NewFormatter creates a Formatter with the default prefix and abbreviation
// table.
func NewFormatter() *Formatter {
	return &Formatter{
		stripPrefix:   DefaultStripPrefix,
		abbreviations: defaultAbbreviations,
	}
}

// NewFormatterWithConfig creates a Formatter using the naming settings from
// cfg, falling back to the defaults for anything unset.
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	f := NewFormatter()
	if cfg == nil {
		return f
	}
	f.stripPrefix = cfg.Naming.StripPrefix
	if len(cfg.Naming.Abbreviations) > 0 {
		merged := make(map[string]string, len(defaultAbbreviations)+len(cfg.Naming.Abbreviations))
		for k, v := range defaultAbbreviations {
			merged[k] = v
		}
		for k, v := range cfg.Naming.Abbreviations {
			merged[strings.ToLower(k)] = v
		}
		f.abbreviations = merged
	}
	return f
}

// CleanName converts a raw prototype name into a display name: the
// configured prefix is removed when it is a true prefix, dash, underscore,
// and camel-case runs are split into words, each word is title cased, and
// known abbreviations are restored to uppercase. CleanName is pure and never
// fails; an empty name stays empty.
func (f *Formatter) CleanName(name string) string {
	if name == "" {
		return name
	}
	if f.stripPrefix != "" {
		name = strings.TrimPrefix(name, f.stripPrefix)
	}

	words := strings.Fields(strcase.ToDelimited(name, ' '))
	for i, word := range words {
		if fixed, ok := f.abbreviations[word]; ok {
			words[i] = fixed
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
