// Package catalog aggregates extracted prototype records: it groups them by
// their "type" value, attaches cosmetic display names, backfills items that
// recipes reference from the base game, and serializes the result as JSON.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/protodex/protodex/internal/errors"
	"github.com/protodex/protodex/internal/extractor"
	"github.com/protodex/protodex/internal/formatter"
	"github.com/protodex/protodex/internal/models"
	"github.com/protodex/protodex/internal/walker"
)

// unknownType groups records whose "type" key holds a non-string value.
const unknownType = "unknown"

// Catalog holds extracted records grouped by prototype type. Group order is
// the order in which each type first appeared; record order within a group
// is preserved.
type Catalog struct {
	types     []string
	groups    map[string][]models.Record
	itemNames map[string]struct{}
	names     *formatter.Formatter
}

// Organize groups records by type and attaches a "cleaned_name" field to
// every record that carries a name. The formatter may be nil, in which case
// defaults are used.
func Organize(records []models.Record, names *formatter.Formatter) *Catalog {
	if names == nil {
		names = formatter.NewFormatter()
	}
	c := &Catalog{
		groups:    make(map[string][]models.Record),
		itemNames: make(map[string]struct{}),
		names:     names,
	}
	for _, rec := range records {
		c.add(rec)
	}
	return c
}

func (c *Catalog) add(rec models.Record) {
	typ := rec.GetString("type")
	if typ == "" {
		typ = unknownType
	}

	if name := rec.GetString("name"); name != "" {
		rec.Set("cleaned_name", models.StringValue(c.names.CleanName(name)))
		if typ == "item" {
			c.itemNames[name] = struct{}{}
		}
	}

	if _, seen := c.groups[typ]; !seen {
		c.types = append(c.types, typ)
	}
	c.groups[typ] = append(c.groups[typ], rec)
}

// Types returns the group names in first-appearance order.
func (c *Catalog) Types() []string {
	return c.types
}

// Group returns the records of one type.
func (c *Catalog) Group(typ string) []models.Record {
	return c.groups[typ]
}

// Total returns the number of records across all groups.
func (c *Catalog) Total() int {
	total := 0
	for _, recs := range c.groups {
		total += len(recs)
	}
	return total
}

// Summary returns "type: count" lines sorted by type name.
func (c *Catalog) Summary() []string {
	types := make([]string, len(c.types))
	copy(types, c.types)
	sort.Strings(types)

	lines := make([]string, 0, len(types))
	for _, typ := range types {
		lines = append(lines, fmt.Sprintf("%s: %d", typ, len(c.groups[typ])))
	}
	return lines
}

// BackfillItems scans every recipe's ingredients and results for item names
// that the catalog does not define itself but the base-game index does, and
// appends a copy of each such base item tagged with a "_source" marker.
// It returns the number of items added.
func (c *Catalog) BackfillItems(base map[string]models.Record) int {
	var missing []string
	seen := make(map[string]struct{})

	for _, recipe := range c.groups["recipe"] {
		for _, key := range []string{"ingredients", "results"} {
			val, ok := recipe.Get(key)
			if !ok || val.Kind != models.KindTable {
				continue
			}
			for _, entry := range val.Table.Items() {
				if entry.Kind != models.KindTable {
					continue
				}
				name := entry.Table.GetString("name")
				if name == "" {
					continue
				}
				if _, have := c.itemNames[name]; have {
					continue
				}
				if _, have := seen[name]; have {
					continue
				}
				if _, have := base[name]; !have {
					continue
				}
				seen[name] = struct{}{}
				missing = append(missing, name)
			}
		}
	}

	for _, name := range missing {
		item := base[name].Copy()
		item.Set("cleaned_name", models.StringValue(c.names.CleanName(name)))
		item.Set("_source", models.StringValue("base_game"))
		c.itemNames[name] = struct{}{}
		if _, ok := c.groups["item"]; !ok {
			c.types = append(c.types, "item")
		}
		c.groups["item"] = append(c.groups["item"], item)
	}
	return len(missing)
}

// MarshalJSON renders the catalog as one JSON object per prototype type,
// groups in first-appearance order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, typ := range c.types {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(typ)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		recs, err := json.Marshal(c.groups[typ])
		if err != nil {
			return nil, err
		}
		buf.Write(recs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteJSON serializes the catalog to w, indented when pretty is set.
func (c *Catalog) WriteJSON(w io.Writer, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = json.Marshal(c)
	}
	if err != nil {
		return errors.NewOutputError("failed to serialize catalog", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.NewOutputError("failed to write catalog", err)
	}
	return nil
}

// LoadBaseIndex extracts named prototypes from the base game's files and
// indexes them by name for backfilling. It is tolerant the way the rest of
// the pipeline is: a missing directory or unreadable file yields a smaller
// index, not an error.
func LoadBaseIndex(dir, ext string, ex *extractor.Extractor) map[string]models.Record {
	index := make(map[string]models.Record)

	files, err := walker.FindFiles(dir, ext)
	if err != nil {
		return index
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading base prototypes from %s: %v\n", path, err)
			continue
		}
		for _, rec := range ex.Extract(string(data)) {
			if name := rec.GetString("name"); name != "" {
				index[name] = rec
			}
		}
	}
	return index
}
