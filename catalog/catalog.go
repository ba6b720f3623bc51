// Package catalog implements the merged translation catalog and the
// resolution of extracted key candidates against it.
//
// A catalog is built from one or more JSON documents of nested string
// mappings:
//
//	{
//	    "nav": { "home": "Home", "about": "About" },
//	    "errors": { "timeout": "Request timed out" }
//	}
//
// Documents merge in load order; later documents overwrite overlapping
// top-level keys. A missing key is an expected, modeled outcome — lookups
// report absence, they never fail.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Catalog is the merged translation mapping: dot-delimited paths lead
// through nested mappings to non-empty string values.
type Catalog struct {
	root map[string]any
}

// Load reads one or more JSON documents and merges them into a single
// catalog. Later documents overwrite overlapping top-level keys.
func Load(paths ...string) (*Catalog, error) {
	root := make(map[string]any)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		for k, v := range doc {
			root[k] = v
		}
	}
	return &Catalog{root: root}, nil
}

// FromMap builds a catalog from an already-decoded mapping.
func FromMap(m map[string]any) *Catalog {
	if m == nil {
		m = make(map[string]any)
	}
	return &Catalog{root: m}
}

// Lookup walks the catalog along the dot path and returns the leaf value.
// It reports false on any missing segment, on a non-mapping intermediate,
// and on empty or non-string leaves.
func (c *Catalog) Lookup(path string) (string, bool) {
	cur := any(c.root)
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[seg]
		if !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Leaves returns the number of string leaf values in the catalog.
func (c *Catalog) Leaves() int {
	return countLeaves(c.root)
}

func countLeaves(v any) int {
	switch x := v.(type) {
	case map[string]any:
		n := 0
		for _, child := range x {
			n += countLeaves(child)
		}
		return n
	case string:
		return 1
	}
	return 0
}
