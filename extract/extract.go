// Package extract implements the localization key extraction engine.
//
// Two independent extractors produce key candidates: Markup walks parsed
// template trees recognizing translate directives (a translate attribute or
// the "| translate" pipe form), and Script walks ECMAScript syntax trees
// recognizing calls to a translation function and inferring the literal key
// argument across the syntactic shapes seen in practice.
//
// Neither extractor fails on unrecognized input: when a key cannot be
// inferred syntactically, the extractor emits an unresolved candidate
// carrying diagnostic text instead.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CandidateKind discriminates the candidate variants.
type CandidateKind int

const (
	// KindKey is a single dot-delimited key (e.g. "nav.home").
	KindKey CandidateKind = iota
	// KindKeyList is an ordered key sequence from an array-literal argument.
	KindKeyList
	// KindUnresolved marks a recognized directive whose key could not be
	// inferred; Key holds best-effort diagnostic text.
	KindUnresolved
)

// Candidate is one extracted key candidate, immutable once emitted.
type Candidate struct {
	Kind CandidateKind
	// Key holds the key path (KindKey) or diagnostic text (KindUnresolved).
	Key string
	// List holds the key sequence for KindKeyList.
	List []string
}

// Key returns a plain key candidate.
func Key(k string) Candidate { return Candidate{Kind: KindKey, Key: k} }

// KeyList returns a multi-key candidate.
func KeyList(keys []string) Candidate { return Candidate{Kind: KindKeyList, List: keys} }

// Unresolved returns an unresolved-marker candidate with diagnostic text.
func Unresolved(diag string) Candidate { return Candidate{Kind: KindUnresolved, Key: diag} }

// identity returns a comparable form of c for deduplication.
func (c Candidate) identity() string {
	switch c.Kind {
	case KindKeyList:
		return "list\x00" + strings.Join(c.List, "\x00")
	case KindUnresolved:
		return "unresolved\x00" + c.Key
	default:
		return "key\x00" + c.Key
	}
}

// Dedup removes duplicate candidates, keeping first-seen order.
func Dedup(cands []Candidate) []Candidate {
	seen := make(map[string]bool, len(cands))
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		id := c.identity()
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, c)
	}
	return out
}

// TemplateExtensions are the markup file extensions scanned by default.
var TemplateExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

// ScriptExtensions are the program file extensions scanned by default.
// TypeScript is excluded: the ES parser rejects type annotations.
var ScriptExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
}

// skipDirs contains directory names to skip during source file scanning.
var skipDirs = map[string]bool{
	".git":             true,
	".hg":              true,
	".svn":             true,
	"node_modules":     true,
	"bower_components": true,
	"dist":             true,
	"build":            true,
	"vendor":           true,
	"coverage":         true,
}

// FindTemplates recursively finds markup template files in dirs.
func FindTemplates(dirs []string) ([]string, error) {
	return findByExt(dirs, TemplateExtensions)
}

// FindScripts recursively finds program source files in dirs.
func FindScripts(dirs []string) ([]string, error) {
	return findByExt(dirs, ScriptExtensions)
}

// findByExt walks dirs collecting files whose extension is in exts,
// skipping common non-source directories. Results are sorted and unique.
func findByExt(dirs []string, exts map[string]bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // skip unreadable entries
			}
			if info.IsDir() {
				if skipDirs[info.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if exts[filepath.Ext(path)] && !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// stripSpace removes all whitespace from s; used when rendering diagnostic
// text for unresolved markers.
func stripSpace(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
