// Package config — .keylint.yaml configuration file support and project
// defaults.
//
// When a .keylint.yaml file exists in the project root, keylint uses it as
// the source of truth for scan targets. Without one, Detect falls back to
// scanning the whole tree and probing the conventional catalog locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .keylint.yaml structure.
type File struct {
	// TemplateDirs are the directories scanned for markup templates.
	TemplateDirs []string `yaml:"template_dirs,omitempty"`
	// ScriptDirs are the directories scanned for program sources.
	ScriptDirs []string `yaml:"script_dirs,omitempty"`
	// Catalog lists the JSON catalog files or globs, merged in order
	// (later files overwrite overlapping top-level keys).
	Catalog []string `yaml:"catalog,omitempty"`
	// OutputDir receives resolved.json and unresolved.json.
	OutputDir string `yaml:"output_dir,omitempty"`
	// Function is the translation function name matched in scripts.
	Function string `yaml:"function,omitempty"`
	// Marker is the filter-pipe marker matched in templates.
	Marker string `yaml:"marker,omitempty"`
}

// FileName is the default config file name.
const FileName = ".keylint.yaml"

// Project is the fully resolved scan configuration.
type Project struct {
	// Root is the project root directory.
	Root string
	// TemplateDirs and ScriptDirs are resolved relative to Root.
	TemplateDirs []string
	ScriptDirs   []string
	// CatalogFiles are the expanded catalog paths in merge order.
	CatalogFiles []string
	// OutputDir receives the result documents.
	OutputDir string
	// Function is the translation function name ("" = default).
	Function string
	// Marker is the pipe marker ("" = default).
	Marker string
	// FromFile reports whether a .keylint.yaml was found.
	FromFile bool
}

// catalogProbes are the conventional catalog locations tried, in order,
// when no config file names one.
var catalogProbes = []string{
	"src/assets/i18n/*.json",
	"assets/i18n/*.json",
	"src/i18n/*.json",
	"i18n/*.json",
	"locales/*.json",
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadFile loads .keylint.yaml from the given directory.
// Returns nil if no config file exists.
func LoadFile(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// Detect resolves the scan configuration for a project root, from
// .keylint.yaml when present, from defaults otherwise.
func Detect(rootDir string) (*Project, error) {
	proj := &Project{
		Root:         rootDir,
		TemplateDirs: []string{rootDir},
		ScriptDirs:   []string{rootDir},
		OutputDir:    rootDir,
	}

	f, err := LoadFile(rootDir)
	if err != nil {
		return nil, err
	}

	if f != nil {
		proj.FromFile = true
		if len(f.TemplateDirs) > 0 {
			proj.TemplateDirs = joinAll(rootDir, f.TemplateDirs)
		}
		if len(f.ScriptDirs) > 0 {
			proj.ScriptDirs = joinAll(rootDir, f.ScriptDirs)
		}
		if f.OutputDir != "" {
			proj.OutputDir = filepath.Join(rootDir, f.OutputDir)
		}
		proj.Function = f.Function
		proj.Marker = f.Marker

		for _, pattern := range f.Catalog {
			matches, err := expandGlob(rootDir, pattern)
			if err != nil {
				return nil, err
			}
			proj.CatalogFiles = append(proj.CatalogFiles, matches...)
		}
		return proj, nil
	}

	// No config file — probe conventional catalog locations, first
	// non-empty match wins.
	for _, pattern := range catalogProbes {
		matches, err := expandGlob(rootDir, pattern)
		if err != nil {
			continue
		}
		if len(matches) > 0 {
			proj.CatalogFiles = matches
			break
		}
	}

	return proj, nil
}

// expandGlob expands a pattern relative to root. A pattern without glob
// metacharacters is kept as a plain path even when the file is missing, so
// the loader reports it instead of silently dropping it.
func expandGlob(root, pattern string) ([]string, error) {
	full := pattern
	if !filepath.IsAbs(pattern) {
		full = filepath.Join(root, pattern)
	}

	if !hasGlobMeta(pattern) {
		return []string{full}, nil
	}

	matches, err := filepath.Glob(full)
	if err != nil {
		return nil, fmt.Errorf("bad catalog pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func hasGlobMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[':
			return true
		}
	}
	return false
}

func joinAll(root string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(root, p)
		}
	}
	return out
}
