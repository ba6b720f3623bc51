// keylint — localization key checker for web codebases.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/keylint/keylint/catalog"
	"github.com/keylint/keylint/config"
	"github.com/keylint/keylint/extract"
	"github.com/keylint/keylint/i18n"
	"github.com/keylint/keylint/markup"
	"github.com/spf13/cobra"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "keylint",
		Short: "Check localization keys used in templates and scripts against a catalog",
		Long: `keylint — localization key checker.

Scans HTML templates for translate directives ('key' | translate pipes and
translate attributes) and scripts for translation-function calls
(instant('key')), then cross-checks every extracted key against the merged
JSON translation catalog.

Commands:
  status   Show project info and key coverage
  keys     Print the extracted key list
  scan     Extract keys and write resolved/unresolved JSON reports`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newStatusCmd(),
		newKeysCmd(),
		newScanCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("keylint version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// Shared flags and pipeline
// ---------------------------------------------------------------------------

type scanFlags struct {
	templates string
	scripts   string
	catalogs  string
	function  string
	marker    string
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.templates, "templates", "", "Template directories (comma-separated)")
	cmd.Flags().StringVar(&f.scripts, "scripts", "", "Script directories (comma-separated)")
	cmd.Flags().StringVar(&f.catalogs, "catalog", "", "Catalog JSON files or globs (comma-separated, merge order)")
	cmd.Flags().StringVar(&f.function, "function", "", "Translation function name (default: instant)")
	cmd.Flags().StringVar(&f.marker, "marker", "", "Template pipe marker (default: \"| translate\")")
}

// project resolves the configuration and applies flag overrides.
func (f *scanFlags) project() (*config.Project, error) {
	proj, err := config.Detect(rootDir)
	if err != nil {
		return nil, err
	}
	if f.templates != "" {
		proj.TemplateDirs = splitList(f.templates)
	}
	if f.scripts != "" {
		proj.ScriptDirs = splitList(f.scripts)
	}
	if f.catalogs != "" {
		proj.CatalogFiles = nil
		for _, pattern := range splitList(f.catalogs) {
			matches, err := filepath.Glob(pattern)
			if err != nil || len(matches) == 0 {
				proj.CatalogFiles = append(proj.CatalogFiles, pattern)
				continue
			}
			proj.CatalogFiles = append(proj.CatalogFiles, matches...)
		}
	}
	if f.function != "" {
		proj.Function = f.function
	}
	if f.marker != "" {
		proj.Marker = f.marker
	}
	return proj, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// scanOutcome is the collected result of one extraction pass.
type scanOutcome struct {
	templates  []string
	scripts    []string
	skipped    int // script files that failed to parse
	candidates []extract.Candidate
}

// collect runs discovery and both extractors, returning the deduplicated
// candidate set. Per-file parse failures are reported and skipped; they do
// not stop the scan.
func collect(proj *config.Project) (*scanOutcome, error) {
	templates, err := extract.FindTemplates(proj.TemplateDirs)
	if err != nil {
		return nil, err
	}
	scripts, err := extract.FindScripts(proj.ScriptDirs)
	if err != nil {
		return nil, err
	}

	out := &scanOutcome{templates: templates, scripts: scripts}

	var cands []extract.Candidate
	for _, path := range templates {
		nodes, err := markup.ParseFile(path)
		if err != nil {
			logWarning("skipping %s: %v", path, err)
			out.skipped++
			continue
		}
		cands = append(cands, extract.Markup(nodes, proj.Marker)...)
	}
	for _, path := range scripts {
		tree, err := extract.ParseScriptFile(path)
		if err != nil {
			logWarning("skipping %s: %v", path, err)
			out.skipped++
			continue
		}
		cands = append(cands, extract.Script(tree, proj.Function)...)
	}

	out.candidates = extract.Dedup(cands)
	return out, nil
}

// loadCatalog loads the configured catalog files, tolerating an empty list.
func loadCatalog(proj *config.Project) (*catalog.Catalog, error) {
	if len(proj.CatalogFiles) == 0 {
		logWarning("%s", i18n.T("No catalog files found; every key will be reported as unresolved"))
		return catalog.FromMap(nil), nil
	}
	return catalog.Load(proj.CatalogFiles...)
}

// ---------------------------------------------------------------------------
// status (read-only: project info + key coverage)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	flags := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show project info and key coverage",
		Long: `Show the detected scan configuration and key coverage statistics.
Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runStatus(flags *scanFlags) error {
	proj, err := flags.project()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n%sProject%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	absRoot, _ := filepath.Abs(proj.Root)
	fmt.Fprintf(os.Stderr, "  Root:       %s\n", absRoot)
	if proj.FromFile {
		fmt.Fprintf(os.Stderr, "  Config:     %s\n", config.FileName)
	} else {
		fmt.Fprintf(os.Stderr, "  Config:     none (auto-detected)\n")
	}
	fmt.Fprintf(os.Stderr, "  Templates:  %s\n", strings.Join(proj.TemplateDirs, ", "))
	fmt.Fprintf(os.Stderr, "  Scripts:    %s\n", strings.Join(proj.ScriptDirs, ", "))
	if len(proj.CatalogFiles) > 0 {
		fmt.Fprintf(os.Stderr, "  Catalog:    %s\n", strings.Join(proj.CatalogFiles, ", "))
	} else {
		fmt.Fprintf(os.Stderr, "  Catalog:    none detected\n")
	}
	fmt.Fprintln(os.Stderr)

	out, err := collect(proj)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(proj)
	if err != nil {
		return err
	}
	res := catalog.Resolve(out.candidates, cat)

	resolved := res.Resolved.Len()
	unresolved := res.Unresolved.Len()
	total := resolved + unresolved
	percent := 0
	if total > 0 {
		percent = resolved * 100 / total
	}

	fmt.Fprintf(os.Stderr, "%sKey Coverage%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "\n%-16s %-10s %-12s %-8s\n", "Files", "Keys", "Unresolved", "Percent")
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 48))
	fmt.Fprintf(os.Stderr, "%-16s %-10d %-12d %d%%\n",
		fmt.Sprintf("%d html, %d js", len(out.templates), len(out.scripts)),
		total, unresolved, percent)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 48))
	fmt.Fprintf(os.Stderr, "Catalog keys: %d\n", cat.Leaves())
	if out.skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped files: %d\n", out.skipped)
	}
	fmt.Fprintln(os.Stderr)

	if total > 0 && unresolved == 0 {
		logSuccess("%s", i18n.T("All keys resolved!"))
	}
	return nil
}

// ---------------------------------------------------------------------------
// keys (print the extracted key list)
// ---------------------------------------------------------------------------

func newKeysCmd() *cobra.Command {
	flags := &scanFlags{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the extracted key list",
		Long: `Extract and print the deduplicated key list without resolving it
against the catalog. Unresolved markers are printed with a "?" prefix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(flags, asJSON)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print keys as a JSON array")
	return cmd
}

func runKeys(flags *scanFlags, asJSON bool) error {
	proj, err := flags.project()
	if err != nil {
		return err
	}
	out, err := collect(proj)
	if err != nil {
		return err
	}

	if asJSON {
		keys := []string{}
		for _, c := range out.candidates {
			switch c.Kind {
			case extract.KindKeyList:
				keys = append(keys, c.List...)
			default:
				keys = append(keys, c.Key)
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "    ")
		return enc.Encode(keys)
	}

	for _, c := range out.candidates {
		switch c.Kind {
		case extract.KindKey:
			fmt.Println(c.Key)
		case extract.KindKeyList:
			for _, k := range c.List {
				fmt.Println(k)
			}
		case extract.KindUnresolved:
			fmt.Printf("? %s\n", c.Key)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// scan (extract + resolve + write reports)
// ---------------------------------------------------------------------------

func newScanCmd() *cobra.Command {
	flags := &scanFlags{}
	var (
		outDir string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Extract keys and write resolved/unresolved JSON reports",
		Long: `Extract localization keys from templates and scripts, resolve them
against the merged catalog, and write two JSON documents:

  resolved.json    keys found in the catalog, with their values
  unresolved.json  keys missing from the catalog, with diagnostics

Key order in both documents is insertion order of first resolution.

Examples:
  # Scan the current project with auto-detection
  keylint scan

  # Explicit inputs and output directory
  keylint scan --templates src/app --scripts src/app \
      --catalog src/assets/i18n/en.json --out report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(flags, outDir, asJSON)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: project root)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the combined report to stdout instead of writing files")
	return cmd
}

func runScan(flags *scanFlags, outDir string, asJSON bool) error {
	proj, err := flags.project()
	if err != nil {
		return err
	}
	if outDir != "" {
		proj.OutputDir = outDir
	}

	out, err := collect(proj)
	if err != nil {
		return err
	}
	if len(out.templates)+len(out.scripts) == 0 {
		return fmt.Errorf("%s", i18n.T("Nothing to scan: no template or script files found"))
	}
	logInfo("Scanned %d template file(s), %d script file(s)", len(out.templates), len(out.scripts))

	cat, err := loadCatalog(proj)
	if err != nil {
		return err
	}
	res := catalog.Resolve(out.candidates, cat)

	if asJSON {
		if err := writeCombined(os.Stdout, res); err != nil {
			return err
		}
	} else {
		if err := writeReports(proj.OutputDir, res); err != nil {
			return err
		}
	}

	logInfo("Keys: %d resolved, %d unresolved", res.Resolved.Len(), res.Unresolved.Len())
	logSuccess("%s", i18n.T("Scan complete"))
	return nil
}

// writeReports writes resolved.json and unresolved.json into dir.
func writeReports(dir string, res *catalog.Resolution) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	for _, doc := range []struct {
		name string
		tree *catalog.Tree
	}{
		{"resolved.json", res.Resolved},
		{"unresolved.json", res.Unresolved},
	} {
		data, err := doc.tree.MarshalIndent()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, doc.name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logSuccess("Wrote: %s", path)
	}
	return nil
}

// writeCombined prints one indented document with both partitions,
// preserving the trees' insertion order.
func writeCombined(w io.Writer, res *catalog.Resolution) error {
	resolved, err := res.Resolved.MarshalJSON()
	if err != nil {
		return err
	}
	unresolved, err := res.Unresolved.MarshalJSON()
	if err != nil {
		return err
	}

	raw := fmt.Sprintf(`{"resolved":%s,"unresolved":%s}`, resolved, unresolved)
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "    "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}
