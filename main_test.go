package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/keylint/keylint/catalog"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b,", []string{"a", "b"}},
		{"single", []string{"single"}},
		{"", nil},
	}
	for _, tc := range tests {
		got := splitList(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWriteCombined(t *testing.T) {
	res := &catalog.Resolution{Resolved: catalog.NewTree(), Unresolved: catalog.NewTree()}
	res.Resolved.Set("nav.home", "Home")
	res.Unresolved.Set("nav.missing", "nav.missing")

	var buf bytes.Buffer
	if err := writeCombined(&buf, res); err != nil {
		t.Fatalf("writeCombined: %v", err)
	}

	want := `{
    "resolved": {
        "nav": {
            "home": "Home"
        }
    },
    "unresolved": {
        "nav": {
            "missing": "nav.missing"
        }
    }
}
`
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestScanEndToEnd(t *testing.T) {
	tmp := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(tmp, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write("index.html", `<div><span translate="nav.home">Home</span><p>{{ 'nav.missing' | translate }}</p></div>`)
	write("app.js", `instant('errors.timeout');`)
	write("locales/en.json", `{
    "nav": { "home": "Home" },
    "errors": { "timeout": "Timed out" }
}`)

	prevRoot := rootDir
	rootDir = tmp
	defer func() { rootDir = prevRoot }()

	outDir := filepath.Join(tmp, "report")
	if err := runScan(&scanFlags{}, outDir, false); err != nil {
		t.Fatalf("runScan: %v", err)
	}

	resolved, err := os.ReadFile(filepath.Join(outDir, "resolved.json"))
	if err != nil {
		t.Fatal(err)
	}
	wantResolved := `{
    "nav": {
        "home": "Home"
    },
    "errors": {
        "timeout": "Timed out"
    }
}
`
	if string(resolved) != wantResolved {
		t.Fatalf("resolved.json:\n%s\nwant:\n%s", resolved, wantResolved)
	}

	unresolved, err := os.ReadFile(filepath.Join(outDir, "unresolved.json"))
	if err != nil {
		t.Fatal(err)
	}
	wantUnresolved := `{
    "nav": {
        "missing": "nav.missing"
    }
}
`
	if string(unresolved) != wantUnresolved {
		t.Fatalf("unresolved.json:\n%s\nwant:\n%s", unresolved, wantUnresolved)
	}
}

func TestScanNothingToScan(t *testing.T) {
	tmp := t.TempDir()

	prevRoot := rootDir
	rootDir = tmp
	defer func() { rootDir = prevRoot }()

	if err := runScan(&scanFlags{}, "", false); err == nil {
		t.Fatal("empty project accepted")
	}
}
