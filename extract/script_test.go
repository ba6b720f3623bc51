package extract

import (
	"reflect"
	"testing"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

func extractScript(t *testing.T, src, fn string) []Candidate {
	t.Helper()
	tree, err := js.Parse(parse.NewInputString(src), js.Options{})
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	return Script(tree, fn)
}

func TestScriptShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Candidate
	}{
		{
			name: "string literal",
			src:  `instant('errors.timeout');`,
			want: []Candidate{Key("errors.timeout")},
		},
		{
			name: "double quoted string",
			src:  `instant("errors.disk");`,
			want: []Candidate{Key("errors.disk")},
		},
		{
			name: "identifier",
			src:  `instant(dynamicKey);`,
			want: []Candidate{Key("dynamicKey")},
		},
		{
			name: "property access",
			src:  `instant(keys.title);`,
			want: []Candidate{Key("title")},
		},
		{
			name: "nested property access",
			src:  `instant(app.keys.subtitle);`,
			want: []Candidate{Key("subtitle")},
		},
		{
			name: "binary left property",
			src:  `instant(keys.base + suffix);`,
			want: []Candidate{Key("base")},
		},
		{
			name: "binary right property",
			src:  `instant(prefix + keys.tail);`,
			want: []Candidate{Key("tail")},
		},
		{
			name: "template without substitution",
			src:  "instant(`plain.key`);",
			want: []Candidate{Key("plain.key")},
		},
		{
			name: "template head before substitution",
			src:  "instant(`errors.${code}`);",
			want: []Candidate{Key("errors.")},
		},
		{
			name: "ternary prefers true branch",
			src:  `instant(ok ? 'a.b' : 'c.d');`,
			want: []Candidate{Key("a.b")},
		},
		{
			name: "ternary falls back to condition",
			src:  `instant(flag ? [] : 'c.d');`,
			want: []Candidate{Key("flag")},
		},
		{
			name: "parenthesized argument",
			src:  `instant(('wrapped.key'));`,
			want: []Candidate{Key("wrapped.key")},
		},
		{
			name: "array of strings",
			src:  `instant(['k1', 'k2']);`,
			want: []Candidate{KeyList([]string{"k1", "k2"})},
		},
		{
			name: "array mixing strings and identifiers",
			src:  `instant(['k1', fallback]);`,
			want: []Candidate{KeyList([]string{"k1", "fallback"})},
		},
		{
			name: "escaped backslash in literal",
			src:  `instant('a\\b');`,
			want: []Candidate{Key("a\\b")},
		},
		{
			name: "newline escape in literal",
			src:  `instant('tip\nline');`,
			want: []Candidate{Key("tip\nline")},
		},
		{
			name: "call argument is unresolved",
			src:  `instant(build());`,
			want: []Candidate{Unresolved("build()")},
		},
		{
			name: "several arguments",
			src:  `instant('with.params', params);`,
			want: []Candidate{Key("with.params"), Key("params")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := extractScript(t, tc.src, "")
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestScriptMemberCallee(t *testing.T) {
	t.Parallel()

	got := extractScript(t, `this.translate.instant('deep.key');`, "")
	want := []Candidate{Key("deep.key")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestScriptIgnoresOtherCalls(t *testing.T) {
	t.Parallel()

	if got := extractScript(t, `other('x.y'); translate('z.w');`, ""); len(got) != 0 {
		t.Fatalf("unexpected candidates: %#v", got)
	}
}

func TestScriptNestedMatchingCalls(t *testing.T) {
	t.Parallel()

	got := extractScript(t, `instant(wrap(instant('inner.key')));`, "")
	want := []Candidate{Unresolved("wrap()"), Key("inner.key")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestScriptCustomFunctionName(t *testing.T) {
	t.Parallel()

	got := extractScript(t, `t('short.key'); instant('ignored.key');`, "t")
	want := []Candidate{Key("short.key")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestScriptEscapedQuoteInLiteral(t *testing.T) {
	t.Parallel()

	got := extractScript(t, `instant('it\'s');`, "")
	want := []Candidate{Key("it's")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestScriptDeeplyNestedStatements(t *testing.T) {
	t.Parallel()

	src := `
function render(state) {
    if (state.error) {
        return show(instant('errors.generic'));
    }
    for (const item of state.items) {
        label(instant(item.key ? item.key : 'items.unknown'));
    }
}
`
	got := extractScript(t, src, "")
	want := []Candidate{Key("errors.generic"), Key("key")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}
