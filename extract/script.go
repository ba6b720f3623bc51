// ECMAScript syntax tree extractor for translation-function calls.
//
// The translation function is invoked with many literal-expression shapes
// in practice: plain strings, ternaries choosing between two keys,
// template-string heads, property accesses, whole arrays of keys. Rather
// than evaluating expressions, the extractor probes a fixed priority list
// of known shapes and degrades to a diagnostic unresolved candidate when
// the argument is none of them. This is a closed-world heuristic, not an
// evaluator.
package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// DefaultFunction is the translation function name matched in scripts.
const DefaultFunction = "instant"

// ParseScriptFile reads and parses a program source file.
func ParseScriptFile(path string) (*js.AST, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tree, err := js.Parse(parse.NewInputBytes(data), js.Options{})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tree, nil
}

// Script walks a parsed program tree and returns a key candidate for every
// argument of every call to the translation function fn. The match is on
// the callee's name — a bare identifier instant(...) or the final property
// of a member call like this.translate.instant(...) — case-sensitive.
//
// An empty fn selects DefaultFunction.
func Script(tree *js.AST, fn string) []Candidate {
	if fn == "" {
		fn = DefaultFunction
	}
	v := &callVisitor{fn: fn}
	js.Walk(v, &tree.BlockStmt)
	return v.out
}

// callVisitor collects candidates from matching call expressions. Children
// are always visited, matching calls may nest inside other matching calls.
type callVisitor struct {
	fn  string
	out []Candidate
}

func (v *callVisitor) Enter(n js.INode) js.IVisitor {
	call, ok := n.(*js.CallExpr)
	if !ok || calleeName(call.X) != v.fn {
		return v
	}
	for _, arg := range call.Args.List {
		if arg.Value == nil {
			continue
		}
		v.out = append(v.out, inferKey(arg.Value))
	}
	return v
}

func (v *callVisitor) Exit(n js.INode) {}

// calleeName returns the name a call is made under: the identifier itself
// or the final property of a member expression.
func calleeName(x js.IExpr) string {
	switch e := x.(type) {
	case *js.Var:
		return string(e.Data)
	case *js.DotExpr:
		return string(e.Y.Data)
	case *js.GroupExpr:
		return calleeName(e.X)
	}
	return ""
}

// shapeProbes is the ordered list of structural shapes tried against each
// argument; the first probe returning non-empty text wins. Adding a shape
// is a local, additive change.
var shapeProbes = []func(js.IExpr) (string, bool){
	probeString,
	probeIdent,
	probeMember,
	probeNestedMember,
	probeBinaryLeft,
	probeBinaryRight,
	probeTemplateHead,
	probeTernary,
}

// scalarProbes are the sub-shapes tried against ternary branches and array
// elements.
var scalarProbes = []func(js.IExpr) (string, bool){
	probeString,
	probeIdent,
	probeMember,
	probeNestedMember,
}

// inferKey applies the ordered shape probes to one candidate-producing
// node. When no probe resolves, an array literal whose every element
// carries text becomes one multi-key candidate; anything else becomes an
// unresolved marker with a whitespace-stripped rendering of the node.
func inferKey(n js.IExpr) Candidate {
	n = unparen(n)

	for _, probe := range shapeProbes {
		if s, ok := probe(n); ok && s != "" {
			return Key(s)
		}
	}

	if arr, ok := n.(*js.ArrayExpr); ok {
		if keys, ok := arrayKeys(arr); ok {
			return KeyList(keys)
		}
	}

	return Unresolved(stripSpace(renderExpr(n)))
}

// unparen strips grouping parentheses.
func unparen(n js.IExpr) js.IExpr {
	for {
		g, ok := n.(*js.GroupExpr)
		if !ok {
			return n
		}
		n = g.X
	}
}

func probeString(n js.IExpr) (string, bool) {
	lit, ok := n.(*js.LiteralExpr)
	if !ok || lit.TokenType != js.StringToken {
		return "", false
	}
	return unquote(string(lit.Data)), true
}

func probeIdent(n js.IExpr) (string, bool) {
	v, ok := n.(*js.Var)
	if !ok {
		return "", false
	}
	return string(v.Data), true
}

// probeMember matches a one-level property access (x.name).
func probeMember(n js.IExpr) (string, bool) {
	d, ok := n.(*js.DotExpr)
	if !ok {
		return "", false
	}
	if _, nested := unparen(d.X).(*js.DotExpr); nested {
		return "", false
	}
	return string(d.Y.Data), true
}

// probeNestedMember matches a property access on a property access
// (x.y.name).
func probeNestedMember(n js.IExpr) (string, bool) {
	d, ok := n.(*js.DotExpr)
	if !ok {
		return "", false
	}
	if _, nested := unparen(d.X).(*js.DotExpr); !nested {
		return "", false
	}
	return string(d.Y.Data), true
}

// probeBinaryLeft matches a one-level property access on the left side of
// a binary or logical expression.
func probeBinaryLeft(n js.IExpr) (string, bool) {
	b, ok := n.(*js.BinaryExpr)
	if !ok {
		return "", false
	}
	if d, ok := unparen(b.X).(*js.DotExpr); ok {
		return string(d.Y.Data), true
	}
	return "", false
}

// probeBinaryRight is probeBinaryLeft for the right side.
func probeBinaryRight(n js.IExpr) (string, bool) {
	b, ok := n.(*js.BinaryExpr)
	if !ok {
		return "", false
	}
	if d, ok := unparen(b.Y).(*js.DotExpr); ok {
		return string(d.Y.Data), true
	}
	return "", false
}

// probeTemplateHead matches the head text of a template literal: the text
// before the first substitution, or the whole text when there is none.
func probeTemplateHead(n js.IExpr) (string, bool) {
	switch t := n.(type) {
	case *js.TemplateExpr:
		var head string
		if len(t.List) > 0 {
			head = strings.TrimSuffix(string(t.List[0].Value), "${")
		} else {
			head = strings.TrimSuffix(string(t.Tail), "`")
		}
		head = strings.TrimPrefix(head, "`")
		if head == "" {
			return "", false
		}
		return head, true
	case *js.LiteralExpr:
		// No-substitution templates may lex as a single template token.
		if t.TokenType != js.TemplateToken {
			return "", false
		}
		head := strings.TrimSuffix(strings.TrimPrefix(string(t.Data), "`"), "`")
		if head == "" {
			return "", false
		}
		return head, true
	}
	return "", false
}

// probeTernary tries the scalar sub-shapes against a conditional's true
// branch, then its condition, then its false branch. The order is kept for
// compatibility; it does not reflect runtime key selection.
func probeTernary(n js.IExpr) (string, bool) {
	c, ok := n.(*js.CondExpr)
	if !ok {
		return "", false
	}
	for _, branch := range []js.IExpr{c.X, c.Cond, c.Y} {
		branch = unparen(branch)
		for _, probe := range scalarProbes {
			if s, ok := probe(branch); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// arrayKeys returns the element texts of an array literal, or false when
// the array is empty or any element yields no text.
func arrayKeys(arr *js.ArrayExpr) ([]string, bool) {
	if len(arr.List) == 0 {
		return nil, false
	}
	keys := make([]string, 0, len(arr.List))
	for _, el := range arr.List {
		if el.Value == nil {
			return nil, false
		}
		var text string
		elem := unparen(el.Value)
		for _, probe := range scalarProbes {
			if s, ok := probe(elem); ok && s != "" {
				text = s
				break
			}
		}
		if text == "" {
			return nil, false
		}
		keys = append(keys, text)
	}
	return keys, true
}

// unquote strips the surrounding quotes from a string-literal token and
// decodes backslash escapes. Unicode and hex escapes are kept verbatim;
// keys are plain text in practice.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return s
	}
	inner := s[1 : len(s)-1]
	if !strings.Contains(inner, `\`) {
		return inner
	}

	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' || i+1 == len(inner) {
			b.WriteByte(c)
			continue
		}
		i++
		switch inner[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'u', 'x':
			b.WriteByte('\\')
			b.WriteByte(inner[i])
		default:
			// \', \", \\, \/ and any unrecognized escape decode to
			// the escaped character itself.
			b.WriteByte(inner[i])
		}
	}
	return b.String()
}

// renderExpr produces a best-effort source-like rendering of an expression
// for diagnostic text. Unknown shapes render empty.
func renderExpr(n js.IExpr) string {
	switch e := n.(type) {
	case *js.Var:
		return string(e.Data)
	case *js.LiteralExpr:
		return string(e.Data)
	case *js.DotExpr:
		return renderExpr(e.X) + "." + string(e.Y.Data)
	case *js.GroupExpr:
		return "(" + renderExpr(e.X) + ")"
	case *js.CallExpr:
		return renderExpr(e.X) + "()"
	case *js.IndexExpr:
		return renderExpr(e.X) + "[" + renderExpr(e.Y) + "]"
	case *js.BinaryExpr:
		return renderExpr(e.X) + e.Op.String() + renderExpr(e.Y)
	case *js.UnaryExpr:
		return e.Op.String() + renderExpr(e.X)
	case *js.CondExpr:
		return renderExpr(e.Cond) + "?" + renderExpr(e.X) + ":" + renderExpr(e.Y)
	case *js.TemplateExpr:
		if len(e.List) > 0 {
			return string(e.List[0].Value)
		}
		return string(e.Tail)
	}
	return ""
}
