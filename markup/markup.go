// Package markup implements a lenient parser for HTML-like template files.
//
// Framework templates are not conforming HTML: they carry binding syntax in
// attribute names, interpolation braces in attribute values and text, and
// usually describe document fragments. The parser is therefore built on the
// x/net/html tokenizer rather than its DOM parser — the DOM parser would
// normalize the document (inject html/head/body, re-serialize attributes)
// and lose the raw attribute text downstream extraction scans.
//
// Rules:
//   - comments and doctypes are dropped
//   - raw-text elements (script, noscript, style, title, textarea, ...)
//     keep their content verbatim as a single text child
//   - void elements never take children
//   - stray end tags are tolerated; the parse never fails
package markup

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Attr is a single parsed attribute of an element node.
type Attr struct {
	// Key is the attribute name, lowercased by the tokenizer.
	Key string
	// Val is the attribute value with entities decoded.
	Val string
}

// Node is one node of a parsed template tree.
//
// Element nodes have Tag, RawAttrs, Attrs and Children. Text nodes have
// only Text, kept exactly as it appeared in the source.
type Node struct {
	Tag      string
	RawAttrs string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Tag == "" }

// Attr returns the value of the named attribute and whether it is present.
// Names are matched in lowercase (the tokenizer lowercases them).
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// voidElements never take children; their start tags do not open a scope.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// ParseFile reads and parses a template file.
func ParseFile(path string) ([]*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data), nil
}

// Parse parses template data into a sequence of top-level nodes.
// Unbalanced markup degrades to a best-effort tree; Parse never fails.
func Parse(data []byte) []*Node {
	z := html.NewTokenizer(bytes.NewReader(data))

	root := &Node{}
	stack := []*Node{root}

	for {
		switch tt := z.Next(); tt {
		case html.ErrorToken:
			// io.EOF at end of input; any other tokenizer error is
			// equally terminal for a lenient parse.
			return root.Children

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			nameBytes, hasAttr := z.TagName()
			name := string(nameBytes)

			n := &Node{
				Tag:      name,
				RawAttrs: rawAttrText(raw, name),
			}
			if hasAttr {
				for {
					k, v, more := z.TagAttr()
					n.Attrs = append(n.Attrs, Attr{Key: string(k), Val: string(v)})
					if !more {
						break
					}
				}
			}

			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			if tt == html.StartTagToken && !voidElements[name] {
				stack = append(stack, n)
			}

		case html.EndTagToken:
			nameBytes, _ := z.TagName()
			name := string(nameBytes)
			// Pop to the nearest matching open element; stray end tags
			// are ignored.
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Tag == name {
					stack = stack[:i]
					break
				}
			}

		case html.TextToken:
			text := string(z.Raw())
			if strings.TrimSpace(text) == "" {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Text: text})

		case html.CommentToken, html.DoctypeToken:
			// dropped
		}
	}
}

// rawAttrText slices the attribute portion out of a raw start tag,
// preserving it exactly as written: "<div a='x'  b>" -> "a='x'  b".
func rawAttrText(raw, name string) string {
	// raw begins with "<" + the tag name in its original case; the
	// lowercased name has the same byte length for ASCII tags.
	if len(raw) < 1+len(name) {
		return ""
	}
	s := raw[1+len(name):]
	s = strings.TrimSuffix(s, ">")
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSpace(s)
}
