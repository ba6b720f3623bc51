// Template tree extractor for translate directives.
//
// Keys appear in markup two ways: an explicit translate attribute
// (<span translate="nav.home">) or the filter-pipe form embedded in
// interpolation strings ({{ 'nav.home' | translate }}), in attribute
// values and text alike. The attribute form is canonical; the pipe form is
// recovered by scanning for the marker substring and taking the last
// quoted segment before it — the surrounding string is not independently
// tokenized, so quote-pair scanning is the only reliable way to get the
// key literal without a full expression parser.
package extract

import (
	"strings"

	"github.com/keylint/keylint/markup"
)

// TranslateAttr is the attribute naming a key directly on an element.
const TranslateAttr = "translate"

// DefaultPipeMarker is the filter-pipe marker scanned for in attribute
// text and text nodes.
const DefaultPipeMarker = "| translate"

// Markup walks a parsed template tree and returns the key candidates found
// in it. The walk is breadth-first over every node; callers must treat the
// result as an unordered set.
//
// An empty marker selects DefaultPipeMarker.
func Markup(nodes []*markup.Node, marker string) []Candidate {
	if marker == "" {
		marker = DefaultPipeMarker
	}

	var out []Candidate
	queue := make([]*markup.Node, len(nodes))
	copy(queue, nodes)

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		queue = append(queue, n.Children...)

		if n.IsText() {
			// Cheap pre-filter before the quote scan.
			if strings.Contains(n.Text, marker) {
				out = scanPipes(n.Text, marker, out)
			}
			continue
		}

		if v, ok := n.Attr(TranslateAttr); ok {
			if key := strings.TrimSpace(v); key != "" {
				out = append(out, Key(key))
			}
		}
		if n.RawAttrs != "" {
			out = scanPipes(n.RawAttrs, marker, out)
		}
	}

	return out
}

// scanPipes appends a candidate for every occurrence of the pipe marker in
// s. The scan resumes just past each match, so several directives in one
// string are all found.
func scanPipes(s, marker string, out []Candidate) []Candidate {
	from := 0
	for {
		idx := strings.Index(s[from:], marker)
		if idx < 0 {
			return out
		}
		at := from + idx

		prefix := strings.TrimSpace(s[:at])
		if key, ok := lastQuoted(prefix); ok {
			out = append(out, Key(key))
		} else {
			out = append(out, Unresolved(stripSpace(prefix)))
		}

		from = at + 1
	}
}

// lastQuoted returns the text inside the last quoted segment of s: the
// rightmost quote character (single or double) paired with the nearest
// matching quote before it. Reports false when no pair exists or the span
// is empty/whitespace.
func lastQuoted(s string) (string, bool) {
	end := strings.LastIndexAny(s, `'"`)
	if end <= 0 {
		return "", false
	}
	start := strings.LastIndexByte(s[:end], s[end])
	if start < 0 {
		return "", false
	}
	key := s[start+1 : end]
	if strings.TrimSpace(key) == "" {
		return "", false
	}
	return key, true
}
