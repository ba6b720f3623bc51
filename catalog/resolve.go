// Candidate resolution: partition extracted keys into resolved and
// unresolved nested trees.
package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/keylint/keylint/extract"
)

// Tree is a nested string mapping that marshals to JSON in insertion order
// of first resolution, not sorted.
type Tree struct {
	keys     []string
	children map[string]*Tree
	value    string
	leaf     bool
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{children: make(map[string]*Tree)}
}

// Set files value under the dot path. The first write to a path wins, and
// a path cannot change an established node between leaf and subtree.
func (t *Tree) Set(path, value string) {
	t.set(strings.Split(path, "."), value)
}

func (t *Tree) set(segs []string, value string) {
	node := t
	for _, seg := range segs[:len(segs)-1] {
		if node.leaf {
			return
		}
		child, ok := node.children[seg]
		if !ok {
			child = NewTree()
			node.children[seg] = child
			node.keys = append(node.keys, seg)
		}
		node = child
	}

	last := segs[len(segs)-1]
	if node.leaf {
		return
	}
	if child, ok := node.children[last]; ok {
		if child.leaf || len(child.keys) > 0 {
			return
		}
	} else {
		node.keys = append(node.keys, last)
	}
	node.children[last] = &Tree{value: value, leaf: true}
}

// Get returns the leaf value at the dot path.
func (t *Tree) Get(path string) (string, bool) {
	node := t
	for _, seg := range strings.Split(path, ".") {
		if node.leaf {
			return "", false
		}
		child, ok := node.children[seg]
		if !ok {
			return "", false
		}
		node = child
	}
	if !node.leaf {
		return "", false
	}
	return node.value, true
}

// Len returns the number of leaves in the tree.
func (t *Tree) Len() int {
	if t.leaf {
		return 1
	}
	n := 0
	for _, k := range t.keys {
		n += t.children[k].Len()
	}
	return n
}

// Empty reports whether the tree holds no leaves.
func (t *Tree) Empty() bool { return t.Len() == 0 }

// MarshalJSON renders the tree as a nested JSON object with keys in
// insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	if t.leaf {
		return json.Marshal(t.value)
	}

	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		cb, err := t.children[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(cb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalIndent renders the tree as indented JSON (4 spaces, matching the
// catalog file style).
func (t *Tree) MarshalIndent() ([]byte, error) {
	raw, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "    "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Resolution holds the two disjoint outcomes of resolving a candidate set:
// Resolved maps key paths to their catalog values, Unresolved maps key
// paths to the original candidate text.
type Resolution struct {
	Resolved   *Tree
	Unresolved *Tree
}

// Resolve partitions the candidate set against the catalog. Every string
// candidate files into exactly one of the two trees; multi-key candidates
// file each element independently; unresolved markers go straight into
// Unresolved under their diagnostic text.
func Resolve(cands []extract.Candidate, cat *Catalog) *Resolution {
	r := &Resolution{Resolved: NewTree(), Unresolved: NewTree()}

	for _, c := range cands {
		switch c.Kind {
		case extract.KindKey:
			r.file(c.Key, cat)
		case extract.KindKeyList:
			for _, k := range c.List {
				r.file(k, cat)
			}
		case extract.KindUnresolved:
			// Diagnostic text is not a catalog key; no lookup.
			r.Unresolved.Set(c.Key, c.Key)
		}
	}

	return r
}

func (r *Resolution) file(key string, cat *Catalog) {
	if val, ok := cat.Lookup(key); ok {
		r.Resolved.Set(key, val)
	} else {
		r.Unresolved.Set(key, key)
	}
}
