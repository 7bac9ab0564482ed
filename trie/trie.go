// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package trie implements the code-point trie underlying all dictionary
// lookups.
//
// Two representations exist: the owned in-memory tree implemented here,
// built by repeated Insert calls, and the zero-copy view over a binary
// buffer implemented by the triefile package. Both satisfy the Index
// interface consumed by the phoneme, words and furigana packages.
package trie

// Index is a read-only view of a trie. It is implemented by *Trie and by
// the triefile package's zero-copy view.
type Index interface {
	// LongestMatch walks children from cps[start] and returns the length in
	// code points and value of the longest prefix that ends on a node with
	// a value. ok is false if no node along the walk had a value.
	LongestMatch(cps []rune, start int) (n int, value string, ok bool)

	// Walk returns a cursor positioned at the root.
	Walk() Walker
}

// Walker is a cursor over trie nodes. A Walker that has returned false
// from Step stays invalid; further Steps also return false.
type Walker interface {
	// Step advances to the child for cp, returning false if there is none.
	Step(cp rune) bool

	// Value returns the value at the current node, if any.
	Value() (string, bool)

	// Fork returns an independent copy of the cursor.
	Fork() Walker
}

// node is a trie node exclusively owned by its parent. A nil value
// distinguishes internal path nodes from complete entries.
type node struct {
	children map[rune]*node
	value    *string
}

// Trie is the owned in-memory trie. Insertion happens during the
// single-writer load phase; afterwards the trie is read-only and safe for
// concurrent lookups.
type Trie struct {
	root node
	len  int
	dups int
}

// New returns a new empty trie.
func New() *Trie {
	return &Trie{}
}

// Insert maps the key to value, creating a child node for every code
// point. Re-inserting an existing key silently overwrites the previous
// value; the overwrite is counted and reported by Duplicates.
func (t *Trie) Insert(key []rune, value string) {
	current := &t.root
	for _, cp := range key {
		child, ok := current.children[cp]
		if !ok {
			if current.children == nil {
				current.children = map[rune]*node{}
			}
			child = &node{}
			current.children[cp] = child
		}
		current = child
	}

	if current.value != nil {
		t.dups++
	} else {
		t.len++
	}
	current.value = &value
}

// Len returns the number of distinct keys inserted.
func (t *Trie) Len() int {
	return t.len
}

// Duplicates returns the number of inserts that overwrote an existing key.
func (t *Trie) Duplicates() int {
	return t.dups
}

// LongestMatch implements Index. The walk does not stop at the first
// value; it continues to the deepest node that still has a child path so
// the returned match is the longest, not merely the first.
func (t *Trie) LongestMatch(cps []rune, start int) (int, string, bool) {
	var n int
	var value string
	var ok bool

	current := &t.root
	for i := start; i < len(cps); i++ {
		child, found := current.children[cps[i]]
		if !found {
			break
		}
		current = child
		if current.value != nil {
			n = i - start + 1
			value = *current.value
			ok = true
		}
	}

	return n, value, ok
}

// Contains reports whether key is a complete entry. A node that exists
// only as the prefix of a longer entry does not count.
func (t *Trie) Contains(key []rune) bool {
	current := &t.root
	for _, cp := range key {
		child, ok := current.children[cp]
		if !ok {
			return false
		}
		current = child
	}
	return current.value != nil
}

// Walk implements Index.
func (t *Trie) Walk() Walker {
	return &walker{current: &t.root}
}

type walker struct {
	current *node
}

func (w *walker) Step(cp rune) bool {
	if w.current == nil {
		return false
	}
	child, ok := w.current.children[cp]
	if !ok {
		w.current = nil
		return false
	}
	w.current = child
	return true
}

func (w *walker) Value() (string, bool) {
	if w.current == nil || w.current.value == nil {
		return "", false
	}
	return *w.current.value, true
}

func (w *walker) Fork() Walker {
	cp := *w
	return &cp
}

// Children returns the current node's child code points in unspecified
// order. It is used when serializing the trie.
func (w *walker) Children() []rune {
	if w.current == nil {
		return nil
	}
	children := make([]rune, 0, len(w.current.children))
	for cp := range w.current.children {
		children = append(children, cp)
	}
	return children
}

// Enumerator is implemented by walkers that can list the current node's
// children. Both trie representations support it; it is required when
// re-serializing a trie to the binary node format.
type Enumerator interface {
	Walker
	Children() []rune
}
