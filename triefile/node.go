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

package triefile

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/ianlewis/go-japhon/trie"
)

// File is an open node-format ("JPNT") file. The trie view returned by
// Trie reads the mapping directly, so the File must stay open for as long
// as the view is in use.
type File struct {
	m      mmap.MMap
	data   []byte
	header Header
	trie   *Trie
	closed bool
}

// Open memory-maps the node-format file at path read-only.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %q: %w", path, err)
	}

	tf, err := newFile([]byte(m))
	if err != nil {
		//nolint:errcheck // the parse error takes precedence
		m.Unmap()
		return nil, err
	}
	tf.m = m
	return tf, nil
}

// OpenBytes opens a node-format buffer in place. The returned File and its
// trie view reference b directly; b must not be modified while in use.
func OpenBytes(b []byte) (*File, error) {
	return newFile(b)
}

func newFile(b []byte) (*File, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Format != FormatNodes {
		return nil, fmt.Errorf("%w: expected node format", ErrBadMagic)
	}
	if h.RootOffset >= uint64(len(b)) {
		return nil, ErrTruncated
	}

	tr := &Trie{
		data: b,
		root: int(h.RootOffset),
	}
	// The root node must decode within the buffer.
	if _, ok := tr.decodeNode(tr.root); !ok {
		return nil, ErrTruncated
	}

	return &File{
		data:   b,
		header: h,
		trie:   tr,
	}, nil
}

// Header returns the file header.
func (f *File) Header() Header {
	return f.header
}

// Trie returns the zero-copy trie view.
func (f *File) Trie() *Trie {
	return f.trie
}

// Close unmaps the file. It is idempotent.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.m != nil {
		if err := f.m.Unmap(); err != nil {
			return fmt.Errorf("unmapping: %w", err)
		}
		f.m = nil
	}
	return nil
}

// Trie is a read-only trie over a node-format buffer. Lookups walk the
// serialized nodes in place with no allocation. It implements trie.Index.
//
// A node is encoded as:
//
//	flags byte: bit 0 set if the node has a value; bit 7 set if the child
//	  count follows as a varint, otherwise the count is in bits 1-7.
//	optional varint child count
//	optional varint value length followed by the value bytes
//	child entries, sorted ascending by code point: a 3-byte little-endian
//	  code point and a 4-byte signed little-endian offset relative to the
//	  end of the entry.
type Trie struct {
	data []byte
	root int
}

// nodeRef locates the decoded parts of one node. A negative off marks an
// invalid reference.
type nodeRef struct {
	off        int
	childCount int
	valueStart int // start of value bytes, -1 if no value
	valueLen   int
	childStart int // start of the child entry table
}

// decodeNode decodes the node at off. ok is false if the node extends past
// the end of the buffer.
func (t *Trie) decodeNode(off int) (nodeRef, bool) {
	var ref nodeRef
	if off < 0 || off >= len(t.data) {
		return ref, false
	}
	ref.off = off
	ref.valueStart = -1

	flags := t.data[off]
	pos := off + 1

	// Length and count varints are compared as uint64 against the bytes
	// remaining so a huge decoded value cannot wrap the bounds checks.
	if flags&flagVarintCount != 0 {
		count, n := binary.Uvarint(t.data[pos:])
		if n <= 0 || count > uint64(len(t.data)) {
			return ref, false
		}
		ref.childCount = int(count)
		pos += n
	} else {
		ref.childCount = int(flags >> 1)
	}

	if flags&flagHasValue != 0 {
		valueLen, n := binary.Uvarint(t.data[pos:])
		if n <= 0 {
			return ref, false
		}
		pos += n
		if valueLen > uint64(len(t.data)-pos) {
			return ref, false
		}
		ref.valueStart = pos
		ref.valueLen = int(valueLen)
		pos += int(valueLen)
	}

	if ref.childCount > (len(t.data)-pos)/childEntrySize {
		return ref, false
	}
	ref.childStart = pos
	return ref, true
}

// child finds the child entry for cp by binary search over the sorted
// entry table and returns the child node's offset.
func (t *Trie) child(ref nodeRef, cp rune) (int, bool) {
	lo, hi := 0, ref.childCount
	for lo < hi {
		mid := (lo + hi) / 2
		pos := ref.childStart + mid*childEntrySize
		got := rune(uint32(t.data[pos]) |
			uint32(t.data[pos+1])<<8 |
			uint32(t.data[pos+2])<<16)
		switch {
		case got == cp:
			rel := int32(binary.LittleEndian.Uint32(t.data[pos+3 : pos+7]))
			return pos + childEntrySize + int(rel), true
		case got < cp:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}

// LongestMatch implements trie.Index.
func (t *Trie) LongestMatch(cps []rune, start int) (int, string, bool) {
	var n int
	var value string
	var ok bool

	ref, valid := t.decodeNode(t.root)
	if !valid {
		return 0, "", false
	}

	for i := start; i < len(cps); i++ {
		off, found := t.child(ref, cps[i])
		if !found {
			break
		}
		ref, valid = t.decodeNode(off)
		if !valid {
			break
		}
		if ref.valueStart >= 0 {
			n = i - start + 1
			value = string(t.data[ref.valueStart : ref.valueStart+ref.valueLen])
			ok = true
		}
	}

	return n, value, ok
}

// Walk implements trie.Index.
func (t *Trie) Walk() trie.Walker {
	return &nodeWalker{t: t, off: t.root}
}

// nodeWalker is a cursor over serialized nodes. It implements
// trie.Enumerator.
type nodeWalker struct {
	t   *Trie
	off int
}

func (w *nodeWalker) Step(cp rune) bool {
	if w.off < 0 {
		return false
	}
	ref, ok := w.t.decodeNode(w.off)
	if !ok {
		w.off = -1
		return false
	}
	child, found := w.t.child(ref, cp)
	if !found {
		w.off = -1
		return false
	}
	w.off = child
	return true
}

func (w *nodeWalker) Value() (string, bool) {
	if w.off < 0 {
		return "", false
	}
	ref, ok := w.t.decodeNode(w.off)
	if !ok || ref.valueStart < 0 {
		return "", false
	}
	return string(w.t.data[ref.valueStart : ref.valueStart+ref.valueLen]), true
}

func (w *nodeWalker) Fork() trie.Walker {
	cp := *w
	return &cp
}

// Children returns the current node's child code points in ascending
// order.
func (w *nodeWalker) Children() []rune {
	if w.off < 0 {
		return nil
	}
	ref, ok := w.t.decodeNode(w.off)
	if !ok {
		return nil
	}
	cps := make([]rune, 0, ref.childCount)
	for i := 0; i < ref.childCount; i++ {
		pos := ref.childStart + i*childEntrySize
		cps = append(cps, rune(uint32(w.t.data[pos])|
			uint32(w.t.data[pos+1])<<8|
			uint32(w.t.data[pos+2])<<16))
	}
	return cps
}
