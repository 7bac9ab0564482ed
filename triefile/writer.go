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
	"io"
	"math"
	"sort"

	"github.com/ianlewis/go-japhon/trie"
)

// Writer writes a sequential-format ("JPHO") file. The entry count is
// declared up front in the header; Close fails if the number of records
// written does not match.
type Writer struct {
	w       io.Writer
	declare uint32
	written uint32
	buf     []byte
}

// NewWriter writes the sequential header to w and returns a writer for
// the declared number of records.
func NewWriter(w io.Writer, entryCount uint32) (*Writer, error) {
	h := Header{
		Format:       FormatSequential,
		VersionMajor: seqVersionMajor,
		VersionMinor: seqVersionMinor,
		EntryCount:   entryCount,
	}
	if _, err := w.Write(h.headerBytes()); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	return &Writer{
		w:       w,
		declare: entryCount,
	}, nil
}

// WriteEntry writes one key/value record.
func (w *Writer) WriteEntry(e Entry) error {
	if w.written >= w.declare {
		return ErrEntryCount
	}

	w.buf = w.buf[:0]
	w.buf = binary.AppendUvarint(w.buf, uint64(len(e.Key)))
	w.buf = append(w.buf, e.Key...)
	w.buf = binary.AppendUvarint(w.buf, uint64(len(e.Value)))
	w.buf = append(w.buf, e.Value...)

	if _, err := w.w.Write(w.buf); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	w.written++
	return nil
}

// Close verifies that the declared number of records was written. It does
// not close the underlying writer.
func (w *Writer) Close() error {
	if w.written != w.declare {
		return ErrEntryCount
	}
	return nil
}

// marshalNode is the serialization snapshot of one trie node. Children are
// sorted ascending by code point, matching the binary search performed by
// the zero-copy reader.
type marshalNode struct {
	value    string
	hasValue bool
	cps      []rune
	children []*marshalNode

	size   int
	offset int
}

// MarshalNodes serializes idx to the node format ("JPNT"). entryCount and
// wordCount are recorded in the header; they are metadata and do not
// affect the encoding.
func MarshalNodes(idx trie.Index, entryCount, wordCount uint32) ([]byte, error) {
	w, ok := idx.Walk().(trie.Enumerator)
	if !ok {
		return nil, fmt.Errorf("triefile: index is not enumerable")
	}

	root := snapshot(w)
	total := nodeHeaderSize
	measure(root, &total)
	layout(root, nodeHeaderSize)

	h := Header{
		Format:       FormatNodes,
		VersionMajor: nodeVersionMajor,
		VersionMinor: nodeVersionMinor,
		EntryCount:   entryCount,
		WordCount:    wordCount,
		RootOffset:   nodeHeaderSize,
	}

	b := make([]byte, 0, total)
	b = append(b, h.headerBytes()...)
	b = appendNodes(b, root)
	return b, nil
}

// snapshot copies the subtree under w into marshal nodes.
func snapshot(w trie.Enumerator) *marshalNode {
	n := &marshalNode{}
	n.value, n.hasValue = w.Value()

	cps := w.Children()
	sort.Slice(cps, func(i, j int) bool { return cps[i] < cps[j] })
	n.cps = cps

	n.children = make([]*marshalNode, len(cps))
	for i, cp := range cps {
		child := w.Fork()
		child.Step(cp)
		n.children[i] = snapshot(child.(trie.Enumerator))
	}
	return n
}

// measure computes each node's encoded size and accumulates the total.
func measure(n *marshalNode, total *int) {
	size := 1
	if len(n.cps) > maxPackedChildren {
		size += uvarintLen(uint64(len(n.cps)))
	}
	if n.hasValue {
		size += uvarintLen(uint64(len(n.value))) + len(n.value)
	}
	size += len(n.cps) * childEntrySize

	n.size = size
	*total += size

	for _, child := range n.children {
		measure(child, total)
	}
}

// layout assigns pre-order offsets starting at off.
func layout(n *marshalNode, off int) int {
	n.offset = off
	off += n.size
	for _, child := range n.children {
		off = layout(child, off)
	}
	return off
}

// appendNodes appends the pre-order node encoding to b.
func appendNodes(b []byte, n *marshalNode) []byte {
	var flags byte
	if n.hasValue {
		flags |= flagHasValue
	}
	count := len(n.cps)
	if count > maxPackedChildren {
		flags |= flagVarintCount
	} else {
		flags |= byte(count) << 1
	}
	b = append(b, flags)

	if count > maxPackedChildren {
		b = binary.AppendUvarint(b, uint64(count))
	}
	if n.hasValue {
		b = binary.AppendUvarint(b, uint64(len(n.value)))
		b = append(b, n.value...)
	}

	// Each child offset is relative to the end of its own 7-byte entry.
	entryPos := len(b)
	for i, cp := range n.cps {
		pos := entryPos + i*childEntrySize
		rel := n.children[i].offset - (pos + childEntrySize)
		if rel > math.MaxInt32 || rel < math.MinInt32 {
			// Unreachable for any realistic dictionary size.
			panic("triefile: child offset overflows int32")
		}

		var entry [childEntrySize]byte
		entry[0] = byte(cp)
		entry[1] = byte(cp >> 8)
		entry[2] = byte(cp >> 16)
		binary.LittleEndian.PutUint32(entry[3:7], uint32(int32(rel)))
		b = append(b, entry[:]...)
	}

	for _, child := range n.children {
		b = appendNodes(b, child)
	}
	return b
}

// uvarintLen returns the encoded length of v as an unsigned varint.
func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
