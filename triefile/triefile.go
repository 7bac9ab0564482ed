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

// Package triefile implements reading and writing binary trie dictionary
// files.
//
// Two formats are supported:
//
//  1. The sequential format ("JPHO"): a header followed by varint
//     length-prefixed key/value records. Loading replays the records
//     through ordinary trie insertion, the same code path as any other
//     entry source.
//  2. The node format ("JPNT"): a serialized trie traversed in place,
//     typically from a read-only memory mapping. Nodes carry a sorted
//     fixed-stride child table so lookup is a binary search with no
//     per-node allocation.
//
// Header validation is strict in both formats: a magic or version
// mismatch is a hard load failure.
package triefile

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrBadMagic indicates the buffer does not start with a known magic
	// number.
	ErrBadMagic = errors.New("triefile: bad magic number")

	// ErrVersion indicates an unsupported format version.
	ErrVersion = errors.New("triefile: unsupported format version")

	// ErrTruncated indicates the file ends in the middle of a header or
	// record.
	ErrTruncated = errors.New("triefile: truncated file")

	// ErrEntryCount indicates the number of records written does not match
	// the count declared in the header.
	ErrEntryCount = errors.New("triefile: entry count mismatch")
)

// Format identifies a binary trie encoding.
type Format int

const (
	// FormatUnknown is an unrecognized encoding.
	FormatUnknown Format = iota

	// FormatSequential is the record-per-entry "JPHO" encoding.
	FormatSequential

	// FormatNodes is the zero-copy "JPNT" node encoding.
	FormatNodes
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatSequential:
		return "sequential"
	case FormatNodes:
		return "nodes"
	default:
		return "unknown"
	}
}

const (
	magicSequential = "JPHO"
	magicNodes      = "JPNT"

	// seqVersionMajor/Minor is the only sequential version accepted.
	seqVersionMajor = 1
	seqVersionMinor = 0

	// nodeVersionMajor is the only node-format major version accepted.
	nodeVersionMajor = 2
	nodeVersionMinor = 0

	seqHeaderSize  = 12
	nodeHeaderSize = 24

	// childEntrySize is the stride of the node-format child table: a
	// 3-byte little-endian code point and a 4-byte signed offset relative
	// to the end of the entry.
	childEntrySize = 7

	flagHasValue    = 0x01
	flagVarintCount = 0x80

	// maxPackedChildren is the largest child count representable in flag
	// bits 1-7. Larger counts are stored as a varint after the flags byte.
	maxPackedChildren = 0x7F
)

// Header describes a binary trie file.
//
// Sequential layout (12 bytes, little-endian):
//
//	Offset  Size  Field
//	0       4     Magic "JPHO"
//	4       2     VersionMajor (=1)
//	6       2     VersionMinor (=0)
//	8       4     EntryCount
//
// Node layout (24 bytes, little-endian):
//
//	Offset  Size  Field
//	0       4     Magic "JPNT"
//	4       2     VersionMajor (=2)
//	6       2     VersionMinor (=0)
//	8       4     EntryCount (phoneme entries)
//	12      4     WordCount (word entries, informational)
//	16      8     RootOffset (byte offset of the root node)
type Header struct {
	Format       Format
	VersionMajor uint16
	VersionMinor uint16
	EntryCount   uint32
	WordCount    uint32
	RootOffset   uint64
}

// Sniff identifies the format of the buffer by its magic number.
func Sniff(b []byte) Format {
	if len(b) < 4 {
		return FormatUnknown
	}
	switch string(b[:4]) {
	case magicSequential:
		return FormatSequential
	case magicNodes:
		return FormatNodes
	default:
		return FormatUnknown
	}
}

// ParseHeader parses and validates the header at the start of b.
func ParseHeader(b []byte) (Header, error) {
	var h Header

	if len(b) < 4 {
		return h, ErrTruncated
	}

	switch string(b[:4]) {
	case magicSequential:
		if len(b) < seqHeaderSize {
			return h, ErrTruncated
		}
		h.Format = FormatSequential
		h.VersionMajor = binary.LittleEndian.Uint16(b[4:6])
		h.VersionMinor = binary.LittleEndian.Uint16(b[6:8])
		h.EntryCount = binary.LittleEndian.Uint32(b[8:12])
		if h.VersionMajor != seqVersionMajor || h.VersionMinor != seqVersionMinor {
			return h, ErrVersion
		}
	case magicNodes:
		if len(b) < nodeHeaderSize {
			return h, ErrTruncated
		}
		h.Format = FormatNodes
		h.VersionMajor = binary.LittleEndian.Uint16(b[4:6])
		h.VersionMinor = binary.LittleEndian.Uint16(b[6:8])
		h.EntryCount = binary.LittleEndian.Uint32(b[8:12])
		h.WordCount = binary.LittleEndian.Uint32(b[12:16])
		h.RootOffset = binary.LittleEndian.Uint64(b[16:24])
		if h.VersionMajor != nodeVersionMajor {
			return h, ErrVersion
		}
	default:
		return h, ErrBadMagic
	}

	return h, nil
}

// headerBytes serializes the header.
func (h Header) headerBytes() []byte {
	switch h.Format {
	case FormatSequential:
		b := make([]byte, seqHeaderSize)
		copy(b[0:4], magicSequential)
		binary.LittleEndian.PutUint16(b[4:6], h.VersionMajor)
		binary.LittleEndian.PutUint16(b[6:8], h.VersionMinor)
		binary.LittleEndian.PutUint32(b[8:12], h.EntryCount)
		return b
	case FormatNodes:
		b := make([]byte, nodeHeaderSize)
		copy(b[0:4], magicNodes)
		binary.LittleEndian.PutUint16(b[4:6], h.VersionMajor)
		binary.LittleEndian.PutUint16(b[6:8], h.VersionMinor)
		binary.LittleEndian.PutUint32(b[8:12], h.EntryCount)
		binary.LittleEndian.PutUint32(b[12:16], h.WordCount)
		binary.LittleEndian.PutUint64(b[16:24], h.RootOffset)
		return b
	default:
		return nil
	}
}
