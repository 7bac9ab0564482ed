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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Entry is a sequential-format dictionary record.
type Entry struct {
	// Key is the dictionary key text.
	Key string

	// Value is the phoneme value. It is empty for pure presence markers
	// such as word-list entries.
	Value string
}

// maxEntrySize caps the size of a single record. A length prefix larger
// than this indicates a corrupt file, not a real record.
const maxEntrySize = 16 * 1024 * 1024

// Scanner scans a sequential-format ("JPHO") buffer from start to end.
type Scanner struct {
	s         *bufio.Scanner
	header    Header
	remaining uint32
	err       error
}

// NewScanner returns a scanner reading sequential-format records from r.
// The header is read and validated immediately.
func NewScanner(r io.Reader) (*Scanner, error) {
	hdr := make([]byte, seqHeaderSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	h, err := ParseHeader(hdr)
	if err != nil {
		return nil, err
	}
	if h.Format != FormatSequential {
		return nil, fmt.Errorf("%w: expected sequential format", ErrBadMagic)
	}

	s := &Scanner{
		s:         bufio.NewScanner(r),
		header:    h,
		remaining: h.EntryCount,
	}
	s.s.Buffer(make([]byte, 0, 64*1024), maxEntrySize)
	s.s.Split(s.splitEntry)
	return s, nil
}

// Header returns the validated file header.
func (s *Scanner) Header() Header {
	return s.header
}

// Scan advances to the next record. It returns false when all declared
// records have been read or an error occurs.
func (s *Scanner) Scan() bool {
	if s.remaining == 0 {
		return false
	}
	if !s.s.Scan() {
		// Running out of input before the declared count is a format
		// error, not a clean EOF.
		if s.s.Err() == nil {
			s.err = ErrTruncated
		}
		return false
	}
	s.remaining--
	return true
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Entry returns the current record.
func (s *Scanner) Entry() Entry {
	b := s.s.Bytes()
	key, b := field(b)
	value, _ := field(b)
	return Entry{Key: string(key), Value: string(value)}
}

// field decodes one varint length-prefixed field, clamping the length to
// the bytes actually present.
func field(b []byte) ([]byte, []byte) {
	fieldLen, n := binary.Uvarint(b)
	if n <= 0 {
		return nil, nil
	}
	b = b[n:]
	if fieldLen > uint64(len(b)) {
		fieldLen = uint64(len(b))
	}
	return b[:fieldLen], b[fieldLen:]
}

// splitEntry splits one varint length-prefixed record.
func (s *Scanner) splitEntry(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	size := 0
	for i := 0; i < 2; i++ {
		fieldLen, n := binary.Uvarint(data[size:])
		if n <= 0 {
			// Incomplete or overlong varint.
			if atEOF || n < 0 {
				return 0, nil, ErrTruncated
			}
			return 0, nil, nil
		}
		// A length prefix beyond the record size cap can never be
		// satisfied; fail before it poisons the size arithmetic.
		if fieldLen > maxEntrySize {
			return 0, nil, ErrTruncated
		}
		size += n + int(fieldLen)
	}

	if len(data) < size {
		if atEOF {
			return 0, nil, ErrTruncated
		}
		// Request more data.
		return 0, nil, nil
	}

	return size, data[:size], nil
}
