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

// Package codepoint implements lenient UTF-8 pre-decoding.
//
// All dictionary algorithms operate on code points rather than raw bytes,
// and each input string is decoded exactly once up front. The decoder keeps
// the byte offset at which every code point started so callers can slice
// the original string without re-encoding.
//
// Decoding is deliberately lenient: a malformed lead byte, or a sequence
// truncated by the end of input, is passed through as a single raw byte
// value instead of being rejected. This is not UTF-8 validation; it is a
// crash-avoiding policy for dirty input.
package codepoint

// DecodeAll decodes b into code points. offsets[i] is the byte offset at
// which cps[i] starts; a trailing sentinel equal to len(b) is appended so
// that offsets[i+1]-offsets[i] is always the encoded width of cps[i].
func DecodeAll(b []byte) (cps []rune, offsets []int) {
	// Most dictionary keys are Japanese, so assume 3 bytes per code point
	// when sizing.
	n := len(b)/3 + 1
	cps = make([]rune, 0, n)
	offsets = make([]int, 0, n+1)

	pos := 0
	for pos < len(b) {
		offsets = append(offsets, pos)
		cp, size := decode(b, pos)
		cps = append(cps, cp)
		pos += size
	}
	offsets = append(offsets, len(b))

	return cps, offsets
}

// DecodeString is DecodeAll for a string input.
func DecodeString(s string) (cps []rune, offsets []int) {
	return DecodeAll([]byte(s))
}

// decode decodes the code point starting at b[pos] and returns it along
// with the number of bytes consumed. Malformed or truncated sequences
// yield the single lead byte as a raw value.
func decode(b []byte, pos int) (rune, int) {
	c := b[pos]

	switch {
	case c < 0x80:
		return rune(c), 1
	case c&0xE0 == 0xC0:
		if pos+1 >= len(b) {
			break
		}
		return rune(c&0x1F)<<6 | rune(b[pos+1]&0x3F), 2
	case c&0xF0 == 0xE0:
		if pos+2 >= len(b) {
			break
		}
		return rune(c&0x0F)<<12 | rune(b[pos+1]&0x3F)<<6 | rune(b[pos+2]&0x3F), 3
	case c&0xF8 == 0xF0:
		if pos+3 >= len(b) {
			break
		}
		return rune(c&0x07)<<18 | rune(b[pos+1]&0x3F)<<12 |
			rune(b[pos+2]&0x3F)<<6 | rune(b[pos+3]&0x3F), 4
	}

	// Lenient fallback: pass the byte through untouched.
	return rune(c), 1
}

// Append appends the canonical UTF-8 encoding of cp to dst and returns the
// extended slice. It is the inverse of decode for every scalar value up to
// 0x10FFFF; raw byte values above 0x7F produced by the lenient fallback
// re-encode as two bytes.
func Append(dst []byte, cp rune) []byte {
	switch {
	case cp < 0x80:
		return append(dst, byte(cp))
	case cp < 0x800:
		return append(dst, 0xC0|byte(cp>>6), 0x80|byte(cp&0x3F))
	case cp < 0x10000:
		return append(dst,
			0xE0|byte(cp>>12),
			0x80|byte(cp>>6&0x3F),
			0x80|byte(cp&0x3F))
	default:
		return append(dst,
			0xF0|byte(cp>>18),
			0x80|byte(cp>>12&0x3F),
			0x80|byte(cp>>6&0x3F),
			0x80|byte(cp&0x3F))
	}
}

// String encodes a run of code points to a string.
func String(cps []rune) string {
	var b []byte
	for _, cp := range cps {
		b = Append(b, cp)
	}
	return string(b)
}
