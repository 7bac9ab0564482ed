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

// Package jptext classifies the code points the segmentation heuristics
// care about: kana, CJK ideographs, and the punctuation that terminates a
// word during the furigana boundary scan.
package jptext

// IsHiragana reports whether cp is in the hiragana block (U+3040-U+309F).
func IsHiragana(cp rune) bool {
	return cp >= 0x3040 && cp <= 0x309F
}

// IsKatakana reports whether cp is in the katakana block (U+30A0-U+30FF).
func IsKatakana(cp rune) bool {
	return cp >= 0x30A0 && cp <= 0x30FF
}

// IsKana reports whether cp is hiragana or katakana.
func IsKana(cp rune) bool {
	return IsHiragana(cp) || IsKatakana(cp)
}

// IsKanji reports whether cp is a CJK ideograph. The check covers the
// unified block, extension A, the compatibility block, and the
// supplementary-plane extensions.
func IsKanji(cp rune) bool {
	switch {
	case cp >= 0x4E00 && cp <= 0x9FFF:
		return true
	case cp >= 0x3400 && cp <= 0x4DBF:
		return true
	case cp >= 0xF900 && cp <= 0xFAFF:
		return true
	case cp >= 0x20000 && cp <= 0x2FA1F:
		return true
	}
	return false
}

// IsASCIISpace reports whether cp is an ASCII whitespace character. The
// segmentation and hint-trimming rules use this narrow set rather than
// full Unicode whitespace.
func IsASCIISpace(cp rune) bool {
	return cp == ' ' || cp == '\t' || cp == '\n' || cp == '\r'
}

// IsBoundary reports whether cp always terminates the backward scan for a
// word boundary: Japanese sentence punctuation, a closing hint bracket
// from a preceding hint, or ASCII punctuation/whitespace.
func IsBoundary(cp rune) bool {
	switch cp {
	case 0x300D, // 」
		0x3001, // 、
		0x3002, // 。
		0xFF01, // ！
		0xFF1F, // ？
		0xFF09, // ）
		0xFF3D: // ］
		return true
	}

	if cp < 0x80 {
		switch cp {
		case '.', ',', '!', '?', ';', ':',
			'(', ')', '[', ']', '{', '}',
			'"', '\'', '-', '/', '\\', '|',
			' ', '\t', '\n', '\r':
			return true
		}
	}

	return false
}
