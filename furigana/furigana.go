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

// Package furigana parses inline reading hints of the form kanji「reading」.
//
// Parsing is total: unterminated or empty hints degrade to plain text
// rather than failing. The parser only decides segment boundaries; it does
// not interpret readings.
package furigana

import (
	"github.com/ianlewis/go-japhon/codepoint"
	"github.com/ianlewis/go-japhon/internal/jptext"
	"github.com/ianlewis/go-japhon/trie"
)

const (
	bracketOpen  = 0x300C // 「
	bracketClose = 0x300D // 」
)

// Kind is the type of a parsed segment.
type Kind int

const (
	// NormalText is plain text with no reading hint.
	NormalText Kind = iota

	// Hint is annotated text: kanji with its hiragana reading.
	Hint
)

// Segment is one parsed span of input text.
type Segment struct {
	// Kind is the segment type.
	Kind Kind

	// Text is the segment text. For Hint segments it is the annotated
	// kanji, brackets excluded.
	Text string

	// Reading is the hint reading, trimmed of ASCII whitespace. Empty for
	// NormalText segments.
	Reading string

	// Offset is the byte offset of the segment in the input.
	Offset int
}

// Parse splits text into segments around reading hints. The optional word
// index enables compound detection: when the annotated kanji plus the text
// after the hint forms a known word, the hint is folded into a single
// NormalText segment with the kanji replaced by its reading.
func Parse(text string, words trie.Index) []Segment {
	var segments []Segment

	cps, offsets := codepoint.DecodeString(text)

	pos := 0
	for pos < len(cps) {
		open := scanFor(cps, pos, bracketOpen)
		if open < 0 {
			segments = appendText(segments, text, offsets, pos, len(cps))
			break
		}

		closing := scanFor(cps, open+1, bracketClose)
		if closing < 0 {
			// Unterminated hint, keep as plain text.
			segments = appendText(segments, text, offsets, pos, len(cps))
			break
		}

		wordStart := boundary(cps, pos, open)

		// Text before the annotated word passes through, capturing
		// particles and punctuation between hints.
		segments = appendText(segments, text, offsets, pos, wordStart)

		reading, ok := trimReading(cps, offsets, text, open+1, closing)
		if !ok {
			// An empty reading voids the whole hint.
			pos = closing + 1
			continue
		}

		if n := compoundLen(cps, words, wordStart, open, closing+1); n > 0 {
			// The kanji plus trailing text is a known word. Replace the
			// kanji with its reading and consume the whole compound as
			// plain text.
			segments = append(segments, Segment{
				Kind:   NormalText,
				Text:   reading + text[offsets[closing+1]:offsets[closing+1+n]],
				Offset: offsets[wordStart],
			})
			pos = closing + 1 + n
			continue
		}

		segments = append(segments, Segment{
			Kind:    Hint,
			Text:    text[offsets[wordStart]:offsets[open]],
			Reading: reading,
			Offset:  offsets[wordStart],
		})
		pos = closing + 1
	}

	return segments
}

// scanFor returns the index of the next occurrence of cp at or after
// start, or -1.
func scanFor(cps []rune, start int, cp rune) int {
	for i := start; i < len(cps); i++ {
		if cps[i] == cp {
			return i
		}
	}
	return -1
}

// appendText appends cps[start:end] as a NormalText segment if non-empty.
func appendText(segments []Segment, text string, offsets []int, start, end int) []Segment {
	if start >= end {
		return segments
	}
	return append(segments, Segment{
		Kind:   NormalText,
		Text:   text[offsets[start]:offsets[end]],
		Offset: offsets[start],
	})
}

// boundary finds the start of the word annotated by the hint whose opening
// bracket is at open. It scans backward no further than floor.
//
// The scan skips the trailing okurigana run to the last kanji, then
// continues backward. Punctuation always stops it. A kana stops it only
// when no kanji precedes the kana before the next punctuation; such a kana
// is a standalone prefix word, while a kana with kanji on both sides is
// okurigana inside a compound and is retained.
func boundary(cps []rune, floor, open int) int {
	lastKanji := open
	for lastKanji > floor && jptext.IsKana(cps[lastKanji-1]) {
		lastKanji--
	}
	if lastKanji > floor {
		lastKanji--
	}

	wordStart := lastKanji
	for i := lastKanji; i > floor; {
		i--
		cp := cps[i]

		if jptext.IsBoundary(cp) {
			return i + 1
		}

		if jptext.IsKana(cp) && !kanjiBefore(cps, floor, i) {
			return i + 1
		}

		wordStart = i
	}
	return wordStart
}

// kanjiBefore reports whether a kanji occurs before index i, looking no
// further back than floor or the nearest punctuation.
func kanjiBefore(cps []rune, floor, i int) bool {
	for ; i > floor; i-- {
		cp := cps[i-1]
		if jptext.IsBoundary(cp) {
			return false
		}
		if jptext.IsKanji(cp) {
			return true
		}
	}
	return false
}

// trimReading extracts the reading between the brackets, trimmed of ASCII
// whitespace. ok is false when the trimmed reading is empty.
func trimReading(cps []rune, offsets []int, text string, start, end int) (string, bool) {
	for start < end && jptext.IsASCIISpace(cps[start]) {
		start++
	}
	for end > start && jptext.IsASCIISpace(cps[end-1]) {
		end--
	}
	if start >= end {
		return "", false
	}
	return text[offsets[start]:offsets[end]], true
}

// compoundLen walks the word index through the annotated kanji
// cps[wordStart:open] and then through the text following the hint,
// starting at after. It returns the longest match length in post-hint
// code points, or 0 when the kanji plus any trailing text is not a known
// word.
func compoundLen(cps []rune, words trie.Index, wordStart, open, after int) int {
	if words == nil || after >= len(cps) {
		return 0
	}

	w := words.Walk()
	for i := wordStart; i < open; i++ {
		if !w.Step(cps[i]) {
			return 0
		}
	}

	n := 0
	for i := after; i < len(cps); i++ {
		if !w.Step(cps[i]) {
			break
		}
		if _, ok := w.Value(); ok {
			n = i - after + 1
		}
	}
	return n
}
