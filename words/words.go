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

// Package words implements the word dictionary and dictionary-driven word
// segmentation.
//
// The segmenter needs no grammar lexicon. Known words come from the word
// dictionary with the phoneme dictionary as a fallback source of tokens,
// and any gap between known words is emitted as a single grammatical
// token.
package words

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-japhon/codepoint"
	"github.com/ianlewis/go-japhon/furigana"
	"github.com/ianlewis/go-japhon/internal/folding"
	"github.com/ianlewis/go-japhon/internal/jptext"
	"github.com/ianlewis/go-japhon/trie"
)

// Dict is a dictionary of known words. Entries carry no phoneme; they are
// presence markers consulted during segmentation.
type Dict struct {
	trie *trie.Trie
}

// NewDict returns a new empty word dictionary.
func NewDict() *Dict {
	return &Dict{
		trie: trie.New(),
	}
}

// Add inserts a word.
func (d *Dict) Add(word string) {
	d.trie.Insert([]rune(word), "")
}

// ReadWords reads a line-oriented word list from r. Lines are folded of
// surrounding whitespace; empty lines are skipped. It returns the number
// of words read.
func (d *Dict) ReadWords(r io.Reader) (int, error) {
	var n int

	folder := &folding.WhitespaceFolder{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line, _, err := transform.String(folder, scanner.Text())
		if err != nil {
			return n, fmt.Errorf("folding word: %w", err)
		}
		folder.Reset()
		if line == "" {
			continue
		}
		d.Add(line)
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("reading word list: %w", err)
	}

	return n, nil
}

// Len returns the number of distinct words.
func (d *Dict) Len() int {
	return d.trie.Len()
}

// Contains reports whether word is in the dictionary.
func (d *Dict) Contains(word string) bool {
	return d.trie.Contains([]rune(word))
}

// Index returns the word trie. It is consulted by the furigana parser for
// compound detection.
func (d *Dict) Index() trie.Index {
	return d.trie
}

// Segment splits parsed segments into word tokens. Hint segments are
// atomic and emit their reading as a single token. Normal text is scanned
// with the word dictionary first and fallback, usually the phoneme
// dictionary's index, as a secondary source of known tokens. fallback may
// be nil.
func (d *Dict) Segment(segments []furigana.Segment, fallback trie.Index) []string {
	var tokens []string

	for _, segment := range segments {
		if segment.Kind == furigana.Hint {
			tokens = append(tokens, segment.Reading)
			continue
		}
		tokens = d.segmentText(tokens, segment.Text, fallback)
	}

	return tokens
}

// segmentText appends the tokens of one plain text span.
func (d *Dict) segmentText(tokens []string, text string, fallback trie.Index) []string {
	cps, offsets := codepoint.DecodeString(text)

	pos := 0
	for pos < len(cps) {
		if jptext.IsASCIISpace(cps[pos]) {
			pos++
			continue
		}

		n, _, ok := d.trie.LongestMatch(cps, pos)
		if !ok && fallback != nil {
			n, _, ok = fallback.LongestMatch(cps, pos)
		}
		if ok {
			tokens = append(tokens, text[offsets[pos]:offsets[pos+n]])
			pos += n
			continue
		}

		// Grammar run: no known token starts here, so accumulate scalars
		// until the next known word, whitespace, or end of text. The run
		// becomes a single token, capturing particles and conjugation
		// suffixes without a particle list.
		start := pos
		for pos < len(cps) {
			if jptext.IsASCIISpace(cps[pos]) {
				break
			}
			if _, _, ok := d.trie.LongestMatch(cps, pos); ok {
				break
			}
			pos++
		}
		if pos > start {
			tokens = append(tokens, text[offsets[start]:offsets[pos]])
		}
	}

	return tokens
}
