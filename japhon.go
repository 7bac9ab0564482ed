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

package japhon

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ianlewis/go-japhon/furigana"
	"github.com/ianlewis/go-japhon/phoneme"
	"github.com/ianlewis/go-japhon/triefile"
	"github.com/ianlewis/go-japhon/words"
)

// ErrNotInitialized indicates a conversion was attempted before a phoneme
// dictionary was loaded, or after Close.
var ErrNotInitialized = errors.New("japhon: dictionary not loaded")

// topicParticle is the standalone hiragana は segmentation token.
const topicParticle = "は"

// Result is the detailed output of a conversion.
type Result struct {
	// Phonemes is the converted phoneme string.
	Phonemes string

	// Matches lists every dictionary hit with byte offsets into the
	// converted token stream.
	Matches []phoneme.Match

	// Unmatched lists the characters that passed through unconverted.
	Unmatched []string

	// Elapsed is the wall time the conversion took.
	Elapsed time.Duration
}

// Converter converts Japanese text to phonemes. It is a session object: a
// phoneme dictionary is loaded once, then conversions may run concurrently
// from any goroutine.
//
// Loading publishes a fully built dictionary with an atomic swap, so
// conversions racing a load see either the old or the new dictionary,
// never a partial one.
type Converter struct {
	// mu serializes loads and Close. Conversion does not take it.
	mu sync.Mutex

	dict  atomic.Pointer[phoneme.Dict]
	words atomic.Pointer[words.Dict]

	// segment gates word segmentation. Segmentation also requires a
	// loaded word dictionary.
	segment atomic.Bool

	// file owns the memory mapping behind a zero-copy dictionary. It must
	// outlive the published dict that reads it.
	file *triefile.File

	closed bool
}

// New returns a Converter with no dictionaries loaded.
func New() *Converter {
	return &Converter{}
}

// SetSegmentation enables or disables word segmentation. Toggling does not
// reload dictionaries and is idempotent. Segmentation only takes effect
// once a word dictionary is loaded.
func (c *Converter) SetSegmentation(enabled bool) {
	c.segment.Store(enabled)
}

// Segmentation reports whether word segmentation is enabled.
func (c *Converter) Segmentation() bool {
	return c.segment.Load()
}

// EntryCount returns the number of phoneme dictionary entries, or -1 if no
// dictionary is loaded.
func (c *Converter) EntryCount() int {
	d := c.dict.Load()
	if d == nil {
		return -1
	}
	return d.Len()
}

// WordCount returns the number of word dictionary entries, or -1 if no
// word dictionary is loaded.
func (c *Converter) WordCount() int {
	w := c.words.Load()
	if w == nil {
		return -1
	}
	return w.Len()
}

// Convert converts text to a phoneme string. With segmentation enabled and
// a word dictionary loaded the text is split into words first and the
// words' phonemes are joined with single spaces; otherwise the whole text
// converts as one span.
func (c *Converter) Convert(text string) (string, error) {
	d := c.dict.Load()
	if d == nil {
		return "", ErrNotInitialized
	}

	w := c.words.Load()
	if !c.segment.Load() || w == nil {
		return d.Convert(text), nil
	}

	var b strings.Builder
	for _, token := range c.tokenize(text, d, w) {
		out := convertToken(d, token)
		if out == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// ConvertDetailed converts text like Convert, additionally reporting each
// match, the unconverted characters, and elapsed wall time.
func (c *Converter) ConvertDetailed(text string) (*Result, error) {
	start := time.Now()

	d := c.dict.Load()
	if d == nil {
		return nil, ErrNotInitialized
	}

	var result Result
	w := c.words.Load()
	if !c.segment.Load() || w == nil {
		r := d.ConvertDetailed(text)
		result.Phonemes = r.Phonemes
		result.Matches = r.Matches
		result.Unmatched = r.Unmatched
		result.Elapsed = time.Since(start)
		return &result, nil
	}

	var b strings.Builder
	offset := 0
	for _, token := range c.tokenize(text, d, w) {
		var out string
		if token == topicParticle {
			out = "wa"
			result.Matches = append(result.Matches, phoneme.Match{
				Original: token,
				Phoneme:  "wa",
				Offset:   offset,
			})
		} else {
			r := d.ConvertDetailed(token)
			for i := range r.Matches {
				r.Matches[i].Offset += offset
			}
			result.Matches = append(result.Matches, r.Matches...)
			result.Unmatched = append(result.Unmatched, r.Unmatched...)
			out = r.Phonemes
		}
		offset += len(token)

		if out == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(out)
	}

	result.Phonemes = b.String()
	result.Elapsed = time.Since(start)
	return &result, nil
}

// tokenize runs the furigana parser and the segmenter over text.
func (c *Converter) tokenize(text string, d *phoneme.Dict, w *words.Dict) []string {
	segments := furigana.Parse(text, w.Index())
	return w.Segment(segments, d.Index())
}

// convertToken converts a single segmentation token, applying the
// topic-particle rule for a standalone は token.
func convertToken(d *phoneme.Dict, token string) string {
	if token == topicParticle {
		return "wa"
	}
	return d.Convert(token)
}

// Close releases the dictionary resources, including any memory mapping
// behind a zero-copy dictionary. Close is idempotent; conversions after
// Close fail with ErrNotInitialized.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.dict.Store(nil)
	c.words.Store(nil)

	if c.file != nil {
		err := c.file.Close()
		c.file = nil
		if err != nil {
			return err
		}
	}
	return nil
}
