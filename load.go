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
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-japhon/phoneme"
	"github.com/ianlewis/go-japhon/trie"
	"github.com/ianlewis/go-japhon/triefile"
	"github.com/ianlewis/go-japhon/words"
)

// LoadDictionary loads the phoneme dictionary at path. The format is
// detected from the content: a node-format file is memory-mapped for
// zero-copy lookups, a sequential file is replayed into an owned trie, and
// anything else is parsed as a JSON object of text to phoneme mappings.
//
// For a .json path a sibling .trie file is preferred when present, so
// shipping a compiled dictionary next to its source transparently speeds
// up loading. A .dz path is dictzip-decompressed first.
func (c *Converter) LoadDictionary(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrNotInitialized
	}

	if ext := filepath.Ext(path); strings.EqualFold(ext, ".json") {
		triePath := strings.TrimSuffix(path, ext) + ".trie"
		if _, err := os.Stat(triePath); err == nil {
			if err := c.loadDictionaryPath(triePath); err == nil {
				return nil
			}
			// A broken sibling falls back to the JSON source.
		}
	}

	return c.loadDictionaryPath(path)
}

// LoadDictionaryBytes loads a phoneme dictionary from an in-memory buffer
// using the same format detection as LoadDictionary. A node-format buffer
// is used in place; the caller must not modify it afterwards.
func (c *Converter) LoadDictionaryBytes(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrNotInitialized
	}

	return c.loadDictionaryBuffer(b)
}

func (c *Converter) loadDictionaryPath(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".dz") {
		b, err := readDictzip(path)
		if err != nil {
			return err
		}
		return c.loadDictionaryBuffer(b)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}

	magic := make([]byte, 4)
	n, err := io.ReadFull(f, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		f.Close()
		return fmt.Errorf("reading %q: %w", path, err)
	}
	magic = magic[:n]

	if triefile.Sniff(magic) == triefile.FormatNodes {
		// The node format is traversed in place from a read-only mapping.
		f.Close()
		tf, err := triefile.Open(path)
		if err != nil {
			return err
		}
		c.publish(phoneme.NewDict(tf.Trie(), int(tf.Header().EntryCount)), tf)
		return nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return fmt.Errorf("seeking %q: %w", path, err)
	}

	defer f.Close()
	if triefile.Sniff(magic) == triefile.FormatSequential {
		tr, n, err := readSequential(f)
		if err != nil {
			return err
		}
		c.publish(phoneme.NewDict(tr, n), nil)
		return nil
	}

	tr, entries, err := readJSON(f)
	if err != nil {
		return err
	}
	c.publish(phoneme.NewDict(tr, entries), nil)
	return nil
}

func (c *Converter) loadDictionaryBuffer(b []byte) error {
	switch triefile.Sniff(b) {
	case triefile.FormatNodes:
		f, err := triefile.OpenBytes(b)
		if err != nil {
			return err
		}
		c.publish(phoneme.NewDict(f.Trie(), int(f.Header().EntryCount)), f)
		return nil
	case triefile.FormatSequential:
		tr, n, err := readSequential(bytes.NewReader(b))
		if err != nil {
			return err
		}
		c.publish(phoneme.NewDict(tr, n), nil)
		return nil
	default:
		tr, n, err := readJSON(bytes.NewReader(b))
		if err != nil {
			return err
		}
		c.publish(phoneme.NewDict(tr, n), nil)
		return nil
	}
}

// publish swaps in the new dictionary and takes ownership of its backing
// file, closing the previous one. The caller holds c.mu.
func (c *Converter) publish(d *phoneme.Dict, file *triefile.File) {
	c.dict.Store(d)
	if c.file != nil {
		//nolint:errcheck // the old mapping is already replaced
		c.file.Close()
	}
	c.file = file
}

// LoadWords loads a line-oriented word list for segmentation. A .gz path
// is decompressed on the fly.
func (c *Converter) LoadWords(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrNotInitialized
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("opening %q: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	d := words.NewDict()
	if _, err := d.ReadWords(r); err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}

	c.words.Store(d)
	return nil
}

// LoadWordsReader loads a word list from r.
func (c *Converter) LoadWordsReader(r io.Reader) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrNotInitialized
	}

	d := words.NewDict()
	if _, err := d.ReadWords(r); err != nil {
		return err
	}

	c.words.Store(d)
	return nil
}

// readSequential replays a sequential-format stream into an owned trie.
func readSequential(r io.Reader) (*trie.Trie, int, error) {
	s, err := triefile.NewScanner(r)
	if err != nil {
		return nil, 0, err
	}

	tr := trie.New()
	for s.Scan() {
		e := s.Entry()
		tr.Insert([]rune(e.Key), e.Value)
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}

	return tr, tr.Len(), nil
}

// readJSON builds an owned trie from a JSON object of text to phoneme
// mappings.
func readJSON(r io.Reader) (*trie.Trie, int, error) {
	var entries map[string]string
	dec := json.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return nil, 0, fmt.Errorf("parsing dictionary JSON: %w", err)
	}

	tr := trie.New()
	for k, v := range entries {
		tr.Insert([]rune(k), v)
	}

	return tr, tr.Len(), nil
}

// readDictzip decompresses a dictzip file fully into memory.
func readDictzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	z, err := dictzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer z.Close()

	b, err := io.ReadAll(z)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return b, nil
}
