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

// Package testutil provides test dictionary builders.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-japhon/trie"
	"github.com/ianlewis/go-japhon/triefile"
)

// MakeSequential builds a sequential-format buffer from entries. Entries
// are written in sorted key order so the output is deterministic.
func MakeSequential(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w, err := triefile.NewWriter(&buf, uint32(len(entries)))
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range keys {
		if err := w.WriteEntry(triefile.Entry{Key: k, Value: entries[k]}); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

// MakeNodes builds a node-format buffer from entries.
func MakeNodes(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	tr := trie.New()
	for k, v := range entries {
		tr.Insert([]rune(k), v)
	}

	b, err := triefile.MarshalNodes(tr, uint32(tr.Len()), 0)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// WriteTempFile writes b to a file with the given name under a temporary
// directory and returns its path.
func WriteTempFile(t *testing.T, name string, b []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteTempDictzip writes b dictzip-compressed to a file with the given
// name under a temporary directory and returns its path.
func WriteTempDictzip(t *testing.T, name string, b []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}
