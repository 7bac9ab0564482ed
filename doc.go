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

// Package japhon implements dictionary-driven conversion of Japanese text
// to phoneme strings in pure Go.
//
// A Converter loads a phoneme dictionary from one of several sources:
//  1. A node-format .trie file, traversed in place from a read-only
//     memory mapping.
//  2. A sequential-format .trie file, replayed into an in-memory trie.
//     Sequential files may be dictzip-compressed (.trie.dz).
//  3. A JSON object mapping Japanese text to phoneme strings.
//
// Conversion is a greedy longest match against the dictionary; characters
// with no entry pass through unchanged. With a word list loaded (plain or
// gzip-compressed) the converter can additionally segment its input into
// words, honoring inline furigana reading hints written as kanji「reading」,
// and join each word's phonemes with spaces.
package japhon
