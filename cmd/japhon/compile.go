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

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-japhon/trie"
	"github.com/ianlewis/go-japhon/triefile"
)

var compileCommand = &cli.Command{
	Name:      "compile",
	Usage:     "Compile a JSON dictionary to a binary .trie file",
	ArgsUsage: "[JSON] [OUT]",
	Description: strings.Join([]string{
		"Compile a JSON dictionary of text to phoneme mappings into a",
		"binary .trie file. The node format loads without parsing and is",
		"read directly from a memory mapping; the sequential format is a",
		"compact record stream.",
	}, "\n"),
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Usage:   "output format: nodes or sequential",
			Aliases: []string{"f"},
			Value:   "nodes",
		},
	},
	Action: func(c *cli.Context) error {
		logger := newLogger(c)

		if c.Args().Len() != 2 {
			return fmt.Errorf("%w: expected JSON and OUT arguments", ErrFlagParse)
		}
		jsonPath := c.Args().Get(0)
		outPath := c.Args().Get(1)

		b, err := os.ReadFile(jsonPath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", jsonPath, err)
		}

		var entries map[string]string
		if err := json.Unmarshal(b, &entries); err != nil {
			return fmt.Errorf("parsing %q: %w", jsonPath, err)
		}
		logger.Debug().Int("entries", len(entries)).Msg("parsed dictionary")

		switch c.String("format") {
		case "nodes":
			err = compileNodes(entries, outPath)
		case "sequential":
			err = compileSequential(entries, outPath)
		default:
			return fmt.Errorf("%w: unknown format %q", ErrFlagParse, c.String("format"))
		}
		if err != nil {
			return err
		}

		logger.Debug().Str("path", outPath).Msg("wrote dictionary")
		return nil
	},
}

func compileNodes(entries map[string]string, outPath string) error {
	tr := trie.New()
	for k, v := range entries {
		tr.Insert([]rune(k), v)
	}

	b, err := triefile.MarshalNodes(tr, uint32(tr.Len()), 0)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", outPath, err)
	}
	return nil
}

func compileSequential(entries map[string]string, outPath string) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %q: %w", outPath, err)
	}
	defer f.Close()

	w, err := triefile.NewWriter(f, uint32(len(entries)))
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := w.WriteEntry(triefile.Entry{Key: k, Value: entries[k]}); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}
