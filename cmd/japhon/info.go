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
	"fmt"
	"os"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-japhon/triefile"
)

var infoCommand = &cli.Command{
	Name:        "info",
	Usage:       "Print binary dictionary file information",
	ArgsUsage:   "[FILE...]",
	Description: "Print header information for binary .trie dictionary files.",
	Action: func(c *cli.Context) error {
		if c.Args().Len() == 0 {
			return fmt.Errorf("%w: expected FILE argument", ErrFlagParse)
		}

		tbl := table.New("File", "Format", "Version", "Entries", "Words").
			WithWriter(c.App.Writer)

		for _, path := range c.Args().Slice() {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %q: %w", path, err)
			}

			hdr := make([]byte, 24)
			n, err := f.Read(hdr)
			f.Close()
			if err != nil {
				return fmt.Errorf("reading %q: %w", path, err)
			}

			h, err := triefile.ParseHeader(hdr[:n])
			if err != nil {
				return fmt.Errorf("%q: %w", path, err)
			}

			words := "-"
			if h.Format == triefile.FormatNodes {
				words = fmt.Sprintf("%d", h.WordCount)
			}
			tbl.AddRow(
				path,
				h.Format,
				fmt.Sprintf("%d.%d", h.VersionMajor, h.VersionMinor),
				h.EntryCount,
				words,
			)
		}

		tbl.Print()
		return nil
	},
}
