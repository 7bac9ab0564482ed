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
	"bufio"
	"fmt"
	"strings"

	"github.com/rodaine/table"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	japhon "github.com/ianlewis/go-japhon"
)

var convertCommand = &cli.Command{
	Name:      "convert",
	Usage:     "Convert Japanese text to phonemes",
	ArgsUsage: "[TEXT...]",
	Description: strings.Join([]string{
		"Convert Japanese text to phonemes.",
		"With no TEXT arguments an interactive prompt reads lines from stdin.",
	}, "\n"),
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "dict",
			Usage:    "load the phoneme dictionary from `FILE`",
			Aliases:  []string{"d"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "words",
			Usage:   "load the word list from `FILE` and enable segmentation",
			Aliases: []string{"w"},
		},
		&cli.BoolFlag{
			Name:    "detail",
			Usage:   "print per-match detail and timing",
			Aliases: []string{"D"},
		},
	},
	Action: func(c *cli.Context) error {
		logger := newLogger(c)

		converter, err := loadConverter(c, logger)
		if err != nil {
			return err
		}
		defer converter.Close()

		if c.Args().Len() == 0 {
			return runInteractive(c, converter)
		}

		for _, text := range c.Args().Slice() {
			if err := printConversion(c, converter, text); err != nil {
				return err
			}
		}
		return nil
	},
}

// loadConverter builds a converter from the convert command's flags.
func loadConverter(c *cli.Context, logger zerolog.Logger) (*japhon.Converter, error) {
	converter := japhon.New()

	dictPath := c.String("dict")
	if err := converter.LoadDictionary(dictPath); err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}
	logger.Debug().
		Str("path", dictPath).
		Int("entries", converter.EntryCount()).
		Msg("loaded phoneme dictionary")

	if wordsPath := c.String("words"); wordsPath != "" {
		if err := converter.LoadWords(wordsPath); err != nil {
			converter.Close()
			return nil, fmt.Errorf("loading word list: %w", err)
		}
		converter.SetSegmentation(true)
		logger.Debug().
			Str("path", wordsPath).
			Int("words", converter.WordCount()).
			Msg("loaded word list")
	}

	return converter, nil
}

// runInteractive reads lines from stdin and converts each one.
func runInteractive(c *cli.Context, converter *japhon.Converter) error {
	reader := bufio.NewScanner(c.App.Reader)
	for {
		fmt.Fprint(c.App.Writer, "> ")
		if !reader.Scan() {
			break
		}
		text := strings.TrimSpace(reader.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			break
		}
		if err := printConversion(c, converter, text); err != nil {
			return err
		}
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// printConversion converts one text and prints the result.
func printConversion(c *cli.Context, converter *japhon.Converter, text string) error {
	if !c.Bool("detail") {
		phonemes, err := converter.Convert(text)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, phonemes)
		return nil
	}

	result, err := converter.ConvertDetailed(text)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, result.Phonemes)
	fmt.Fprintln(c.App.Writer)

	tbl := table.New("Offset", "Original", "Phoneme").WithWriter(c.App.Writer)
	for _, m := range result.Matches {
		tbl.AddRow(m.Offset, m.Original, m.Phoneme)
	}
	tbl.Print()

	if len(result.Unmatched) > 0 {
		fmt.Fprintf(c.App.Writer, "\nUnmatched: %s\n", strings.Join(result.Unmatched, " "))
	}
	fmt.Fprintf(c.App.Writer, "\nElapsed: %v\n", result.Elapsed)
	return nil
}
