// Copyright (C) 2024 The cc99c Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser turns phase-6 preprocessed C99 source into cc99c/ast's
// typed tree. It is a PEG-style grammar in the same sense gapil/parser is:
// every rule is an ordered choice of alternatives tried in order, backed by
// github.com/google/gapid/core/text/parse's scannerless parser combinator
// for token scanning, skip handling and error collection. A rule either
// succeeds having consumed input and built a node, or fails having
// consumed nothing (so the caller is free to try the next alternative).
package parser

import (
	"unicode/utf8"

	"cc99c/ast"
	"cc99c/diag"

	"github.com/google/gapid/core/text/parse"
	"github.com/google/gapid/core/text/parse/cst"
)

// state carries everything a grammar rule needs beyond the parse.Parser
// itself: the running set of known typedef names (needed to disambiguate a
// declaration or a cast from a plain expression), and the byte-offset
// conversion table (the combinator indexes by rune, cc99c/diag.Span is
// defined in bytes).
type state struct {
	typedefs map[string]bool
	byteOf   []int // byteOf[i] is the byte offset of rune i in the source.
}

func newState(data string) *state {
	byteOf := make([]int, 0, len(data)+1)
	off := 0
	for _, r := range data {
		byteOf = append(byteOf, off)
		off += utf8.RuneLen(r)
	}
	byteOf = append(byteOf, off)
	return &state{typedefs: map[string]bool{}, byteOf: byteOf}
}

func (s *state) span(tok cst.Token) diag.Span {
	start, end := tok.Start, tok.End
	if start < 0 {
		start = 0
	}
	if end > len(s.byteOf)-1 {
		end = len(s.byteOf) - 1
	}
	if start > end {
		start = end
	}
	return diag.Span{Start: s.byteOf[start], End: s.byteOf[end]}
}

// Parse parses preprocessed C99 source (the output of cc99c/preprocess.Run)
// into a translation unit. filename is used only to tag diagnostics.
// Parsing never stops at the first error: like the IR generator's passes,
// it keeps going so that a single run reports every malformed declaration
// it can recover from.
func Parse(filename, data string) (*ast.TranslationUnit, []*diag.Error) {
	s := newState(data)
	var tu *ast.TranslationUnit
	root := func(p *parse.Parser, b *cst.Branch) {
		tu = translationUnit(s, p, b)
	}
	raw := parse.Parse(root, filename, data, parse.NewSkip("//", "/*", "*/"), nil)

	errs := make([]*diag.Error, 0, len(raw))
	for _, e := range raw {
		span := diag.NoSpan
		if e.At != nil {
			span = s.span(e.At.Tok())
		}
		errs = append(errs, diag.New(diag.ParseError, span, "%s", e.Message))
	}
	return tu, errs
}
