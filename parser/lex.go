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

package parser

import (
	"cc99c/ast"
	"cc99c/diag"

	"github.com/google/gapid/core/text/parse"
	"github.com/google/gapid/core/text/parse/cst"
)

// keywords is the set of reserved words; an identifier rule must reject
// these so that e.g. "int" is never mistaken for a declarator name.
var keywords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true, "_Bool": true,
	"struct": true, "union": true, "typedef": true,
	"extern": true, "static": true, "_Thread_local": true, "auto": true, "register": true,
	"const": true, "volatile": true, "restrict": true, "_Atomic": true,
	"inline": true, "_Noreturn": true,
	"if": true, "else": true, "switch": true, "case": true, "default": true,
	"while": true, "do": true, "for": true, "break": true, "continue": true,
	"return": true, "goto": true, "sizeof": true,
}

// operators is the set of multi-character and single-character operator
// spellings the grammar recognizes, ordered longest-first so that scanning
// never stops at a prefix of a longer operator (e.g. "<<=" must be tried
// before "<<" and "<").
var operators = []string{
	"...", "<<=", ">>=",
	"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "&=", "^=", "|=",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "~", "&", "|", "^",
	".", ",", ";", ":", "?", "(", ")", "{", "}", "[", "]",
}

func peekKeyword(p *parse.Parser, kw string) bool {
	if !p.AlphaNumeric() {
		return false
	}
	ok := p.Token().String() == kw
	p.Rollback()
	return ok
}

func keyword(p *parse.Parser, b *cst.Branch, kw string) bool {
	if !p.AlphaNumeric() {
		return false
	}
	if p.Token().String() != kw {
		p.Rollback()
		return false
	}
	p.ParseLeaf(b, nil)
	return true
}

func requireKeyword(p *parse.Parser, b *cst.Branch, kw string) {
	if !keyword(p, b, kw) {
		p.Expected(kw)
	}
}

func scanOperator(p *parse.Parser) string {
	for _, op := range operators {
		if p.String(op) {
			return op
		}
	}
	return ""
}

func peekOperator(p *parse.Parser, op string) bool {
	scanned := scanOperator(p)
	p.Rollback()
	return scanned == op
}

func operator(p *parse.Parser, b *cst.Branch, op string) bool {
	scanned := scanOperator(p)
	if scanned != op {
		p.Rollback()
		return false
	}
	p.ParseLeaf(b, nil)
	return true
}

func requireOperator(p *parse.Parser, b *cst.Branch, op string) {
	if !operator(p, b, op) {
		p.Expected(op)
	}
}

// keywordSpan and operatorSpan are keyword/operator in the same ordered-
// choice style, but they additionally report the consumed token's span so
// that a rule which starts or ends on a bare keyword/operator (rather than
// on a child node that already carries one) can build its own Span().
func keywordSpan(s *state, p *parse.Parser, b *cst.Branch, kw string) (diag.Span, bool) {
	if !p.AlphaNumeric() {
		return diag.Span{}, false
	}
	if p.Token().String() != kw {
		p.Rollback()
		return diag.Span{}, false
	}
	var span diag.Span
	p.ParseLeaf(b, func(p *parse.Parser, l *cst.Leaf) {
		span = s.span(p.Consume())
	})
	return span, true
}

func requireKeywordSpan(s *state, p *parse.Parser, b *cst.Branch, kw string) diag.Span {
	span, ok := keywordSpan(s, p, b, kw)
	if !ok {
		p.Expected(kw)
	}
	return span
}

func operatorSpan(s *state, p *parse.Parser, b *cst.Branch, op string) (diag.Span, bool) {
	scanned := scanOperator(p)
	if scanned != op {
		p.Rollback()
		return diag.Span{}, false
	}
	var span diag.Span
	p.ParseLeaf(b, func(p *parse.Parser, l *cst.Leaf) {
		span = s.span(p.Consume())
	})
	return span, true
}

func requireOperatorSpan(s *state, p *parse.Parser, b *cst.Branch, op string) diag.Span {
	span, ok := operatorSpan(s, p, b, op)
	if !ok {
		p.Expected(op)
	}
	return span
}

// markStart returns a zero-width span at the parser's current position, for
// use as the start of a composite node (a declaration, a statement) whose
// first token is scanned by a helper, like tryDeclarationSpecifiers, that
// does not itself report a span. It relies on the parser always having
// fully skipped prefix whitespace/comments by the time a rule is entered,
// so the reader's offset and cursor already coincide with the next real
// token's first rune.
func markStart(s *state, p *parse.Parser) diag.Span {
	return s.span(p.Token())
}

// ident scans a plain identifier that is not a reserved keyword. It
// consumes nothing and returns ok=false on failure, per the PEG contract.
func ident(p *parse.Parser) (name string, tok cst.Token, ok bool) {
	if !p.AlphaNumeric() {
		return "", cst.Token{}, false
	}
	t := p.Token()
	text := t.String()
	if keywords[text] {
		p.Rollback()
		return "", cst.Token{}, false
	}
	p.Consume()
	return text, t, true
}

func identifier(s *state, p *parse.Parser, b *cst.Branch) *ast.Ident {
	name, tok, ok := ident(p)
	if !ok {
		return nil
	}
	n := &ast.Ident{Name: name}
	p.ParseLeaf(b, nil)
	n.SpanVal = s.span(tok)
	return n
}

func requireIdentifierName(s *state, p *parse.Parser, b *cst.Branch) string {
	n := identifier(s, p, b)
	if n == nil {
		p.Expected("identifier")
		return ""
	}
	return n.Name
}

// namedSpan pairs an identifier's text with its span, for callers (like a
// labeled statement) that need both but have no other node to hang the
// span off of.
type namedSpan struct {
	name string
	span diag.Span
}

func requireIdentifierNameSpan(s *state, p *parse.Parser, b *cst.Branch) namedSpan {
	n := identifier(s, p, b)
	if n == nil {
		p.Expected("identifier")
		return namedSpan{}
	}
	return namedSpan{name: n.Name, span: n.Span()}
}
