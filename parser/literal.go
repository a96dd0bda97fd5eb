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
	"strconv"
	"strings"

	"cc99c/ast"
	"cc99c/types"

	"github.com/google/gapid/core/text/parse"
	"github.com/google/gapid/core/text/parse/cst"
)

func isDigit(r rune) bool    { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool { return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') }

// scanNumber advances p across one C99 numeric constant (decimal, octal,
// hex, binary, or floating) including its suffix. It reports whether the
// literal is floating-shaped; the caller re-derives the value and type from
// the consumed text.
func scanNumber(p *parse.Parser) (float bool, ok bool) {
	if !isDigit(p.Peek()) && !(p.Peek() == '.' && isDigit(p.PeekN(1))) {
		return false, false
	}
	hex := false
	switch {
	case p.Peek() == '0' && (p.PeekN(1) == 'x' || p.PeekN(1) == 'X'):
		p.AdvanceN(2)
		hex = true
		for isHexDigit(p.Peek()) {
			p.Advance()
		}
	case p.Peek() == '0' && (p.PeekN(1) == 'b' || p.PeekN(1) == 'B'):
		p.AdvanceN(2)
		for p.Peek() == '0' || p.Peek() == '1' {
			p.Advance()
		}
	default:
		for isDigit(p.Peek()) {
			p.Advance()
		}
	}
	if !hex {
		if p.Peek() == '.' {
			float = true
			p.Advance()
			for isDigit(p.Peek()) {
				p.Advance()
			}
		}
		if p.Peek() == 'e' || p.Peek() == 'E' {
			float = true
			p.Advance()
			if p.Peek() == '+' || p.Peek() == '-' {
				p.Advance()
			}
			for isDigit(p.Peek()) {
				p.Advance()
			}
		}
	}
	if float {
		if p.Peek() == 'f' || p.Peek() == 'F' || p.Peek() == 'l' || p.Peek() == 'L' {
			p.Advance()
		}
	} else {
		for i := 0; i < 3; i++ {
			c := p.Peek()
			if c == 'u' || c == 'U' || c == 'l' || c == 'L' {
				p.Advance()
			} else {
				break
			}
		}
	}
	return float, true
}

// integerSuffixType resolves the u/l/ul/ll/ull suffix (case-insensitive,
// in that precedence order) of digits to its typed variant, per §4.2.
func integerSuffixType(suffix string) *types.Basic {
	suffix = strings.ToLower(suffix)
	unsigned := strings.Contains(suffix, "u")
	longLong := strings.Count(suffix, "l") >= 2
	long := strings.Count(suffix, "l") == 1

	switch {
	case unsigned && longLong:
		return types.Plain(types.ULLong)
	case unsigned && long:
		return types.Plain(types.ULong)
	case unsigned:
		return types.Plain(types.UInt)
	case longLong:
		return types.Plain(types.LLong)
	case long:
		return types.Plain(types.Long)
	default:
		return types.Plain(types.Int)
	}
}

func splitIntegerSuffix(text string) (digits, suffix string) {
	i := len(text)
	for i > 0 {
		c := text[i-1]
		if c == 'u' || c == 'U' || c == 'l' || c == 'L' {
			i--
			continue
		}
		break
	}
	return text[:i], text[i:]
}

func parseIntLiteral(s *state, text string, tok cst.Token) *ast.IntLiteral {
	digits, suffix := splitIntegerSuffix(text)
	base := 10
	switch {
	case strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X"):
		base = 16
		digits = digits[2:]
	case strings.HasPrefix(digits, "0b") || strings.HasPrefix(digits, "0B"):
		base = 2
		digits = digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base = 8
	}
	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		value = 0
	}
	return &ast.IntLiteral{SpanVal: s.span(tok), Value: value, Type: integerSuffixType(suffix)}
}

func parseFloatLiteral(s *state, text string, tok cst.Token) *ast.FloatLiteral {
	suffix := byte(0)
	if n := len(text); n > 0 {
		last := text[n-1]
		if last == 'f' || last == 'F' || last == 'l' || last == 'L' {
			suffix = last
			text = text[:n-1]
		}
	}
	value, _ := strconv.ParseFloat(text, 64)
	ty := types.Plain(types.Double)
	if suffix == 'f' || suffix == 'F' {
		ty = types.Plain(types.Float)
	}
	return &ast.FloatLiteral{SpanVal: s.span(tok), Value: value, Type: ty}
}

func numberLiteral(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	float, ok := scanNumber(p)
	if !ok {
		return nil
	}
	var result ast.Expr
	p.ParseLeaf(b, func(p *parse.Parser, l *cst.Leaf) {
		tok := p.Consume()
		text := tok.String()
		if float {
			result = parseFloatLiteral(s, text, tok)
		} else {
			result = parseIntLiteral(s, text, tok)
		}
	})
	return result
}

// escapeSet is every escape sequence §4.2 requires the literal grammar to
// honor: \' \" \? \\ \a \b \f \n \r \t \v \0.
var escapeSet = map[byte]byte{
	'\'': '\'', '"': '"', '?': '?', '\\': '\\',
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n',
	'r': '\r', 't': '\t', 'v': '\v', '0': 0,
}

func unescape(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			if v, ok := escapeSet[raw[i+1]]; ok {
				b.WriteByte(v)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func charLiteral(s *state, p *parse.Parser, b *cst.Branch) *ast.CharLiteral {
	if !p.Rune('\'') {
		return nil
	}
	var n *ast.CharLiteral
	p.ParseLeaf(b, func(p *parse.Parser, l *cst.Leaf) {
		p.SeekRune('\'')
		for p.Peek() == '\\' {
			p.AdvanceN(2)
			p.SeekRune('\'')
		}
		p.Rune('\'')
		tok := p.Consume()
		raw := tok.String()
		interior := unescape(raw[1 : len(raw)-1])
		var v byte
		if len(interior) > 0 {
			v = interior[0]
		}
		n = &ast.CharLiteral{SpanVal: s.span(tok), Value: v}
	})
	return n
}

func stringLiteral(s *state, p *parse.Parser, b *cst.Branch) *ast.StringLiteral {
	if !p.Rune('"') {
		return nil
	}
	var n *ast.StringLiteral
	p.ParseLeaf(b, func(p *parse.Parser, l *cst.Leaf) {
		p.SeekRune('"')
		for p.Peek() == '\\' {
			p.AdvanceN(2)
			p.SeekRune('"')
		}
		p.Rune('"')
		tok := p.Consume()
		raw := tok.String()
		n = &ast.StringLiteral{SpanVal: s.span(tok), Value: unescape(raw[1 : len(raw)-1])}
	})
	return n
}
