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

// assignmentOperators is every C99 assignment spelling, "=" included; the
// Assign node's Operator field carries "" for plain "=" and the arithmetic
// prefix (e.g. "+") for the augmented forms, per ast.Assign's doc comment.
var assignmentOperators = map[string]string{
	"=": "", "+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
	"<<=": "<<", ">>=": ">>", "&=": "&", "^=": "^", "|=": "|",
}

func requireExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	if e := expression(s, p, b); e != nil {
		return e
	}
	p.Expected("expression")
	return &ast.Empty{}
}

// expression parses the comma-operator-free top level production this
// front end supports: a single assignment-expression. The C comma operator
// is not represented in cc99c/ast; see DESIGN.md.
func expression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return assignmentExpression(s, p, b)
}

func requireAssignmentExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	if e := assignmentExpression(s, p, b); e != nil {
		return e
	}
	p.Expected("expression")
	return &ast.Empty{}
}

func assignmentExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	lhs := conditionalExpression(s, p, b)
	if lhs == nil {
		return nil
	}
	for spelling, op := range assignmentOperators {
		if operator(p, b, spelling) {
			rhs := requireAssignmentExpression(s, p, b)
			return &ast.Assign{
				SpanVal:  diag.Span{Start: lhs.Span().Start, End: rhs.Span().End},
				LHS:      lhs,
				Operator: op,
				RHS:      rhs,
			}
		}
	}
	return lhs
}

func conditionalExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	cond := logicalOrExpression(s, p, b)
	if cond == nil {
		return nil
	}
	if !operator(p, b, "?") {
		return cond
	}
	then := requireExpression(s, p, b)
	requireOperator(p, b, ":")
	els := requireAssignmentExpression(s, p, b)
	return &ast.Conditional{
		SpanVal: diag.Span{Start: cond.Span().Start, End: els.Span().End},
		Cond:    cond,
		Then:    then,
		Else:    els,
	}
}

// binaryLevel builds one left-associative precedence level out of the level
// below it (next) and the set of operator spellings it accepts, tried in
// the given order (so e.g. "<<=" never needs to be excluded here: the
// shift/assignment levels are disjoint token sets by construction).
func binaryLevel(s *state, p *parse.Parser, b *cst.Branch, ops []string, next func(*state, *parse.Parser, *cst.Branch) ast.Expr) ast.Expr {
	lhs := next(s, p, b)
	if lhs == nil {
		return nil
	}
	for {
		matched := ""
		for _, op := range ops {
			if operator(p, b, op) {
				matched = op
				break
			}
		}
		if matched == "" {
			return lhs
		}
		rhs := next(s, p, b)
		if rhs == nil {
			p.Expected("expression")
			rhs = &ast.Empty{}
		}
		lhs = &ast.BinaryOp{
			SpanVal:  diag.Span{Start: lhs.Span().Start, End: rhs.Span().End},
			LHS:      lhs,
			Operator: matched,
			RHS:      rhs,
		}
	}
}

func logicalOrExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"||"}, logicalAndExpression)
}

func logicalAndExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"&&"}, bitwiseOrExpression)
}

func bitwiseOrExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"|"}, bitwiseXorExpression)
}

func bitwiseXorExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"^"}, bitwiseAndExpression)
}

func bitwiseAndExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"&"}, equalityExpression)
}

func equalityExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"==", "!="}, relationalExpression)
}

func relationalExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"<=", ">=", "<", ">"}, shiftExpression)
}

func shiftExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"<<", ">>"}, additiveExpression)
}

func additiveExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"+", "-"}, multiplicativeExpression)
}

func multiplicativeExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	return binaryLevel(s, p, b, []string{"*", "/", "%"}, castExpression)
}

// looksLikeParenType peeks past a '(' to decide whether it opens a cast's
// type-name or a parenthesized expression. It consumes nothing: every
// Reader/peek primitive it calls either doesn't advance the cursor or is
// unwound by the trailing Rollback, which targets the same committed
// offset regardless of how many nested peeks ran along the way.
func looksLikeParenType(s *state, p *parse.Parser) bool {
	if !p.String("(") {
		return false
	}
	p.Space()
	result := peekTypeNameStart(s, p)
	p.Rollback()
	return result
}

func castExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	if looksLikeParenType(s, p) {
		var result ast.Expr
		p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
			start := requireOperatorSpan(s, p, b, "(")
			ty, _ := typeName(s, p, b)
			requireOperator(p, b, ")")
			operand := requireCastExpression(s, p, b)
			result = &ast.Cast{
				SpanVal: diag.Span{Start: start.Start, End: operand.Span().End},
				Type:    ty,
				Operand: operand,
			}
		})
		return result
	}
	return unaryExpression(s, p, b)
}

func requireCastExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	if e := castExpression(s, p, b); e != nil {
		return e
	}
	p.Expected("expression")
	return &ast.Empty{}
}

// unaryPrefixOperators maps a prefix-operator spelling to the ast.Op*
// constant it lowers to; "*" and "&" are deref/address-of here, distinct
// from their binary-operator meaning at this same spelling.
var unaryPrefixOperators = map[string]string{
	"+": ast.OpPlus, "-": ast.OpMinus, "!": ast.OpNot, "~": ast.OpBitNot,
	"*": ast.OpDeref, "&": ast.OpAddr,
}

func unaryExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	if peekKeyword(p, "sizeof") {
		return sizeofExpr(s, p, b)
	}
	for _, op := range []string{"++", "--"} {
		if start, ok := operatorSpan(s, p, b, op); ok {
			operand := requireCastExpression(s, p, b)
			astOp := ast.OpInc
			if op == "--" {
				astOp = ast.OpDec
			}
			return &ast.UnaryOp{
				SpanVal:  diag.Span{Start: start.Start, End: operand.Span().End},
				Operator: astOp,
				Operand:  operand,
				Postfix:  false,
			}
		}
	}
	for _, op := range []string{"+", "-", "!", "~", "*", "&"} {
		if start, ok := operatorSpan(s, p, b, op); ok {
			operand := requireCastExpression(s, p, b)
			return &ast.UnaryOp{
				SpanVal:  diag.Span{Start: start.Start, End: operand.Span().End},
				Operator: unaryPrefixOperators[op],
				Operand:  operand,
			}
		}
	}
	return postfixExpression(s, p, b)
}

// sizeofExpr parses "sizeof unary-expression" or "sizeof ( type-name )",
// peeking past the keyword to tell them apart the same way castExpression
// distinguishes a cast from a parenthesized expression.
func sizeofExpr(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	if looksLikeSizeofType(s, p) {
		var result ast.Expr
		p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
			start := requireKeywordSpan(s, p, b, "sizeof")
			requireOperator(p, b, "(")
			ty, _ := typeName(s, p, b)
			end := requireOperatorSpan(s, p, b, ")")
			result = &ast.SizeofType{SpanVal: diag.Span{Start: start.Start, End: end.End}, Type: ty}
		})
		return result
	}
	var result ast.Expr
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "sizeof")
		operand := requireUnaryExpression(s, p, b)
		result = &ast.SizeofExpr{SpanVal: diag.Span{Start: start.Start, End: operand.Span().End}, Operand: operand}
	})
	return result
}

func requireUnaryExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	if e := unaryExpression(s, p, b); e != nil {
		return e
	}
	p.Expected("expression")
	return &ast.Empty{}
}

func looksLikeSizeofType(s *state, p *parse.Parser) bool {
	if !peekKeyword(p, "sizeof") {
		return false
	}
	p.AlphaNumeric()
	p.Space()
	result := looksLikeParenType(s, p)
	p.Rollback()
	return result
}

func postfixExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	e := primaryExpression(s, p, b)
	if e == nil {
		return nil
	}
	for {
		switch {
		case operator(p, b, "["):
			index := requireExpression(s, p, b)
			end := requireOperatorSpan(s, p, b, "]")
			e = &ast.Subscript{SpanVal: diag.Span{Start: e.Span().Start, End: end.End}, Object: e, Index: index}
		case operator(p, b, "("):
			var args []ast.Expr
			if !peekOperator(p, ")") {
				for {
					args = append(args, requireAssignmentExpression(s, p, b))
					if !operator(p, b, ",") {
						break
					}
				}
			}
			end := requireOperatorSpan(s, p, b, ")")
			e = &ast.Call{SpanVal: diag.Span{Start: e.Span().Start, End: end.End}, Callee: e, Args: args}
		case operator(p, b, "."):
			name, end := requireMemberName(s, p, b)
			e = &ast.Member{SpanVal: diag.Span{Start: e.Span().Start, End: end}, Object: e, Name: name}
		case operator(p, b, "->"):
			name, end := requireMemberName(s, p, b)
			e = &ast.Member{SpanVal: diag.Span{Start: e.Span().Start, End: end}, Object: e, Name: name, Arrow: true}
		case peekOperator(p, "++"):
			start, _ := operatorSpan(s, p, b, "++")
			e = &ast.UnaryOp{SpanVal: diag.Span{Start: e.Span().Start, End: start.End}, Operator: ast.OpInc, Operand: e, Postfix: true}
		case peekOperator(p, "--"):
			start, _ := operatorSpan(s, p, b, "--")
			e = &ast.UnaryOp{SpanVal: diag.Span{Start: e.Span().Start, End: start.End}, Operator: ast.OpDec, Operand: e, Postfix: true}
		default:
			return e
		}
	}
}

func requireMemberName(s *state, p *parse.Parser, b *cst.Branch) (string, int) {
	n := identifier(s, p, b)
	if n == nil {
		p.Expected("identifier")
		return "", 0
	}
	return n.Name, n.Span().End
}

func primaryExpression(s *state, p *parse.Parser, b *cst.Branch) ast.Expr {
	if n := identifier(s, p, b); n != nil {
		return n
	}
	if n := numberLiteral(s, p, b); n != nil {
		return n
	}
	if n := charLiteral(s, p, b); n != nil {
		return n
	}
	if n := stringLiteral(s, p, b); n != nil {
		return n
	}
	if operator(p, b, "(") {
		inner := requireExpression(s, p, b)
		requireOperator(p, b, ")")
		return inner
	}
	return nil
}
