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
	"cc99c/types"

	"github.com/google/gapid/core/text/parse"
	"github.com/google/gapid/core/text/parse/cst"
)

// looksLikeLabel peeks past a bare identifier to see whether it is
// immediately followed by ':', the mark of a label statement as opposed to
// an expression statement starting with the same identifier. Like
// looksLikeParenType, every step here is either non-consuming or unwound by
// the final Rollback.
func looksLikeLabel(p *parse.Parser) bool {
	if !p.AlphaNumeric() {
		return false
	}
	if keywords[p.Token().String()] {
		p.Rollback()
		return false
	}
	p.Space()
	result := p.String(":") && !p.String("=")
	p.Rollback()
	return result
}

func statement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	switch {
	case peekOperator(p, "{"):
		return compoundStatement(s, p, b)
	case peekKeyword(p, "if"):
		return ifStatement(s, p, b)
	case peekKeyword(p, "switch"):
		return switchStatement(s, p, b)
	case peekKeyword(p, "while"):
		return whileStatement(s, p, b)
	case peekKeyword(p, "do"):
		return doWhileStatement(s, p, b)
	case peekKeyword(p, "for"):
		return forStatement(s, p, b)
	case peekKeyword(p, "break"):
		return breakStatement(s, p, b)
	case peekKeyword(p, "continue"):
		return continueStatement(s, p, b)
	case peekKeyword(p, "return"):
		return returnStatement(s, p, b)
	case peekKeyword(p, "goto"):
		return gotoStatement(s, p, b)
	case peekKeyword(p, "case"):
		return caseStatement(s, p, b)
	case peekKeyword(p, "default"):
		return defaultStatement(s, p, b)
	case looksLikeLabel(p):
		return labeledStatement(s, p, b)
	default:
		return expressionStatement(s, p, b)
	}
}

func requireStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	if st := statement(s, p, b); st != nil {
		return st
	}
	p.Expected("statement")
	return &ast.ExprStmt{}
}

func requireCompoundStatement(s *state, p *parse.Parser, b *cst.Branch) *ast.Compound {
	if st := compoundStatement(s, p, b); st != nil {
		return st
	}
	p.Expected("{")
	return &ast.Compound{}
}

// localDeclaration is externalDeclaration restricted to the forms legal
// (and meaningful to the IR generator) inside a block: a ';'-terminated
// list of variable or typedef declarations. A local function prototype
// parses but is reported as a variable declaration of function type, which
// the IR generator does not specially lower; see DESIGN.md.
func localDeclaration(s *state, p *parse.Parser, b *cst.Branch) []*ast.VarDecl {
	start := markStart(s, p)
	declType, ok := tryDeclarationSpecifiers(s, p, b)
	if !ok {
		return nil
	}
	if operator(p, b, ";") {
		return []*ast.VarDecl{{SpanVal: start, Type: &types.Type{Basic: declType.Basic}}}
	}

	var result []*ast.VarDecl
	name, ty, span := declarator(s, p, b, declType.Basic, true)
	if declType.Storage == types.StorageTypedef {
		s.typedefs[name] = true
	}
	result = append(result, finishVarDeclarator(s, p, b, span, declType, name, ty))
	for operator(p, b, ",") {
		n, nty, nspan := declarator(s, p, b, declType.Basic, true)
		if declType.Storage == types.StorageTypedef {
			s.typedefs[n] = true
		}
		result = append(result, finishVarDeclarator(s, p, b, nspan, declType, n, nty))
	}
	requireOperator(p, b, ";")
	return result
}

func compoundStatement(s *state, p *parse.Parser, b *cst.Branch) *ast.Compound {
	if !peekOperator(p, "{") {
		return nil
	}
	var result *ast.Compound
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireOperatorSpan(s, p, b, "{")
		items := []ast.StmtOrDecl{}
		for !peekOperator(p, "}") {
			if p.IsEOF() {
				p.Error("end of file reached while looking for '}'")
				break
			}
			before := len(p.Errors)
			if decls := localDeclaration(s, p, b); decls != nil {
				for _, d := range decls {
					items = append(items, d)
				}
				continue
			}
			if len(p.Errors) > before {
				p.GuessNextToken()
				continue
			}
			items = append(items, requireStatement(s, p, b))
		}
		end := requireOperatorSpan(s, p, b, "}")
		result = &ast.Compound{SpanVal: diag.Span{Start: start.Start, End: end.End}, Items: items}
	})
	return result
}

func ifStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "if")
		requireOperator(p, b, "(")
		cond := requireExpression(s, p, b)
		requireOperator(p, b, ")")
		then := requireStatement(s, p, b)
		end := then.Span()
		var els ast.Stmt
		if keyword(p, b, "else") {
			els = requireStatement(s, p, b)
			end = els.Span()
		}
		result = &ast.If{SpanVal: diag.Span{Start: start.Start, End: end.End}, Cond: cond, Then: then, Else: els}
	})
	return result
}

func switchStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "switch")
		requireOperator(p, b, "(")
		value := requireExpression(s, p, b)
		requireOperator(p, b, ")")
		body := requireStatement(s, p, b)
		result = &ast.Switch{SpanVal: diag.Span{Start: start.Start, End: body.Span().End}, Value: value, Body: body}
	})
	return result
}

func whileStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "while")
		requireOperator(p, b, "(")
		cond := requireExpression(s, p, b)
		requireOperator(p, b, ")")
		body := requireStatement(s, p, b)
		result = &ast.While{SpanVal: diag.Span{Start: start.Start, End: body.Span().End}, Cond: cond, Body: body}
	})
	return result
}

func doWhileStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "do")
		body := requireStatement(s, p, b)
		requireKeyword(p, b, "while")
		requireOperator(p, b, "(")
		cond := requireExpression(s, p, b)
		requireOperator(p, b, ")")
		end := requireOperatorSpan(s, p, b, ";")
		result = &ast.DoWhile{SpanVal: diag.Span{Start: start.Start, End: end.End}, Body: body, Cond: cond}
	})
	return result
}

// peekDeclarationStart mirrors the check tryDeclarationSpecifiers performs
// internally, without consuming, so forStatement can choose between a
// declaration and an expression initializer before committing to either.
func peekDeclarationStart(s *state, p *parse.Parser) bool {
	return peekTypeNameStart(s, p) || peekKeyword(p, "typedef") || peekKeyword(p, "extern") ||
		peekKeyword(p, "static") || peekKeyword(p, "_Thread_local") || peekKeyword(p, "auto") ||
		peekKeyword(p, "register") || peekKeyword(p, "inline") || peekKeyword(p, "_Noreturn")
}

func forStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "for")
		requireOperator(p, b, "(")

		var init ast.ForInit
		switch {
		case peekDeclarationStart(s, p):
			init = ast.ForInitDecls{Decls: localDeclaration(s, p, b)}
		case operator(p, b, ";"):
			init = nil
		default:
			e := requireExpression(s, p, b)
			requireOperator(p, b, ";")
			init = ast.ForInitExpr{Expr: e}
		}

		var cond ast.Expr
		if !peekOperator(p, ";") {
			cond = expression(s, p, b)
		}
		requireOperator(p, b, ";")

		var iter ast.Expr
		if !peekOperator(p, ")") {
			iter = expression(s, p, b)
		}
		requireOperator(p, b, ")")

		body := requireStatement(s, p, b)
		result = &ast.For{SpanVal: diag.Span{Start: start.Start, End: body.Span().End}, Init: init, Cond: cond, Iter: iter, Body: body}
	})
	return result
}

func breakStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "break")
		end := requireOperatorSpan(s, p, b, ";")
		result = &ast.Break{SpanVal: diag.Span{Start: start.Start, End: end.End}}
	})
	return result
}

func continueStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "continue")
		end := requireOperatorSpan(s, p, b, ";")
		result = &ast.Continue{SpanVal: diag.Span{Start: start.Start, End: end.End}}
	})
	return result
}

func returnStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "return")
		var e ast.Expr
		if !peekOperator(p, ";") {
			e = requireExpression(s, p, b)
		}
		end := requireOperatorSpan(s, p, b, ";")
		result = &ast.Return{SpanVal: diag.Span{Start: start.Start, End: end.End}, Expr: e}
	})
	return result
}

func gotoStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "goto")
		label := requireIdentifierName(s, p, b)
		end := requireOperatorSpan(s, p, b, ";")
		result = &ast.Goto{SpanVal: diag.Span{Start: start.Start, End: end.End}, Label: label}
	})
	return result
}

func caseStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "case")
		value := conditionalExpression(s, p, b)
		requireOperator(p, b, ":")
		body := requireStatement(s, p, b)
		result = &ast.Case{SpanVal: diag.Span{Start: start.Start, End: body.Span().End}, Expr: value, Stmt: body}
	})
	return result
}

func defaultStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireKeywordSpan(s, p, b, "default")
		requireOperator(p, b, ":")
		body := requireStatement(s, p, b)
		result = &ast.Case{SpanVal: diag.Span{Start: start.Start, End: body.Span().End}, Expr: nil, Stmt: body}
	})
	return result
}

func labeledStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		start := requireIdentifierNameSpan(s, p, b)
		requireOperator(p, b, ":")
		body := requireStatement(s, p, b)
		result = &ast.Labeled{SpanVal: diag.Span{Start: start.span.Start, End: body.Span().End}, Label: start.name, Stmt: body}
	})
	return result
}

func expressionStatement(s *state, p *parse.Parser, b *cst.Branch) ast.Stmt {
	var result ast.Stmt
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		if end, ok := operatorSpan(s, p, b, ";"); ok {
			result = &ast.ExprStmt{SpanVal: end}
			return
		}
		e := requireExpression(s, p, b)
		end := requireOperatorSpan(s, p, b, ";")
		result = &ast.ExprStmt{SpanVal: diag.Span{Start: e.Span().Start, End: end.End}, Expr: e}
	})
	return result
}
