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

func translationUnit(s *state, p *parse.Parser, b *cst.Branch) *ast.TranslationUnit {
	tu := &ast.TranslationUnit{}
	for !p.IsEOF() {
		before := len(p.Errors)
		decls := externalDeclaration(s, p, b)
		if decls == nil && len(p.Errors) == before {
			p.Expected("declaration")
		}
		tu.Decls = append(tu.Decls, decls...)
		if len(p.Errors) > before && decls == nil {
			p.GuessNextToken()
		}
	}
	return tu
}

// externalDeclaration parses one top-level declaration: a function
// definition, a function prototype, or a ';'-terminated list of variable
// (or typedef) declarations sharing one declaration-specifiers prefix.
func externalDeclaration(s *state, p *parse.Parser, b *cst.Branch) []ast.Declaration {
	start := markStart(s, p)
	declType, ok := tryDeclarationSpecifiers(s, p, b)
	if !ok {
		return nil
	}

	if operator(p, b, ";") {
		// A bare "struct foo { ... };" with no declarator: nothing further
		// to register besides the (already complete or tag-only) struct
		// type itself, which has no home as a standalone declaration node.
		return nil
	}

	name, declaredType, declSpan := declarator(s, p, b, declType.Basic, true)

	if declaredType.Base.Kind == types.KindFunction {
		fn := buildFuncDef(s, p, b, start, declType, name, declaredType)
		return []ast.Declaration{fn}
	}

	if declType.Storage == types.StorageTypedef {
		s.typedefs[name] = true
	}

	var result []ast.Declaration
	result = append(result, finishVarDeclarator(s, p, b, declSpan, declType, name, declaredType))
	for operator(p, b, ",") {
		n, ty, span := declarator(s, p, b, declType.Basic, true)
		if declType.Storage == types.StorageTypedef {
			s.typedefs[n] = true
		}
		result = append(result, finishVarDeclarator(s, p, b, span, declType, n, ty))
	}
	requireOperator(p, b, ";")
	return result
}

// finishVarDeclarator parses the optional "= initializer" of one declarator
// in a declaration and builds its VarDecl; the storage class and qualifiers
// were already folded into declaredType by applyPointerPrefix/declarator.
func finishVarDeclarator(s *state, p *parse.Parser, b *cst.Branch, declSpan diag.Span, declType *types.Type, name string, declaredType *types.Basic) *ast.VarDecl {
	var init ast.Expr
	if operator(p, b, "=") {
		init = requireAssignmentExpression(s, p, b)
	}
	end := declSpan.End
	if init != nil {
		end = init.Span().End
	}
	return &ast.VarDecl{
		SpanVal: diag.Span{Start: declSpan.Start, End: end},
		Type:    &types.Type{Basic: declaredType, Storage: declType.Storage, Specifiers: declType.Specifiers},
		Name:    name,
		Init:    init,
	}
}

// buildFuncDef finishes parsing a declarator whose declarator() already
// resolved to a function type: either a ';'-terminated prototype or a
// compound-statement body.
func buildFuncDef(s *state, p *parse.Parser, b *cst.Branch, start diag.Span, declType *types.Type, name string, fnType *types.Basic) *ast.FuncDef {
	base := fnType.Base
	fn := &ast.FuncDef{
		Specifiers: declType.Specifiers,
		Storage:    declType.Storage,
		Return:     base.Return,
		Name:       name,
		Variadic:   base.Variadic,
	}
	for _, prm := range base.Params {
		fn.Params = append(fn.Params, ast.Param{Type: prm.Type, Name: prm.Name})
	}

	if end, ok := operatorSpan(s, p, b, ";"); ok {
		fn.SpanVal = diag.Span{Start: start.Start, End: end.End}
		return fn
	}

	body := requireCompoundStatement(s, p, b)
	fn.Body = body
	fn.SpanVal = diag.Span{Start: start.Start, End: body.Span().End}
	return fn
}
