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

func typeQualifier(p *parse.Parser, b *cst.Branch) (types.Qualifier, bool) {
	switch {
	case keyword(p, b, "const"):
		return types.QualConst, true
	case keyword(p, b, "volatile"):
		return types.QualVolatile, true
	case keyword(p, b, "restrict"):
		return types.QualRestrict, true
	case keyword(p, b, "_Atomic"):
		return types.QualAtomic, true
	}
	return 0, false
}

func peekTypeQualifier(p *parse.Parser) bool {
	return peekKeyword(p, "const") || peekKeyword(p, "volatile") ||
		peekKeyword(p, "restrict") || peekKeyword(p, "_Atomic")
}

func storageClassSpecifier(p *parse.Parser, b *cst.Branch) (types.StorageClass, bool) {
	switch {
	case keyword(p, b, "typedef"):
		return types.StorageTypedef, true
	case keyword(p, b, "extern"):
		return types.StorageExtern, true
	case keyword(p, b, "static"):
		return types.StorageStatic, true
	case keyword(p, b, "_Thread_local"):
		return types.StorageThreadLocal, true
	case keyword(p, b, "auto"):
		return types.StorageAuto, true
	case keyword(p, b, "register"):
		return types.StorageRegister, true
	}
	return 0, false
}

func functionSpecifier(p *parse.Parser, b *cst.Branch) (types.FunctionSpecifier, bool) {
	switch {
	case keyword(p, b, "inline"):
		return types.SpecInline, true
	case keyword(p, b, "_Noreturn"):
		return types.SpecNoreturn, true
	}
	return 0, false
}

// typeSpecifierToken is one keyword that contributes to the int/float/double
// family of type specifiers; struct/union/typedef-name/void/_Bool build a
// *types.Base directly instead of going through this table.
type typeSpecifierToken int

const (
	tsChar typeSpecifierToken = iota
	tsShort
	tsInt
	tsLong
	tsFloat
	tsDouble
	tsSigned
	tsUnsigned
)

func scanTypeSpecifierKeyword(p *parse.Parser, b *cst.Branch) (typeSpecifierToken, bool) {
	switch {
	case keyword(p, b, "char"):
		return tsChar, true
	case keyword(p, b, "short"):
		return tsShort, true
	case keyword(p, b, "int"):
		return tsInt, true
	case keyword(p, b, "long"):
		return tsLong, true
	case keyword(p, b, "float"):
		return tsFloat, true
	case keyword(p, b, "double"):
		return tsDouble, true
	case keyword(p, b, "signed"):
		return tsSigned, true
	case keyword(p, b, "unsigned"):
		return tsUnsigned, true
	}
	return 0, false
}

// resolveIntegerFamily folds the signed/unsigned/char/short/int/long/float/
// double keyword soup of a declaration into a single base type, per §4.2's
// u/l-style precedence rules generalized to the base-type keywords.
func resolveIntegerFamily(tokens []typeSpecifierToken) *types.Base {
	for _, t := range tokens {
		switch t {
		case tsFloat:
			return types.Float
		case tsDouble:
			return types.Double
		}
	}
	unsigned := false
	rank := types.RankInt
	longCount := 0
	sawChar, sawShort := false, false
	for _, t := range tokens {
		switch t {
		case tsUnsigned:
			unsigned = true
		case tsChar:
			sawChar = true
		case tsShort:
			sawShort = true
		case tsLong:
			longCount++
		}
	}
	switch {
	case sawChar:
		rank = types.RankChar
	case sawShort:
		rank = types.RankShort
	case longCount >= 2:
		rank = types.RankLongLong
	case longCount == 1:
		rank = types.RankLong
	}
	if unsigned {
		return &types.Base{Kind: types.KindUnsignedInt, Rank: rank}
	}
	return &types.Base{Kind: types.KindSignedInt, Rank: rank}
}

func peekTypedefName(s *state, p *parse.Parser) bool {
	if !p.AlphaNumeric() {
		return false
	}
	name := p.Token().String()
	p.Rollback()
	return s.typedefs[name]
}

// tryDeclarationSpecifiers parses the storage-class/qualifier/specifier/
// type-specifier soup that starts every declaration, struct member and
// parameter. It reports ok=false, having consumed nothing, when the current
// position does not start a declaration at all.
func tryDeclarationSpecifiers(s *state, p *parse.Parser, b *cst.Branch) (*types.Type, bool) {
	t := &types.Type{Basic: &types.Basic{}}
	var quals []types.Qualifier
	var explicitBase *types.Base
	var tokens []typeSpecifierToken
	matched := false

	for {
		if sc, ok := storageClassSpecifier(p, b); ok {
			t.Storage = sc
			matched = true
			continue
		}
		if q, ok := typeQualifier(p, b); ok {
			quals = append(quals, q)
			matched = true
			continue
		}
		if fs, ok := functionSpecifier(p, b); ok {
			t.Specifiers = append(t.Specifiers, fs)
			matched = true
			continue
		}
		if explicitBase == nil && len(tokens) == 0 {
			if keyword(p, b, "void") {
				explicitBase = types.Void
				matched = true
				continue
			}
			if keyword(p, b, "_Bool") {
				explicitBase = types.Bool
				matched = true
				continue
			}
			if base := structOrUnionSpecifier(s, p, b); base != nil {
				explicitBase = base
				matched = true
				continue
			}
			if peekTypedefName(s, p) {
				name := requireIdentifierName(s, p, b)
				explicitBase = &types.Base{Kind: types.KindTypedefName, Name: name}
				matched = true
				continue
			}
		}
		if tok, ok := scanTypeSpecifierKeyword(p, b); ok {
			tokens = append(tokens, tok)
			matched = true
			continue
		}
		break
	}

	if !matched {
		return nil, false
	}

	base := explicitBase
	if base == nil {
		base = resolveIntegerFamily(tokens)
	}
	t.Basic.Base = base
	t.Basic.Qualifiers = quals
	return t, true
}

// specifierQualifierList is tryDeclarationSpecifiers restricted to the
// contexts (struct members, parameters, type names) that have no use for a
// storage class; callers that must reject one outright use
// tryDeclarationSpecifiers directly so they can inspect Storage themselves.
func specifierQualifierList(s *state, p *parse.Parser, b *cst.Branch) (*types.Basic, bool) {
	t, ok := tryDeclarationSpecifiers(s, p, b)
	if !ok {
		return nil, false
	}
	return t.Basic, true
}

// structOrUnionSpecifier parses "struct|union [tag] [{ member-decl... }]".
// A tag with a member list is complete; a tag alone refers to a prior or
// later declaration and is left incomplete (Members == nil) for the caller
// to resolve once the full member list is known.
func structOrUnionSpecifier(s *state, p *parse.Parser, b *cst.Branch) *types.Base {
	var kind types.Kind
	switch {
	case peekKeyword(p, "struct"):
		kind = types.KindStruct
	case peekKeyword(p, "union"):
		kind = types.KindUnion
	default:
		return nil
	}

	var result *types.Base
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		if kind == types.KindStruct {
			requireKeyword(p, b, "struct")
		} else {
			requireKeyword(p, b, "union")
		}
		tag := ""
		if n := identifier(s, p, b); n != nil {
			tag = n.Name
		}
		result = &types.Base{Kind: kind, Tag: tag}
		if operator(p, b, "{") {
			members := []types.Member{}
			for !peekOperator(p, "}") {
				if p.IsEOF() {
					p.Error("end of file reached while looking for '}'")
					break
				}
				members = append(members, structDeclaration(s, p, b)...)
			}
			requireOperator(p, b, "}")
			result.Members = members
		}
	})
	return result
}

// struct-declaration: specifier-qualifier-list struct-declarator-list ';'
func structDeclaration(s *state, p *parse.Parser, b *cst.Branch) []types.Member {
	var result []types.Member
	p.ParseBranch(b, func(p *parse.Parser, b *cst.Branch) {
		base, ok := specifierQualifierList(s, p, b)
		if !ok {
			p.Expected("type specifier")
			p.GuessNextToken()
			return
		}
		for {
			name, ty, _ := declarator(s, p, b, base, true)
			result = append(result, types.Member{Type: ty, Name: name})
			if !operator(p, b, ",") {
				break
			}
		}
		requireOperator(p, b, ";")
	})
	return result
}

// pointerPrefix scans zero or more '*' [type-qualifier-list] tiers, in
// source order (outermost first).
func pointerPrefix(p *parse.Parser, b *cst.Branch) [][]types.Qualifier {
	var tiers [][]types.Qualifier
	for operator(p, b, "*") {
		var quals []types.Qualifier
		for {
			q, ok := typeQualifier(p, b)
			if !ok {
				break
			}
			quals = append(quals, q)
		}
		tiers = append(tiers, quals)
	}
	return tiers
}

// applyPointerPrefix wraps base in the pointer tiers scanned by
// pointerPrefix, folding right-to-left so that the first '*' written ends
// up outermost: "* const * T x" binds x as pointer to (const pointer to T).
func applyPointerPrefix(tiers [][]types.Qualifier, base *types.Basic) *types.Basic {
	result := base
	for i := len(tiers) - 1; i >= 0; i-- {
		result = &types.Basic{
			Base:       &types.Base{Kind: types.KindPointer, Pointee: result},
			Qualifiers: tiers[i],
		}
	}
	return result
}

// declarator parses a (possibly abstract) declarator: an optional pointer
// prefix, an optional name, and any array/function suffix, folding them
// onto base in C's usual right-to-left order. Parenthesized declarators
// (e.g. the "(*fp)(int)" spelling of a function-pointer variable) are not
// supported; see DESIGN.md.
func declarator(s *state, p *parse.Parser, b *cst.Branch, base *types.Basic, requireName bool) (string, *types.Basic, diag.Span) {
	start := markStart(s, p)
	end := start
	tiers := pointerPrefix(p, b)
	ty := applyPointerPrefix(tiers, base)

	name := ""
	if n := identifier(s, p, b); n != nil {
		name = n.Name
		end = n.Span()
	} else if requireName {
		p.Expected("identifier")
	}

	var dims []int
	for operator(p, b, "[") {
		dims = append(dims, requireConstArrayDim(s, p, b))
		if closeBracket, ok := operatorSpan(s, p, b, "]"); ok {
			end = closeBracket
		} else {
			p.Expected("]")
		}
	}
	switch {
	case len(dims) > 0:
		ty = &types.Basic{Base: &types.Base{Kind: types.KindArray, Elem: ty, Dims: dims}}
	case operator(p, b, "("):
		params, variadic := parameterTypeList(s, p, b)
		if closeParen, ok := operatorSpan(s, p, b, ")"); ok {
			end = closeParen
		} else {
			p.Expected(")")
		}
		ty = &types.Basic{Base: &types.Base{Kind: types.KindFunction, Return: ty, Params: params, Variadic: variadic}}
	}
	return name, ty, diag.Span{Start: start.Start, End: end.End}
}

// requireConstArrayDim parses an array declarator's dimension and folds it
// to a constant int at parse time: by the time the preprocessor is done,
// every dimension expression a real program writes is already a literal
// constant expression (macros have been substituted away), so there is no
// need to carry it as an unevaluated ast.Expr into the type system.
func requireConstArrayDim(s *state, p *parse.Parser, b *cst.Branch) int {
	e := requireAssignmentExpression(s, p, b)
	v, ok := evalConstInt(e)
	if !ok {
		p.Error("array dimension is not a constant expression")
		return 0
	}
	return int(v)
}

func evalConstInt(e ast.Expr) (int64, bool) {
	switch e := e.(type) {
	case *ast.IntLiteral:
		return int64(e.Value), true
	case *ast.CharLiteral:
		return int64(e.Value), true
	case *ast.UnaryOp:
		v, ok := evalConstInt(e.Operand)
		if !ok {
			return 0, false
		}
		switch e.Operator {
		case ast.OpPlus:
			return v, true
		case ast.OpMinus:
			return -v, true
		case ast.OpBitNot:
			return ^v, true
		case ast.OpNot:
			if v == 0 {
				return 1, true
			}
			return 0, true
		}
		return 0, false
	case *ast.BinaryOp:
		l, lok := evalConstInt(e.LHS)
		r, rok := evalConstInt(e.RHS)
		if !lok || !rok {
			return 0, false
		}
		switch e.Operator {
		case ast.OpPlus:
			return l + r, true
		case ast.OpMinus:
			return l - r, true
		case ast.OpMul:
			return l * r, true
		case ast.OpDiv:
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case ast.OpMod:
			if r == 0 {
				return 0, false
			}
			return l % r, true
		case ast.OpShl:
			return l << uint(r), true
		case ast.OpShr:
			return l >> uint(r), true
		case ast.OpBitAnd:
			return l & r, true
		case ast.OpBitOr:
			return l | r, true
		case ast.OpBitXor:
			return l ^ r, true
		}
		return 0, false
	case *ast.Conditional:
		c, ok := evalConstInt(e.Cond)
		if !ok {
			return 0, false
		}
		if c != 0 {
			return evalConstInt(e.Then)
		}
		return evalConstInt(e.Else)
	default:
		return 0, false
	}
}

// parameterTypeList parses a function declarator's "(" ... ")" interior,
// given the opening paren already consumed.
func parameterTypeList(s *state, p *parse.Parser, b *cst.Branch) ([]types.Param, bool) {
	if peekOperator(p, ")") {
		return nil, false
	}
	var params []types.Param
	for {
		if operator(p, b, "...") {
			return params, true
		}
		base, ok := specifierQualifierList(s, p, b)
		if !ok {
			p.Expected("parameter type")
			break
		}
		name, ty, _ := declarator(s, p, b, base, false)
		if len(params) == 0 && name == "" && ty.Base.Kind == types.KindVoid && peekOperator(p, ")") {
			return nil, false
		}
		params = append(params, types.Param{Type: ty, Name: name})
		if !operator(p, b, ",") {
			break
		}
	}
	return params, false
}

// peekTypeNameStart reports whether the current position starts a
// type-name: a declaration-specifier keyword, a struct/union specifier, or
// a known typedef name. Used to disambiguate "(" type-name ")" from a
// parenthesized expression in casts and sizeof.
func peekTypeNameStart(s *state, p *parse.Parser) bool {
	for _, kw := range []string{
		"void", "char", "short", "int", "long", "float", "double",
		"signed", "unsigned", "_Bool", "struct", "union",
		"const", "volatile", "restrict", "_Atomic",
	} {
		if peekKeyword(p, kw) {
			return true
		}
	}
	return peekTypedefName(s, p)
}

// typeName parses a type-name (an abstract declarator with no storage
// class), as used by a cast or sizeof(type). A storage-class specifier here
// is a parse-time error per §4.2.
func typeName(s *state, p *parse.Parser, b *cst.Branch) (*types.Basic, bool) {
	t, ok := tryDeclarationSpecifiers(s, p, b)
	if !ok {
		return nil, false
	}
	if t.Storage != types.StorageNone {
		p.Error("a storage-class specifier is not allowed in a type name")
	}
	_, ty, _ := declarator(s, p, b, t.Basic, false)
	return ty, true
}
