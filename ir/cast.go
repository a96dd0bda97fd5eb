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

package ir

import (
	"cc99c/backend"
	"cc99c/diag"
	"cc99c/types"
)

// castValue converts val from its natural type to to, the way an implicit
// context (an assignment, an argument, a return, an operand of the usual
// arithmetic conversions) requires: testCast decides legality, and
// genCastInstruction decides the concrete LLVM opcode.
func (g *Generator) castValue(val *backend.Value, from, to *types.Basic, span diag.Span) (*backend.Value, *diag.Error) {
	if err := types.TestCast(from.Base, to.Base, span); err != nil {
		return nil, err
	}
	if types.EqualDiscardingQualifiers(from.Base, to.Base) {
		return val, nil
	}
	toTy := g.lowerType(to)
	op := backend.SelectCast(g.lowerType(from), toTy)
	return g.builder.Cast(op, val, toTy), nil
}

// castExplicit converts val the way a C-style "(type)expr" cast does: a
// strictly larger set of conversions is legal than castValue allows.
func (g *Generator) castExplicit(val *backend.Value, from, to *types.Basic, span diag.Span) (*backend.Value, *diag.Error) {
	if !types.TestExplicitCast(from.Base, to.Base) {
		return nil, diag.New(diag.InvalidCast, span, "cannot cast %s to %s", from, to)
	}
	if types.EqualDiscardingQualifiers(from.Base, to.Base) {
		return val, nil
	}
	toTy := g.lowerType(to)
	op := backend.SelectCast(g.lowerType(from), toTy)
	return g.builder.Cast(op, val, toTy), nil
}

// truthValue reduces any scalar value to the i1 a branch needs: zero/null
// compares false, anything else true.
func (g *Generator) truthValue(val *backend.Value, ty *types.Basic) *backend.Value {
	bty := g.lowerType(ty)
	switch {
	case bty.IsFloat():
		return g.builder.Compare(backend.CmpNE, bty, val, g.builder.ConstFloat(bty, 0))
	case bty.IsPointer():
		return g.builder.Compare(backend.CmpNE, bty, val, g.backend.Null(bty))
	default:
		return g.builder.Compare(backend.CmpNE, bty, val, g.builder.ConstInt(bty, 0))
	}
}

// intResult wraps a raw i1 comparison result back up as a plain C int, the
// type every relational and equality operator produces.
func (g *Generator) intResult(cmp *backend.Value) (*backend.Value, *types.Basic) {
	intTy := types.Plain(types.Int)
	return g.builder.Cast(backend.ZExt, cmp, g.lowerType(intTy)), intTy
}

// boolResult tags a 1-bit comparison value with C's Bool type, used for
// the results of "!" and the relational/equality operators (spec: both
// yield Bool, not Int).
func (g *Generator) boolResult(cmp *backend.Value) (*backend.Value, *types.Basic) {
	boolTy := types.Plain(types.Bool)
	return cmp, boolTy
}
