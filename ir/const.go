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
	"cc99c/ast"
	"cc99c/backend"
	"cc99c/diag"
	"cc99c/types"
)

// constantValue folds a global initializer into a backend constant of the
// declared target type, without needing a positioned Builder (pass 1 runs
// before any function, and thus any block, exists). Only literal constants
// and their unary +/- are accepted; every other initializer form (a call, a
// read of another global, ...) is rejected as not being a constant
// expression.
func (g *Generator) constantValue(e ast.Expr, target *types.Basic) (*backend.Value, *diag.Error) {
	switch v := e.(type) {
	case *ast.IntLiteral:
		if err := types.TestCast(v.Type.Base, target.Base, v.Span()); err != nil {
			return nil, err
		}
		return g.backend.ConstInt(g.lowerType(target), v.Value), nil

	case *ast.FloatLiteral:
		if err := types.TestCast(v.Type.Base, target.Base, v.Span()); err != nil {
			return nil, err
		}
		return g.backend.ConstFloat(g.lowerType(target), v.Value), nil

	case *ast.CharLiteral:
		natural := types.Plain(types.Char)
		if err := types.TestCast(natural.Base, target.Base, v.Span()); err != nil {
			return nil, err
		}
		return g.backend.ConstInt(g.lowerType(target), uint64(v.Value)), nil

	case *ast.StringLiteral:
		if target.Base.Kind != types.KindPointer {
			return nil, diag.New(diag.InvalidDefaultCast, v.Span(), "cannot initialize %s from a string literal", target)
		}
		return g.backend.GlobalString(v.Value), nil

	case *ast.UnaryOp:
		switch v.Operator {
		case ast.OpPlus:
			return g.constantValue(v.Operand, target)
		case ast.OpMinus:
			inner, err := g.constantValue(v.Operand, target)
			if err != nil {
				return nil, err
			}
			return g.backend.NegateConstant(inner), nil
		}
	}
	return nil, diag.New(diag.NotImplemented, e.Span(), "global initializer is not a constant expression")
}
