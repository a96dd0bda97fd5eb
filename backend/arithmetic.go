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

package backend

import "llvm/bindings/go/llvm"

// Add, Sub, Mul, ... implement the binary operators the IR generator's
// expression codegen emits after usual-arithmetic-promotion has brought
// both operands to a common type. Each picks the integer, unsigned
// or floating variant of the instruction based on that common type.

func (b *Builder) Add(ty Type, x, y *Value) *Value {
	if ty.IsFloat() {
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateFAdd(x.llvm, y.llvm, "")}
	}
	return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateAdd(x.llvm, y.llvm, "")}
}

func (b *Builder) Sub(ty Type, x, y *Value) *Value {
	if ty.IsFloat() {
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateFSub(x.llvm, y.llvm, "")}
	}
	return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateSub(x.llvm, y.llvm, "")}
}

func (b *Builder) Mul(ty Type, x, y *Value) *Value {
	if ty.IsFloat() {
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateFMul(x.llvm, y.llvm, "")}
	}
	return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateMul(x.llvm, y.llvm, "")}
}

func (b *Builder) Div(ty Type, x, y *Value) *Value {
	switch {
	case ty.IsFloat():
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateFDiv(x.llvm, y.llvm, "")}
	case ty.Signed:
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateSDiv(x.llvm, y.llvm, "")}
	default:
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateUDiv(x.llvm, y.llvm, "")}
	}
}

func (b *Builder) Rem(ty Type, x, y *Value) *Value {
	switch {
	case ty.IsFloat():
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateFRem(x.llvm, y.llvm, "")}
	case ty.Signed:
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateSRem(x.llvm, y.llvm, "")}
	default:
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateURem(x.llvm, y.llvm, "")}
	}
}

func (b *Builder) And(ty Type, x, y *Value) *Value {
	return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateAnd(x.llvm, y.llvm, "")}
}

func (b *Builder) Or(ty Type, x, y *Value) *Value {
	return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateOr(x.llvm, y.llvm, "")}
}

func (b *Builder) Xor(ty Type, x, y *Value) *Value {
	return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateXor(x.llvm, y.llvm, "")}
}

func (b *Builder) Shl(ty Type, x, y *Value) *Value {
	return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateShl(x.llvm, y.llvm, "")}
}

func (b *Builder) Shr(ty Type, x, y *Value) *Value {
	if ty.Signed {
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateAShr(x.llvm, y.llvm, "")}
	}
	return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateLShr(x.llvm, y.llvm, "")}
}

func (b *Builder) Neg(ty Type, x *Value) *Value {
	if ty.IsFloat() {
		return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateFNeg(x.llvm, "")}
	}
	return &Value{m: b.m, ty: ty, llvm: b.llvm.CreateNeg(x.llvm, "")}
}

func (b *Builder) Not(x *Value) *Value {
	return &Value{m: b.m, ty: x.ty, llvm: b.llvm.CreateNot(x.llvm, "")}
}

// CmpOp names a comparison, independent of operand signedness/floatness;
// Compare picks the matching llvm predicate.
type CmpOp int

const (
	CmpEQ CmpOp = iota
	CmpNE
	CmpLT
	CmpLE
	CmpGT
	CmpGE
)

// Compare implements every relational and equality operator; it always
// yields backend's Bool type, matching the AST's binary-comparison rule
// that comparisons return Bool regardless of operand type.
func (b *Builder) Compare(op CmpOp, operandTy Type, x, y *Value) *Value {
	if operandTy.IsFloat() {
		pred := map[CmpOp]llvm.FloatPredicate{
			CmpEQ: llvm.FloatOEQ, CmpNE: llvm.FloatONE,
			CmpLT: llvm.FloatOLT, CmpLE: llvm.FloatOLE,
			CmpGT: llvm.FloatOGT, CmpGE: llvm.FloatOGE,
		}[op]
		return &Value{m: b.m, ty: b.m.Types.Bool, llvm: b.llvm.CreateFCmp(pred, x.llvm, y.llvm, "")}
	}
	if operandTy.Signed {
		pred := map[CmpOp]llvm.IntPredicate{
			CmpEQ: llvm.IntEQ, CmpNE: llvm.IntNE,
			CmpLT: llvm.IntSLT, CmpLE: llvm.IntSLE,
			CmpGT: llvm.IntSGT, CmpGE: llvm.IntSGE,
		}[op]
		return &Value{m: b.m, ty: b.m.Types.Bool, llvm: b.llvm.CreateICmp(pred, x.llvm, y.llvm, "")}
	}
	pred := map[CmpOp]llvm.IntPredicate{
		CmpEQ: llvm.IntEQ, CmpNE: llvm.IntNE,
		CmpLT: llvm.IntULT, CmpLE: llvm.IntULE,
		CmpGT: llvm.IntUGT, CmpGE: llvm.IntUGE,
	}[op]
	return &Value{m: b.m, ty: b.m.Types.Bool, llvm: b.llvm.CreateICmp(pred, x.llvm, y.llvm, "")}
}
