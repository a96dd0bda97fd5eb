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

import (
	"fmt"

	"llvm/bindings/go/llvm"
)

// CastOp names an LLVM conversion opcode, one entry per cell of the spec's
// genCastInstruction table.
type CastOp int

const (
	Trunc CastOp = iota
	SExt
	ZExt
	SIToFP
	UIToFP
	FPToSI
	FPToUI
	FPExt
	FPTrunc
	IntToPtr
	PtrToInt
	BitCast
)

// isDouble is the only float-width distinction backend.Type needs to make,
// since C only has two floating base types.
func (ty Type) isDouble() bool {
	return ty.llvm.TypeKind().String() == "DoubleTypeKind"
}

// SelectCast implements genCastInstruction: given the from/to backend
// types of an already-legalized conversion (types.TestCast or
// types.TestExplicitCast having already approved it), it returns the
// single LLVM opcode that realizes the transition.
// It panics on a pair with no table entry; callers must only reach it
// after confirming the cast is legal.
func SelectCast(from, to Type) CastOp {
	switch {
	case from.IsArray() && to.IsPointer():
		return BitCast
	case from.IsPointer() && to.IsPointer():
		return BitCast
	case from.IsPointer() && to.IntBits() > 0:
		return PtrToInt
	case from.IntBits() > 0 && to.IsPointer():
		return IntToPtr
	case from.IsFloat() && to.IsFloat():
		if from.isDouble() && !to.isDouble() {
			return FPTrunc
		}
		if !from.isDouble() && to.isDouble() {
			return FPExt
		}
		return BitCast
	case from.IsFloat() && to.IntBits() > 0:
		if to.Signed {
			return FPToSI
		}
		return FPToUI
	case from.IntBits() > 0 && to.IsFloat():
		if from.Signed {
			return SIToFP
		}
		return UIToFP
	case from.IntBits() > 0 && to.IntBits() > 0:
		return selectIntToInt(from, to)
	default:
		panic(fmt.Sprintf("backend: no cast instruction from %v to %v", from, to))
	}
}

func selectIntToInt(from, to Type) CastOp {
	switch {
	case to.IntBits() < from.IntBits():
		return Trunc
	case to.IntBits() > from.IntBits():
		if from.Signed && to.Signed {
			return SExt
		}
		return ZExt
	default:
		return BitCast
	}
}

// Cast lowers val to type to using the given opcode, matching it against
// the exact LLVM instruction the selected opcode names.
func (b *Builder) Cast(op CastOp, val *Value, to Type) *Value {
	var llv = castLLVMValue(b, op, val, to)
	return &Value{m: b.m, ty: to, llvm: llv}
}

func castLLVMValue(b *Builder, op CastOp, val *Value, to Type) llvm.Value {
	switch op {
	case Trunc:
		return b.llvm.CreateTrunc(val.llvm, to.llvm, "")
	case SExt:
		return b.llvm.CreateSExt(val.llvm, to.llvm, "")
	case ZExt:
		return b.llvm.CreateZExt(val.llvm, to.llvm, "")
	case SIToFP:
		return b.llvm.CreateSIToFP(val.llvm, to.llvm, "")
	case UIToFP:
		return b.llvm.CreateUIToFP(val.llvm, to.llvm, "")
	case FPToSI:
		return b.llvm.CreateFPToSI(val.llvm, to.llvm, "")
	case FPToUI:
		return b.llvm.CreateFPToUI(val.llvm, to.llvm, "")
	case FPExt:
		return b.llvm.CreateFPExt(val.llvm, to.llvm, "")
	case FPTrunc:
		return b.llvm.CreateFPTrunc(val.llvm, to.llvm, "")
	case IntToPtr:
		return b.llvm.CreateIntToPtr(val.llvm, to.llvm, "")
	case PtrToInt:
		return b.llvm.CreatePtrToInt(val.llvm, to.llvm, "")
	case BitCast:
		return b.llvm.CreateBitCast(val.llvm, to.llvm, "")
	default:
		panic("backend: unknown CastOp")
	}
}
