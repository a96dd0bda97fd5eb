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

// Package backend adapts the C front end's IR generator to an LLVM module,
// playing the role of the "opaque back-end" the specification treats as an
// external collaborator (createModule, addFunction, addGlobal, an
// instruction builder, writeObject/writeAssembly/writeBitcode). Unlike
// gapid's core/codegen, whose Builder only exposes structured If/IfElse/
// While combinators, this package exposes raw basic blocks directly: the
// IR generator owns its own break/continue label stacks and must be able
// to create blocks and branch between them arbitrarily.
package backend

import "llvm/bindings/go/llvm"

// Type wraps an LLVM type.
type Type struct {
	llvm llvm.Type
	// Signed distinguishes the two integer flavors backend.Types hands out;
	// it has no effect on the underlying LLVM type, only on which cast
	// opcode genCastInstruction selects.
	Signed bool
}

// Types is the set of LLVM types a Module knows how to build, named after
// the C base kinds that route to them.
type Types struct {
	Void    Type
	Bool    Type
	Int8    Type
	Int16   Type
	Int32   Type
	Int64   Type
	Uint8   Type
	Uint16  Type
	Uint32  Type
	Uint64  Type
	Float32 Type
	Float64 Type

	ctx llvm.Context
}

func (t *Types) init(ctx llvm.Context) {
	t.ctx = ctx
	t.Void = Type{llvm: ctx.VoidType()}
	t.Bool = Type{llvm: ctx.Int1Type()}
	t.Int8 = Type{llvm: ctx.Int8Type(), Signed: true}
	t.Int16 = Type{llvm: ctx.Int16Type(), Signed: true}
	t.Int32 = Type{llvm: ctx.Int32Type(), Signed: true}
	t.Int64 = Type{llvm: ctx.Int64Type(), Signed: true}
	t.Uint8 = Type{llvm: ctx.Int8Type()}
	t.Uint16 = Type{llvm: ctx.Int16Type()}
	t.Uint32 = Type{llvm: ctx.Int32Type()}
	t.Uint64 = Type{llvm: ctx.Int64Type()}
	t.Float32 = Type{llvm: ctx.FloatType()}
	t.Float64 = Type{llvm: ctx.DoubleType()}
}

// Pointer returns the pointer-to-elem type.
func (t *Types) Pointer(elem Type) Type {
	return Type{llvm: llvm.PointerType(elem.llvm, 0)}
}

// Array returns the type of an array of n elements of elem.
func (t *Types) Array(elem Type, n int) Type {
	return Type{llvm: llvm.ArrayType(elem.llvm, n)}
}

// Struct returns an (unnamed) struct type with the given field types, in
// order.
func (t *Types) Struct(fields ...Type) Type {
	tys := make([]llvm.Type, len(fields))
	for i, f := range fields {
		tys[i] = f.llvm
	}
	return Type{llvm: t.ctx.StructType(tys, false)}
}

// Function returns the type of a function with the given result and
// parameter types.
func (t *Types) Function(result Type, variadic bool, params ...Type) Type {
	tys := make([]llvm.Type, len(params))
	for i, p := range params {
		tys[i] = p.llvm
	}
	return Type{llvm: llvm.FunctionType(result.llvm, tys, variadic)}
}

// IntBits reports the bit width of an integer type, or 0 if ty is not an
// integer type.
func (ty Type) IntBits() int {
	if ty.llvm.TypeKind() != llvm.IntegerTypeKind {
		return 0
	}
	return ty.llvm.IntTypeWidth()
}

// IsFloat reports whether ty is a floating-point type.
func (ty Type) IsFloat() bool {
	k := ty.llvm.TypeKind()
	return k == llvm.FloatTypeKind || k == llvm.DoubleTypeKind
}

// IsPointer reports whether ty is a pointer type.
func (ty Type) IsPointer() bool {
	return ty.llvm.TypeKind() == llvm.PointerTypeKind
}

// IsArray reports whether ty is an array type.
func (ty Type) IsArray() bool {
	return ty.llvm.TypeKind() == llvm.ArrayTypeKind
}
