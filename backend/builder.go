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

// Builder is the instruction builder the back end exposes to the IR
// generator. Unlike gapid's core/codegen.Builder, it never hides basic
// blocks behind structured control-flow helpers: the IR generator manages
// its own break/continue label stacks and needs to create and branch to
// blocks directly.
type Builder struct {
	m    *Module
	fn   *Function
	llvm llvm.Builder
	cur  *Block
}

// NewBuilder returns a builder positioned at the entry block of fn.
func NewBuilder(m *Module, fn *Function) *Builder {
	b := &Builder{m: m, fn: fn, llvm: m.ctx.NewBuilder()}
	entry := fn.NewBlock("entry")
	b.SetInsertBlock(entry)
	return b
}

// SetInsertBlock moves subsequent instructions to the end of blk.
func (b *Builder) SetInsertBlock(blk *Block) {
	b.cur = blk
	b.llvm.SetInsertPointAtEnd(blk.llvm)
}

// Block returns the block instructions are currently appended to.
func (b *Builder) Block() *Block { return b.cur }

// IsTerminated reports whether the current block already ends in a
// terminator (br, cond-br, ret, unreachable). The IR generator's two-pass
// codegen uses this as the noTerminator() probe the spec names.
func (b *Builder) IsTerminated() bool {
	term := b.llvm.GetInsertBlock().LastInstruction()
	return !term.IsNil() && !term.IsATerminatorInst().IsNil()
}

// Br unconditionally branches to target.
func (b *Builder) Br(target *Block) {
	if b.IsTerminated() {
		return
	}
	b.llvm.CreateBr(target.llvm)
}

// CondBr branches to onTrue or onFalse depending on cond.
func (b *Builder) CondBr(cond *Value, onTrue, onFalse *Block) {
	if b.IsTerminated() {
		return
	}
	b.llvm.CreateCondBr(cond.llvm, onTrue.llvm, onFalse.llvm)
}

// Unreachable marks the current block as never falling through, used to
// terminate a block after a Return when dead code follows it.
func (b *Builder) Unreachable() {
	if b.IsTerminated() {
		return
	}
	b.llvm.CreateUnreachable()
}

// Alloca reserves a stack slot of type ty.
func (b *Builder) Alloca(ty Type, name string) *Value {
	return &Value{m: b.m, ty: b.m.Types.Pointer(ty), llvm: b.llvm.CreateAlloca(ty.llvm, name)}
}

// Load reads through a pointer value.
func (b *Builder) Load(ptr *Value, elemTy Type, name string) *Value {
	return &Value{m: b.m, ty: elemTy, llvm: b.llvm.CreateLoad(ptr.llvm, name)}
}

// Store writes val through ptr.
func (b *Builder) Store(ptr, val *Value) {
	b.llvm.CreateStore(val.llvm, ptr.llvm)
}

// Call invokes fn with the given already-cast arguments.
func (b *Builder) Call(fn *Function, resultTy Type, args ...*Value) *Value {
	vals := make([]llvm.Value, len(args))
	for i, a := range args {
		vals[i] = a.llvm
	}
	name := ""
	if resultTy.llvm.TypeKind() != llvm.VoidTypeKind {
		name = "call"
	}
	return &Value{m: b.m, ty: resultTy, llvm: b.llvm.CreateCall(fn.llvm, vals, name)}
}

// Return emits a return of val.
func (b *Builder) Return(val *Value) {
	if b.IsTerminated() {
		return
	}
	b.llvm.CreateRet(val.llvm)
}

// ReturnVoid emits a bare return.
func (b *Builder) ReturnVoid() {
	if b.IsTerminated() {
		return
	}
	b.llvm.CreateRetVoid()
}

// ConstInt builds an integer constant of type ty.
func (b *Builder) ConstInt(ty Type, v uint64) *Value {
	return &Value{m: b.m, ty: ty, llvm: llvm.ConstInt(ty.llvm, v, ty.Signed)}
}

// ConstFloat builds a floating-point constant of type ty.
func (b *Builder) ConstFloat(ty Type, v float64) *Value {
	return &Value{m: b.m, ty: ty, llvm: llvm.ConstFloat(ty.llvm, v)}
}

// GEP2 computes the address of an array element (pointer + index).
func (b *Builder) GEP2(ptr *Value, elemTy Type, index *Value) *Value {
	indices := []llvm.Value{index.llvm}
	return &Value{m: b.m, ty: b.m.Types.Pointer(elemTy), llvm: b.llvm.CreateGEP(ptr.llvm, indices, "")}
}
