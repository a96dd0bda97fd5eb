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

// Value is any SSA value: a parameter, a loaded variable, a constant, the
// address of a slot, or the result of an instruction.
type Value struct {
	m    *Module
	ty   Type
	llvm llvm.Value
}

// Type returns the LLVM type this value was built with.
func (v *Value) Type() Type { return v.ty }

// Block is a single basic block within a Function.
type Block struct {
	f    *Function
	llvm llvm.BasicBlock
}

// Function is a declared or defined function.
type Function struct {
	m    *Module
	llvm llvm.Value
	Type Type
}

// NewBlock appends a fresh, unreachable-until-branched-to block to f.
func (f *Function) NewBlock(name string) *Block {
	return &Block{f: f, llvm: f.m.ctx.AddBasicBlock(f.llvm, name)}
}

// Param returns the i'th parameter value.
func (f *Function) Param(i int, ty Type) *Value {
	return &Value{m: f.m, ty: ty, llvm: f.llvm.Param(i)}
}

// SetParamName names the i'th parameter, mostly for readable IR dumps.
func (f *Function) SetParamName(i int, name string) {
	f.llvm.Param(i).SetName(name)
}
