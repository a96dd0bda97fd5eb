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
	"github.com/google/gapid/core/codegen"
	"github.com/google/gapid/core/os/device"

	"llvm/bindings/go/llvm"
)

// Linkage mirrors the handful of LLVM linkages the IR generator's storage
// classes map onto: static maps to internal, extern to external, and
// auto/no storage class to default/common linkage.
type Linkage int

const (
	LinkageExternal Linkage = iota
	LinkageInternal
	LinkageCommon
)

func (l Linkage) llvm() llvm.Linkage {
	switch l {
	case LinkageInternal:
		return llvm.InternalLinkage
	case LinkageCommon:
		return llvm.CommonLinkage
	default:
		return llvm.ExternalLinkage
	}
}

// Module is one LLVM compilation unit.
type Module struct {
	Types Types

	ctx    llvm.Context
	llvm   llvm.Module
	triple string
	name   string
}

// NewModule implements createModule: it returns a new, empty module
// targeting the host ABI. The triple and data-layout detection is reused
// directly from gapid's core/codegen, since that part of the back-end is
// pure target-description plumbing independent of how blocks get built.
func NewModule(name string) *Module {
	abi := Target
	ctx := llvm.NewContext()
	m := ctx.NewModule(name)
	triple := codegen.TargetTriple(abi).String()
	m.SetTarget(triple)
	if dl := codegen.DataLayout(abi); dl != "" {
		m.SetDataLayout(dl)
	}
	mod := &Module{ctx: ctx, llvm: m, triple: triple, name: name}
	mod.Types.init(ctx)
	return mod
}

// Target is the ABI every Module is built for. A future extension could
// make this a CLI flag; for now the front end always targets x86-64 Linux,
// which matches how the command-line driver is actually exercised.
var Target = device.LinuxX86_64

// AddFunction implements addFunction: it declares (but does not define) a
// function with the given name, signature and linkage.
func (m *Module) AddFunction(name string, sig Type, linkage Linkage) *Function {
	f := llvm.AddFunction(m.llvm, name, sig.llvm)
	f.SetLinkage(linkage.llvm())
	return &Function{m: m, llvm: f, Type: sig}
}

// AddGlobal implements addGlobal: it declares a global variable of the
// given type, optionally with a constant initializer. A nil init produces
// a zero-initialized global.
func (m *Module) AddGlobal(name string, ty Type, linkage Linkage, init *Value, isConstant bool) *Value {
	g := llvm.AddGlobal(m.llvm, ty.llvm, name)
	g.SetLinkage(linkage.llvm())
	g.SetGlobalConstant(isConstant)
	if init != nil {
		g.SetInitializer(init.llvm)
	} else {
		g.SetInitializer(llvm.ConstNull(ty.llvm))
	}
	return &Value{m: m, ty: ty, llvm: g}
}

// GlobalString adds a NUL-terminated byte array global holding s and
// returns a pointer to its first element, as string literals lower to.
func (m *Module) GlobalString(s string) *Value {
	data := append([]byte(s), 0)
	arrTy := m.Types.Array(m.Types.Int8, len(data))
	g := llvm.AddGlobal(m.llvm, arrTy.llvm, "")
	g.SetLinkage(llvm.PrivateLinkage)
	g.SetGlobalConstant(true)
	g.SetInitializer(llvm.ConstString(string(data), false))
	zero := llvm.ConstInt(m.Types.Int32.llvm, 0, false)
	ptr := llvm.ConstInBoundsGEP(g, []llvm.Value{zero, zero})
	return &Value{m: m, ty: m.Types.Pointer(m.Types.Int8), llvm: ptr}
}

// ConstInt builds an integer constant without requiring a positioned
// Builder, so that the IR generator's global-initializer folding (pass 1)
// can build constants before any function exists.
func (m *Module) ConstInt(ty Type, v uint64) *Value {
	return &Value{m: m, ty: ty, llvm: llvm.ConstInt(ty.llvm, v, ty.Signed)}
}

// ConstFloat builds a floating-point constant the same way ConstInt does.
func (m *Module) ConstFloat(ty Type, v float64) *Value {
	return &Value{m: m, ty: ty, llvm: llvm.ConstFloat(ty.llvm, v)}
}

// Null returns the zero value of ty, used for pointer-nullness comparisons.
func (m *Module) Null(ty Type) *Value {
	return &Value{m: m, ty: ty, llvm: llvm.ConstNull(ty.llvm)}
}

// NegateConstant negates a constant built by ConstInt/ConstFloat, for
// folding a unary minus applied to a global initializer.
func (m *Module) NegateConstant(val *Value) *Value {
	if val.ty.IsFloat() {
		return &Value{m: m, ty: val.ty, llvm: llvm.ConstFNeg(val.llvm)}
	}
	return &Value{m: m, ty: val.ty, llvm: llvm.ConstNeg(val.llvm)}
}

// String returns the module's textual LLVM IR.
func (m *Module) String() string {
	return m.llvm.String()
}
