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

// pass1 emits every prototype and global declaration before any function
// body is generated, so that forward references to a function or global
// declared later in the same translation unit still resolve.
func (g *Generator) pass1(tu *ast.TranslationUnit) {
	for _, decl := range tu.Decls {
		switch d := decl.(type) {
		case *ast.FuncDef:
			g.pass1Func(d)
		case *ast.VarDecl:
			g.pass1Global(d)
		}
	}
}

func (g *Generator) pass1Func(d *ast.FuncDef) {
	if d.Storage == types.StorageTypedef {
		g.errorf(diag.NotImplemented, d.Span(), "typedef storage class is not valid on a function")
		return
	}
	if _, isGlobal := g.globals[d.Name]; isGlobal {
		g.errorf(diag.RedefinitionSymbol, d.Span(), "%q is already declared as a global variable", d.Name)
		return
	}

	paramTypes := make([]*types.Basic, len(d.Params))
	for i, p := range d.Params {
		paramTypes[i] = p.Type
	}

	if existing, ok := g.funcs[d.Name]; ok {
		if !samePrototype(existing, d.Return, paramTypes, d.Variadic) {
			g.errorf(diag.DuplicatedFunction, d.Span(), "conflicting prototype for %q", d.Name)
			return
		}
		if d.Body != nil {
			existing.backend = g.declareFunction(d, paramTypes)
		}
		return
	}

	linkage := backend.LinkageCommon
	switch d.Storage {
	case types.StorageStatic:
		linkage = backend.LinkageInternal
	case types.StorageExtern, types.StorageNone:
		linkage = backend.LinkageExternal
	}

	bf := g.backend.AddFunction(d.Name, g.functionSignature(d.Return, paramTypes, d.Variadic), linkage)
	g.funcs[d.Name] = &function{Return: d.Return, Params: paramTypes, Variadic: d.Variadic, backend: bf}
}

func (g *Generator) declareFunction(d *ast.FuncDef, paramTypes []*types.Basic) *backend.Function {
	linkage := backend.LinkageExternal
	if d.Storage == types.StorageStatic {
		linkage = backend.LinkageInternal
	}
	return g.backend.AddFunction(d.Name, g.functionSignature(d.Return, paramTypes, d.Variadic), linkage)
}

func (g *Generator) functionSignature(ret *types.Basic, params []*types.Basic, variadic bool) backend.Type {
	paramTys := make([]backend.Type, len(params))
	for i, p := range params {
		paramTys[i] = g.lowerType(p)
	}
	return g.backend.Types.Function(g.lowerType(ret), variadic, paramTys...)
}

func samePrototype(existing *function, ret *types.Basic, params []*types.Basic, variadic bool) bool {
	if !types.EqualDiscardingQualifiers(existing.Return.Base, ret.Base) {
		return false
	}
	if existing.Variadic != variadic || len(existing.Params) != len(params) {
		return false
	}
	for i := range params {
		if !types.EqualDiscardingQualifiers(existing.Params[i].Base, params[i].Base) {
			return false
		}
	}
	return true
}

func (g *Generator) pass1Global(d *ast.VarDecl) {
	if d.Name == "" {
		// A bare struct/union tag declaration with no object; nothing to
		// emit, but register its member layout for later lookups.
		if d.Type.Basic.Base.Kind == types.KindStruct || d.Type.Basic.Base.Kind == types.KindUnion {
			g.registerStructType(d.Type.Basic.Base)
		}
		return
	}

	if d.Type.Storage == types.StorageTypedef {
		g.typedefs[d.Name] = d.Type.Basic.Base
		return
	}

	if d.Type.Basic.Base.Kind == types.KindStruct || d.Type.Basic.Base.Kind == types.KindUnion {
		g.registerStructType(d.Type.Basic.Base)
	}

	if _, isFunc := g.funcs[d.Name]; isFunc {
		g.errorf(diag.RedefinitionSymbol, d.Span(), "%q is already declared as a function", d.Name)
		return
	}
	if _, exists := g.globals[d.Name]; exists {
		g.errorf(diag.DuplicatedGlobal, d.Span(), "global %q is already declared", d.Name)
		return
	}

	ty := g.lowerType(d.Type.Basic)
	linkage := backend.LinkageCommon
	switch d.Type.Storage {
	case types.StorageStatic:
		linkage = backend.LinkageInternal
	case types.StorageExtern:
		linkage = backend.LinkageExternal
	}

	isConst := types.IsConst(d.Type.Basic)

	var init *backend.Value
	if d.Init != nil {
		val, err := g.constantValue(d.Init, d.Type.Basic)
		if err != nil {
			g.Errors.Add(err)
			return
		}
		init = val
	}

	gv := g.backend.AddGlobal(d.Name, ty, linkage, init, isConst)
	g.globals[d.Name] = &global{typ: d.Type.Basic, value: gv}
}

func (g *Generator) registerStructType(base *types.Base) {
	if base.Tag == "" || base.Members == nil {
		return
	}
	if _, exists := g.structs[base.Tag]; !exists {
		g.structs[base.Tag] = base.Members
	}
}
