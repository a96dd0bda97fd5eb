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

// Generator holds everything the two-pass codegen needs: the backend
// module and current instruction builder, the scope stack, the three
// top-level tables, and the break/continue label stacks.
type Generator struct {
	backend *backend.Module
	builder *backend.Builder

	scopes  scopeStack
	funcs   map[string]*function
	globals map[string]*global
	structs map[string][]types.Member
	typedefs map[string]*types.Base

	breakStack    []*backend.Block
	continueStack []*backend.Block

	curFunc   *backend.Function
	curReturn *types.Basic

	Errors diag.List
}

// currentFunction returns the function body pass 2 is currently emitting
// into, for statement/expression codegen that needs to add blocks to it.
func (g *Generator) currentFunction() *backend.Function { return g.curFunc }

// New returns a Generator targeting a fresh backend module named name.
func New(name string) *Generator {
	return &Generator{
		backend:  backend.NewModule(name),
		funcs:    map[string]*function{},
		globals:  map[string]*global{},
		structs:  map[string][]types.Member{},
		typedefs: map[string]*types.Base{},
	}
}

// Module returns the backend module generation has been writing into.
func (g *Generator) Module() *backend.Module { return g.backend }

// Generate runs both passes over tu: pass 1 emits prototypes and globals,
// pass 2 emits function bodies. Errors from both passes are collected
// rather than aborting at the first one, so a single run reports every
// problem in the translation unit.
func (g *Generator) Generate(tu *ast.TranslationUnit) {
	defer g.Errors.Recover()
	g.pass1(tu)
	if !g.Errors.Empty() {
		return
	}
	g.pass2(tu)
}

func (g *Generator) errorf(kind diag.Kind, span diag.Span, format string, args ...interface{}) {
	g.Errors.Errorf(kind, span, format, args...)
}
