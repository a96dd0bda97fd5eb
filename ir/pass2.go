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
	"fmt"

	"cc99c/ast"
	"cc99c/backend"
	"cc99c/types"
)

// pass2 emits every function body, now that pass1 has declared every
// prototype and global a body might reference.
func (g *Generator) pass2(tu *ast.TranslationUnit) {
	for _, decl := range tu.Decls {
		fd, ok := decl.(*ast.FuncDef)
		if !ok || fd.Body == nil {
			continue
		}
		g.genFuncBody(fd)
	}
}

func (g *Generator) genFuncBody(d *ast.FuncDef) {
	fn, ok := g.funcs[d.Name]
	if !ok {
		return
	}

	g.curFunc = fn.backend
	g.curReturn = fn.Return
	g.builder = backend.NewBuilder(g.backend, fn.backend)

	g.scopes = scopeStack{}
	g.scopes.push()
	for i, p := range d.Params {
		name := p.Name
		if name == "" {
			// An anonymous parameter still needs a slot to be storable and a
			// name the backend can attach to the IR value; it is simply never
			// reachable by identifier lookup from the body.
			name = fmt.Sprintf("__param__%s%d", d.Name, i)
		}
		pty := g.lowerType(p.Type)
		slot := g.builder.Alloca(pty, name)
		fn.backend.SetParamName(i, name)
		g.builder.Store(slot, fn.backend.Param(i, pty))
		if p.Name != "" {
			g.scopes.declare(p.Name, p.Type, slot)
		}
	}

	if err := g.genStmt(d.Body); err != nil {
		g.Errors.Add(err)
	}
	g.scopes.pop()

	if !g.builder.IsTerminated() {
		if fn.Return.Base.Kind == types.KindVoid {
			g.builder.ReturnVoid()
		} else {
			g.builder.Unreachable()
		}
	}

	g.curFunc = nil
	g.builder = nil
}
