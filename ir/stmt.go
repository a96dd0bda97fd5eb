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

func (g *Generator) genStmt(s ast.Stmt) *diag.Error {
	switch st := s.(type) {
	case *ast.Compound:
		return g.genCompound(st)
	case *ast.ExprStmt:
		if st.Expr == nil {
			return nil
		}
		_, _, err := g.genExpr(st.Expr)
		return err
	case *ast.If:
		return g.genIf(st)
	case *ast.While:
		return g.genWhile(st)
	case *ast.DoWhile:
		return g.genDoWhile(st)
	case *ast.For:
		return g.genFor(st)
	case *ast.Break:
		return g.genBreak(st)
	case *ast.Continue:
		return g.genContinue(st)
	case *ast.Return:
		return g.genReturn(st)
	default:
		// Labeled, Case, Switch and Goto are an acknowledged extension
		// point; a free-standing label/switch/goto is not lowered.
		return diag.New(diag.NotImplemented, s.Span(), "statement form is not supported")
	}
}

func (g *Generator) genCompound(s *ast.Compound) *diag.Error {
	g.scopes.push()
	defer g.scopes.pop()
	for _, item := range s.Items {
		switch it := item.(type) {
		case *ast.VarDecl:
			if err := g.genLocalDecl(it); err != nil {
				return err
			}
		case ast.Stmt:
			if err := g.genStmt(it); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) genLocalDecl(d *ast.VarDecl) *diag.Error {
	if d.Name == "" {
		if d.Type.Basic.Base.Kind == types.KindStruct || d.Type.Basic.Base.Kind == types.KindUnion {
			g.registerStructType(d.Type.Basic.Base)
		}
		return nil
	}
	if d.Type.Storage == types.StorageTypedef {
		g.typedefs[d.Name] = d.Type.Basic.Base
		return nil
	}
	ty := d.Type.Basic
	slot := g.builder.Alloca(g.lowerType(ty), d.Name)
	if !g.scopes.declare(d.Name, ty, slot) {
		return diag.New(diag.DuplicatedVariable, d.Span(), "%q is already declared in this scope", d.Name)
	}
	if d.Init != nil {
		val, vty, err := g.genExpr(d.Init)
		if err != nil {
			return err
		}
		cast, err := g.castValue(val, vty, ty, d.Init.Span())
		if err != nil {
			return err
		}
		g.builder.Store(slot, cast)
	}
	return nil
}

func (g *Generator) genIf(s *ast.If) *diag.Error {
	cond, condTy, err := g.genExpr(s.Cond)
	if err != nil {
		return err
	}
	truth := g.truthValue(cond, condTy)

	thenBlock := g.currentFunction().NewBlock("")
	mergeBlock := g.currentFunction().NewBlock("")
	if s.Else == nil {
		g.builder.CondBr(truth, thenBlock, mergeBlock)
		g.builder.SetInsertBlock(thenBlock)
		if err := g.genStmt(s.Then); err != nil {
			return err
		}
		g.builder.Br(mergeBlock)
		g.builder.SetInsertBlock(mergeBlock)
		return nil
	}

	elseBlock := g.currentFunction().NewBlock("")
	g.builder.CondBr(truth, thenBlock, elseBlock)

	g.builder.SetInsertBlock(thenBlock)
	if err := g.genStmt(s.Then); err != nil {
		return err
	}
	g.builder.Br(mergeBlock)

	g.builder.SetInsertBlock(elseBlock)
	if err := g.genStmt(s.Else); err != nil {
		return err
	}
	g.builder.Br(mergeBlock)

	g.builder.SetInsertBlock(mergeBlock)
	return nil
}

func (g *Generator) pushLoop(continueTarget, breakTarget *backend.Block) {
	g.continueStack = append(g.continueStack, continueTarget)
	g.breakStack = append(g.breakStack, breakTarget)
}

func (g *Generator) popLoop() {
	g.continueStack = g.continueStack[:len(g.continueStack)-1]
	g.breakStack = g.breakStack[:len(g.breakStack)-1]
}

func (g *Generator) genWhile(s *ast.While) *diag.Error {
	condBlock := g.currentFunction().NewBlock("")
	bodyBlock := g.currentFunction().NewBlock("")
	afterBlock := g.currentFunction().NewBlock("")

	g.builder.Br(condBlock)
	g.builder.SetInsertBlock(condBlock)
	cond, condTy, err := g.genExpr(s.Cond)
	if err != nil {
		return err
	}
	truth := g.truthValue(cond, condTy)
	g.builder.CondBr(truth, bodyBlock, afterBlock)

	g.builder.SetInsertBlock(bodyBlock)
	g.pushLoop(condBlock, afterBlock)
	bodyErr := g.genStmt(s.Body)
	g.popLoop()
	if bodyErr != nil {
		return bodyErr
	}
	g.builder.Br(condBlock)

	g.builder.SetInsertBlock(afterBlock)
	return nil
}

func (g *Generator) genDoWhile(s *ast.DoWhile) *diag.Error {
	bodyBlock := g.currentFunction().NewBlock("")
	condBlock := g.currentFunction().NewBlock("")
	afterBlock := g.currentFunction().NewBlock("")

	g.builder.Br(bodyBlock)
	g.builder.SetInsertBlock(bodyBlock)
	g.pushLoop(condBlock, afterBlock)
	bodyErr := g.genStmt(s.Body)
	g.popLoop()
	if bodyErr != nil {
		return bodyErr
	}
	g.builder.Br(condBlock)

	g.builder.SetInsertBlock(condBlock)
	cond, condTy, err := g.genExpr(s.Cond)
	if err != nil {
		return err
	}
	truth := g.truthValue(cond, condTy)
	g.builder.CondBr(truth, bodyBlock, afterBlock)

	g.builder.SetInsertBlock(afterBlock)
	return nil
}

// genFor lowers init; cond; iter; body with continue targeting the iter
// block rather than the loop's exit: a continue must still run iter before
// the condition is re-checked, which a naive "continue == jump to after" or
// "continue == jump to cond" translation gets wrong.
func (g *Generator) genFor(s *ast.For) *diag.Error {
	g.scopes.push()
	defer g.scopes.pop()

	if s.Init != nil {
		switch init := s.Init.(type) {
		case ast.ForInitExpr:
			if init.Expr != nil {
				if _, _, err := g.genExpr(init.Expr); err != nil {
					return err
				}
			}
		case ast.ForInitDecls:
			for _, d := range init.Decls {
				if err := g.genLocalDecl(d); err != nil {
					return err
				}
			}
		}
	}

	condBlock := g.currentFunction().NewBlock("")
	bodyBlock := g.currentFunction().NewBlock("")
	iterBlock := g.currentFunction().NewBlock("")
	afterBlock := g.currentFunction().NewBlock("")

	g.builder.Br(condBlock)
	g.builder.SetInsertBlock(condBlock)
	if s.Cond != nil {
		cond, condTy, err := g.genExpr(s.Cond)
		if err != nil {
			return err
		}
		truth := g.truthValue(cond, condTy)
		g.builder.CondBr(truth, bodyBlock, afterBlock)
	} else {
		g.builder.Br(bodyBlock)
	}

	g.builder.SetInsertBlock(bodyBlock)
	g.pushLoop(iterBlock, afterBlock)
	bodyErr := g.genStmt(s.Body)
	g.popLoop()
	if bodyErr != nil {
		return bodyErr
	}
	g.builder.Br(iterBlock)

	g.builder.SetInsertBlock(iterBlock)
	if s.Iter != nil {
		if _, _, err := g.genExpr(s.Iter); err != nil {
			return err
		}
	}
	g.builder.Br(condBlock)

	g.builder.SetInsertBlock(afterBlock)
	return nil
}

func (g *Generator) genBreak(s *ast.Break) *diag.Error {
	if len(g.breakStack) == 0 {
		return diag.New(diag.KeywordNotInLoop, s.Span(), "break statement not within a loop")
	}
	g.builder.Br(g.breakStack[len(g.breakStack)-1])
	return nil
}

func (g *Generator) genContinue(s *ast.Continue) *diag.Error {
	if len(g.continueStack) == 0 {
		return diag.New(diag.KeywordNotInLoop, s.Span(), "continue statement not within a loop")
	}
	g.builder.Br(g.continueStack[len(g.continueStack)-1])
	return nil
}

func (g *Generator) genReturn(s *ast.Return) *diag.Error {
	if s.Expr == nil {
		g.builder.ReturnVoid()
		return nil
	}
	val, ty, err := g.genExpr(s.Expr)
	if err != nil {
		return err
	}
	cast, err := g.castValue(val, ty, g.curReturn, s.Span())
	if err != nil {
		return err
	}
	g.builder.Return(cast)
	return nil
}
