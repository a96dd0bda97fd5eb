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

// Package ast holds the typed abstract syntax tree produced by the parser.
// Every node owns its children uniquely; the tree never has back-edges.
// Shared references only appear later, when the IR generator's symbol
// tables hand out borrowed views of declarations.
package ast

import (
	"cc99c/diag"
	"cc99c/types"
)

// Node is implemented by every AST node so that the diagnostics layer can
// anchor a message at any point in the tree.
type Node interface {
	Span() diag.Span
}

// TranslationUnit is the root of the AST: one entire parsed (and
// preprocessed) source file.
type TranslationUnit struct {
	Decls []Declaration
}

// Span covers every declaration in the unit, or diag.NoSpan for an empty
// (e.g. all-comments) source file.
func (u *TranslationUnit) Span() diag.Span {
	if len(u.Decls) == 0 {
		return diag.NoSpan
	}
	span := u.Decls[0].Span()
	for _, d := range u.Decls[1:] {
		span = span.Cover(d.Span())
	}
	return span
}

// Declaration is either a VarDecl or a FuncDef.
type Declaration interface {
	Node
	isDeclaration()
}

// VarDecl declares an object, or a bare struct/union tag with no object
// (in which case Name is "").
type VarDecl struct {
	SpanVal diag.Span
	Type    *types.Type
	Name    string
	Init    Expr
}

func (d *VarDecl) Span() diag.Span { return d.SpanVal }
func (*VarDecl) isDeclaration()    {}

// Param is one parameter of a function declarator.
type Param struct {
	SpanVal diag.Span
	Type    *types.Basic
	Name    string // optional; "" for an anonymous parameter
}

func (p Param) Span() diag.Span { return p.SpanVal }

// FuncDef is a function declaration or definition.
type FuncDef struct {
	SpanVal    diag.Span
	Specifiers []types.FunctionSpecifier
	Storage    types.StorageClass
	Return     *types.Basic
	Name       string
	Params     []Param
	Variadic   bool
	Body       Stmt // nil for a prototype-only declaration
}

func (d *FuncDef) Span() diag.Span { return d.SpanVal }
func (*FuncDef) isDeclaration()    {}
