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

package ast

import "fmt"

// ToJSON converts an AST node to the stable wire shape used by the
// "--parse" CLI output: a tagged sum {"NodeKind": [children...]} for every
// node with children, or a plain value for the handful of pure-literal
// nodes. Span is never serialized; it is a byproduct of parsing and carries
// no information a consumer of the tree should depend on.
//
// The exact shape produced here is part of the external contract: the
// --parse JSON output must be stable across releases.
func ToJSON(n Node) interface{} {
	switch n := n.(type) {
	case *TranslationUnit:
		decls := make([]interface{}, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = ToJSON(d)
		}
		return tag("TranslationUnit", decls)

	case *VarDecl:
		return tag("VarDecl", []interface{}{n.Name, n.Type.String(), exprOrNil(n.Init)})

	case *FuncDef:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			params[i] = []interface{}{p.Name, p.Type.String()}
		}
		return tag("FuncDef", []interface{}{
			n.Name, n.Return.String(), params, n.Variadic, stmtOrNil(n.Body),
		})

	case *Labeled:
		return tag("Labeled", []interface{}{n.Label, ToJSON(n.Stmt)})
	case *Case:
		return tag("Case", []interface{}{exprOrNil(n.Expr), ToJSON(n.Stmt)})
	case *Compound:
		items := make([]interface{}, len(n.Items))
		for i, it := range n.Items {
			items[i] = ToJSON(it)
		}
		return tag("Compound", items)
	case *ExprStmt:
		return tag("ExprStmt", []interface{}{ToJSON(n.Expr)})
	case *If:
		return tag("If", []interface{}{ToJSON(n.Cond), ToJSON(n.Then), stmtOrNil(n.Else)})
	case *Switch:
		return tag("Switch", []interface{}{ToJSON(n.Value), ToJSON(n.Body)})
	case *While:
		return tag("While", []interface{}{ToJSON(n.Cond), ToJSON(n.Body)})
	case *DoWhile:
		return tag("DoWhile", []interface{}{ToJSON(n.Body), ToJSON(n.Cond)})
	case *For:
		return tag("For", []interface{}{forInitJSON(n.Init), exprOrNil(n.Cond), exprOrNil(n.Iter), ToJSON(n.Body)})
	case *Break:
		return tag("Break", []interface{}{})
	case *Continue:
		return tag("Continue", []interface{}{})
	case *Return:
		return tag("Return", []interface{}{exprOrNil(n.Expr)})
	case *Goto:
		return tag("Goto", []interface{}{n.Label})

	case *Assign:
		return tag("Assign", []interface{}{ToJSON(n.LHS), n.Operator, ToJSON(n.RHS)})
	case *UnaryOp:
		return tag("UnaryOp", []interface{}{n.Operator, ToJSON(n.Operand), n.Postfix})
	case *SizeofExpr:
		return tag("SizeofExpr", []interface{}{ToJSON(n.Operand)})
	case *SizeofType:
		return tag("SizeofType", []interface{}{n.Type.String()})
	case *BinaryOp:
		return tag("BinaryOp", []interface{}{ToJSON(n.LHS), n.Operator, ToJSON(n.RHS)})
	case *Call:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = ToJSON(a)
		}
		return tag("Call", []interface{}{ToJSON(n.Callee), args})
	case *Cast:
		return tag("Cast", []interface{}{n.Type.String(), ToJSON(n.Operand)})
	case *Conditional:
		return tag("Conditional", []interface{}{ToJSON(n.Cond), ToJSON(n.Then), ToJSON(n.Else)})
	case *Member:
		return tag("Member", []interface{}{ToJSON(n.Object), n.Name, n.Arrow})
	case *Subscript:
		return tag("Subscript", []interface{}{ToJSON(n.Object), ToJSON(n.Index)})
	case *Ident:
		return tag("Ident", n.Name)
	case *IntLiteral:
		return tag("IntLiteral", []interface{}{n.Value, n.Type.String()})
	case *FloatLiteral:
		return tag("FloatLiteral", []interface{}{n.Value, n.Type.String()})
	case *CharLiteral:
		return tag("CharLiteral", n.Value)
	case *StringLiteral:
		return tag("StringLiteral", n.Value)
	case *Empty:
		return tag("Empty", []interface{}{})

	default:
		panic(fmt.Errorf("ast.ToJSON: unsupported node type %T", n))
	}
}

func tag(name string, value interface{}) map[string]interface{} {
	return map[string]interface{}{name: value}
}

func exprOrNil(e Expr) interface{} {
	if e == nil {
		return nil
	}
	return ToJSON(e)
}

func stmtOrNil(s Stmt) interface{} {
	if s == nil {
		return nil
	}
	return ToJSON(s)
}

func forInitJSON(init ForInit) interface{} {
	switch init := init.(type) {
	case nil:
		return nil
	case ForInitExpr:
		return tag("ForInitExpr", ToJSON(init.Expr))
	case ForInitDecls:
		decls := make([]interface{}, len(init.Decls))
		for i, d := range init.Decls {
			decls[i] = ToJSON(d)
		}
		return tag("ForInitDecls", decls)
	default:
		panic(fmt.Errorf("ast.ToJSON: unsupported ForInit type %T", init))
	}
}
