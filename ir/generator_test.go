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
	"testing"

	"cc99c/diag"
	"cc99c/internal/assert"
	"cc99c/parser"
	"cc99c/types"
)

func generate(t *testing.T, src string) *Generator {
	t.Helper()
	tu, errs := parser.Parse("test.c", src)
	assert.For(t, "Parse(%q) error count", src).That(len(errs)).Equals(0)
	g := New("test")
	g.Generate(tu)
	return g
}

func TestGenerateGlobalWithConstantInitializer(t *testing.T) {
	g := generate(t, "int x = 42;\n")
	assert.For(t, "no errors").That(g.Errors.Empty()).IsTrue()
	gl, ok := g.globals["x"]
	assert.For(t, "global x registered").That(ok).IsTrue()
	assert.For(t, "global kind").That(gl.typ.Base.Kind).Equals(types.KindSignedInt)
}

func TestGenerateSimpleFunction(t *testing.T) {
	g := generate(t, "int add(int a, int b) { return a + b; }\n")
	assert.For(t, "no errors").That(g.Errors.Empty()).IsTrue()
	fn, ok := g.funcs["add"]
	assert.For(t, "function add registered").That(ok).IsTrue()
	assert.For(t, "param count").That(len(fn.Params)).Equals(2)
}

func TestGenerateRejectsInvalidImplicitCast(t *testing.T) {
	g := generate(t, "int *p;\nint x = p;\n")
	assert.For(t, "expected an error").That(g.Errors.Empty()).IsFalse()
	errs := g.Errors.Errors()
	assert.For(t, "first error kind").That(errs[0].Kind).Equals(diag.InvalidDefaultCast)
}

func TestGenerateRejectsBreakOutsideLoop(t *testing.T) {
	g := generate(t, "void f(void) { break; }\n")
	assert.For(t, "expected an error").That(g.Errors.Empty()).IsFalse()
	errs := g.Errors.Errors()
	assert.For(t, "error kind").That(errs[0].Kind).Equals(diag.KeywordNotInLoop)
}

func TestGenerateRejectsConflictingPrototype(t *testing.T) {
	g := generate(t, "int f(int a);\nint f(long a) { return a; }\n")
	assert.For(t, "expected an error").That(g.Errors.Empty()).IsFalse()
	errs := g.Errors.Errors()
	assert.For(t, "error kind").That(errs[0].Kind).Equals(diag.DuplicatedFunction)
}

func TestGenerateRejectsFunctionGlobalNameCollision(t *testing.T) {
	g := generate(t, "int f(void);\nint f;\n")
	assert.For(t, "expected an error").That(g.Errors.Empty()).IsFalse()
	errs := g.Errors.Errors()
	assert.For(t, "error kind").That(errs[0].Kind).Equals(diag.RedefinitionSymbol)
}

func TestGenerateAllowsRepeatedIdenticalPrototype(t *testing.T) {
	g := generate(t, "int f(int a);\nint f(int a);\nint f(int a) { return a; }\n")
	assert.For(t, "no errors").That(g.Errors.Empty()).IsTrue()
}

func TestGenerateResolvesTypedefGlobal(t *testing.T) {
	g := generate(t, "typedef int my_int;\nmy_int x;\n")
	assert.For(t, "no errors").That(g.Errors.Empty()).IsTrue()
	_, isGlobal := g.globals["my_int"]
	assert.For(t, "typedef itself emits no global").That(isGlobal).IsFalse()
	gl, ok := g.globals["x"]
	assert.For(t, "global x registered").That(ok).IsTrue()
	assert.For(t, "global kind resolves through typedef").That(gl.typ.Base.Kind).Equals(types.KindTypedefName)
}

func TestGenerateResolvesLocalTypedefSizeof(t *testing.T) {
	g := generate(t, "typedef int my_int;\nint f(void) { my_int n; return sizeof(n); }\n")
	assert.For(t, "no errors").That(g.Errors.Empty()).IsTrue()
}

func TestGenerateComparisonYieldsBool(t *testing.T) {
	g := generate(t, "int f(int a, int b) { return a < b; }\n")
	assert.For(t, "no errors").That(g.Errors.Empty()).IsTrue()
}

func TestGenerateArrayDecaysToPointer(t *testing.T) {
	g := generate(t, "void f(int *p) {}\nint a[3];\nvoid g(void) { f(a); }\n")
	assert.For(t, "no errors").That(g.Errors.Empty()).IsTrue()
}

func TestGenerateArrayAssignsToPointer(t *testing.T) {
	g := generate(t, "int a[3];\nint *p;\nvoid f(void) { p = a; }\n")
	assert.For(t, "no errors").That(g.Errors.Empty()).IsTrue()
}
