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

package diag

import (
	"fmt"
	"runtime"
)

// Kind identifies which of the flat taxonomy of compiler errors an Error
// belongs to. Every kind is raised by exactly one stage of the pipeline.
type Kind string

const (
	PreprocessError    Kind = "PreprocessError"
	ParseError         Kind = "ParseError"
	DuplicatedGlobal   Kind = "DuplicatedGlobal"
	DuplicatedFunction Kind = "DuplicatedFunction"
	DuplicatedSymbol   Kind = "DuplicatedSymbol"
	RedefinitionSymbol Kind = "RedefinitionSymbol"
	DuplicatedVariable Kind = "DuplicatedVariable"
	MissingVariable    Kind = "MissingVariable"
	InvalidDefaultCast Kind = "InvalidDefaultCast"
	InvalidCast        Kind = "InvalidCast"
	InvalidUnary       Kind = "InvalidUnary"
	UnknownExpression  Kind = "UnknownExpression"
	KeywordNotInLoop   Kind = "KeywordNotInLoop"
	NotImplemented     Kind = "NotImplemented"
)

// abortPipeline is panicked by a stage that has hit its error limit or
// otherwise cannot make further progress. It is recovered at the top of
// each pass so that a single malformed declaration does not stop the whole
// translation unit from being diagnosed.
type abortPipeline string

// Abort is the sentinel value recovered by pass-level error collectors.
const Abort = abortPipeline("abort")

// Error is a single compiler diagnostic. It always carries a span into the
// preprocessed source so that rendering can point a caret at the offending
// byte range, even when the failure is discovered several transformations
// downstream of the original token.
type Error struct {
	Kind    Kind
	At      Span
	File    string
	Message string
	stack   []byte
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%v: %s: %s", e.File, e.At, e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s: %s", e.At, e.Kind, e.Message)
}

// New builds an Error of the given kind at the given span, capturing a stack
// trace so that an implementation bug surfacing as a bogus diagnostic can
// still be tracked down post-mortem.
func New(kind Kind, at Span, format string, args ...interface{}) *Error {
	var buf [1 << 13]byte
	n := runtime.Stack(buf[:], false)
	stack := make([]byte, n)
	copy(stack, buf[:n])
	return &Error{
		Kind:    kind,
		At:      at,
		Message: fmt.Sprintf(format, args...),
		stack:   stack,
	}
}

// List collects the diagnostics raised while processing a single pass. A
// pass keeps going after a recoverable error so that a user sees every
// problem with a translation unit in one invocation, rather than one at a
// time.
type List struct {
	Limit int // maximum errors to collect before aborting the pass; 0 means unlimited.
	errs  []*Error
}

// Add appends err to the list. Once the list has collected Limit errors, Add
// panics with Abort so that the caller's recover can unwind the current pass
// cleanly.
func (l *List) Add(err *Error) {
	l.errs = append(l.errs, err)
	if l.Limit > 0 && len(l.errs) >= l.Limit {
		panic(Abort)
	}
}

// Errorf is shorthand for Add(New(...)).
func (l *List) Errorf(kind Kind, at Span, format string, args ...interface{}) {
	l.Add(New(kind, at, format, args...))
}

// Errors returns the accumulated diagnostics in the order they were added.
func (l *List) Errors() []*Error { return l.errs }

// Empty reports whether no diagnostics have been collected.
func (l *List) Empty() bool { return len(l.errs) == 0 }

// Recover is intended to be deferred at the top of a pass. It swallows an
// Abort panic (the error limit having already been recorded) and re-panics
// anything else, since any other panic indicates an implementation bug
// rather than a malformed source file.
func (l *List) Recover() {
	if r := recover(); r != nil {
		if _, ok := r.(abortPipeline); !ok {
			panic(r)
		}
	}
}
