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

// Package diag holds the source-span and diagnostic types shared by every
// stage of the front end: the preprocessor, the parser and the IR generator
// all report failures through the same Error type so that a single renderer
// can print them with carets into the original source.
package diag

import "fmt"

// Span is a half-open byte range [Start, End) into a source buffer. Spans
// are value types: cheap to copy, never owned, and safe to propagate through
// every transformation that derives new nodes from old ones.
type Span struct {
	Start int
	End   int
}

// NoSpan is returned by callers that have no better location to report.
var NoSpan = Span{}

// Valid reports whether the span is well formed and falls inside data.
func (s Span) Valid(data string) bool {
	return s.Start <= s.End && s.Start >= 0 && s.End <= len(data)
}

// String renders the span as "start-end", mostly useful for debugging.
func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span that contains both s and o.
func (s Span) Cover(o Span) Span {
	r := s
	if o.Start < r.Start {
		r.Start = o.Start
	}
	if o.End > r.End {
		r.End = o.End
	}
	return r
}
