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
	"strings"
)

// Position is the one-based line/column pair a byte offset resolves to.
type Position struct {
	Line   int
	Column int
}

// locate converts a byte offset in data to a Position, scanning for
// newlines. It is only called while rendering diagnostics, never on the hot
// path, so a linear scan is fine.
func locate(data string, offset int) Position {
	if offset > len(data) {
		offset = len(data)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col}
}

// Render pretty-prints err against the original source data, producing a
// compiler-style diagnostic with the offending line and a caret under the
// start of the span.
func Render(data string, err *Error) string {
	pos := locate(data, err.At.Start)
	file := err.File
	if file == "" {
		file = "<input>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: error: %s\n", file, pos.Line, pos.Column, err.Message)

	lineStart, lineEnd := lineBounds(data, err.At.Start)
	if lineStart < lineEnd {
		fmt.Fprintf(&b, "  %s\n", data[lineStart:lineEnd])
		fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", pos.Column-1))
	}
	return b.String()
}

// RenderAll renders every error in l against data, separated by blank lines.
func RenderAll(data string, l *List) string {
	parts := make([]string, 0, len(l.Errors()))
	for _, e := range l.Errors() {
		parts = append(parts, Render(data, e))
	}
	return strings.Join(parts, "\n")
}

func lineBounds(data string, offset int) (start, end int) {
	start = strings.LastIndexByte(data[:min(offset, len(data))], '\n') + 1
	end = len(data)
	if i := strings.IndexByte(data[offset:], '\n'); i >= 0 {
		end = offset + i
	}
	return start, end
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
