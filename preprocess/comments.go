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

package preprocess

import (
	"strings"

	"cc99c/diag"
)

// StripComments implements phase 3. It re-scans the spliced source,
// recognizing string and character literals so that "//" or "/*" inside a
// literal is preserved verbatim, C-style block comments (replaced by a
// single space) and C++-style line comments (replaced by a newline, so
// that line numbers used in diagnostics stay meaningful).
func StripComments(data string) (string, *diag.Error) {
	var b strings.Builder
	b.Grow(len(data))
	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case c == '"' || c == '\'':
			end, ok := scanLiteral(data, i)
			if !ok {
				return "", diag.New(diag.PreprocessError, diag.Span{Start: i, End: i + 1}, "unterminated literal")
			}
			b.WriteString(data[i:end])
			i = end

		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			start := i
			i += 2
			terminated := false
			for i+1 < len(data) {
				if data[i] == '*' && data[i+1] == '/' {
					i += 2
					terminated = true
					break
				}
				i++
			}
			if !terminated {
				return "", diag.New(diag.PreprocessError, diag.Span{Start: start, End: len(data)}, "unterminated block comment")
			}
			b.WriteByte(' ')

		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			i += 2
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				i++ // consume the newline; we already emit our own below.
			}
			b.WriteByte('\n')

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}
