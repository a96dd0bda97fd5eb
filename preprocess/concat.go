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

// ConcatStrings implements phase 6: adjacent string-literal tokens,
// separated only by whitespace, are joined into a single literal. The
// surrounding quotes of every literal after the first are dropped and the
// interior byte sequences are concatenated; the joined literal keeps the
// first literal's opening quote and the last one's closing quote.
func ConcatStrings(data string) (string, *diag.Error) {
	var b strings.Builder
	b.Grow(len(data))
	i := 0
	for i < len(data) {
		if data[i] == '"' {
			start := i
			end, ok := scanLiteral(data, i)
			if !ok {
				return "", diag.New(diag.PreprocessError, diag.Span{Start: start, End: len(data)}, "unterminated string literal")
			}
			interior := data[start+1 : end-1]
			j := end
			for {
				k := j
				for k < len(data) && isBlank(data[k]) {
					k++
				}
				if k >= len(data) || data[k] != '"' {
					break
				}
				nend, ok := scanLiteral(data, k)
				if !ok {
					return "", diag.New(diag.PreprocessError, diag.Span{Start: k, End: len(data)}, "unterminated string literal")
				}
				interior += data[k+1 : nend-1]
				j = nend
			}
			b.WriteByte('"')
			b.WriteString(interior)
			b.WriteByte('"')
			i = j
			continue
		}
		if data[i] == '\'' {
			end, ok := scanLiteral(data, i)
			if !ok {
				return "", diag.New(diag.PreprocessError, diag.Span{Start: i, End: len(data)}, "unterminated character literal")
			}
			b.WriteString(data[i:end])
			i = end
			continue
		}
		b.WriteByte(data[i])
		i++
	}
	return b.String(), nil
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
