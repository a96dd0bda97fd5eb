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

import "strings"

// SpliceLines implements phase 2: every backslash immediately followed by a
// newline is deleted, joining the physical line to the next. If the final
// character of the source is not a newline, one is appended so that later
// phases can assume every line is newline-terminated.
func SpliceLines(data string) string {
	var b strings.Builder
	b.Grow(len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' {
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
				continue
			}
			if i+2 < len(data) && data[i+1] == '\r' && data[i+2] == '\n' {
				i += 2
				continue
			}
		}
		b.WriteByte(data[i])
	}
	out := b.String()
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out += "\n"
	}
	return out
}
