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

// scanLiteral scans a string or character literal starting at data[start],
// where data[start] is the opening quote rune ('"' or '\''. It returns the
// offset just past the matching closing quote, and true, or false if the
// literal runs off the end of the source unterminated. Escape sequences are
// recognized structurally (so an escaped quote does not end the literal)
// but are not otherwise interpreted here: phases 3 and 6 only need to know
// where a literal ends, not what it means.
func scanLiteral(data string, start int) (end int, ok bool) {
	quote := data[start]
	i := start + 1
	for i < len(data) {
		switch data[i] {
		case '\\':
			if i+1 < len(data) {
				i += 2
				continue
			}
			return 0, false
		case quote:
			return i + 1, true
		case '\n':
			return 0, false
		default:
			i++
		}
	}
	return 0, false
}
