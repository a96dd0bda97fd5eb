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
	"testing"

	"cc99c/internal/assert"
)

var stripCommentsTests = []struct {
	in  string
	out string
}{
	{"int x; // a comment\n", "int x; \n"},
	{"int /* block */ x;\n", "int   x;\n"},
	{"char *s = \"// not a comment\";\n", "char *s = \"// not a comment\";\n"},
	{"char c = '/';\n", "char c = '/';\n"},
	{"a\n// trailing\n", "a\n\n"},
	{"a /* multi\nline */ b\n", "a   b\n"},
}

func TestStripComments(t *testing.T) {
	for _, test := range stripCommentsTests {
		got, err := StripComments(test.in)
		assert.For(t, "StripComments(%q) error", test.in).That(err).IsNil()
		assert.For(t, "StripComments(%q)", test.in).That(got).Equals(test.out)
	}
}

func TestStripCommentsUnterminatedBlock(t *testing.T) {
	_, err := StripComments("int x; /* oops\n")
	assert.For(t, "unterminated block comment").That(err).IsNotNil()
}

func TestStripCommentsUnterminatedLiteral(t *testing.T) {
	_, err := StripComments("char *s = \"oops\n")
	assert.For(t, "unterminated literal").That(err).IsNotNil()
}
