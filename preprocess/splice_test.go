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

var spliceTests = []struct {
	in  string
	out string
}{
	{"int x;\n", "int x;\n"},
	{"int \\\nx;\n", "int x;\n"},
	{"int \\\r\nx;\n", "int x;\n"},
	{"no newline at eof", "no newline at eof\n"},
	{"a\\\nb\\\nc\n", "abc\n"},
}

func TestSpliceLines(t *testing.T) {
	for _, test := range spliceTests {
		got := SpliceLines(test.in)
		assert.For(t, "SpliceLines(%q)", test.in).That(got).Equals(test.out)
	}
}
