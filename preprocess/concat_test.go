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

var concatTests = []struct {
	in  string
	out string
}{
	{`"a" "b"`, `"ab"`},
	{`"a"   "b"   "c"`, `"abc"`},
	{"\"a\"\n\"b\"", `"ab"`},
	{`"a"`, `"a"`},
	{`'a'`, `'a'`},
	{`x = "a"; y = "b";`, `x = "a"; y = "b";`},
}

func TestConcatStrings(t *testing.T) {
	for _, test := range concatTests {
		got, err := ConcatStrings(test.in)
		assert.For(t, "ConcatStrings(%q) error", test.in).That(err).IsNil()
		assert.For(t, "ConcatStrings(%q)", test.in).That(got).Equals(test.out)
	}
}

func TestConcatStringsUnterminated(t *testing.T) {
	_, err := ConcatStrings(`"oops`)
	assert.For(t, "unterminated literal").That(err).IsNotNil()
}
