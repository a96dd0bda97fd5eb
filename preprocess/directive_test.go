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
	"fmt"
	"testing"

	"cc99c/diag"
	"cc99c/internal/assert"
)

func fakeReader(files map[string]string) FileReader {
	return func(path string) (string, error) {
		if text, ok := files[path]; ok {
			return text, nil
		}
		return "", fmt.Errorf("no such file: %s", path)
	}
}

func TestIncluderUndef(t *testing.T) {
	inc := &Includer{Read: fakeReader(nil)}
	out, err := inc.Run("main.c", ".", "#define FOO 1\n#undef FOO\nint x;\n")
	assert.For(t, "error").That(err).IsNil()
	assert.For(t, "output").That(out).Equals("\n\nint x;\n")
}

func TestIncluderError(t *testing.T) {
	inc := &Includer{Read: fakeReader(nil)}
	_, err := inc.Run("main.c", ".", "#error boom\n")
	assert.For(t, "error").That(err).IsNotNil()
	assert.For(t, "kind").That(err.Kind).Equals(diag.PreprocessError)
}

func TestIncluderUnsupportedDirective(t *testing.T) {
	inc := &Includer{Read: fakeReader(nil)}
	_, err := inc.Run("main.c", ".", "#ifdef FOO\nint x;\n#endif\n")
	assert.For(t, "error").That(err).IsNotNil()
	assert.For(t, "kind").That(err.Kind).Equals(diag.NotImplemented)
}

func TestIncluderQuotedIncludeCurrentDir(t *testing.T) {
	files := map[string]string{
		"src/foo.h": "int foo;\n",
	}
	inc := &Includer{Read: fakeReader(files)}
	out, err := inc.Run("src/main.c", "src", "#include \"foo.h\"\nint main;\n")
	assert.For(t, "error").That(err).IsNil()
	assert.For(t, "output").That(out).Equals("int foo;\nint main;\n")
}

func TestIncluderAngledIncludeSearchesUserDirs(t *testing.T) {
	files := map[string]string{
		"inc/foo.h": "int foo;\n",
	}
	inc := &Includer{Dirs: []string{"inc"}, Read: fakeReader(files)}
	out, err := inc.Run("src/main.c", "src", "#include <foo.h>\n")
	assert.For(t, "error").That(err).IsNil()
	assert.For(t, "output").That(out).Equals("int foo;\n")
}

func TestIncluderMissingFile(t *testing.T) {
	inc := &Includer{Read: fakeReader(nil)}
	_, err := inc.Run("main.c", ".", "#include \"missing.h\"\n")
	assert.For(t, "error").That(err).IsNotNil()
}

func TestIncluderDepthGuard(t *testing.T) {
	// foo.h includes itself, so recursion must be bounded.
	files := map[string]string{
		"foo.h": "#include \"foo.h\"\n",
	}
	inc := &Includer{Read: fakeReader(files), MaxDepth: 3}
	_, err := inc.Run("main.c", ".", "#include \"foo.h\"\n")
	assert.For(t, "error").That(err).IsNotNil()
	assert.For(t, "kind").That(err.Kind).Equals(diag.PreprocessError)
}
