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
	"os"
	"path/filepath"
	"strings"

	"cc99c/diag"
)

// DefaultMaxIncludeDepth bounds recursive #include processing so that an
// include cycle aborts with a diagnostic instead of overflowing the stack.
const DefaultMaxIncludeDepth = 200

// FileReader abstracts reading an included file's contents, so tests can
// supply an in-memory filesystem without touching disk.
type FileReader func(path string) (string, error)

// Includer runs phase 4 (directives and #include resolution) for a single
// translation unit, recursively re-running phases 2-4 on every included
// file with a fresh macro table, as the spec requires.
type Includer struct {
	// Dirs is the ordered list of user include search directories, searched
	// left to right after the current directory (for quoted includes) and
	// before the (currently empty) system search list.
	Dirs []string
	// Read reads the contents of path. Defaults to os.ReadFile.
	Read FileReader
	// MaxDepth bounds recursive inclusion. Zero means DefaultMaxIncludeDepth.
	MaxDepth int
}

// NewIncluder returns an Includer configured with the given user search
// directories and the os-backed file reader.
func NewIncluder(dirs []string) *Includer {
	return &Includer{
		Dirs: dirs,
		Read: func(path string) (string, error) {
			b, err := os.ReadFile(path)
			return string(b), err
		},
	}
}

// Run processes the directives in data, which is assumed to already have
// had phases 2 and 3 applied. dir is the directory the including file lives
// in, used to resolve both relative quoted includes and nested relative
// includes inside included files.
func (inc *Includer) Run(filename, dir, data string) (string, *diag.Error) {
	macros := map[string]bool{}
	return inc.run(filename, dir, data, macros, 0)
}

func (inc *Includer) run(filename, dir, data string, macros map[string]bool, depth int) (string, *diag.Error) {
	maxDepth := inc.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxIncludeDepth
	}
	if depth > maxDepth {
		return "", diag.New(diag.PreprocessError, diag.Span{}, "include depth exceeds %d; possible #include cycle", maxDepth)
	}

	var out strings.Builder
	out.Grow(len(data))

	pos := 0
	for pos < len(data) {
		lineEnd := strings.IndexByte(data[pos:], '\n')
		var line string
		var next int
		if lineEnd < 0 {
			line, next = data[pos:], len(data)
		} else {
			line, next = data[pos:pos+lineEnd], pos+lineEnd+1
		}

		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, "#") {
			out.WriteString(line)
			out.WriteByte('\n')
			pos = next
			continue
		}

		body := strings.TrimSpace(trimmed[1:])
		word, rest := splitDirective(body)

		switch word {
		case "include":
			text, sysErr := inc.resolveInclude(filename, dir, strings.TrimSpace(rest), pos, depth, macros)
			if sysErr != nil {
				return "", sysErr
			}
			out.WriteString(text)

		case "undef":
			delete(macros, strings.TrimSpace(rest))
			out.WriteByte('\n')

		case "define":
			name := strings.TrimSpace(rest)
			if i := strings.IndexAny(name, " \t("); i >= 0 {
				name = name[:i]
			}
			macros[name] = true
			out.WriteByte('\n')

		case "error":
			return "", diag.New(diag.PreprocessError, diag.Span{Start: pos, End: next}, "#error %s", strings.TrimSpace(rest))

		case "":
			// A bare '#' on its own line is a legal null directive.
			out.WriteByte('\n')

		default:
			return "", diag.New(diag.NotImplemented, diag.Span{Start: pos, End: next}, "unsupported preprocessor directive #%s", word)
		}

		pos = next
	}
	return out.String(), nil
}

func splitDirective(body string) (word, rest string) {
	i := 0
	for i < len(body) && !isBlank(body[i]) {
		i++
	}
	return body[:i], body[i:]
}

func (inc *Includer) resolveInclude(filename, dir, spec string, at, depth int, parentMacros map[string]bool) (string, *diag.Error) {
	if len(spec) < 2 {
		return "", diag.New(diag.PreprocessError, diag.Span{Start: at}, "malformed #include directive")
	}
	quoted := spec[0] == '"' && spec[len(spec)-1] == '"'
	angled := spec[0] == '<' && spec[len(spec)-1] == '>'
	if !quoted && !angled {
		return "", diag.New(diag.PreprocessError, diag.Span{Start: at}, "malformed #include directive")
	}
	name := spec[1 : len(spec)-1]

	candidates := []string{}
	if quoted {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	for _, d := range inc.Dirs {
		candidates = append(candidates, filepath.Join(d, name))
	}
	// The system search list is reserved for a future extension; none are
	// configured by default.

	var text string
	var err error
	found := ""
	for _, c := range candidates {
		text, err = inc.Read(c)
		if err == nil {
			found = c
			break
		}
	}
	if found == "" {
		return "", diag.New(diag.PreprocessError, diag.Span{Start: at}, "cannot find include file %q", name)
	}

	spliced := SpliceLines(text)
	stripped, derr := StripComments(spliced)
	if derr != nil {
		return "", derr
	}
	macros := map[string]bool{}
	out, derr := inc.run(found, filepath.Dir(found), stripped, macros, depth+1)
	if derr != nil {
		return "", derr
	}
	return out, nil
}
