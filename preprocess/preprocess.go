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

// Package preprocess implements C99 translation phases 2, 3, 4 and 6: line
// splicing, comment stripping, directive/inclusion processing and adjacent
// string literal concatenation. Each phase is a pure text-to-text transform
// run in that fixed order; phase 5 (character set mapping) is a Non-goal,
// since the front end only ever reads UTF-8 source.
package preprocess

import (
	"path/filepath"

	"cc99c/diag"
)

// Run composes phases 2, 3, 4 and 6 over the named file's contents, in the
// order the standard mandates. includeDirs is the ordered user search path
// for quoted and angled #include directives (the -i flag). The returned
// text is ready for the parser; the first error encountered aborts the
// whole pipeline.
func Run(filename, data string, includeDirs []string) (string, *diag.Error) {
	spliced := SpliceLines(data)

	stripped, err := StripComments(spliced)
	if err != nil {
		return "", err
	}

	inc := NewIncluder(includeDirs)
	included, err := inc.Run(filename, filepath.Dir(filename), stripped)
	if err != nil {
		return "", err
	}

	concatenated, err := ConcatStrings(included)
	if err != nil {
		return "", err
	}

	return concatenated, nil
}
