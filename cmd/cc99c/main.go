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

// cc99c drives the front end end-to-end: preprocess, parse, generate IR,
// and hand the result to the back-end for object emission. It is a thin
// CLI shell around the cc99c packages; almost none of the logic that
// matters lives here.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"cc99c/ast"
	"cc99c/diag"
	"cc99c/ir"
	"cc99c/parser"
	"cc99c/preprocess"
)

var (
	output   = flag.String("o", "a.out", "output path")
	expand   = flag.Bool("e", false, "stop after preprocessing; write the expanded source to -o")
	expand2  = flag.Bool("expand", false, "alias of -e")
	parse    = flag.Bool("p", false, "stop after parsing; write the AST as JSON to -o")
	parse2   = flag.Bool("parse", false, "alias of -p")
	include  = flag.String("i", "", "comma-separated include search paths")
	include2 = flag.String("include", "", "alias of -i")
	asm      = flag.Bool("S", false, "emit target assembly instead of an object file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <source.c>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	doExpand := *expand || *expand2
	doParse := *parse || *parse2
	if doExpand && doParse {
		fmt.Fprintln(os.Stderr, "cc99c: -e/--expand and -p/--parse are mutually exclusive")
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	source := flag.Arg(0)

	includeDirs := splitInclude(*include)
	includeDirs = append(includeDirs, splitInclude(*include2)...)

	os.Exit(run(source, includeDirs, doExpand, doParse))
}

func splitInclude(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// run executes the pipeline and returns the process exit code: 0 on
// success, otherwise the number of diagnostics produced.
func run(source string, includeDirs []string, doExpand, doParse bool) int {
	raw, err := os.ReadFile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc99c: %v\n", err)
		return 1
	}

	expanded, perr := preprocess.Run(source, string(raw), includeDirs)
	if perr != nil {
		fmt.Fprint(os.Stderr, diag.Render(string(raw), perr))
		return 1
	}

	if doExpand {
		if err := os.WriteFile(*output, []byte(expanded), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "cc99c: %v\n", err)
			return 1
		}
		return 0
	}

	tu, errs := parser.Parse(source, expanded)
	if len(errs) > 0 {
		reportAll(expanded, errs)
		return len(errs)
	}

	if doParse {
		return writeParseJSON(tu)
	}

	gen := ir.New(moduleName(source))
	gen.Generate(tu)
	if !gen.Errors.Empty() {
		reportAll(expanded, gen.Errors.Errors())
		return len(gen.Errors.Errors())
	}

	var writeErr error
	if *asm {
		writeErr = gen.Module().WriteAssembly(*output, false)
	} else {
		writeErr = gen.Module().WriteObject(*output, false)
	}
	if writeErr != nil {
		fmt.Fprintf(os.Stderr, "cc99c: %v\n", writeErr)
		return 1
	}
	return 0
}

func moduleName(source string) string {
	name := source
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".c")
}

func reportAll(data string, errs []*diag.Error) {
	for _, e := range errs {
		fmt.Fprint(os.Stderr, diag.Render(data, e))
	}
}

func writeParseJSON(tu *ast.TranslationUnit) int {
	buf, err := json.MarshalIndent(ast.ToJSON(tu), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc99c: %v\n", err)
		return 1
	}
	if err := os.WriteFile(*output, buf, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "cc99c: %v\n", err)
		return 1
	}
	return 0
}
