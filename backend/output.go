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

package backend

import (
	"fmt"
	"os"

	"llvm/bindings/go/llvm"
)

func init() {
	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargets()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmPrinters()
}

// WriteObject implements writeObject: it lowers the module to a native
// object file at path, following the same target-machine setup as
// core/codegen.Module.Object.
func (m *Module) WriteObject(path string, optimize bool) error {
	buf, err := m.emit(llvm.ObjectFile, optimize)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// WriteAssembly implements writeAssembly: it lowers the module to target
// assembly text at path.
func (m *Module) WriteAssembly(path string, optimize bool) error {
	buf, err := m.emit(llvm.AssemblyFile, optimize)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// WriteBitcode implements writeBitcode: it serializes the module to LLVM
// bitcode at path.
func (m *Module) WriteBitcode(path string) error {
	if ok := llvm.WriteBitcodeToFile(m.llvm, path); !ok {
		return fmt.Errorf("backend: failed to write bitcode to %s", path)
	}
	return nil
}

func (m *Module) emit(kind llvm.CodeGenFileType, optimize bool) ([]byte, error) {
	target, err := llvm.GetTargetFromTriple(m.triple)
	if err != nil {
		return nil, fmt.Errorf("backend: no target for triple %q: %w", m.triple, err)
	}
	opt := llvm.CodeGenLevelNone
	if optimize {
		opt = llvm.CodeGenLevelDefault
	}
	tm := target.CreateTargetMachine(m.triple, "", "", opt, llvm.RelocPIC, llvm.CodeModelDefault)
	defer tm.Dispose()

	buf, err := tm.EmitToMemoryBuffer(m.llvm, kind)
	if err != nil {
		return nil, err
	}
	defer buf.Dispose()
	return buf.Bytes(), nil
}
