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

package ir

import "cc99c/types"

// sizeofType computes a byte size for the x86-64 Linux target sizeof
// resolves against. It does not consult the back end's data layout
// directly; it mirrors the same fixed ABI assumption the back end targets
// (8-byte pointers, no struct packing attributes), which keeps sizeof
// foldable at parse time without round-tripping through LLVM.
func (g *Generator) sizeofType(b *types.Basic) uint64 {
	return g.sizeofBase(b.Base)
}

func (g *Generator) sizeofBase(base *types.Base) uint64 {
	switch base.Kind {
	case types.KindVoid:
		return 0
	case types.KindBool:
		return 1
	case types.KindSignedInt, types.KindUnsignedInt:
		switch base.Rank {
		case types.RankChar:
			return 1
		case types.RankShort:
			return 2
		case types.RankInt:
			return 4
		case types.RankLong, types.RankLongLong:
			return 8
		}
		return 4
	case types.KindFloat:
		return 4
	case types.KindDouble:
		return 8
	case types.KindPointer:
		return 8
	case types.KindArray:
		n := uint64(1)
		for _, d := range base.Dims {
			n *= uint64(d)
		}
		return n * g.sizeofBase(base.Elem.Base)
	case types.KindStruct:
		members := base.Members
		if members == nil {
			members = g.structs[base.Tag]
		}
		var total uint64
		for _, m := range members {
			total += g.sizeofBase(m.Type.Base)
		}
		return total
	case types.KindUnion:
		members := base.Members
		if members == nil {
			members = g.structs[base.Tag]
		}
		var max uint64
		for _, m := range members {
			if s := g.sizeofBase(m.Type.Base); s > max {
				max = s
			}
		}
		return max
	case types.KindTypedefName:
		if resolved, ok := g.typedefs[base.Name]; ok {
			return g.sizeofBase(resolved)
		}
		return 0
	default:
		return 0
	}
}
