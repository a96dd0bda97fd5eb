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

import (
	"cc99c/backend"
	"cc99c/types"
)

// lowerType maps a C Basic type onto its backend.Type, resolving pointer,
// array, function and struct shapes recursively. Struct/union member
// layouts are looked up from the generator's struct table by tag.
func (g *Generator) lowerType(b *types.Basic) backend.Type {
	return g.lowerBase(b.Base)
}

func (g *Generator) lowerBase(base *types.Base) backend.Type {
	t := g.backend.Types
	switch base.Kind {
	case types.KindVoid:
		return t.Void
	case types.KindBool:
		return t.Bool
	case types.KindSignedInt, types.KindUnsignedInt:
		return g.lowerIntRank(base)
	case types.KindFloat:
		return t.Float32
	case types.KindDouble:
		return t.Float64
	case types.KindPointer:
		return t.Pointer(g.lowerType(base.Pointee))
	case types.KindArray:
		elem := g.lowerType(base.Elem)
		// Dims is outermost-first; wrap from the innermost dimension out
		// so the resulting backend array nests the same way the C
		// declarator does (int a[2][3] is "array[2] of array[3] of int").
		for i := len(base.Dims) - 1; i >= 0; i-- {
			elem = t.Array(elem, base.Dims[i])
		}
		return elem
	case types.KindFunction:
		params := make([]backend.Type, len(base.Params))
		for i, p := range base.Params {
			params[i] = g.lowerType(p.Type)
		}
		return t.Function(g.lowerType(base.Return), base.Variadic, params...)
	case types.KindStruct, types.KindUnion:
		return g.lowerStruct(base)
	case types.KindTypedefName:
		if resolved, ok := g.typedefs[base.Name]; ok {
			return g.lowerBase(resolved)
		}
		panic("ir: unresolved typedef " + base.Name)
	default:
		panic("ir: unsupported base kind in lowerBase")
	}
}

func (g *Generator) lowerIntRank(base *types.Base) backend.Type {
	t := g.backend.Types
	signed := base.Kind == types.KindSignedInt
	switch base.Rank {
	case types.RankChar:
		if signed {
			return t.Int8
		}
		return t.Uint8
	case types.RankShort:
		if signed {
			return t.Int16
		}
		return t.Uint16
	case types.RankInt:
		if signed {
			return t.Int32
		}
		return t.Uint32
	case types.RankLong, types.RankLongLong:
		if signed {
			return t.Int64
		}
		return t.Uint64
	default:
		panic("ir: unknown integer rank")
	}
}

func (g *Generator) lowerStruct(base *types.Base) backend.Type {
	members := base.Members
	if members == nil {
		members = g.structs[base.Tag]
	}
	fields := make([]backend.Type, len(members))
	for i, m := range members {
		fields[i] = g.lowerType(m.Type)
	}
	return g.backend.Types.Struct(fields...)
}
