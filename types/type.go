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

// Package types encodes the C type model used throughout the front end: the
// recursive sum of base types, the qualifier and storage-class wrappers
// around them, and the conversion rules (usual arithmetic conversions,
// implicit-cast legality) that the IR generator consults when it lowers
// expressions.
package types

import "fmt"

// Rank orders the integer types for the purposes of promotion and the usual
// arithmetic conversions.
type Rank int

const (
	RankChar Rank = iota
	RankShort
	RankInt
	RankLong
	RankLongLong
)

func (r Rank) String() string {
	switch r {
	case RankChar:
		return "char"
	case RankShort:
		return "short"
	case RankInt:
		return "int"
	case RankLong:
		return "long"
	case RankLongLong:
		return "long long"
	default:
		return "invalid-rank"
	}
}

// Kind discriminates the variants of the recursive Base sum type.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindSignedInt
	KindUnsignedInt
	KindFloat
	KindDouble
	KindPointer
	KindArray
	KindFunction
	KindStruct
	KindUnion
	KindTypedefName
)

// Base is the bare shape of a type: int, pointer, array, struct, ... It
// never carries qualifiers or storage class; those wrap a Base to form a
// Basic and a Type respectively.
type Base struct {
	Kind Kind

	Rank Rank // meaningful only for KindSignedInt / KindUnsignedInt

	Pointee *Basic // KindPointer
	Elem    *Basic // KindArray
	Dims    []int  // KindArray: outermost dimension first

	Return   *Basic   // KindFunction
	Params   []Param  // KindFunction
	Variadic bool     // KindFunction

	Tag     string   // KindStruct / KindUnion: the struct/union tag, may be ""
	Members []Member // KindStruct / KindUnion: nil means "incomplete, refers to a prior declaration"

	Name string // KindTypedefName
}

// Param is one parameter of a KindFunction base type.
type Param struct {
	Type *Basic
	Name string // optional
}

// Member is one field of a struct or union.
type Member struct {
	Type *Basic
	Name string
}

// CastRank is the integer conversion rank table used by
// UsualArithmeticPromotion: higher wins.
func (b *Base) CastRank() int {
	switch b.Kind {
	case KindVoid:
		return 0
	case KindBool:
		return 1
	case KindSignedInt, KindUnsignedInt:
		switch b.Rank {
		case RankChar:
			return 2
		case RankShort:
			return 3
		case RankInt:
			return 4
		case RankLong:
			return 5
		case RankLongLong:
			return 6
		}
	case KindFloat:
		return 7
	case KindDouble:
		return 8
	}
	return 0
}

func (b *Base) isScalar() bool {
	switch b.Kind {
	case KindSignedInt, KindUnsignedInt, KindFloat, KindDouble, KindBool:
		return true
	default:
		return false
	}
}

func (b *Base) isArithmetic() bool {
	return b.isScalar()
}

// String renders the base type using C declarator order, e.g.
// "pointer to array[3] of int".
func (b *Base) String() string {
	switch b.Kind {
	case KindVoid:
		return "void"
	case KindBool:
		return "_Bool"
	case KindSignedInt:
		return b.Rank.String()
	case KindUnsignedInt:
		return "unsigned " + b.Rank.String()
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindPointer:
		return fmt.Sprintf("pointer to %s", b.Pointee)
	case KindArray:
		return fmt.Sprintf("array%v of %s", b.Dims, b.Elem)
	case KindFunction:
		return fmt.Sprintf("function(%d params) returning %s", len(b.Params), b.Return)
	case KindStruct:
		return "struct " + b.Tag
	case KindUnion:
		return "union " + b.Tag
	case KindTypedefName:
		return b.Name
	default:
		return "?"
	}
}

// Qualifier is one of the four C type qualifiers.
type Qualifier int

const (
	QualConst Qualifier = iota
	QualVolatile
	QualRestrict
	QualAtomic
)

func (q Qualifier) String() string {
	switch q {
	case QualConst:
		return "const"
	case QualVolatile:
		return "volatile"
	case QualRestrict:
		return "restrict"
	case QualAtomic:
		return "_Atomic"
	default:
		return "?"
	}
}

// Basic is a Base type plus its own qualifier list. Pointer, Array and
// Function wrap Basic pointees/elements/returns so that qualifiers attach
// to the tier they were written at, not to whatever they happen to point
// to or contain.
type Basic struct {
	Base       *Base
	Qualifiers []Qualifier
}

// HasQualifier reports whether q is present on b.
func (b *Basic) HasQualifier(q Qualifier) bool {
	for _, have := range b.Qualifiers {
		if have == q {
			return true
		}
	}
	return false
}

func (b *Basic) String() string {
	if len(b.Qualifiers) == 0 {
		return b.Base.String()
	}
	s := ""
	for _, q := range b.Qualifiers {
		s += q.String() + " "
	}
	return s + b.Base.String()
}

// StorageClass is the storage-class specifier of a declaration; at most one
// may be present.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageTypedef
	StorageExtern
	StorageStatic
	StorageThreadLocal
	StorageAuto
	StorageRegister
)

// FunctionSpecifier is a function specifier (inline / _Noreturn).
type FunctionSpecifier int

const (
	SpecInline FunctionSpecifier = iota
	SpecNoreturn
)

// Type is a Basic type plus storage class and function specifiers: the
// full declared type of a declarator.
type Type struct {
	Basic       *Basic
	Storage     StorageClass
	Specifiers  []FunctionSpecifier
}

func (t *Type) HasSpecifier(s FunctionSpecifier) bool {
	for _, have := range t.Specifiers {
		if have == s {
			return true
		}
	}
	return false
}

func (t *Type) String() string {
	return t.Basic.String()
}

// Convenience constructors for the built-in scalar types. These are shared,
// pointer-comparable singletons for the types that have no qualifiers so
// that equality checks can shortcut on identity where it is safe to do so;
// equality MUST still go through EqualDiscardingQualifiers for correctness.
var (
	Void   = &Base{Kind: KindVoid}
	Bool   = &Base{Kind: KindBool}
	Char   = &Base{Kind: KindSignedInt, Rank: RankChar}
	UChar  = &Base{Kind: KindUnsignedInt, Rank: RankChar}
	Short  = &Base{Kind: KindSignedInt, Rank: RankShort}
	UShort = &Base{Kind: KindUnsignedInt, Rank: RankShort}
	Int    = &Base{Kind: KindSignedInt, Rank: RankInt}
	UInt   = &Base{Kind: KindUnsignedInt, Rank: RankInt}
	Long   = &Base{Kind: KindSignedInt, Rank: RankLong}
	ULong  = &Base{Kind: KindUnsignedInt, Rank: RankLong}
	LLong  = &Base{Kind: KindSignedInt, Rank: RankLongLong}
	ULLong = &Base{Kind: KindUnsignedInt, Rank: RankLongLong}
	Float  = &Base{Kind: KindFloat}
	Double = &Base{Kind: KindDouble}
)

// Basic wraps a bare Base with no qualifiers, a common case when building
// types programmatically (e.g. from the parser's literal-suffix handling).
func Plain(b *Base) *Basic { return &Basic{Base: b} }
