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

package types

import "cc99c/diag"

// IsConst reports whether b's qualifier list contains const.
func IsConst(b *Basic) bool {
	return b.HasQualifier(QualConst)
}

// EqualDiscardingQualifiers is structural equality on the Base shape,
// comparing pointer pointees recursively while ignoring their qualifier
// lists. Two distinct struct/union declarations with identical members but
// different tags are NOT equal: C's struct/union equality is nominal.
func EqualDiscardingQualifiers(a, b *Base) bool {
	if a == b {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindVoid, KindBool, KindFloat, KindDouble:
		return true
	case KindSignedInt, KindUnsignedInt:
		return a.Rank == b.Rank
	case KindPointer:
		return EqualDiscardingQualifiers(a.Pointee.Base, b.Pointee.Base)
	case KindArray:
		if len(a.Dims) != len(b.Dims) {
			return false
		}
		for i := range a.Dims {
			if a.Dims[i] != b.Dims[i] {
				return false
			}
		}
		return EqualDiscardingQualifiers(a.Elem.Base, b.Elem.Base)
	case KindFunction:
		if a.Variadic != b.Variadic || len(a.Params) != len(b.Params) {
			return false
		}
		if !EqualDiscardingQualifiers(a.Return.Base, b.Return.Base) {
			return false
		}
		for i := range a.Params {
			if !EqualDiscardingQualifiers(a.Params[i].Type.Base, b.Params[i].Type.Base) {
				return false
			}
		}
		return true
	case KindStruct, KindUnion:
		return a.Tag == b.Tag
	case KindTypedefName:
		return a.Name == b.Name
	default:
		return false
	}
}

// UsualArithmeticPromotion returns the result base type of a binary
// arithmetic operator applied to operands of base types a and b: the
// operand with the higher cast rank wins, with unsigned winning ties per
// C's rule that an unsigned type at the same rank as its signed
// counterpart takes precedence. The result is commutative:
// UsualArithmeticPromotion(a, b) == UsualArithmeticPromotion(b, a).
func UsualArithmeticPromotion(a, b *Base) *Base {
	ra, rb := a.CastRank(), b.CastRank()
	switch {
	case ra > rb:
		return a
	case rb > ra:
		return b
	default:
		// Equal rank: prefer whichever of the pair is unsigned, so that
		// e.g. (unsigned long, long) promotes to unsigned long regardless
		// of argument order.
		if a.Kind == KindUnsignedInt {
			return a
		}
		if b.Kind == KindUnsignedInt {
			return b
		}
		return a
	}
}

// TestCast reports whether an implicit C conversion from the base type from
// to the base type to is legal, per the rules in the spec:
//
//   - identical types are always legal.
//   - pointer to pointer is legal iff the pointees are equal discarding
//     qualifiers.
//   - a one-dimensional array of scalar T converts to pointer to scalar U
//     iff T and U are the same scalar shape.
//   - any other pairing that involves a pointer is illegal.
//   - scalar to scalar of strictly higher cast rank is legal (widening).
//   - everything else is illegal.
//
// On failure it returns a diag.Error of kind InvalidDefaultCast anchored at
// span; on success it returns nil.
func TestCast(from, to *Base, span diag.Span) *diag.Error {
	if EqualDiscardingQualifiers(from, to) {
		return nil
	}
	if from.Kind == KindPointer && to.Kind == KindPointer {
		if EqualDiscardingQualifiers(from.Pointee.Base, to.Pointee.Base) {
			return nil
		}
		return invalidCast(from, to, span)
	}
	if from.Kind == KindArray && len(from.Dims) == 1 && to.Kind == KindPointer {
		if from.Elem.Base.isScalar() && !from.Elem.Base.isPointerOrArray() && to.Pointee.Base.isScalar() && !to.Pointee.Base.isPointerOrArray() {
			return nil
		}
		return invalidCast(from, to, span)
	}
	if from.Kind == KindPointer || to.Kind == KindPointer || from.Kind == KindArray || to.Kind == KindArray {
		return invalidCast(from, to, span)
	}
	if from.isArithmetic() && to.isArithmetic() && to.CastRank() > from.CastRank() {
		return nil
	}
	return invalidCast(from, to, span)
}

func (b *Base) isPointerOrArray() bool {
	return b.Kind == KindPointer || b.Kind == KindArray
}

func invalidCast(from, to *Base, span diag.Span) *diag.Error {
	return diag.New(diag.InvalidDefaultCast, span, "cannot implicitly convert %s to %s", from, to)
}

// TestExplicitCast reports whether an explicit C-style cast "(to)expr" from
// base type `from` to `to` is legal. Explicit casts accept a strict
// superset of the implicit conversions: any scalar-to-scalar conversion,
// any pointer-to-integer or integer-to-pointer conversion, and any
// same-shape pointer-to-pointer conversion (regardless of pointee
// qualifiers or type).
func TestExplicitCast(from, to *Base) bool {
	if EqualDiscardingQualifiers(from, to) {
		return true
	}
	if from.Kind == KindPointer && to.Kind == KindPointer {
		return true
	}
	if from.isArithmetic() && to.isArithmetic() {
		return true
	}
	if (from.Kind == KindPointer && to.isArithmetic()) || (from.isArithmetic() && to.Kind == KindPointer) {
		return true
	}
	if from.Kind == KindArray && to.Kind == KindPointer {
		return true
	}
	return false
}
