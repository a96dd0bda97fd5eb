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

import (
	"testing"

	"cc99c/diag"
	"cc99c/internal/assert"
)

func TestTestCastIdentity(t *testing.T) {
	for _, b := range []*Base{Void, Bool, Char, Int, Long, Float, Double} {
		err := TestCast(b, b, diag.NoSpan)
		assert.For(t, "TestCast(%v, %v) identity", b, b).That(err).IsNil()
	}
}

func TestTestCastWidening(t *testing.T) {
	assert.For(t, "int -> long widens").That(TestCast(Int, Long, diag.NoSpan)).IsNil()
	assert.For(t, "int -> double widens").That(TestCast(Int, Double, diag.NoSpan)).IsNil()
	assert.For(t, "long -> int narrows, rejected").That(TestCast(Long, Int, diag.NoSpan)).IsNotNil()
}

func TestTestCastPointerToInt(t *testing.T) {
	ptr := &Base{Kind: KindPointer, Pointee: Plain(Int)}
	err := TestCast(ptr, Int, diag.NoSpan)
	assert.For(t, "pointer -> int is InvalidDefaultCast").That(err).IsNotNil()
	assert.For(t, "error kind").That(err.Kind).Equals(diag.InvalidDefaultCast)
}

func TestTestCastPointerToPointer(t *testing.T) {
	a := &Base{Kind: KindPointer, Pointee: Plain(Int)}
	b := &Base{Kind: KindPointer, Pointee: Plain(Int)}
	assert.For(t, "pointer -> same pointee pointer").That(TestCast(a, b, diag.NoSpan)).IsNil()

	c := &Base{Kind: KindPointer, Pointee: Plain(Char)}
	assert.For(t, "pointer -> different pointee pointer rejected").That(TestCast(a, c, diag.NoSpan)).IsNotNil()
}

func TestTestCastArrayDecay(t *testing.T) {
	arr := &Base{Kind: KindArray, Elem: Plain(Int), Dims: []int{4}}
	ptr := &Base{Kind: KindPointer, Pointee: Plain(Int)}
	assert.For(t, "int[4] -> int* decays").That(TestCast(arr, ptr, diag.NoSpan)).IsNil()
}

func TestUsualArithmeticPromotionCommutative(t *testing.T) {
	pairs := [][2]*Base{{Int, Long}, {Int, UInt}, {Float, Double}, {Int, Float}}
	for _, pr := range pairs {
		ab := UsualArithmeticPromotion(pr[0], pr[1])
		ba := UsualArithmeticPromotion(pr[1], pr[0])
		assert.For(t, "UsualArithmeticPromotion(%v, %v) commutes", pr[0], pr[1]).That(ab).Equals(ba)
	}
}

func TestUsualArithmeticPromotionUnsignedWinsTie(t *testing.T) {
	got := UsualArithmeticPromotion(Long, ULong)
	assert.For(t, "long + unsigned long -> unsigned long").That(got).Equals(ULong)
}

func TestEqualDiscardingQualifiersIgnoresPointeeQualifiers(t *testing.T) {
	constInt := &Basic{Base: Int, Qualifiers: []Qualifier{QualConst}}
	plainInt := Plain(Int)
	a := &Base{Kind: KindPointer, Pointee: constInt}
	b := &Base{Kind: KindPointer, Pointee: plainInt}
	assert.For(t, "pointer equality ignores pointee qualifiers").That(EqualDiscardingQualifiers(a, b)).IsTrue()
}

func TestExplicitCastAcceptsPointerIntRoundTrip(t *testing.T) {
	ptr := &Base{Kind: KindPointer, Pointee: Plain(Int)}
	assert.For(t, "explicit ptr -> int").That(TestExplicitCast(ptr, Long)).IsTrue()
	assert.For(t, "explicit int -> ptr").That(TestExplicitCast(Long, ptr)).IsTrue()
	assert.For(t, "implicit ptr -> int rejected").That(TestCast(ptr, Long, diag.NoSpan)).IsNotNil()
}
