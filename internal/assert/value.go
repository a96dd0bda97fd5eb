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

package assert

import (
	"fmt"
	"reflect"
)

// OnValue is the result of Assertion.That; it provides comparisons that
// work for any comparable or deeply-comparable Go value.
type OnValue struct {
	a     *Assertion
	value interface{}
}

// Equals asserts that the wrapped value is == to want (or, for
// non-comparable kinds, reflect.DeepEqual to it).
func (o OnValue) Equals(want interface{}) bool {
	if equal(o.value, want) {
		return true
	}
	o.a.fail(fmt.Sprint(o.value), "==", want)
	return false
}

// NotEquals is the negation of Equals.
func (o OnValue) NotEquals(want interface{}) bool {
	if !equal(o.value, want) {
		return true
	}
	o.a.fail(fmt.Sprint(o.value), "!=", want)
	return false
}

// DeepEquals asserts using reflect.DeepEqual, for slices/maps/structs.
func (o OnValue) DeepEquals(want interface{}) bool {
	if reflect.DeepEqual(o.value, want) {
		return true
	}
	o.a.fail(fmt.Sprintf("%#v", o.value), "deep==", want)
	return false
}

// IsNil asserts that the wrapped value is nil (including typed nils).
func (o OnValue) IsNil() bool {
	if isNil(o.value) {
		return true
	}
	o.a.fail(fmt.Sprint(o.value), "==", nil)
	return false
}

// IsNotNil is the negation of IsNil.
func (o OnValue) IsNotNil() bool {
	if !isNil(o.value) {
		return true
	}
	o.a.fail(fmt.Sprint(o.value), "!=", nil)
	return false
}

// IsTrue asserts the wrapped value is the boolean true.
func (o OnValue) IsTrue() bool {
	b, ok := o.value.(bool)
	if ok && b {
		return true
	}
	o.a.fail(fmt.Sprint(o.value), "==", true)
	return false
}

// IsFalse asserts the wrapped value is the boolean false.
func (o OnValue) IsFalse() bool {
	b, ok := o.value.(bool)
	if ok && !b {
		return true
	}
	o.a.fail(fmt.Sprint(o.value), "==", false)
	return false
}

func equal(a, b interface{}) bool {
	if a == b {
		return true
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.IsValid() && bv.IsValid() && av.Type().Comparable() && bv.Type().Comparable() {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.Interface, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
