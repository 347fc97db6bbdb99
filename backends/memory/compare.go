package memory

import (
	"cmp"
	"math"
	"reflect"
	"strings"
	"time"
)

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// indirect follows pointers to the value they reference; a nil pointer
// becomes nil.
func indirect(value any) any {
	for {
		if isNil(value) {
			return nil
		}
		v := reflect.ValueOf(value)
		if v.Kind() != reflect.Pointer {
			return value
		}
		value = v.Elem().Interface()
	}
}

func valuesEqual(left, right any) bool {
	left, right = indirect(left), indirect(right)
	if left == nil || right == nil {
		return left == nil && right == nil
	}

	if c, ok, numeric := compareNumbers(left, right); numeric {
		return ok && c == 0
	}

	leftTime, leftIsTime := left.(time.Time)
	rightTime, rightIsTime := right.(time.Time)
	if leftIsTime && rightIsTime {
		return leftTime.Equal(rightTime)
	}

	return reflect.DeepEqual(left, right)
}

func containsValue(values []any, value any) bool {
	for _, candidate := range values {
		if valuesEqual(value, candidate) {
			return true
		}
	}
	return false
}

// compareValues orders left against right. ok is false when either side is
// nil or the two values have no common ordering, which makes every ordering
// comparison false.
func compareValues(left, right any) (c int, ok bool) {
	left, right = indirect(left), indirect(right)
	if left == nil || right == nil {
		return 0, false
	}

	if c, ok, numeric := compareNumbers(left, right); numeric {
		return c, ok
	}

	leftTime, leftIsTime := left.(time.Time)
	rightTime, rightIsTime := right.(time.Time)
	if leftIsTime && rightIsTime {
		return leftTime.Compare(rightTime), true
	}

	lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)
	if lv.Kind() == reflect.String && rv.Kind() == reflect.String {
		return strings.Compare(lv.String(), rv.String()), true
	}
	return 0, false
}

type numberKind int

const (
	notNumber numberKind = iota
	signedNumber
	unsignedNumber
	floatNumber
)

func numberKindOf(v reflect.Value) numberKind {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedNumber
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedNumber
	case reflect.Float32, reflect.Float64:
		return floatNumber
	default:
		return notNumber
	}
}

// compareNumbers orders two numeric values. numeric is false unless both
// are numbers. Integers compare exactly, including across signedness; a
// float on either side compares as float64, and NaN is unordered.
func compareNumbers(left, right any) (c int, ok, numeric bool) {
	lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)
	lk, rk := numberKindOf(lv), numberKindOf(rv)
	if lk == notNumber || rk == notNumber {
		return 0, false, false
	}

	switch {
	case lk == floatNumber || rk == floatNumber:
		l, r := asFloat64(lv, lk), asFloat64(rv, rk)
		if math.IsNaN(l) || math.IsNaN(r) {
			return 0, false, true
		}
		return cmp.Compare(l, r), true, true
	case lk == signedNumber && rk == signedNumber:
		return cmp.Compare(lv.Int(), rv.Int()), true, true
	case lk == unsignedNumber && rk == unsignedNumber:
		return cmp.Compare(lv.Uint(), rv.Uint()), true, true
	case lk == signedNumber:
		if lv.Int() < 0 {
			return -1, true, true
		}
		return cmp.Compare(uint64(lv.Int()), rv.Uint()), true, true
	default:
		if rv.Int() < 0 {
			return 1, true, true
		}
		return cmp.Compare(lv.Uint(), uint64(rv.Int())), true, true
	}
}

func asFloat64(v reflect.Value, kind numberKind) float64 {
	switch kind {
	case signedNumber:
		return float64(v.Int())
	case unsignedNumber:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}
