package criteria

import "reflect"

// Values converts a typed slice into the []any form membership operators
// take, preserving order: In(field, Values(ids)...).
func Values[V any](values []V) []any {
	if values == nil {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// isEmpty reports whether an ignoreEmpty call should skip value: nil,
// a zero-length collection or a zero-length string.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Array, reflect.String:
		return v.Len() == 0
	default:
		return false
	}
}

// isAbsent reports whether value is nil, including typed nils.
func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.Slice, reflect.Map:
		return v.IsNil()
	default:
		return false
	}
}
