package criteria

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// getterPrefix is the read-accessor prefix stripped from method names.
const getterPrefix = "Get"

// resolved memoizes accessor resolution by function entry PC.
var resolved sync.Map

// Field addresses one queryable attribute of the target type T.
//
// A Field is built either from an accessor method (Getter) or from an
// explicit identifier (Named), which is what generated field tags use.
// Resolution errors are carried by the value and surface when the field is
// used in a chain call.
type Field[T any] struct {
	name string
	err  error
}

// Getter builds a field from a method expression or method value such as
// Order.GetPid, (*Order).GetPid or order.GetPid.
func Getter[T, V any](accessor func(T) V) Field[T] {
	name, err := ResolveFieldName(accessor)
	return Field[T]{name: name, err: err}
}

// Named builds a field from a known identifier.
func Named[T any](name string) Field[T] {
	normalized, err := NormalizeFieldName(name)
	return Field[T]{name: normalized, err: err}
}

// Name returns the field identifier, or "" when resolution failed.
func (f Field[T]) Name() string {
	return f.name
}

// Err returns the resolution error, if any.
func (f Field[T]) Err() error {
	return f.err
}

func (f Field[T]) String() string {
	if f.err != nil {
		return fmt.Sprintf("<invalid field: %v>", f.err)
	}
	return f.name
}

// ResolveFieldName recovers the field identifier of an accessor: a func
// taking at most its receiver and returning one value, whose implementing
// method is named GetXxx. The result is xxx with the first rune lowercased.
func ResolveFieldName(accessor any) (string, error) {
	if accessor == nil {
		return "", fmt.Errorf("%w: accessor is nil", ErrIntrospection)
	}
	v := reflect.ValueOf(accessor)
	if v.Kind() != reflect.Func {
		return "", fmt.Errorf("%w: accessor of type %T is not a func", ErrIntrospection, accessor)
	}
	if v.IsNil() {
		return "", fmt.Errorf("%w: accessor func is nil", ErrIntrospection)
	}
	typ := v.Type()
	if typ.NumIn() > 1 || typ.IsVariadic() || typ.NumOut() != 1 {
		return "", fmt.Errorf("%w: accessor %s is not a zero-argument getter", ErrIntrospection, typ)
	}

	pc := v.Pointer()
	if name, ok := resolved.Load(pc); ok {
		return name.(string), nil
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "", fmt.Errorf("%w: no function info for accessor %s", ErrIntrospection, typ)
	}
	name, err := FieldNameFromMethod(methodName(fn.Name()))
	if err != nil {
		return "", err
	}
	resolved.Store(pc, name)
	return name, nil
}

// FieldNameFromMethod derives a field identifier from a getter method name:
// GetOrderItemName becomes orderItemName.
func FieldNameFromMethod(method string) (string, error) {
	var rest string
	switch {
	case strings.HasPrefix(method, getterPrefix):
		rest = method[len(getterPrefix):]
	case strings.HasPrefix(method, "get"):
		rest = method[len("get"):]
	default:
		return "", fmt.Errorf("%w: method %q must start with %q", ErrNamingConvention, method, getterPrefix)
	}
	if rest == "" {
		return "", fmt.Errorf("%w: method %q names no field", ErrNamingConvention, method)
	}
	_, size := utf8.DecodeRuneInString(rest)
	return cases.Lower(language.Und).String(rest[:size]) + rest[size:], nil
}

// methodName extracts the bare method name from a runtime symbol such as
// example.com/pkg.(*Order).GetPid-fm.
func methodName(symbol string) string {
	symbol = strings.TrimSuffix(symbol, "-fm")
	if i := strings.LastIndexByte(symbol, '.'); i >= 0 {
		return symbol[i+1:]
	}
	return symbol
}
