package memory

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gabisonia/go-specification/criteria"
)

// Row exposes field values by identifier.
type Row interface {
	Lookup(name string) (any, error)
}

// MapRow is a row keyed by field identifier. Missing keys read as nil.
type MapRow map[string]any

func (r MapRow) Lookup(name string) (any, error) {
	return r[name], nil
}

// StructRow reads the fields of a struct value. An identifier such as
// orderItemName is served by the method GetOrderItemName when it exists,
// otherwise by the exported field OrderItemName. Pointers are followed.
func StructRow(v any) Row {
	return structRow{value: reflect.ValueOf(v)}
}

type structRow struct {
	value reflect.Value
}

func (r structRow) Lookup(name string) (any, error) {
	target := r.value
	for target.Kind() == reflect.Interface {
		target = target.Elem()
	}
	if !target.IsValid() || (target.Kind() == reflect.Pointer && target.IsNil()) {
		return nil, fmt.Errorf("%w: row is nil", criteria.ErrInvalidPredicate)
	}

	receiver := target
	if receiver.Kind() != reflect.Pointer {
		receiver = reflect.New(target.Type())
		receiver.Elem().Set(target)
	}
	exported := upperFirst(name)

	if method := receiver.MethodByName("Get" + exported); method.IsValid() {
		typ := method.Type()
		if typ.NumIn() == 0 && typ.NumOut() == 1 {
			return callGetter(method, name)
		}
	}

	elem := receiver
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, nil
		}
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		if field, ok := elem.Type().FieldByName(exported); ok && field.IsExported() {
			value, err := elem.FieldByIndexErr(field.Index)
			if err != nil {
				// promoted through a nil embedded pointer
				return nil, nil
			}
			return value.Interface(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q on %s", criteria.ErrUnknownField, name, target.Type())
}

// callGetter invokes a getter, reporting a panic (such as a method promoted
// through a nil embedded pointer) as an error.
func callGetter(method reflect.Value, name string) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, fmt.Errorf("%w: getter for %q panicked: %v", criteria.ErrInvalidPredicate, name, r)
		}
	}()
	return method.Call(nil)[0].Interface(), nil
}

func upperFirst(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return cases.Upper(language.Und).String(string(r)) + name[size:]
}
