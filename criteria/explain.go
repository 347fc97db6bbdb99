package criteria

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Explain renders a specification into its logical form, for example
//
//	AND(pid = "1", OR(orderItemName = "Vincent", orderNo = 2))
//
// Strings are quoted, nil renders as NULL and NOT IN renders as NOT(x IN (...)).
func Explain(spec Compilable) (string, error) {
	pred, err := Compile(spec, explainer{})
	if err != nil {
		return "", err
	}
	return pred.(string), nil
}

// explainer is a Backend whose attributes are identifiers and whose
// predicates are strings.
type explainer struct{}

func (explainer) Attribute(name string) (Attribute, error) {
	return NormalizeFieldName(name)
}

func (explainer) Equal(attr Attribute, value any) (Predicate, error) {
	return fmt.Sprintf("%s = %s", attr, explainValue(value)), nil
}

func (explainer) EqualAttribute(left, right Attribute) (Predicate, error) {
	return fmt.Sprintf("%s = %s", left, right), nil
}

func (explainer) NotEqual(attr Attribute, value any) (Predicate, error) {
	return fmt.Sprintf("%s <> %s", attr, explainValue(value)), nil
}

func (explainer) NotEqualAttribute(left, right Attribute) (Predicate, error) {
	return fmt.Sprintf("%s <> %s", left, right), nil
}

func (explainer) In(attr Attribute, values []any) (Predicate, error) {
	return fmt.Sprintf("%s IN (%s)", attr, explainList(values)), nil
}

func (explainer) NotIn(attr Attribute, values []any) (Predicate, error) {
	return fmt.Sprintf("NOT(%s IN (%s))", attr, explainList(values)), nil
}

func (explainer) IsNull(attr Attribute) (Predicate, error) {
	return fmt.Sprintf("%s IS NULL", attr), nil
}

func (explainer) IsNotNull(attr Attribute) (Predicate, error) {
	return fmt.Sprintf("%s IS NOT NULL", attr), nil
}

func (explainer) Like(attr Attribute, pattern string) (Predicate, error) {
	return fmt.Sprintf("%s LIKE %q", attr, pattern), nil
}

func (explainer) NotLike(attr Attribute, pattern string) (Predicate, error) {
	return fmt.Sprintf("%s NOT LIKE %q", attr, pattern), nil
}

func (explainer) LessThan(attr Attribute, value any) (Predicate, error) {
	return fmt.Sprintf("%s < %s", attr, explainValue(value)), nil
}

func (explainer) LessThanOrEqualTo(attr Attribute, value any) (Predicate, error) {
	return fmt.Sprintf("%s <= %s", attr, explainValue(value)), nil
}

func (explainer) GreaterThan(attr Attribute, value any) (Predicate, error) {
	return fmt.Sprintf("%s > %s", attr, explainValue(value)), nil
}

func (explainer) GreaterThanOrEqualTo(attr Attribute, value any) (Predicate, error) {
	return fmt.Sprintf("%s >= %s", attr, explainValue(value)), nil
}

func (explainer) Between(attr Attribute, lower, upper any) (Predicate, error) {
	return fmt.Sprintf("%s BETWEEN %s AND %s", attr, explainValue(lower), explainValue(upper)), nil
}

func (explainer) And(operands ...Predicate) (Predicate, error) {
	if len(operands) == 0 {
		return "TRUE", nil
	}
	return explainJunction(ConnectorAnd, operands), nil
}

func (explainer) Or(operands ...Predicate) (Predicate, error) {
	if len(operands) == 0 {
		return "FALSE", nil
	}
	return explainJunction(ConnectorOr, operands), nil
}

func explainJunction(connector Connector, operands []Predicate) string {
	parts := make([]string, 0, len(operands))
	for _, operand := range operands {
		parts = append(parts, fmt.Sprint(operand))
	}
	return fmt.Sprintf("%s(%s)", connector, strings.Join(parts, ", "))
}

func explainList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, explainValue(v))
	}
	return strings.Join(parts, ", ")
}

func explainValue(value any) string {
	if isAbsent(value) {
		return "NULL"
	}
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case time.Time:
		return fmt.Sprintf("%q", v.Format(time.RFC3339Nano))
	case fmt.Stringer:
		return fmt.Sprintf("%q", v.String())
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer {
		return explainValue(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}
