package criteria

import "fmt"

// Attribute is a backend's handle on an addressable field.
type Attribute = any

// Predicate is a backend's compiled condition.
type Predicate = any

// Backend is the query backend a specification compiles against. It
// addresses attributes by identifier and builds comparison predicates and
// AND/OR compounds from complete operand lists.
type Backend interface {
	Attribute(name string) (Attribute, error)

	Equal(attr Attribute, value any) (Predicate, error)
	EqualAttribute(left, right Attribute) (Predicate, error)
	NotEqual(attr Attribute, value any) (Predicate, error)
	NotEqualAttribute(left, right Attribute) (Predicate, error)
	In(attr Attribute, values []any) (Predicate, error)
	NotIn(attr Attribute, values []any) (Predicate, error)
	IsNull(attr Attribute) (Predicate, error)
	IsNotNull(attr Attribute) (Predicate, error)
	Like(attr Attribute, pattern string) (Predicate, error)
	NotLike(attr Attribute, pattern string) (Predicate, error)
	LessThan(attr Attribute, value any) (Predicate, error)
	LessThanOrEqualTo(attr Attribute, value any) (Predicate, error)
	GreaterThan(attr Attribute, value any) (Predicate, error)
	GreaterThanOrEqualTo(attr Attribute, value any) (Predicate, error)
	Between(attr Attribute, lower, upper any) (Predicate, error)

	And(operands ...Predicate) (Predicate, error)
	Or(operands ...Predicate) (Predicate, error)
}

// PredicateFactory is a deferred condition: it yields one predicate when
// invoked against a backend and may be invoked any number of times.
type PredicateFactory func(b Backend) (Predicate, error)

// Compilable is implemented by specifications of any target type.
type Compilable interface {
	Expression(b Backend) (Expr, error)
}

// Compile turns a specification into a backend predicate.
func Compile(spec Compilable, b Backend) (Predicate, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: nil specification", ErrInvalidSpecification)
	}
	if b == nil {
		return nil, errNilBackend
	}
	expr, err := spec.Expression(b)
	if err != nil {
		return nil, err
	}
	return Fold(expr, b)
}
