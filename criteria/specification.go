package criteria

import "fmt"

// Specification is a composable condition on T: an ordered list of
// predicate factories joined by a connector, plus child specifications
// attached through AndOr. It is built by a Builder and compiled by a
// backend any number of times; compilation never mutates it.
type Specification[T any] struct {
	factories []PredicateFactory
	connector Connector
	children  []attached[T]
	err       error
}

// attached is a child specification. An optional child is left out of its
// parent when it compiles to no operands.
type attached[T any] struct {
	spec     *Specification[T]
	optional bool
}

// Query starts a specification chain for the target type T.
func Query[T any]() *Builder[T] {
	return &Builder[T]{spec: &Specification[T]{connector: ConnectorAnd}}
}

// Connector returns the connector joining the specification's operands.
func (s *Specification[T]) Connector() Connector {
	return s.connector
}

// Len returns the number of direct predicate factories.
func (s *Specification[T]) Len() int {
	return len(s.factories)
}

// Children returns the attached child specifications in insertion order.
func (s *Specification[T]) Children() []*Specification[T] {
	out := make([]*Specification[T], 0, len(s.children))
	for _, child := range s.children {
		out = append(out, child.spec)
	}
	return out
}

// Err returns the first error recorded while building the specification.
func (s *Specification[T]) Err() error {
	return s.err
}

// Expression compiles the specification into an expression tree against b.
// Direct factories become leaves in insertion order, followed by one
// operand per child, all under the specification's own connector. A child
// without operands stays an empty junction unless it was attached with
// AndOrIf(true, ...).
func (s *Specification[T]) Expression(b Backend) (Expr, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil specification", ErrInvalidSpecification)
	}
	if b == nil {
		return nil, errNilBackend
	}
	expr, err := s.expression(b, make(map[*Specification[T]]struct{}))
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// ToPredicate compiles the specification into one backend predicate.
func (s *Specification[T]) ToPredicate(b Backend) (Predicate, error) {
	return Compile(s, b)
}

func (s *Specification[T]) expression(b Backend, visiting map[*Specification[T]]struct{}) (Junction, error) {
	if _, seen := visiting[s]; seen {
		return Junction{}, fmt.Errorf("%w: specification contains itself", ErrInvalidSpecification)
	}
	if s.err != nil {
		return Junction{}, s.err
	}
	visiting[s] = struct{}{}
	defer delete(visiting, s)

	operands := make([]Expr, 0, len(s.factories)+len(s.children))
	for _, factory := range s.factories {
		pred, err := factory(b)
		if err != nil {
			return Junction{}, err
		}
		operands = append(operands, Leaf{Predicate: pred})
	}
	for _, child := range s.children {
		expr, err := child.spec.expression(b, visiting)
		if err != nil {
			return Junction{}, err
		}
		if child.optional && len(expr.Operands) == 0 {
			continue
		}
		operands = append(operands, expr)
	}
	return Junction{Connector: s.connector, Operands: operands}, nil
}

func (s *Specification[T]) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}
