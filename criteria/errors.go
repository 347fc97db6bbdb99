package criteria

import "errors"

var (
	// ErrNamingConvention reports an accessor whose method name lacks the Get prefix.
	ErrNamingConvention = errors.New("criteria: accessor does not follow the getter naming convention")
	// ErrIntrospection reports an accessor whose implementing method name cannot be recovered.
	ErrIntrospection = errors.New("criteria: accessor introspection failed")
	// ErrInvalidSpecification reports a malformed specification tree.
	ErrInvalidSpecification = errors.New("criteria: invalid specification")
	// ErrInvalidPredicate reports operands a backend cannot turn into a predicate.
	ErrInvalidPredicate = errors.New("criteria: invalid predicate")
	// ErrUnknownField reports a field identifier a backend cannot address.
	ErrUnknownField = errors.New("criteria: unknown field")
)
