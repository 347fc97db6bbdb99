package criteria

import "fmt"

// Builder accumulates conditions on one Specification. Every method
// mutates that specification and returns the same builder; the builder is
// owned by a single goroutine until Build.
//
// Methods suffixed If take a leading ignoreEmpty flag: when it is true and
// the value is nil, an empty collection or an empty string, the call is a
// no-op. Without the flag the condition is always added and a nil value is
// bound as-is.
type Builder[T any] struct {
	spec *Specification[T]
}

type unaryOp func(b Backend, attr Attribute) (Predicate, error)

type binaryOp func(b Backend, left, right Attribute) (Predicate, error)

// Build ends the chain and returns the specification.
func (b *Builder[T]) Build() *Specification[T] {
	return b.spec
}

// AndOr attaches other as one additional operand of this specification.
// other's connector is forced to OR, so its own conditions are alternatives:
//
//	Query[Order]().
//		Eq(pid, "1").
//		AndOr(Query[Order]().Eq(name, "Vincent").Eq(age, 2).Build())
//
// compiles to pid = '1' AND (name = 'Vincent' OR age = 2). An other without
// conditions is an empty OR, which is false.
func (b *Builder[T]) AndOr(other *Specification[T]) *Builder[T] {
	return b.AndOrIf(false, other)
}

// AndOrIf is AndOr, except that with ignoreEmpty set an other that compiles
// to no operands is left out instead of contributing an empty OR (false).
// Emptiness is decided at compile time, after every If condition has been
// applied.
func (b *Builder[T]) AndOrIf(ignoreEmpty bool, other *Specification[T]) *Builder[T] {
	switch {
	case b.spec.err != nil:
		return b
	case other == nil:
		b.spec.fail(fmt.Errorf("%w: AndOr requires a specification", ErrInvalidSpecification))
		return b
	case other == b.spec:
		b.spec.fail(fmt.Errorf("%w: AndOr cannot attach a specification to itself", ErrInvalidSpecification))
		return b
	case other.err != nil:
		b.spec.fail(other.err)
		return b
	}
	other.connector = ConnectorOr
	b.spec.children = append(b.spec.children, attached[T]{spec: other, optional: ignoreEmpty})
	return b
}

// Eq adds field = value.
func (b *Builder[T]) Eq(field Field[T], value any) *Builder[T] {
	return b.EqIf(false, field, value)
}

// EqIf adds field = value unless ignoreEmpty is set and value is empty.
func (b *Builder[T]) EqIf(ignoreEmpty bool, field Field[T], value any) *Builder[T] {
	return b.addValue(ignoreEmpty, field, value, func(be Backend, attr Attribute) (Predicate, error) {
		return be.Equal(attr, value)
	})
}

// EqField adds left = right, comparing two fields of the same row.
func (b *Builder[T]) EqField(left, right Field[T]) *Builder[T] {
	return b.addFields(left, right, func(be Backend, l, r Attribute) (Predicate, error) {
		return be.EqualAttribute(l, r)
	})
}

// NotEq adds field <> value.
func (b *Builder[T]) NotEq(field Field[T], value any) *Builder[T] {
	return b.NotEqIf(false, field, value)
}

// NotEqIf adds field <> value unless ignoreEmpty is set and value is empty.
func (b *Builder[T]) NotEqIf(ignoreEmpty bool, field Field[T], value any) *Builder[T] {
	return b.addValue(ignoreEmpty, field, value, func(be Backend, attr Attribute) (Predicate, error) {
		return be.NotEqual(attr, value)
	})
}

// NotEqField adds left <> right, comparing two fields of the same row.
func (b *Builder[T]) NotEqField(left, right Field[T]) *Builder[T] {
	return b.addFields(left, right, func(be Backend, l, r Attribute) (Predicate, error) {
		return be.NotEqualAttribute(l, r)
	})
}

// In adds field IN (values...). Pass an ordered slice as In(f, Values(s)...).
func (b *Builder[T]) In(field Field[T], values ...any) *Builder[T] {
	return b.InIf(false, field, values...)
}

// InIf adds field IN (values...) unless ignoreEmpty is set and no values are given.
func (b *Builder[T]) InIf(ignoreEmpty bool, field Field[T], values ...any) *Builder[T] {
	set := copyValues(values)
	return b.addValue(ignoreEmpty, field, set, func(be Backend, attr Attribute) (Predicate, error) {
		return be.In(attr, copyValues(set))
	})
}

// NotIn adds field NOT IN (values...).
func (b *Builder[T]) NotIn(field Field[T], values ...any) *Builder[T] {
	return b.NotInIf(false, field, values...)
}

// NotInIf adds field NOT IN (values...) unless ignoreEmpty is set and no values are given.
func (b *Builder[T]) NotInIf(ignoreEmpty bool, field Field[T], values ...any) *Builder[T] {
	set := copyValues(values)
	return b.addValue(ignoreEmpty, field, set, func(be Backend, attr Attribute) (Predicate, error) {
		return be.NotIn(attr, copyValues(set))
	})
}

// IsNull adds field IS NULL.
func (b *Builder[T]) IsNull(field Field[T]) *Builder[T] {
	return b.addField(field, func(be Backend, attr Attribute) (Predicate, error) {
		return be.IsNull(attr)
	})
}

// IsNotNull adds field IS NOT NULL.
func (b *Builder[T]) IsNotNull(field Field[T]) *Builder[T] {
	return b.addField(field, func(be Backend, attr Attribute) (Predicate, error) {
		return be.IsNotNull(attr)
	})
}

// Like adds field LIKE pattern, with % and _ wildcards.
func (b *Builder[T]) Like(field Field[T], pattern string) *Builder[T] {
	return b.LikeIf(false, field, pattern)
}

// LikeIf adds field LIKE pattern unless ignoreEmpty is set and pattern is empty.
func (b *Builder[T]) LikeIf(ignoreEmpty bool, field Field[T], pattern string) *Builder[T] {
	return b.addValue(ignoreEmpty, field, pattern, func(be Backend, attr Attribute) (Predicate, error) {
		return be.Like(attr, pattern)
	})
}

// NotLike adds field NOT LIKE pattern.
func (b *Builder[T]) NotLike(field Field[T], pattern string) *Builder[T] {
	return b.NotLikeIf(false, field, pattern)
}

// NotLikeIf adds field NOT LIKE pattern unless ignoreEmpty is set and pattern is empty.
func (b *Builder[T]) NotLikeIf(ignoreEmpty bool, field Field[T], pattern string) *Builder[T] {
	return b.addValue(ignoreEmpty, field, pattern, func(be Backend, attr Attribute) (Predicate, error) {
		return be.NotLike(attr, pattern)
	})
}

// Lt adds field < value.
func (b *Builder[T]) Lt(field Field[T], value any) *Builder[T] {
	return b.LtIf(false, field, value)
}

// LtIf adds field < value unless ignoreEmpty is set and value is empty.
func (b *Builder[T]) LtIf(ignoreEmpty bool, field Field[T], value any) *Builder[T] {
	return b.addValue(ignoreEmpty, field, value, func(be Backend, attr Attribute) (Predicate, error) {
		return be.LessThan(attr, value)
	})
}

// Le adds field <= value.
func (b *Builder[T]) Le(field Field[T], value any) *Builder[T] {
	return b.LeIf(false, field, value)
}

// LeIf adds field <= value unless ignoreEmpty is set and value is empty.
func (b *Builder[T]) LeIf(ignoreEmpty bool, field Field[T], value any) *Builder[T] {
	return b.addValue(ignoreEmpty, field, value, func(be Backend, attr Attribute) (Predicate, error) {
		return be.LessThanOrEqualTo(attr, value)
	})
}

// Gt adds field > value.
func (b *Builder[T]) Gt(field Field[T], value any) *Builder[T] {
	return b.GtIf(false, field, value)
}

// GtIf adds field > value unless ignoreEmpty is set and value is empty.
func (b *Builder[T]) GtIf(ignoreEmpty bool, field Field[T], value any) *Builder[T] {
	return b.addValue(ignoreEmpty, field, value, func(be Backend, attr Attribute) (Predicate, error) {
		return be.GreaterThan(attr, value)
	})
}

// Ge adds field >= value.
func (b *Builder[T]) Ge(field Field[T], value any) *Builder[T] {
	return b.GeIf(false, field, value)
}

// GeIf adds field >= value unless ignoreEmpty is set and value is empty.
func (b *Builder[T]) GeIf(ignoreEmpty bool, field Field[T], value any) *Builder[T] {
	return b.addValue(ignoreEmpty, field, value, func(be Backend, attr Attribute) (Predicate, error) {
		return be.GreaterThanOrEqualTo(attr, value)
	})
}

// Between adds lower <= field <= upper.
func (b *Builder[T]) Between(field Field[T], lower, upper any) *Builder[T] {
	return b.BetweenIf(false, field, lower, upper)
}

// BetweenIf adds lower <= field <= upper. With ignoreEmpty set the
// condition is only added when both bounds are present.
func (b *Builder[T]) BetweenIf(ignoreEmpty bool, field Field[T], lower, upper any) *Builder[T] {
	if ignoreEmpty && (isAbsent(lower) || isAbsent(upper)) {
		return b
	}
	return b.addField(field, func(be Backend, attr Attribute) (Predicate, error) {
		return be.Between(attr, lower, upper)
	})
}

func (b *Builder[T]) addValue(ignoreEmpty bool, field Field[T], value any, op unaryOp) *Builder[T] {
	if ignoreEmpty && isEmpty(value) {
		return b
	}
	return b.addField(field, op)
}

func (b *Builder[T]) addField(field Field[T], op unaryOp) *Builder[T] {
	if b.spec.err != nil {
		return b
	}
	name, err := fieldName(field)
	if err != nil {
		b.spec.fail(err)
		return b
	}
	b.spec.factories = append(b.spec.factories, func(be Backend) (Predicate, error) {
		attr, err := be.Attribute(name)
		if err != nil {
			return nil, err
		}
		return op(be, attr)
	})
	return b
}

func (b *Builder[T]) addFields(left, right Field[T], op binaryOp) *Builder[T] {
	if b.spec.err != nil {
		return b
	}
	leftName, err := fieldName(left)
	if err != nil {
		b.spec.fail(err)
		return b
	}
	rightName, err := fieldName(right)
	if err != nil {
		b.spec.fail(err)
		return b
	}
	b.spec.factories = append(b.spec.factories, func(be Backend) (Predicate, error) {
		l, err := be.Attribute(leftName)
		if err != nil {
			return nil, err
		}
		r, err := be.Attribute(rightName)
		if err != nil {
			return nil, err
		}
		return op(be, l, r)
	})
	return b
}

func fieldName[T any](field Field[T]) (string, error) {
	if err := field.Err(); err != nil {
		return "", err
	}
	if field.Name() == "" {
		return "", fmt.Errorf("%w: field is not initialized", ErrInvalidSpecification)
	}
	return field.Name(), nil
}

func copyValues(values []any) []any {
	if values == nil {
		return nil
	}
	cp := make([]any, len(values))
	copy(cp, values)
	return cp
}
