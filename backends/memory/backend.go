// Package memory evaluates compiled specifications against in-memory rows.
package memory

import (
	"fmt"
	"regexp"

	"github.com/gabisonia/go-specification/criteria"
)

// Predicate reports whether a row satisfies a compiled condition.
type Predicate func(Row) (bool, error)

// Backend compiles specifications into Predicates. It is stateless and safe
// for concurrent use.
type Backend struct{}

var _ criteria.Backend = (*Backend)(nil)

// New returns an in-memory backend.
func New() *Backend {
	return &Backend{}
}

// Compile compiles spec into a Predicate.
func (b *Backend) Compile(spec criteria.Compilable) (Predicate, error) {
	pred, err := criteria.Compile(spec, b)
	if err != nil {
		return nil, err
	}
	return asPredicate(pred)
}

// Match evaluates a predicate produced by this backend against row.
func Match(p criteria.Predicate, row Row) (bool, error) {
	pred, err := asPredicate(p)
	if err != nil {
		return false, err
	}
	if row == nil {
		return false, fmt.Errorf("%w: row is nil", criteria.ErrInvalidPredicate)
	}
	return pred(row)
}

// Filter returns the items of rows that satisfy spec, in order. Items are
// read through StructRow.
func Filter[T any](spec *criteria.Specification[T], rows []T) ([]T, error) {
	pred, err := New().Compile(spec)
	if err != nil {
		return nil, err
	}
	var out []T
	for _, row := range rows {
		ok, err := pred(StructRow(row))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

type attribute string

func (b *Backend) Attribute(name string) (criteria.Attribute, error) {
	normalized, err := criteria.NormalizeFieldName(name)
	if err != nil {
		return nil, err
	}
	return attribute(normalized), nil
}

func (b *Backend) Equal(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return compareWith(attr, func(left any) bool {
		return valuesEqual(left, value)
	})
}

func (b *Backend) EqualAttribute(left, right criteria.Attribute) (criteria.Predicate, error) {
	return compareFields(left, right, valuesEqual)
}

func (b *Backend) NotEqual(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return compareWith(attr, func(left any) bool {
		return !valuesEqual(left, value)
	})
}

func (b *Backend) NotEqualAttribute(left, right criteria.Attribute) (criteria.Predicate, error) {
	return compareFields(left, right, func(l, r any) bool {
		return !valuesEqual(l, r)
	})
}

func (b *Backend) In(attr criteria.Attribute, values []any) (criteria.Predicate, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: IN requires at least one value", criteria.ErrInvalidPredicate)
	}
	return compareWith(attr, func(left any) bool {
		return containsValue(values, left)
	})
}

func (b *Backend) NotIn(attr criteria.Attribute, values []any) (criteria.Predicate, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: NOT IN requires at least one value", criteria.ErrInvalidPredicate)
	}
	return compareWith(attr, func(left any) bool {
		return !containsValue(values, left)
	})
}

func (b *Backend) IsNull(attr criteria.Attribute) (criteria.Predicate, error) {
	return compareWith(attr, isNil)
}

func (b *Backend) IsNotNull(attr criteria.Attribute) (criteria.Predicate, error) {
	return compareWith(attr, func(left any) bool {
		return !isNil(left)
	})
}

func (b *Backend) Like(attr criteria.Attribute, pattern string) (criteria.Predicate, error) {
	re, err := likePattern(pattern)
	if err != nil {
		return nil, err
	}
	return compareWith(attr, func(left any) bool {
		text, ok := likeText(left)
		return ok && re.MatchString(text)
	})
}

func (b *Backend) NotLike(attr criteria.Attribute, pattern string) (criteria.Predicate, error) {
	re, err := likePattern(pattern)
	if err != nil {
		return nil, err
	}
	return compareWith(attr, func(left any) bool {
		text, ok := likeText(left)
		return ok && !re.MatchString(text)
	})
}

func (b *Backend) LessThan(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return ordered(attr, value, func(c int) bool { return c < 0 })
}

func (b *Backend) LessThanOrEqualTo(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return ordered(attr, value, func(c int) bool { return c <= 0 })
}

func (b *Backend) GreaterThan(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return ordered(attr, value, func(c int) bool { return c > 0 })
}

func (b *Backend) GreaterThanOrEqualTo(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return ordered(attr, value, func(c int) bool { return c >= 0 })
}

func (b *Backend) Between(attr criteria.Attribute, lower, upper any) (criteria.Predicate, error) {
	return compareWith(attr, func(left any) bool {
		low, ok := compareValues(left, lower)
		if !ok || low < 0 {
			return false
		}
		high, ok := compareValues(left, upper)
		return ok && high <= 0
	})
}

func (b *Backend) And(operands ...criteria.Predicate) (criteria.Predicate, error) {
	preds, err := asPredicates(operands)
	if err != nil {
		return nil, err
	}
	return Predicate(func(row Row) (bool, error) {
		for _, pred := range preds {
			ok, err := pred(row)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}), nil
}

func (b *Backend) Or(operands ...criteria.Predicate) (criteria.Predicate, error) {
	preds, err := asPredicates(operands)
	if err != nil {
		return nil, err
	}
	return Predicate(func(row Row) (bool, error) {
		for _, pred := range preds {
			ok, err := pred(row)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}), nil
}

func compareWith(attr criteria.Attribute, test func(left any) bool) (criteria.Predicate, error) {
	name, err := asAttribute(attr)
	if err != nil {
		return nil, err
	}
	return Predicate(func(row Row) (bool, error) {
		left, err := row.Lookup(string(name))
		if err != nil {
			return false, err
		}
		return test(indirect(left)), nil
	}), nil
}

func compareFields(left, right criteria.Attribute, test func(l, r any) bool) (criteria.Predicate, error) {
	leftName, err := asAttribute(left)
	if err != nil {
		return nil, err
	}
	rightName, err := asAttribute(right)
	if err != nil {
		return nil, err
	}
	return Predicate(func(row Row) (bool, error) {
		l, err := row.Lookup(string(leftName))
		if err != nil {
			return false, err
		}
		r, err := row.Lookup(string(rightName))
		if err != nil {
			return false, err
		}
		return test(indirect(l), indirect(r)), nil
	}), nil
}

func ordered(attr criteria.Attribute, value any, test func(c int) bool) (criteria.Predicate, error) {
	return compareWith(attr, func(left any) bool {
		c, ok := compareValues(left, value)
		return ok && test(c)
	})
}

func asAttribute(attr criteria.Attribute) (attribute, error) {
	name, ok := attr.(attribute)
	if !ok {
		return "", fmt.Errorf("%w: attribute %v (%T) was not produced by the memory backend", criteria.ErrInvalidPredicate, attr, attr)
	}
	return name, nil
}

func asPredicate(p criteria.Predicate) (Predicate, error) {
	pred, ok := p.(Predicate)
	if !ok || pred == nil {
		return nil, fmt.Errorf("%w: predicate %T was not produced by the memory backend", criteria.ErrInvalidPredicate, p)
	}
	return pred, nil
}

func asPredicates(operands []criteria.Predicate) ([]Predicate, error) {
	preds := make([]Predicate, 0, len(operands))
	for _, operand := range operands {
		pred, err := asPredicate(operand)
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}
	return preds, nil
}

func likeText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// likePattern translates a SQL LIKE pattern into an anchored regexp:
// % matches any run, _ one rune, and \ escapes the next rune.
func likePattern(pattern string) (*regexp.Regexp, error) {
	var expr []byte
	expr = append(expr, "(?s)^"...)
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '%':
			expr = append(expr, ".*"...)
		case '_':
			expr = append(expr, '.')
		case '\\':
			if i+1 < len(runes) {
				i++
				r = runes[i]
			}
			expr = append(expr, regexp.QuoteMeta(string(r))...)
		default:
			expr = append(expr, regexp.QuoteMeta(string(r))...)
		}
	}
	expr = append(expr, '$')
	re, err := regexp.Compile(string(expr))
	if err != nil {
		return nil, fmt.Errorf("%w: LIKE pattern %q: %v", criteria.ErrInvalidPredicate, pattern, err)
	}
	return re, nil
}
