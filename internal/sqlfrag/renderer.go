// Package sqlfrag renders compiled specifications into parameterized SQL
// WHERE fragments. Dialect packages configure it; it never executes SQL.
package sqlfrag

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gabisonia/go-specification/criteria"
)

// Renderer is a criteria.Backend whose attributes are quoted column
// expressions and whose predicates are Fragments.
type Renderer struct {
	dialect Dialect
	opts    Options
}

var _ criteria.Backend = (*Renderer)(nil)

type column string

// New validates the dialect and options and returns a renderer.
func New(dialect Dialect, opts Options) (*Renderer, error) {
	if err := dialect.validate(); err != nil {
		return nil, err
	}
	normalized := opts.withDefaults()
	if err := normalized.validate(); err != nil {
		return nil, err
	}
	return &Renderer{dialect: dialect, opts: normalized}, nil
}

// Dialect returns the renderer's dialect.
func (r *Renderer) Dialect() Dialect {
	return r.dialect
}

// Compile compiles spec and renders it with placeholders numbered from
// startArg. The returned SQL does not include the WHERE keyword.
func (r *Renderer) Compile(spec criteria.Compilable, startArg int) (sql string, args []any, nextArg int, err error) {
	pred, err := criteria.Compile(spec, r)
	if err != nil {
		return "", nil, normalizeStart(startArg), err
	}
	return r.Where(pred, startArg)
}

// Where renders a predicate produced by this renderer with placeholders
// numbered from startArg (values below 1 start at 1).
func (r *Renderer) Where(p criteria.Predicate, startArg int) (sql string, args []any, nextArg int, err error) {
	return r.RenderWith(p, r.dialect.Placeholder, startArg)
}

// RenderWith is Where with a caller-supplied placeholder spelling.
func (r *Renderer) RenderWith(p criteria.Predicate, placeholder func(n int) string, startArg int) (sql string, args []any, nextArg int, err error) {
	startArg = normalizeStart(startArg)
	frag, err := asFragment(p)
	if err != nil {
		return "", nil, startArg, err
	}
	sql, args, nextArg = frag.Render(placeholder, startArg)
	r.opts.Logger.Debug("rendered where clause",
		slog.String("dialect", r.dialect.Name),
		slog.String("sql", sql),
		slog.Int("args", len(args)),
	)
	return sql, args, nextArg, nil
}

func (r *Renderer) Attribute(name string) (criteria.Attribute, error) {
	normalized, err := criteria.NormalizeFieldName(name)
	if err != nil {
		return nil, err
	}
	col, ok := r.opts.Columns[normalized]
	if !ok {
		if r.opts.Strict {
			return nil, fmt.Errorf("%w: no column mapped for %q", criteria.ErrUnknownField, normalized)
		}
		col = r.opts.NameMapper(normalized)
	}
	if strings.TrimSpace(col) == "" {
		return nil, fmt.Errorf("%w: %q maps to an empty column", criteria.ErrUnknownField, normalized)
	}
	expr := r.dialect.QuoteIdent(col)
	if r.opts.Table != "" {
		expr = r.dialect.QuoteIdent(r.opts.Table) + "." + expr
	}
	return column(expr), nil
}

func (r *Renderer) Equal(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return r.compare(attr, "=", value)
}

func (r *Renderer) EqualAttribute(left, right criteria.Attribute) (criteria.Predicate, error) {
	return r.compareColumns(left, "=", right)
}

func (r *Renderer) NotEqual(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return r.compare(attr, "<>", value)
}

func (r *Renderer) NotEqualAttribute(left, right criteria.Attribute) (criteria.Predicate, error) {
	return r.compareColumns(left, "<>", right)
}

func (r *Renderer) In(attr criteria.Attribute, values []any) (criteria.Predicate, error) {
	return r.membership(attr, "IN", values)
}

func (r *Renderer) NotIn(attr criteria.Attribute, values []any) (criteria.Predicate, error) {
	return r.membership(attr, "NOT IN", values)
}

func (r *Renderer) IsNull(attr criteria.Attribute) (criteria.Predicate, error) {
	col, err := asColumn(attr)
	if err != nil {
		return nil, err
	}
	return Fragment{text: []string{fmt.Sprintf("(%s IS NULL)", col)}}, nil
}

func (r *Renderer) IsNotNull(attr criteria.Attribute) (criteria.Predicate, error) {
	col, err := asColumn(attr)
	if err != nil {
		return nil, err
	}
	return Fragment{text: []string{fmt.Sprintf("(%s IS NOT NULL)", col)}}, nil
}

func (r *Renderer) Like(attr criteria.Attribute, pattern string) (criteria.Predicate, error) {
	return r.like(attr, "LIKE", pattern)
}

func (r *Renderer) NotLike(attr criteria.Attribute, pattern string) (criteria.Predicate, error) {
	return r.like(attr, "NOT LIKE", pattern)
}

func (r *Renderer) LessThan(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return r.compare(attr, "<", value)
}

func (r *Renderer) LessThanOrEqualTo(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return r.compare(attr, "<=", value)
}

func (r *Renderer) GreaterThan(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return r.compare(attr, ">", value)
}

func (r *Renderer) GreaterThanOrEqualTo(attr criteria.Attribute, value any) (criteria.Predicate, error) {
	return r.compare(attr, ">=", value)
}

func (r *Renderer) Between(attr criteria.Attribute, lower, upper any) (criteria.Predicate, error) {
	col, err := asColumn(attr)
	if err != nil {
		return nil, err
	}
	w := &fragmentWriter{}
	w.write(fmt.Sprintf("(%s BETWEEN ", col)).
		bind(r.dialect.bind(lower)).
		write(" AND ").
		bind(r.dialect.bind(upper)).
		write(")")
	return w.done(), nil
}

func (r *Renderer) And(operands ...criteria.Predicate) (criteria.Predicate, error) {
	return r.junction(criteria.ConnectorAnd, r.dialect.True, operands)
}

func (r *Renderer) Or(operands ...criteria.Predicate) (criteria.Predicate, error) {
	return r.junction(criteria.ConnectorOr, r.dialect.False, operands)
}

func (r *Renderer) compare(attr criteria.Attribute, op string, value any) (criteria.Predicate, error) {
	col, err := asColumn(attr)
	if err != nil {
		return nil, err
	}
	w := &fragmentWriter{}
	w.write(fmt.Sprintf("(%s %s ", col, op)).bind(r.dialect.bind(value)).write(")")
	return w.done(), nil
}

func (r *Renderer) compareColumns(left criteria.Attribute, op string, right criteria.Attribute) (criteria.Predicate, error) {
	l, err := asColumn(left)
	if err != nil {
		return nil, err
	}
	rc, err := asColumn(right)
	if err != nil {
		return nil, err
	}
	return Fragment{text: []string{fmt.Sprintf("(%s %s %s)", l, op, rc)}}, nil
}

func (r *Renderer) membership(attr criteria.Attribute, op string, values []any) (criteria.Predicate, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s requires at least one value", criteria.ErrInvalidPredicate, op)
	}
	col, err := asColumn(attr)
	if err != nil {
		return nil, err
	}
	w := &fragmentWriter{}
	w.write(fmt.Sprintf("(%s %s (", col, op))
	for i, v := range values {
		if i > 0 {
			w.write(", ")
		}
		w.bind(r.dialect.bind(v))
	}
	w.write("))")
	return w.done(), nil
}

func (r *Renderer) like(attr criteria.Attribute, op, pattern string) (criteria.Predicate, error) {
	col, err := asColumn(attr)
	if err != nil {
		return nil, err
	}
	w := &fragmentWriter{}
	w.write(fmt.Sprintf("(%s %s ", col, op)).bind(r.dialect.bind(pattern)).write(r.dialect.LikeEscape + ")")
	return w.done(), nil
}

func (r *Renderer) junction(connector criteria.Connector, empty string, operands []criteria.Predicate) (criteria.Predicate, error) {
	switch len(operands) {
	case 0:
		return Fragment{text: []string{empty}}, nil
	case 1:
		return asFragment(operands[0])
	}
	w := &fragmentWriter{}
	w.write("(")
	for i, operand := range operands {
		frag, err := asFragment(operand)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			w.write(" " + string(connector) + " ")
		}
		w.fragment(frag)
	}
	w.write(")")
	return w.done(), nil
}

func asColumn(attr criteria.Attribute) (column, error) {
	col, ok := attr.(column)
	if !ok || col == "" {
		return "", fmt.Errorf("%w: attribute %v (%T) was not produced by a SQL renderer", criteria.ErrInvalidPredicate, attr, attr)
	}
	return col, nil
}

func asFragment(p criteria.Predicate) (Fragment, error) {
	frag, ok := p.(Fragment)
	if !ok {
		return Fragment{}, fmt.Errorf("%w: predicate %T was not produced by a SQL renderer", criteria.ErrInvalidPredicate, p)
	}
	return frag, nil
}

func normalizeStart(startArg int) int {
	if startArg < 1 {
		return 1
	}
	return startArg
}
