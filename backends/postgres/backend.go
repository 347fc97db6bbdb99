// Package postgres renders specifications into PostgreSQL WHERE fragments
// with $n placeholders, ready for pgx or database/sql.
package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gabisonia/go-specification/criteria"
	"github.com/gabisonia/go-specification/internal/sqlfrag"
)

// Options configures column mapping. See DefaultOptions.
type Options = sqlfrag.Options

// ErrInvalidOptions is returned by NewBackend for invalid options.
var ErrInvalidOptions = sqlfrag.ErrInvalidOptions

// Dialect spells placeholders as $n and identifiers as "ident".
var Dialect = sqlfrag.Dialect{
	Name:        "postgres",
	Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	QuoteIdent:  sqlfrag.QuoteDouble,
	True:        "TRUE",
	False:       "FALSE",
}

// DefaultOptions maps field identifiers to snake_case columns.
func DefaultOptions() Options {
	return sqlfrag.DefaultOptions()
}

// Backend is a criteria.Backend producing PostgreSQL fragments.
type Backend struct {
	*sqlfrag.Renderer
}

// NewBackend creates a PostgreSQL backend.
func NewBackend(opts Options) (*Backend, error) {
	r, err := sqlfrag.New(Dialect, opts)
	if err != nil {
		return nil, err
	}
	return &Backend{Renderer: r}, nil
}

// NamedWhere renders p with @p1, @p2, ... placeholders and returns the
// values as pgx.NamedArgs, for use with pgx's named argument rewriting.
func (b *Backend) NamedWhere(p criteria.Predicate) (string, pgx.NamedArgs, error) {
	sql, args, _, err := b.RenderWith(p, namedPlaceholder, 1)
	if err != nil {
		return "", nil, err
	}
	named := make(pgx.NamedArgs, len(args))
	for i, arg := range args {
		named[argName(i+1)] = arg
	}
	return sql, named, nil
}

// CompileNamed compiles spec and renders it with NamedWhere.
func (b *Backend) CompileNamed(spec criteria.Compilable) (string, pgx.NamedArgs, error) {
	pred, err := criteria.Compile(spec, b)
	if err != nil {
		return "", nil, err
	}
	return b.NamedWhere(pred)
}

func namedPlaceholder(n int) string {
	return "@" + argName(n)
}

func argName(n int) string {
	return fmt.Sprintf("p%d", n)
}
