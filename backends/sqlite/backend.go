// Package sqlite renders specifications into SQLite WHERE fragments with
// ? placeholders.
package sqlite

import (
	"github.com/gabisonia/go-specification/internal/sqlfrag"
)

// Options configures column mapping. See DefaultOptions.
type Options = sqlfrag.Options

// ErrInvalidOptions is returned by NewBackend for invalid options.
var ErrInvalidOptions = sqlfrag.ErrInvalidOptions

// Dialect spells every placeholder as ? and identifiers as "ident". SQLite
// has no boolean type, so constant truth renders as 1 and 0.
var Dialect = sqlfrag.Dialect{
	Name:        "sqlite",
	Placeholder: func(int) string { return "?" },
	QuoteIdent:  sqlfrag.QuoteDouble,
	True:        "1",
	False:       "0",
	LikeEscape:  ` ESCAPE '\'`,
}

// DefaultOptions maps field identifiers to snake_case columns.
func DefaultOptions() Options {
	return sqlfrag.DefaultOptions()
}

// Backend is a criteria.Backend producing SQLite fragments.
type Backend struct {
	*sqlfrag.Renderer
}

// NewBackend creates a SQLite backend.
func NewBackend(opts Options) (*Backend, error) {
	r, err := sqlfrag.New(Dialect, opts)
	if err != nil {
		return nil, err
	}
	return &Backend{Renderer: r}, nil
}
