// Package mssql renders specifications into SQL Server WHERE fragments
// with @pN placeholders, matching go-mssqldb's positional parameters.
package mssql

import (
	"fmt"

	mssqldb "github.com/microsoft/go-mssqldb"

	"github.com/gabisonia/go-specification/internal/sqlfrag"
)

// ErrInvalidOptions is returned by NewBackend for invalid options.
var ErrInvalidOptions = sqlfrag.ErrInvalidOptions

// ColumnOptions configures column mapping, as in the other SQL backends.
type ColumnOptions = sqlfrag.Options

// Options configures column mapping and parameter binding.
type Options struct {
	ColumnOptions
	// VarChar binds Go strings as VARCHAR instead of NVARCHAR.
	VarChar bool
}

// DefaultOptions maps field identifiers to snake_case columns.
func DefaultOptions() Options {
	return Options{ColumnOptions: sqlfrag.DefaultOptions()}
}

// Backend is a criteria.Backend producing SQL Server fragments.
type Backend struct {
	*sqlfrag.Renderer
}

// NewBackend creates a SQL Server backend.
func NewBackend(opts Options) (*Backend, error) {
	r, err := sqlfrag.New(dialect(opts.VarChar), opts.ColumnOptions)
	if err != nil {
		return nil, err
	}
	return &Backend{Renderer: r}, nil
}

func dialect(varChar bool) sqlfrag.Dialect {
	d := sqlfrag.Dialect{
		Name:        "mssql",
		Placeholder: func(n int) string { return fmt.Sprintf("@p%d", n) },
		QuoteIdent:  sqlfrag.QuoteBracket,
		True:        "(1=1)",
		False:       "(1=0)",
		LikeEscape:  ` ESCAPE '\'`,
	}
	if varChar {
		d.Bind = bindVarChar
	}
	return d
}

func bindVarChar(v any) any {
	switch s := v.(type) {
	case string:
		return mssqldb.VarChar(s)
	case *string:
		if s == nil {
			return nil
		}
		return mssqldb.VarChar(*s)
	default:
		return v
	}
}
