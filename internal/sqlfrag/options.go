package sqlfrag

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidOptions is returned when renderer options fail validation.
var ErrInvalidOptions = errors.New("sqlfrag: invalid options")

// Options configures how field identifiers become SQL columns.
type Options struct {
	// Columns maps field identifiers to column names.
	Columns map[string]string
	// Strict rejects identifiers missing from Columns instead of mapping them.
	Strict bool
	// NameMapper derives a column name from an unmapped identifier.
	NameMapper func(string) string
	// Table qualifies every column when set.
	Table string
	Logger *slog.Logger
}

// DefaultOptions maps identifiers to snake_case columns and discards logs.
func DefaultOptions() Options {
	return Options{
		NameMapper: SnakeCase,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

func (o Options) withDefaults() Options {
	if o.NameMapper == nil {
		o.NameMapper = SnakeCase
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	o.Table = strings.TrimSpace(o.Table)
	if len(o.Columns) > 0 {
		columns := make(map[string]string, len(o.Columns))
		for field, column := range o.Columns {
			columns[strings.TrimSpace(field)] = strings.TrimSpace(column)
		}
		o.Columns = columns
	}
	return o
}

func (o Options) validate() error {
	for field, column := range o.Columns {
		if field == "" {
			return invalidOptions("column mapping has an empty field identifier")
		}
		if column == "" {
			return invalidOptions("field %q maps to an empty column", field)
		}
	}
	if o.Strict && len(o.Columns) == 0 {
		return invalidOptions("strict mode requires column mappings")
	}
	return nil
}

func invalidOptions(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
}

// SnakeCase maps an identifier such as orderItemName or userID to
// order_item_name or user_id.
func SnakeCase(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(r)
	}
	return cases.Lower(language.Und).String(sb.String())
}
