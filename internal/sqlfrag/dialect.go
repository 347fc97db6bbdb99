package sqlfrag

import "strings"

// Dialect describes how one SQL engine spells placeholders, identifiers and
// constant truth values.
type Dialect struct {
	Name        string
	Placeholder func(n int) string
	QuoteIdent  func(ident string) string
	True        string
	False       string
	// LikeEscape follows LIKE patterns so that \ escapes % and _.
	LikeEscape string
	// Bind converts a value before it is bound. Nil leaves values as-is.
	Bind func(v any) any
}

func (d Dialect) validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return invalidOptions("dialect name is empty")
	case d.Placeholder == nil:
		return invalidOptions("dialect %s has no placeholder func", d.Name)
	case d.QuoteIdent == nil:
		return invalidOptions("dialect %s has no identifier quoting", d.Name)
	case d.True == "" || d.False == "":
		return invalidOptions("dialect %s has no boolean literals", d.Name)
	}
	return nil
}

func (d Dialect) bind(v any) any {
	if d.Bind == nil {
		return v
	}
	return d.Bind(v)
}

// QuoteDouble quotes an identifier with double quotes, doubling embedded ones.
func QuoteDouble(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// QuoteBracket quotes an identifier with square brackets, doubling embedded ].
func QuoteBracket(ident string) string {
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
}
