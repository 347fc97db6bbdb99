package mssql

import (
	"fmt"
	"testing"

	mssqldb "github.com/microsoft/go-mssqldb"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabisonia/go-specification/criteria"
)

type orderRow struct{}

func (orderRow) GetPid() string { return "" }
func (orderRow) GetOrderNo() int64 { return 0 }
func (orderRow) GetOrderItemName() string { return "" }

var (
	pid           = criteria.Getter(orderRow.GetPid)
	orderNo       = criteria.Getter(orderRow.GetOrderNo)
	orderItemName = criteria.Getter(orderRow.GetOrderItemName)
)

func demoSpec() *criteria.Specification[orderRow] {
	return criteria.Query[orderRow]().
		Eq(pid, "1").
		AndOr(criteria.Query[orderRow]().
			Eq(orderItemName, "Vincent").
			Eq(orderNo, 2).
			Build()).
		Build()
}

func TestCompileDemoSpecification(t *testing.T) {
	opts := DefaultOptions()
	opts.Table = "ipn_order"
	b, err := NewBackend(opts)
	require.NoError(t, err)

	sql, args, next, err := b.Compile(demoSpec(), 1)
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "demo", []byte(fmt.Sprintf("%s\n-- args: %v\n-- next: %d\n", sql, args, next)))
}

func TestVarCharBinding(t *testing.T) {
	name := "Vincent"
	var missing *string

	b, err := NewBackend(Options{VarChar: true})
	require.NoError(t, err)

	spec := criteria.Query[orderRow]().
		In(pid, "1", "2").
		Eq(orderItemName, &name).
		Eq(orderItemName, missing).
		Eq(orderNo, 2).
		Build()

	_, args, _, err := b.Compile(spec, 1)
	require.NoError(t, err)
	assert.Equal(t, []any{mssqldb.VarChar("1"), mssqldb.VarChar("2"), mssqldb.VarChar("Vincent"), nil, 2}, args)
}

func TestStringsStayUnicodeByDefault(t *testing.T) {
	b, err := NewBackend(DefaultOptions())
	require.NoError(t, err)

	_, args, _, err := b.Compile(criteria.Query[orderRow]().Eq(pid, "1").Build(), 1)
	require.NoError(t, err)
	assert.Equal(t, []any{"1"}, args)
}

func TestLikeEscapesAndConstants(t *testing.T) {
	b, err := NewBackend(DefaultOptions())
	require.NoError(t, err)

	sql, _, _, err := b.Compile(criteria.Query[orderRow]().NotLike(orderItemName, `50\%`).Build(), 1)
	require.NoError(t, err)
	assert.Equal(t, `([order_item_name] NOT LIKE @p1 ESCAPE '\')`, sql)

	sql, _, _, err = b.Compile(criteria.Query[orderRow]().Build(), 1)
	require.NoError(t, err)
	assert.Equal(t, "(1=1)", sql)
}

func TestOptionsShareColumnMapping(t *testing.T) {
	opts := DefaultOptions()
	opts.Table = "o"
	opts.Columns = map[string]string{"orderItemName": "item"}
	opts.VarChar = true

	b, err := NewBackend(opts)
	require.NoError(t, err)

	sql, args, _, err := b.Compile(criteria.Query[orderRow]().Eq(orderItemName, "x").Eq(orderNo, 1).Build(), 1)
	require.NoError(t, err)
	assert.Equal(t, `(([o].[item] = @p1) AND ([o].[order_no] = @p2))`, sql)
	assert.Equal(t, []any{mssqldb.VarChar("x"), 1}, args)

	_, err = NewBackend(Options{ColumnOptions: ColumnOptions{Strict: true}})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestQuotedIdentifiers(t *testing.T) {
	b, err := NewBackend(Options{ColumnOptions: ColumnOptions{
		Columns: map[string]string{"pid": "order]id"},
		Strict:  true,
	}})
	require.NoError(t, err)
	assert.Equal(t, "[a]]b]", b.Dialect().QuoteIdent("a]b"))

	sql, _, _, err := b.Compile(criteria.Query[orderRow]().IsNotNull(pid).Build(), 1)
	require.NoError(t, err)
	assert.Equal(t, `([order]]id] IS NOT NULL)`, sql)

	_, _, _, err = b.Compile(criteria.Query[orderRow]().IsNotNull(orderNo).Build(), 1)
	assert.ErrorIs(t, err, criteria.ErrUnknownField)
}
