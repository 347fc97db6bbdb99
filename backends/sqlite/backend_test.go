package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
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

func openOrders(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE ipn_order (
		pid TEXT PRIMARY KEY,
		order_no INTEGER,
		order_item_name TEXT
	)`)
	require.NoError(t, err)

	rows := []struct {
		pid  string
		no   int64
		name any
	}{
		{"1", 1, "Vincent"},
		{"2", 2, "Ho"},
		{"3", 2, nil},
		{"4", 4, "50% off"},
		{"a", 9, "Vinyl"},
	}
	for _, row := range rows {
		_, err := db.Exec(`INSERT INTO ipn_order (pid, order_no, order_item_name) VALUES (?, ?, ?)`, row.pid, row.no, row.name)
		require.NoError(t, err)
	}
	return db
}

func selectPids(t *testing.T, db *sql.DB, where string, args []any) []string {
	t.Helper()

	rows, err := db.Query(`SELECT pid FROM ipn_order WHERE `+where+` ORDER BY pid`, args...)
	require.NoError(t, err)
	defer rows.Close()

	var pids []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		pids = append(pids, id)
	}
	require.NoError(t, rows.Err())
	return pids
}

func TestRenderPlaceholders(t *testing.T) {
	b, err := NewBackend(DefaultOptions())
	require.NoError(t, err)

	spec := criteria.Query[orderRow]().
		Eq(pid, "1").
		AndOr(criteria.Query[orderRow]().Eq(orderItemName, "Vincent").Eq(orderNo, 2).Build()).
		Build()

	where, args, next, err := b.Compile(spec, 1)
	require.NoError(t, err)
	assert.Equal(t, `(("pid" = ?) AND (("order_item_name" = ?) OR ("order_no" = ?)))`, where)
	assert.Equal(t, []any{"1", "Vincent", 2}, args)
	assert.Equal(t, 4, next)
}

func TestExecuteAgainstSQLite(t *testing.T) {
	db := openOrders(t)
	b, err := NewBackend(DefaultOptions())
	require.NoError(t, err)

	tests := []struct {
		name string
		spec *criteria.Specification[orderRow]
		want []string
	}{
		{
			name: "demo",
			spec: criteria.Query[orderRow]().
				In(pid, "1", "2", "3").
				AndOr(criteria.Query[orderRow]().Eq(orderItemName, "Vincent").Eq(orderNo, 2).Build()).
				Build(),
			want: []string{"1", "2", "3"},
		},
		{
			name: "not in",
			spec: criteria.Query[orderRow]().NotIn(pid, criteria.Values([]string{"1", "2", "3"})...).Build(),
			want: []string{"4", "a"},
		},
		{
			name: "escaped like",
			spec: criteria.Query[orderRow]().Like(orderItemName, `50\%%`).Build(),
			want: []string{"4"},
		},
		{
			name: "prefix like",
			spec: criteria.Query[orderRow]().Like(orderItemName, "Vin%").NotLike(orderItemName, "%yl").Build(),
			want: []string{"1"},
		},
		{
			name: "null",
			spec: criteria.Query[orderRow]().IsNull(orderItemName).Build(),
			want: []string{"3"},
		},
		{
			name: "between",
			spec: criteria.Query[orderRow]().Between(orderNo, 2, 4).IsNotNull(orderItemName).Build(),
			want: []string{"2", "4"},
		},
		{
			name: "empty",
			spec: criteria.Query[orderRow]().Build(),
			want: []string{"1", "2", "3", "4", "a"},
		},
		{
			name: "empty alternatives",
			spec: criteria.Query[orderRow]().
				Ge(orderNo, 4).
				AndOr(criteria.Query[orderRow]().EqIf(true, orderItemName, "").Build()).
				Build(),
			want: nil,
		},
		{
			name: "optional empty alternatives",
			spec: criteria.Query[orderRow]().
				Ge(orderNo, 4).
				AndOrIf(true, criteria.Query[orderRow]().EqIf(true, orderItemName, "").Build()).
				Build(),
			want: []string{"4", "a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args, _, err := b.Compile(tt.spec, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, selectPids(t, db, where, args))
		})
	}
}
