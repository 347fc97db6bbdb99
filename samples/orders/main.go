package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabisonia/go-specification/backends/memory"
	"github.com/gabisonia/go-specification/backends/postgres"
	"github.com/gabisonia/go-specification/criteria"
)

const defaultTable = "ipn_order"

func main() {
	itemName := flag.String("item", "", "Optional order item name")
	orderNo := flag.Int64("no", 0, "Optional order number (0 means not given)")
	dsn := flag.String("dsn", envOrDefault("PG_DSN", ""), "Postgres DSN; when set the query also runs against "+defaultTable)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cond := OrderQueryCondition{}
	if *itemName != "" {
		cond.OrderItemName = itemName
	}
	if *orderNo != 0 {
		cond.OrderNo = orderNo
	}

	orders := fakeOrders(time.Now().UTC())
	included := []string{orders[0].pid, orders[1].pid, orders[2].pid}
	excluded := []string{orders[3].pid}
	since := orders[0].createDate.Add(-time.Hour)

	spec := demoSpecification(cond, included, excluded, since)

	logical, err := criteria.Explain(spec)
	if err != nil {
		exitf("explain: %v", err)
	}
	fmt.Println("logical:", logical)

	opts := postgres.DefaultOptions()
	opts.Logger = logger
	backend, err := postgres.NewBackend(opts)
	if err != nil {
		exitf("postgres backend: %v", err)
	}
	where, args, _, err := backend.Compile(spec, 1)
	if err != nil {
		exitf("render where: %v", err)
	}
	fmt.Println("postgres:", where)
	fmt.Println("args:", args)

	matched, err := memory.Filter(spec, orders)
	if err != nil {
		exitf("filter in memory: %v", err)
	}
	fmt.Printf("in-memory matches (%d of %d):\n", len(matched), len(orders))
	for _, o := range matched {
		fmt.Printf("  %s  #%d  %s\n", o.pid, o.orderNo, o.orderItemName)
	}

	if strings.TrimSpace(*dsn) == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := queryPostgres(ctx, *dsn, backend, spec)
	if err != nil {
		exitf("query postgres: %v", err)
	}
	fmt.Printf("postgres matches (%d):\n", len(rows))
	for _, o := range rows {
		fmt.Printf("  %s  #%d  %s\n", o.pid, o.orderNo, o.orderItemName)
	}
}

// demoSpecification mirrors a typical order search: exact filters that
// only apply when given, an alternative group that is left out when none of
// its inputs are given, membership and a date bound.
func demoSpecification(cond OrderQueryCondition, included, excluded []string, since time.Time) *criteria.Specification[Order] {
	return criteria.Query[Order]().
		EqIf(true, OrderFields.OrderNo, cond.OrderNo).
		EqIf(true, OrderFields.OrderItemName, cond.OrderItemName).
		AndOrIf(true, criteria.Query[Order]().
			EqIf(true, OrderFields.Pid, cond.Pid).
			EqIf(true, OrderFields.OrderItemName, cond.OrderItemName).
			Build()).
		In(OrderFields.Pid, criteria.Values(included)...).
		NotIn(OrderFields.Pid, criteria.Values(excluded)...).
		Gt(criteria.Getter(Order.GetCreateDate), since).
		EqField(OrderFields.OrderNo, OrderFields.OrderNo).
		Build()
}

func queryPostgres(ctx context.Context, dsn string, backend *postgres.Backend, spec *criteria.Specification[Order]) ([]Order, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	where, args, err := backend.CompileNamed(spec)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT pid, order_no, order_item_name, create_date FROM %s WHERE %s ORDER BY create_date`,
		backend.Dialect().QuoteIdent(defaultTable), where)

	rows, err := pool.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Order, error) {
		var o Order
		err := row.Scan(&o.pid, &o.orderNo, &o.orderItemName, &o.createDate)
		return o, err
	})
}

func fakeOrders(now time.Time) []Order {
	names := []string{"Vincent", "Aspirin 100mg", "Saline 500ml", "Vincent", "Ibuprofen"}
	orders := make([]Order, 0, len(names))
	for i, name := range names {
		orders = append(orders, Order{
			pid:           uuid.NewString(),
			orderNo:       int64(i + 1),
			orderItemName: name,
			createDate:    now.Add(time.Duration(i) * time.Hour),
		})
	}
	return orders
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
