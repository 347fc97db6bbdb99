package main

import "time"

//go:generate go run github.com/gabisonia/go-specification/cmd/fieldgen --type Order --output order_fields_gen.go

// Order is a row of the ipn_order table.
type Order struct {
	pid           string
	orderNo       int64
	orderItemName string
	createDate    time.Time
}

func (o Order) GetPid() string { return o.pid }

func (o Order) GetOrderNo() int64 { return o.orderNo }

func (o Order) GetOrderItemName() string { return o.orderItemName }

func (o Order) GetCreateDate() time.Time { return o.createDate }

// OrderQueryCondition carries optional search inputs; nil means not given.
type OrderQueryCondition struct {
	Pid           *string
	OrderItemName *string
	OrderNo       *int64
}
