package testutil

import "github.com/leapstack-labs/leapmeta/pkg/core"

// OrdersTable returns a fresh sales.orders table covering sizes, defaults,
// sequences and comments with quotes.
func OrdersTable() *core.Table {
	return &core.Table{
		Schema:  "sales",
		Name:    "orders",
		Type:    "BASE TABLE",
		Comment: "customer orders",
		Columns: []core.Column{
			{Name: "id", Type: "int8", Position: 1, PrimaryKey: true, AutoIncrement: true,
				DefaultValue: "nextval('orders_id_seq'::regclass)"},
			{Name: "code", Type: "varchar", Length: 32, Position: 2, Comment: "order's code"},
			{Name: "amount", Type: "numeric", Precision: 12, Scale: 2, Position: 3, Nullable: true, DefaultValue: "0"},
			{Name: "note", Type: "text", Position: 4, Nullable: true},
		},
	}
}
