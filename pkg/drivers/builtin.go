// Package drivers collects the built-in dialect drivers.
package drivers

import (
	"github.com/leapstack-labs/leapmeta/pkg/driver"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/duckdb"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/mysql"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/postgres"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/sqlite"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/sqlserver"
)

// Builtin returns a fresh instance of every built-in driver.
func Builtin() []driver.Driver {
	return []driver.Driver{
		postgres.New(),
		mysql.New(),
		sqlite.New(),
		duckdb.New(),
		sqlserver.New(),
	}
}

// NewRegistry returns a registry holding the built-in drivers plus any extra
// drivers supplied by the caller.
func NewRegistry(extra ...driver.Driver) (*driver.Registry, error) {
	return driver.NewRegistry(append(Builtin(), extra...)...)
}

// MustRegistry is like NewRegistry but panics on a duplicate code.
func MustRegistry() *driver.Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}
