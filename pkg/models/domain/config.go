package domain

import "fmt"

type StorageDriver string

const (
	StorageDriverDuckDB StorageDriver = "duckdb"
	StorageDriverSQLite StorageDriver = "sqlite"
)

func (d StorageDriver) Valid() bool {
	return d == StorageDriverDuckDB || d == StorageDriverSQLite
}

// StorageProfile is a named connection to a compliance database.
type StorageProfile struct {
	Name   string
	Driver StorageDriver
	Path   string
}

func (p StorageProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Driver, p.Name)
}
