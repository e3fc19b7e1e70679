package ports

import (
	"context"

	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
)

// TableInspector reads structural metadata. All methods are read-only and
// return false (not an error) when the table or column does not exist.
type TableInspector interface {
	TableExists(ctx context.Context, spec schema.TableSpec) (bool, error)
	HasPrimaryKey(ctx context.Context, spec schema.TableSpec) (bool, error)
	HasAutoIncrement(ctx context.Context, spec schema.TableSpec) (bool, error)
}

// TableDDL executes the physical schema changes.
type TableDDL interface {
	// CreateTable runs the table's CREATE TABLE and returns the physical table name.
	CreateTable(ctx context.Context, spec schema.TableSpec) (string, error)

	// RenameTable renames the live table to its archive name and returns both physical names.
	RenameTable(ctx context.Context, spec schema.TableSpec, suffix string) (from, to string, err error)
}
