package persistence

import (
	"context"

	"github.com/rankmath/repair-action-scheduler/internal/domain/models"
	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
)

// TableExists checks INFORMATION_SCHEMA.TABLES for the exact prefixed table name
func (r *SchemaRepository) TableExists(ctx context.Context, spec schema.TableSpec) (bool, error) {
	tableName := spec.TableName(r.prefix)
	return r.count(ctx, "table exists check", tableName, QueryTableExists, tableName)
}

// HasPrimaryKey checks INFORMATION_SCHEMA for COLUMN_KEY = 'PRI' on the primary column
func (r *SchemaRepository) HasPrimaryKey(ctx context.Context, spec schema.TableSpec) (bool, error) {
	tableName := spec.TableName(r.prefix)
	return r.count(ctx, "primary key check", tableName, QueryHasPrimaryKey, tableName, spec.PrimaryColumn)
}

// HasAutoIncrement checks INFORMATION_SCHEMA for auto_increment in EXTRA on the primary column
func (r *SchemaRepository) HasAutoIncrement(ctx context.Context, spec schema.TableSpec) (bool, error) {
	tableName := spec.TableName(r.prefix)
	return r.count(ctx, "auto_increment check", tableName, QueryHasAutoIncrement, tableName, spec.PrimaryColumn)
}

// Inspect runs all three checks. PK and AUTO_INCREMENT are only queried for existing tables.
func (r *SchemaRepository) Inspect(ctx context.Context, spec schema.TableSpec) (models.Inspection, error) {
	var result models.Inspection

	exists, err := r.TableExists(ctx, spec)
	if err != nil {
		return result, err
	}
	result.Exists = exists
	if !exists {
		return result, nil
	}

	if result.HasPrimaryKey, err = r.HasPrimaryKey(ctx, spec); err != nil {
		return result, err
	}
	if result.HasAutoIncrement, err = r.HasAutoIncrement(ctx, spec); err != nil {
		return result, err
	}
	return result, nil
}

// count runs a COUNT(*) metadata query and reports whether it matched anything.
func (r *SchemaRepository) count(ctx context.Context, op, tableName, query string, args ...any) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, apperrors.NewDatabaseError(op, tableName, err)
	}
	return n > 0, nil
}
