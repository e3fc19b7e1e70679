package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
)

// OptionsRepository is a SettingsStore backed by the host's <prefix>options table.
type OptionsRepository struct {
	db    *sqlx.DB
	table string
}

// NewOptionsRepository wraps db; table is the unprefixed options table name.
func NewOptionsRepository(db *sql.DB, prefix, table string) *OptionsRepository {
	if table == "" {
		table = DefaultOptionsTable
	}
	return &OptionsRepository{
		db:    sqlx.NewDb(db, "mysql"),
		table: prefix + table,
	}
}

// Table returns the physical options table name.
func (r *OptionsRepository) Table() string {
	return r.table
}

// Get retrieves an option value
func (r *OptionsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf("SELECT %s FROM `%s` WHERE %s = ? LIMIT 1", ColumnOptionValue, r.table, ColumnOptionName)

	var value string
	if err := r.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, apperrors.NewDatabaseError("get option "+key, r.table, err)
	}
	return value, true, nil
}

// Set creates or replaces an option value
func (r *OptionsRepository) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf("INSERT INTO `%s` (%s, %s, %s) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE %s = VALUES(%s)",
		r.table, ColumnOptionName, ColumnOptionValue, ColumnAutoload, ColumnOptionValue, ColumnOptionValue)

	if _, err := r.db.ExecContext(ctx, query, key, value, AutoloadNo); err != nil {
		return apperrors.NewDatabaseError("set option "+key, r.table, err)
	}
	return nil
}

// Delete removes an option
func (r *OptionsRepository) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM `%s` WHERE %s = ?", r.table, ColumnOptionName)

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return apperrors.NewDatabaseError("delete option "+key, r.table, err)
	}
	return nil
}
