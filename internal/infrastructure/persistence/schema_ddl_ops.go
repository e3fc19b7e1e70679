package persistence

import (
	"context"
	"fmt"
	"log"

	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
)

// CreateTable executes the catalog DDL for spec.
// A table that already exists (e.g. created concurrently) is reported, not ignored.
func (r *SchemaRepository) CreateTable(ctx context.Context, spec schema.TableSpec) (string, error) {
	tableName := spec.TableName(r.prefix)
	if !ValidIdentifierPart(tableName) {
		return "", apperrors.NewValidationError("table", fmt.Sprintf("invalid table name '%s'", tableName))
	}
	log.Printf("📐 Creating table: %s", tableName)

	ddl := spec.DDL(r.prefix, r.charsetCollate)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		log.Printf("❌ Failed to create table %s: %v", tableName, err)
		return "", classifyDDLError("create table", tableName, err)
	}
	log.Printf("✅ DDL executed successfully for %s", tableName)

	return tableName, nil
}

// RenameTable moves the live table out of the way to <prefix><name><suffix>.
// The old data is kept for inspection; nothing is dropped.
func (r *SchemaRepository) RenameTable(ctx context.Context, spec schema.TableSpec, suffix string) (string, string, error) {
	from := spec.TableName(r.prefix)
	to := r.prefix + spec.ArchiveName(suffix)

	if suffix == "" || !ValidIdentifierPart(suffix) {
		return "", "", apperrors.NewValidationError("suffix", fmt.Sprintf("invalid rename suffix '%s'", suffix))
	}
	if !ValidIdentifierPart(from) {
		return "", "", apperrors.NewValidationError("table", fmt.Sprintf("invalid table name '%s'", from))
	}

	ddl := fmt.Sprintf(DDLRenameTable, from, to)
	log.Printf("   🏁 Executing DDL: %s", ddl)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		log.Printf("   ❌ Rename failed: %v", err)
		return "", "", classifyDDLError("rename table", to, err)
	}
	log.Printf("   ✅ Renamed %s to %s", from, to)

	return from, to, nil
}
