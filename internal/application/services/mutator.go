package services

import (
	"context"
	"fmt"

	"github.com/rankmath/repair-action-scheduler/internal/domain/models"
	"github.com/rankmath/repair-action-scheduler/internal/domain/ports"
	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
)

// TableMutator applies schema changes and appends one audit entry per change.
// Entries use logical table names; a failed change appends nothing.
type TableMutator struct {
	ddl ports.TableDDL
}

// NewTableMutator creates a TableMutator.
func NewTableMutator(ddl ports.TableDDL) *TableMutator {
	return &TableMutator{ddl: ddl}
}

// CreateTable creates spec's table and records "Created table: <name>".
func (m *TableMutator) CreateTable(ctx context.Context, spec schema.TableSpec, audit *models.AuditLog) error {
	if _, err := m.ddl.CreateTable(ctx, spec); err != nil {
		return err
	}
	audit.Action(fmt.Sprintf(MsgCreatedTable, spec.Name))
	return nil
}

// RenameTable moves spec's table aside and records "Renamed table: <name> to <name><suffix>".
func (m *TableMutator) RenameTable(ctx context.Context, spec schema.TableSpec, suffix string, audit *models.AuditLog) error {
	if _, _, err := m.ddl.RenameTable(ctx, spec, suffix); err != nil {
		return err
	}
	audit.Action(fmt.Sprintf(MsgRenamedTable, spec.Name, spec.ArchiveName(suffix)))
	return nil
}

// ResetTable renames then recreates spec's table.
func (m *TableMutator) ResetTable(ctx context.Context, spec schema.TableSpec, suffix string, audit *models.AuditLog) error {
	if err := m.RenameTable(ctx, spec, suffix, audit); err != nil {
		return err
	}
	return m.CreateTable(ctx, spec, audit)
}
