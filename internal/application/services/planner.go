package services

import (
	"github.com/rankmath/repair-action-scheduler/internal/domain/models"
	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
)

// Planner turns per-table inspections into repair decisions.
// It holds no database handle; callers feed it what they observed.
type Planner struct {
	corrupt []string
}

// NewPlanner creates a Planner for one run.
func NewPlanner() *Planner {
	return &Planner{}
}

// NeedsCreate reports whether a table must be created from its definition.
func (p *Planner) NeedsCreate(ins models.Inspection) bool {
	return !ins.Exists
}

// Observe records the post-creation inspection of one table.
// Every table is observed, so CorruptTables lists all offenders, not just the first.
func (p *Planner) Observe(spec schema.TableSpec, ins models.Inspection) {
	if !ins.Sound() {
		p.corrupt = append(p.corrupt, spec.Name)
	}
}

// ResetRequired reports whether any observed table lacks a PRIMARY KEY or
// AUTO_INCREMENT on its primary identifier column.
func (p *Planner) ResetRequired() bool {
	return len(p.corrupt) > 0
}

// CorruptTables returns the logical names of the tables that triggered a reset.
func (p *Planner) CorruptTables() []string {
	out := make([]string, len(p.corrupt))
	copy(out, p.corrupt)
	return out
}

// ResetTables returns the tables to rename and recreate.
// A reset always covers the whole catalog, in catalog order.
func (p *Planner) ResetTables() []schema.TableSpec {
	if !p.ResetRequired() {
		return nil
	}
	return schema.Catalog()
}
