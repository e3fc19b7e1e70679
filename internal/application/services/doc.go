// Package services provides the repair logic for the Action Scheduler tables.
//
// This package contains:
//   - Deciding which tables need creating and whether a full reset is required (Planner)
//   - Executing creates and renames while recording an audit trail (TableMutator)
//   - Gating the run on the stored schema version (VersionGate)
//   - Running the one-shot repair lifecycle and its deferred notice (RepairService)
//
// Services depend only on the interfaces in internal/domain/ports.
package services
