package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rankmath/repair-action-scheduler/internal/domain"
	"github.com/rankmath/repair-action-scheduler/internal/domain/models"
	"github.com/rankmath/repair-action-scheduler/internal/domain/ports"
	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
	"github.com/rankmath/repair-action-scheduler/pkg/config"
)

// RepairDeps are the collaborators a RepairService talks to.
type RepairDeps struct {
	Settings  ports.SettingsStore
	Inspector ports.TableInspector
	DDL       ports.TableDDL
	Notifier  ports.Notifier
	Disabler  ports.Disabler
}

// RepairOptions holds the settings keys and the version gate.
// Zero-valued keys fall back to the config defaults.
type RepairOptions struct {
	RecordKey       string
	StoreSchemaKey  string
	LoggerSchemaKey string
	Gate            *VersionGate

	// NewSuffix and NewRunID are overridable for tests.
	NewSuffix func() string
	NewRunID  func() string
	Now       func() time.Time
}

// InvokeResult describes what one invocation did.
type InvokeResult struct {
	State  domain.RepairState
	Record *models.RepairRecord
	Notice *models.Notice
}

// RepairService runs the one-shot repair lifecycle:
// repair once, show the audit trail once, then stay disabled.
type RepairService struct {
	deps         RepairDeps
	opts         RepairOptions
	mutator      *TableMutator
	stateMachine *domain.RepairStateMachine
}

// NewRepairService creates a RepairService.
func NewRepairService(deps RepairDeps, opts RepairOptions) (*RepairService, error) {
	if opts.RecordKey == "" {
		opts.RecordKey = config.DefaultRecordKey
	}
	if opts.StoreSchemaKey == "" {
		opts.StoreSchemaKey = config.DefaultStoreSchemaKey
	}
	if opts.LoggerSchemaKey == "" {
		opts.LoggerSchemaKey = config.DefaultLoggerSchemaKey
	}
	if opts.Gate == nil {
		gate, err := NewVersionGate(config.DefaultObsoleteWhen)
		if err != nil {
			return nil, err
		}
		opts.Gate = gate
	}
	if opts.NewSuffix == nil {
		opts.NewSuffix = NewRenameSuffix
	}
	if opts.NewRunID == nil {
		opts.NewRunID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	return &RepairService{
		deps:         deps,
		opts:         opts,
		mutator:      NewTableMutator(deps.DDL),
		stateMachine: domain.NewRepairStateMachine(),
	}, nil
}

// NewRenameSuffix returns "_" followed by four random hex characters.
func NewRenameSuffix() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "_" + id[:4]
}

// Invoke is the single entry point, called once per interactive load.
func (s *RepairService) Invoke(ctx context.Context) (*InvokeResult, error) {
	disabled, err := s.deps.Disabler.IsDisabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read disabled flag: %w", err)
	}
	if disabled {
		return &InvokeResult{State: domain.RepairStateDone}, nil
	}

	raw, found, err := s.deps.Settings.Get(ctx, s.opts.RecordKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read repair record: %w", err)
	}
	if found {
		return s.deliverNotice(ctx, raw)
	}

	record, state, err := s.Repair(ctx)
	return &InvokeResult{State: state, Record: record}, err
}

// Status reports the lifecycle state without changing anything.
func (s *RepairService) Status(ctx context.Context) (domain.RepairState, *models.RepairRecord, error) {
	disabled, err := s.deps.Disabler.IsDisabled(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read disabled flag: %w", err)
	}
	if disabled {
		return domain.RepairStateDone, nil, nil
	}

	raw, found, err := s.deps.Settings.Get(ctx, s.opts.RecordKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read repair record: %w", err)
	}
	if !found {
		return domain.RepairStateNotStarted, nil, nil
	}
	record, err := models.UnmarshalRepairRecord(raw)
	if err != nil {
		return domain.RepairStatePendingNotice, nil, nil
	}
	return domain.RepairStatePendingNotice, record, nil
}

// Repair inspects and repairs the four tables, then persists the record.
// It does not check the idempotency gate; Invoke does.
func (s *RepairService) Repair(ctx context.Context) (*models.RepairRecord, domain.RepairState, error) {
	state := domain.RepairStateNotStarted
	audit := &models.AuditLog{}

	obsolete, err := s.schemaObsolete(ctx)
	if err != nil {
		return nil, state, err
	}
	if obsolete {
		state = s.advance(state, domain.TransitionSkip)
		log.Printf("⚠️ Action Scheduler schema is newer than the repair definitions, skipping repair")
		audit.Note(MsgObsoleteSchema)
		record := &models.RepairRecord{
			Skipped:   true,
			Entries:   audit.Entries(),
			CreatedAt: s.opts.Now(),
		}
		return record, state, s.persist(ctx, record)
	}

	state = s.advance(state, domain.TransitionStart)
	record := &models.RepairRecord{
		RunID:     s.opts.NewRunID(),
		CreatedAt: s.opts.Now(),
	}
	suffix := s.opts.NewSuffix()
	log.Printf("🔧 Repair run %s started", record.RunID)

	planner := NewPlanner()
	if err := s.inspectAndCreate(ctx, planner, audit); err != nil {
		return s.fail(ctx, record, state, audit, err)
	}

	if planner.ResetRequired() {
		log.Printf("⚠️ Corrupt tables detected %v, resetting all tables with suffix %s", planner.CorruptTables(), suffix)
		record.Suffix = suffix
		for _, spec := range planner.ResetTables() {
			if err := s.mutator.ResetTable(ctx, spec, suffix, audit); err != nil {
				return s.fail(ctx, record, state, audit, err)
			}
		}
	}

	if audit.Actions() == 0 {
		audit.Note(MsgNoActions)
	}

	state = s.advance(state, domain.TransitionRecord)
	record.RunCompleted = true
	record.Entries = audit.Entries()
	if err := s.persist(ctx, record); err != nil {
		return record, state, err
	}

	log.Printf("✅ Repair run %s complete (%d actions)", record.RunID, audit.Actions())
	return record, state, nil
}

// Clean forgets the repair record and clears the disabled flag, so the
// next invocation runs a fresh repair.
func (s *RepairService) Clean(ctx context.Context) error {
	if err := s.deps.Settings.Delete(ctx, s.opts.RecordKey); err != nil {
		return fmt.Errorf("failed to delete repair record: %w", err)
	}
	if err := s.deps.Disabler.Enable(ctx); err != nil {
		return fmt.Errorf("failed to clear disabled flag: %w", err)
	}
	log.Printf("🧹 Repair record removed, tool re-enabled")
	return nil
}

// RenderNotice builds the operator notice for record.
func RenderNotice(record *models.RepairRecord) models.Notice {
	notice := models.Notice{Level: models.NoticeInfo, Dismissible: true}
	switch {
	case record.Failed:
		notice.Level = models.NoticeError
	case record.Skipped:
		notice.Level = models.NoticeWarning
	}

	if record.RunCompleted {
		notice.Messages = append(notice.Messages, MsgNoticeHeadline)
	}
	notice.Messages = append(notice.Messages, record.Entries...)
	notice.Messages = append(notice.Messages, MsgNoticeDeactivated)
	return notice
}

func (s *RepairService) inspectAndCreate(ctx context.Context, planner *Planner, audit *models.AuditLog) error {
	for _, spec := range schema.Catalog() {
		exists, err := s.deps.Inspector.TableExists(ctx, spec)
		if err != nil {
			return err
		}
		if planner.NeedsCreate(models.Inspection{Exists: exists}) {
			if err := s.mutator.CreateTable(ctx, spec, audit); err != nil {
				return err
			}
		}

		hasPK, err := s.deps.Inspector.HasPrimaryKey(ctx, spec)
		if err != nil {
			return err
		}
		hasAI, err := s.deps.Inspector.HasAutoIncrement(ctx, spec)
		if err != nil {
			return err
		}
		planner.Observe(spec, models.Inspection{Exists: true, HasPrimaryKey: hasPK, HasAutoIncrement: hasAI})
	}
	return nil
}

func (s *RepairService) schemaObsolete(ctx context.Context) (bool, error) {
	storeVersion, _, err := s.deps.Settings.Get(ctx, s.opts.StoreSchemaKey)
	if err != nil {
		return false, fmt.Errorf("failed to read store schema version: %w", err)
	}
	loggerVersion, _, err := s.deps.Settings.Get(ctx, s.opts.LoggerSchemaKey)
	if err != nil {
		return false, fmt.Errorf("failed to read logger schema version: %w", err)
	}
	return s.opts.Gate.Obsolete(VersionEnv{StoreVersion: storeVersion, LoggerVersion: loggerVersion})
}

// fail persists what the run did so far plus the error, then returns the error.
func (s *RepairService) fail(ctx context.Context, record *models.RepairRecord, state domain.RepairState, audit *models.AuditLog, cause error) (*models.RepairRecord, domain.RepairState, error) {
	log.Printf("❌ Repair run %s failed: %v", record.RunID, cause)
	audit.Note(fmt.Sprintf(MsgRepairFailed, cause))

	state = s.advance(state, domain.TransitionRecord)
	record.Failed = true
	record.Entries = audit.Entries()
	if err := s.persist(ctx, record); err != nil {
		log.Printf("⚠️ Failed to persist failed repair record: %v", err)
	}
	return record, state, cause
}

func (s *RepairService) persist(ctx context.Context, record *models.RepairRecord) error {
	raw, err := record.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode repair record: %w", err)
	}
	if err := s.deps.Settings.Set(ctx, s.opts.RecordKey, raw); err != nil {
		return fmt.Errorf("failed to save repair record: %w", err)
	}
	return nil
}

// deliverNotice shows the stored audit trail once, empties it and disables the tool.
func (s *RepairService) deliverNotice(ctx context.Context, raw string) (*InvokeResult, error) {
	state := domain.RepairStatePendingNotice

	record, err := models.UnmarshalRepairRecord(raw)
	if err != nil {
		log.Printf("⚠️ Stored repair record is unreadable, treating it as already shown: %v", err)
		record = &models.RepairRecord{}
	}

	result := &InvokeResult{Record: record}
	if len(record.Entries) > 0 {
		notice := RenderNotice(record)
		if err := s.deps.Notifier.Notify(ctx, notice); err != nil {
			return nil, fmt.Errorf("failed to show repair notice: %w", err)
		}
		result.Notice = &notice

		record.Entries = []string{}
		record.Notified = true
		if err := s.persist(ctx, record); err != nil {
			return nil, err
		}
	}

	if err := s.deps.Disabler.Disable(ctx); err != nil {
		return nil, fmt.Errorf("failed to disable repair tool: %w", err)
	}
	result.State = s.advance(state, domain.TransitionNotify)
	log.Printf("✅ Repair notice delivered, tool disabled")
	return result, nil
}

func (s *RepairService) advance(state domain.RepairState, via domain.RepairTransition) domain.RepairState {
	next, err := s.stateMachine.Transition(state, via)
	if err != nil {
		panic(err)
	}
	return next
}
