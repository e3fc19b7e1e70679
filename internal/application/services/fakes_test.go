package services

import (
	"context"
	"fmt"

	"github.com/rankmath/repair-action-scheduler/internal/domain/models"
	"github.com/rankmath/repair-action-scheduler/internal/domain/ports"
	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
	"github.com/stretchr/testify/mock"
)

// fakeTable is the structural state the fake database keeps per table.
type fakeTable struct {
	pk bool
	ai bool
}

// fakeDatabase implements ports.TableInspector and ports.TableDDL in memory
// and records every mutation in order.
type fakeDatabase struct {
	tables   map[string]fakeTable
	ops      []string
	failOn   string
	failWith error
}

// The repair only needs the three column checks; the fake carries nothing else.
var (
	_ ports.TableInspector = (*fakeDatabase)(nil)
	_ ports.TableDDL       = (*fakeDatabase)(nil)
)

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{tables: make(map[string]fakeTable)}
}

// healthy returns a database where all four tables exist and are sound.
func healthy() *fakeDatabase {
	db := newFakeDatabase()
	for _, spec := range schema.Catalog() {
		db.tables[spec.Name] = fakeTable{pk: true, ai: true}
	}
	return db
}

func (f *fakeDatabase) check(op string) error {
	if f.failOn != "" && f.failOn == op {
		return f.failWith
	}
	return nil
}

func (f *fakeDatabase) TableExists(_ context.Context, spec schema.TableSpec) (bool, error) {
	if err := f.check("exists " + spec.Name); err != nil {
		return false, err
	}
	_, ok := f.tables[spec.Name]
	return ok, nil
}

func (f *fakeDatabase) HasPrimaryKey(_ context.Context, spec schema.TableSpec) (bool, error) {
	if err := f.check("pk " + spec.Name); err != nil {
		return false, err
	}
	return f.tables[spec.Name].pk, nil
}

func (f *fakeDatabase) HasAutoIncrement(_ context.Context, spec schema.TableSpec) (bool, error) {
	if err := f.check("ai " + spec.Name); err != nil {
		return false, err
	}
	return f.tables[spec.Name].ai, nil
}

func (f *fakeDatabase) CreateTable(_ context.Context, spec schema.TableSpec) (string, error) {
	op := "create " + spec.Name
	if err := f.check(op); err != nil {
		return "", err
	}
	if _, ok := f.tables[spec.Name]; ok {
		return "", fmt.Errorf("table %s already exists", spec.Name)
	}
	f.tables[spec.Name] = fakeTable{pk: true, ai: true}
	f.ops = append(f.ops, op)
	return "wp_" + spec.Name, nil
}

func (f *fakeDatabase) RenameTable(_ context.Context, spec schema.TableSpec, suffix string) (string, string, error) {
	op := "rename " + spec.Name + " " + spec.ArchiveName(suffix)
	if err := f.check("rename " + spec.Name); err != nil {
		return "", "", err
	}
	t, ok := f.tables[spec.Name]
	if !ok {
		return "", "", fmt.Errorf("table %s does not exist", spec.Name)
	}
	delete(f.tables, spec.Name)
	f.tables[spec.ArchiveName(suffix)] = t
	f.ops = append(f.ops, op)
	return "wp_" + spec.Name, "wp_" + spec.ArchiveName(suffix), nil
}

// MockNotifier records notices shown to the operator.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notice models.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
