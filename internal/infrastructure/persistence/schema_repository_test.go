package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*SchemaRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSchemaRepository(db, "wp_", "DEFAULT CHARACTER SET utf8mb4"), mock
}

func TestTableExists(t *testing.T) {
	repo, mock := newMockRepo(t)
	spec := schema.MustLookup(schema.ActionsTable)

	// Test Case 1: Table exists. The name is bound as-is, never as a LIKE pattern.
	mock.ExpectQuery(regexp.QuoteMeta(QueryTableExists)).
		WithArgs("wp_actionscheduler_actions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.TableExists(context.Background(), spec)
	assert.NoError(t, err)
	assert.True(t, exists)

	// Test Case 2: Table missing
	mock.ExpectQuery(regexp.QuoteMeta(QueryTableExists)).
		WithArgs("wp_actionscheduler_actions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err = repo.TableExists(context.Background(), spec)
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableExists_QueryErrorIsSurfaced(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(QueryTableExists)).
		WillReturnError(fmt.Errorf("invalid connection"))

	exists, err := repo.TableExists(context.Background(), schema.MustLookup(schema.ClaimsTable))
	assert.False(t, exists)
	require.Error(t, err)
	assert.True(t, apperrors.IsDatabase(err))
}

func TestHasPrimaryKey(t *testing.T) {
	repo, mock := newMockRepo(t)
	spec := schema.MustLookup(schema.GroupsTable)

	mock.ExpectQuery(regexp.QuoteMeta(QueryHasPrimaryKey)).
		WithArgs("wp_actionscheduler_groups", "group_id").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.HasPrimaryKey(context.Background(), spec)
	assert.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(regexp.QuoteMeta(QueryHasPrimaryKey)).
		WithArgs("wp_actionscheduler_groups", "group_id").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err = repo.HasPrimaryKey(context.Background(), spec)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasAutoIncrement_ErrorIsNotFalse(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(QueryHasAutoIncrement)).
		WithArgs("wp_actionscheduler_logs", "log_id").
		WillReturnError(fmt.Errorf("driver: bad connection"))

	ok, err := repo.HasAutoIncrement(context.Background(), schema.MustLookup(schema.LogsTable))
	assert.False(t, ok)
	assert.True(t, apperrors.IsDatabase(err))
}

func TestInspect(t *testing.T) {
	t.Run("missing table skips column checks", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(QueryTableExists)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		res, err := repo.Inspect(context.Background(), schema.MustLookup(schema.ActionsTable))
		require.NoError(t, err)
		assert.False(t, res.Exists)
		assert.False(t, res.Sound())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing table without auto_increment", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(QueryTableExists)).
			WithArgs("wp_actionscheduler_actions").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(QueryHasPrimaryKey)).
			WithArgs("wp_actionscheduler_actions", "action_id").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(QueryHasAutoIncrement)).
			WithArgs("wp_actionscheduler_actions", "action_id").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		res, err := repo.Inspect(context.Background(), schema.MustLookup(schema.ActionsTable))
		require.NoError(t, err)
		assert.True(t, res.Exists)
		assert.True(t, res.HasPrimaryKey)
		assert.False(t, res.HasAutoIncrement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateTable(t *testing.T) {
	repo, mock := newMockRepo(t)
	spec := schema.MustLookup(schema.ClaimsTable)

	mock.ExpectExec(regexp.QuoteMeta(spec.DDL("wp_", "DEFAULT CHARACTER SET utf8mb4"))).
		WillReturnResult(sqlmock.NewResult(0, 0))

	name, err := repo.CreateTable(context.Background(), spec)
	assert.NoError(t, err)
	assert.Equal(t, "wp_actionscheduler_claims", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTable_RaceIsReported(t *testing.T) {
	repo, mock := newMockRepo(t)
	spec := schema.MustLookup(schema.ClaimsTable)

	mock.ExpectExec("CREATE TABLE wp_actionscheduler_claims").
		WillReturnError(&mysql.MySQLError{Number: ErTableExistsError, Message: "Table 'wp_actionscheduler_claims' already exists"})

	_, err := repo.CreateTable(context.Background(), spec)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	var mysqlErr *mysql.MySQLError
	assert.True(t, errors.As(err, &mysqlErr))
}

func TestRenameTable(t *testing.T) {
	repo, mock := newMockRepo(t)
	spec := schema.MustLookup(schema.ActionsTable)

	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE `wp_actionscheduler_actions` RENAME TO `wp_actionscheduler_actions_9f3c`")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	from, to, err := repo.RenameTable(context.Background(), spec, "_9f3c")
	assert.NoError(t, err)
	assert.Equal(t, "wp_actionscheduler_actions", from)
	assert.Equal(t, "wp_actionscheduler_actions_9f3c", to)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenameTable_Failures(t *testing.T) {
	spec := schema.MustLookup(schema.GroupsTable)

	t.Run("invalid suffix", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		_, _, err := repo.RenameTable(context.Background(), spec, "_x`; DROP")
		assert.True(t, apperrors.IsValidation(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty suffix", func(t *testing.T) {
		repo, _ := newMockRepo(t)
		_, _, err := repo.RenameTable(context.Background(), spec, "")
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("target exists", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("ALTER TABLE").
			WillReturnError(&mysql.MySQLError{Number: ErTableExistsError, Message: "Table exists"})

		_, _, err := repo.RenameTable(context.Background(), spec, "_0000")
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("connection lost", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("ALTER TABLE").WillReturnError(fmt.Errorf("invalid connection"))

		_, _, err := repo.RenameTable(context.Background(), spec, "_0000")
		assert.True(t, apperrors.IsDatabase(err))
	})
}

func TestHasPrimaryKey_NoRowsIsAnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	// COUNT(*) always yields a row, so an empty result set means the driver misbehaved.
	mock.ExpectQuery(regexp.QuoteMeta(QueryHasPrimaryKey)).
		WithArgs("wp_actionscheduler_claims", "claim_id").
		WillReturnRows(sqlmock.NewRows([]string{"count"}))

	ok, err := repo.HasPrimaryKey(context.Background(), schema.MustLookup(schema.ClaimsTable))
	assert.False(t, ok)
	assert.True(t, apperrors.IsDatabase(err))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
