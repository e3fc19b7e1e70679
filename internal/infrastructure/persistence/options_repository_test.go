package persistence

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOptionsRepository(db, "wp_", "")
	assert.Equal(t, "wp_options", repo.Table())

	query := "SELECT option_value FROM `wp_options` WHERE option_name = ? LIMIT 1"

	// Test Case 1: option present
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("schema-ActionScheduler_StoreSchema").
		WillReturnRows(sqlmock.NewRows([]string{"option_value"}).AddRow("3.0.1600000000"))

	value, found, err := repo.Get(context.Background(), "schema-ActionScheduler_StoreSchema")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "3.0.1600000000", value)

	// Test Case 2: option absent
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("ras_notices").
		WillReturnRows(sqlmock.NewRows([]string{"option_value"}))

	value, found, err = repo.Get(context.Background(), "ras_notices")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)

	// Test Case 3: query failure
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("ras_notices").
		WillReturnError(fmt.Errorf("invalid connection"))

	_, _, err = repo.Get(context.Background(), "ras_notices")
	assert.True(t, apperrors.IsDatabase(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOptionsRepository_SetAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOptionsRepository(db, "wp_", "options")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `wp_options` (option_name, option_value, autoload) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE option_value = VALUES(option_value)")).
		WithArgs("ras_disabled", "1", "no").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `wp_options` WHERE option_name = ?")).
		WithArgs("ras_disabled").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Set(context.Background(), "ras_disabled", "1"))
	assert.NoError(t, repo.Delete(context.Background(), "ras_disabled"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsDisabler(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryOptionStore(nil)
	d := NewSettingsDisabler(store, "ras_disabled")

	disabled, err := d.IsDisabled(ctx)
	require.NoError(t, err)
	assert.False(t, disabled)

	require.NoError(t, d.Disable(ctx))
	require.NoError(t, d.Disable(ctx), "second disable is a no-op")

	disabled, err = d.IsDisabled(ctx)
	require.NoError(t, err)
	assert.True(t, disabled)

	require.NoError(t, d.Enable(ctx))
	_, found, _ := store.Get(ctx, "ras_disabled")
	assert.False(t, found)
}

func TestMemoryOptionStore_CopiesSeed(t *testing.T) {
	seed := map[string]string{"a": "1"}
	store := NewMemoryOptionStore(seed)
	seed["a"] = "2"

	v, found, err := store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", v)
}
