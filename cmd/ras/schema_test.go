package main

import (
	"bytes"
	"testing"

	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSchemaCommand_SingleTable(t *testing.T) {
	out, err := execute(t, "schema", "actionscheduler_groups", "--prefix", "wp_test_")
	require.NoError(t, err)

	assert.Contains(t, out, "CREATE TABLE wp_test_actionscheduler_groups (")
	assert.Contains(t, out, "group_id bigint(20) unsigned NOT NULL auto_increment")
	assert.Contains(t, out, "KEY slug (slug(191))")
	assert.NotContains(t, out, "actionscheduler_logs")
}

func TestSchemaCommand_AllTables(t *testing.T) {
	out, err := execute(t, "schema", "--prefix", "wp_")
	require.NoError(t, err)

	for _, name := range []string{"actions", "claims", "groups", "logs"} {
		assert.Contains(t, out, "CREATE TABLE wp_actionscheduler_"+name+" (")
	}
}

func TestSchemaCommand_UnknownTable(t *testing.T) {
	_, err := execute(t, "schema", "wp_posts")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("RAS_HTTP_JWT_SECRET", "")
	_, err := execute(t, "token")
	assert.True(t, apperrors.IsValidation(err))
}

func TestServeCommand_RequiresSecret(t *testing.T) {
	t.Setenv("RAS_HTTP_JWT_SECRET", "")
	_, err := execute(t, "serve")
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "http.jwt_secret")
}

func TestHint(t *testing.T) {
	assert.Contains(t, hint(apperrors.NewConflictError("table", "wp_actionscheduler_logs_ab12", nil)), "ras clean")
	assert.Contains(t, hint(apperrors.NewNotFoundError("Table", "wp_posts")), "ras schema")
	assert.Empty(t, hint(assert.AnError))
}
