package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func q(s string) string { return regexp.QuoteMeta(s) }

func newTestEnv(t *testing.T) (*cliEnv, sqlmock.Sqlmock, *bytes.Buffer) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	logger, _ := test.NewNullLogger()
	out := &bytes.Buffer{}
	return &cliEnv{
		out:    out,
		logger: logger,
		openDB: func(context.Context) (*sqlx.DB, error) {
			return sqlx.NewDb(db, "pgx"), nil
		},
	}, mock, out
}

func run(env *cliEnv, args ...string) error {
	cmd := newRootCmd(env)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}

func TestPendingReject(t *testing.T) {
	env, mock, out := newTestEnv(t)
	mock.ExpectQuery(q("DELETE FROM pending_criteria WHERE id = $1 RETURNING use_case_id")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"use_case_id"}))

	require.NoError(t, run(env, "pending", "reject", "3"))
	assert.JSONEq(t, `{"pending_id": 3, "removed": false}`, out.String())
}

func TestPendingApprove_UsesStoredPayload(t *testing.T) {
	env, mock, out := newTestEnv(t)
	mock.ExpectQuery(q("FROM pending_criteria WHERE id = $1")).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "use_case_id", "original_criterion", "suggested_criterion", "submitted_at"}).
			AddRow(int64(7), int64(4), "old", "new", time.Now()))
	mock.ExpectBegin()
	mock.ExpectQuery(q("DELETE FROM pending_criteria WHERE id = $1 AND use_case_id = $2 RETURNING id")).
		WithArgs(int64(7), int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(q("UPDATE use_cases SET success_criterion = $1 WHERE id = $2")).
		WithArgs("new", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, run(env, "pending", "approve", "7"))
	assert.JSONEq(t, `{"pending_id": 7, "approved": true}`, out.String())
}

func TestPendingApprove_InvalidID(t *testing.T) {
	env, _, _ := newTestEnv(t)
	err := run(env, "pending", "approve", "seven")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pending id")
}

func TestExport_JSONToStdout(t *testing.T) {
	env, mock, out := newTestEnv(t)
	mock.ExpectQuery(q("FROM use_cases WHERE product = $1")).WithArgs("Wallet").
		WillReturnRows(sqlmock.NewRows([]string{"id", "use_case", "product", "success_criterion", "measurement"}).
			AddRow(int64(4), "Checkout", "Wallet", "99%", "weekly"))

	require.NoError(t, run(env, "export", "--format", "json", "--out", "-", "--product", "Wallet"))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Checkout", rows[0]["UseCase"])
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	env, _, _ := newTestEnv(t)
	err := run(env, "export", "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
}

func TestSeed(t *testing.T) {
	env, mock, out := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: 1
use_cases:
  - use_case: Checkout
    product: Wallet
    success_criterion: 95% success rate
    measurement: weekly audit
`), 0o644))

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT EXISTS (SELECT 1 FROM use_cases WHERE use_case = $1 AND product = $2)")).
		WithArgs("Checkout", "Wallet").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	require.NoError(t, run(env, "seed", path))
	assert.JSONEq(t, `{"inserted": 0, "skipped": 1}`, out.String())
}
