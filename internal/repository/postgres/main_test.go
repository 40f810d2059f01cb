package postgres

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/testsupport"
)

// newTestTx connects to the integration database, makes sure the schema
// exists and returns a transaction the harness rolls back when the test
// finishes, so tests never see each other's rows.
func newTestTx(t *testing.T) *sqlx.Tx {
	t.Helper()

	testDB := testsupport.NewTestPostgres(t)
	require.NoError(t, Bootstrap(context.Background(), testDB.DB()))
	return testDB.Tx()
}
