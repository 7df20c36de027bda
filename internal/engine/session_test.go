package engine

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestSession opens a Session over a file-backed SQLite database so
// that Reset's reconnect sees the same views the first connection made.
func openTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	sess, err := openSession("sqlite3", path, "test@"+path)
	require.NoError(t, err)
	return sess, path
}

func seedAccounts(t *testing.T, sess *Session) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, sess.Exec(ctx, "CREATE TABLE accounts (id INTEGER, name TEXT)"))
	require.NoError(t, sess.Exec(ctx, "INSERT INTO accounts VALUES (1, 'alice'), (2, 'bob')"))
}

// persistedViews lists the view names left behind in the database file,
// through a connection independent of the session under test.
func persistedViews(t *testing.T, path string) []string {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'view' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestSession_CreateViewRecordsInCreationOrder(t *testing.T) {
	sess, path := openTestSession(t)
	defer sess.Close()
	seedAccounts(t, sess)
	ctx := context.Background()

	require.NoError(t, sess.CreateView(ctx, "seqscan_0002", "SELECT * FROM accounts"))
	require.NoError(t, sess.CreateView(ctx, "sort_0001", "SELECT * FROM seqscan_0002 ORDER BY id"))

	assert.Equal(t, []string{"seqscan_0002", "sort_0001"}, sess.Views())
	assert.Equal(t, []string{"seqscan_0002", "sort_0001"}, persistedViews(t, path))
}

func TestSession_CloseDropsEveryView(t *testing.T) {
	sess, path := openTestSession(t)
	seedAccounts(t, sess)
	ctx := context.Background()

	require.NoError(t, sess.CreateView(ctx, "seqscan_0002", "SELECT * FROM accounts"))
	require.NoError(t, sess.CreateView(ctx, "limit_0001", "SELECT * FROM seqscan_0002 LIMIT 1"))

	// A failed statement must not leak the views: cleanup still runs.
	require.Error(t, sess.Exec(ctx, "SELECT * FROM missing_relation"))

	require.NoError(t, sess.Close())
	assert.Empty(t, sess.Views())
	assert.Empty(t, persistedViews(t, path))
}

func TestSession_CloseTwiceIsHarmless(t *testing.T) {
	sess, _ := openTestSession(t)
	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())
}

func TestSession_ResetReconnectsAndDropsViews(t *testing.T) {
	sess, path := openTestSession(t)
	defer sess.Close()
	seedAccounts(t, sess)
	ctx := context.Background()

	require.NoError(t, sess.CreateView(ctx, "seqscan_0002", "SELECT * FROM accounts"))
	require.NoError(t, sess.CreateView(ctx, "sort_0001", "SELECT * FROM seqscan_0002 ORDER BY name"))
	require.Error(t, sess.Exec(ctx, "not even sql"))

	require.NoError(t, sess.Reset(ctx))

	// The fresh connection owns no views and the old ones are gone.
	assert.Empty(t, sess.Views())
	assert.Empty(t, persistedViews(t, path))

	// The session is usable again.
	require.NoError(t, sess.Exec(ctx, "INSERT INTO accounts VALUES (3, 'carol')"))
}

func TestSession_DropViewForgetsOnlyThatView(t *testing.T) {
	sess, path := openTestSession(t)
	defer sess.Close()
	seedAccounts(t, sess)
	ctx := context.Background()

	require.NoError(t, sess.CreateView(ctx, "seqscan_0002", "SELECT * FROM accounts"))
	require.NoError(t, sess.CreateView(ctx, "seqscan_0003", "SELECT * FROM accounts WHERE id = 1"))

	require.NoError(t, sess.DropView(ctx, "seqscan_0003"))

	assert.Equal(t, []string{"seqscan_0002"}, sess.Views())
	assert.Equal(t, []string{"seqscan_0002"}, persistedViews(t, path))
}
