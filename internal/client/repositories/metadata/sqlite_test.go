package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/sujeetunbeatable/liorea-cli/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metadata_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM metadata`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, common.MetaKeyUsername, []byte("alice")))

	got, err := repo.Get(ctx, common.MetaKeyUsername)
	require.NoError(t, err)
	require.Equal(t, []byte("alice"), got)
}

func TestSQLiteRepository_SetOverwrites(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, common.MetaKeyUsername, []byte("alice")))
	require.NoError(t, repo.Set(ctx, common.MetaKeyUsername, []byte("alicia")))

	got, err := repo.Get(ctx, common.MetaKeyUsername)
	require.NoError(t, err)
	require.Equal(t, []byte("alicia"), got)
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_DeleteAndClear(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err := repo.Get(ctx, "a")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx, "b")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
