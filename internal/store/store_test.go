package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wordisland/internal/config"
	"wordisland/internal/database"
	"wordisland/internal/store"
)

// exerciseStore runs the shared contract every engine must satisfy
func exerciseStore(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := st.Get(ctx, "player/a/points")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(ctx, "player/a/points", []byte("10")))
	require.NoError(t, st.Set(ctx, "player/a/points", []byte("25")))
	require.NoError(t, st.Set(ctx, "player/a/streakCount", []byte("2")))
	require.NoError(t, st.Set(ctx, "player/b_x/points", []byte("7")))

	v, ok, err := st.Get(ctx, "player/a/points")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "25", string(v))

	keys, err := st.Keys(ctx, "player/a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"player/a/points", "player/a/streakCount"}, keys)

	require.NoError(t, store.SetMany(ctx, st, map[string][]byte{
		"player/a/badges":  []byte("[]"),
		"player/a/journal": []byte("[]"),
	}))
	keys, err = st.Keys(ctx, "player/a/")
	require.NoError(t, err)
	assert.Len(t, keys, 4)

	ids, err := store.PlayerIDs(ctx, st)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b_x"}, ids)

	require.NoError(t, st.Delete(ctx, "player/a/points"))
	_, ok, err = st.Get(ctx, "player/a/points")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, store.NewMemoryStore())
}

func TestSQLStoreSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	_, err = db.RunMigrations("")
	require.NoError(t, err)

	st := store.NewSQLStore(db)
	t.Cleanup(func() { _ = st.Close() })

	exerciseStore(t, st)
}

func TestSQLStoreLikeEscaping(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "escape.db"))
	require.NoError(t, err)
	_, err = db.RunMigrations("")
	require.NoError(t, err)
	st := store.NewSQLStore(db)
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "player/a_1/points", []byte("1")))
	require.NoError(t, st.Set(ctx, "player/ab1/points", []byte("2")))

	keys, err := st.Keys(ctx, "player/a_1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"player/a_1/points"}, keys)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	st, err := store.NewRedisStore(context.Background(), store.RedisOptions{
		Addr:   addr,
		Prefix: "wordisland-test:" + t.Name() + ":",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	exerciseStore(t, st)
}

func TestScopedStore(t *testing.T) {
	ctx := context.Background()
	base := store.NewMemoryStore()
	alice := store.ForPlayer(base, "alice")
	bob := store.ForPlayer(base, "bob")

	require.NoError(t, alice.Set(ctx, "points", []byte("5")))
	require.NoError(t, bob.Set(ctx, "points", []byte("9")))

	v, ok, err := alice.Get(ctx, "points")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "5", string(v))

	raw, ok, err := base.Get(ctx, "player/bob/points")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "9", string(raw))

	keys, err := alice.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"points"}, keys)
}

func TestOpenUnknownEngine(t *testing.T) {
	_, err := store.Open(context.Background(), &config.Config{StoreEngine: "etcd"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestOpenMemoryEngine(t *testing.T) {
	st, err := store.Open(context.Background(), &config.Config{StoreEngine: "memory"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, st)
}
