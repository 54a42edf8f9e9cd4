package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-crud/internal/config"
	"github.com/adanyl0v/go-todo-crud/internal/models"
	"github.com/adanyl0v/go-todo-crud/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), zerolog.Nop(), config.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "todos.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), zerolog.Nop(), config.SQLiteConfig{Path: " "})
	require.Error(t, err)
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	cfg := config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "todos.db")}

	store, err := Open(ctx, zerolog.Nop(), cfg)
	require.NoError(t, err)
	_, err = store.Create(ctx, &models.Todo{Title: "t", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, zerolog.Nop(), cfg)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	todos, err := store.FindMany(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "t", todos[0].Title)
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	todos, err := store.FindMany(ctx)
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)

	first, err := store.Create(ctx, &models.Todo{Title: "first", Content: "one"})
	require.NoError(t, err)
	second, err := store.Create(ctx, &models.Todo{Title: "second", Content: ""})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.Done)

	todos, err = store.FindMany(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*models.Todo{
		{ID: 1, Title: "first", Content: "one"},
		{ID: 2, Title: "second", Content: ""},
	}, todos)

	updated, err := store.UpdateDone(ctx, first.ID, true)
	require.NoError(t, err)
	assert.Equal(t, &models.Todo{ID: 1, Title: "first", Content: "one", Done: true}, updated)

	got, err := store.FindUnique(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)

	deleted, err := store.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", deleted.Title)

	_, err = store.FindUnique(ctx, first.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Ids are never reused.
	third, err := store.Create(ctx, &models.Todo{Title: "third"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.FindUnique(ctx, 999)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.UpdateDone(ctx, 999, true)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.Delete(ctx, 999)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_FailuresLogAtDebug(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	store, err := Open(ctx, zerolog.New(&buf), config.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "todos.db"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.FindMany(ctx)
	require.Error(t, err)
	_, err = store.FindUnique(ctx, 1)
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.NotContains(t, buf.String(), `"level":"error"`)
}

func TestStore_Ping(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Ping(context.Background()))
}

func TestClassifyError(t *testing.T) {
	assert.NoError(t, classifyError(nil))

	err := classifyError(sql.ErrConnDone)
	assert.ErrorIs(t, err, storage.ErrUnavailable)
	assert.ErrorIs(t, err, sql.ErrConnDone)

	plain := errors.New("syntax error")
	assert.Equal(t, plain, classifyError(plain))
}
