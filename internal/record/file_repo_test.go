package record

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *FileRepository {
	t.Helper()
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "books.json"))
	require.NoError(t, err)
	return repo
}

func TestFileRepositoryLazyCreatesEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)

	data, err := os.ReadFile(repo.path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileRepositoryMalformedStoreFails(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, os.WriteFile(repo.path, []byte("{not json"), 0o644))

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "parse store")

	// The file is propagated as-is, never repaired.
	data, err := os.ReadFile(repo.path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestFileRepositoryCreateAssignsTimestampID(t *testing.T) {
	repo := newTestRepo(t)
	repo.now = func() time.Time { return time.UnixMilli(1700000000000) }

	created, err := repo.Create(context.Background(), Book{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)
	assert.Equal(t, "1700000000000", created.ID)

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, created, books[0])
}

func TestFileRepositoryCreateBumpsCollidingIDs(t *testing.T) {
	repo := newTestRepo(t)
	repo.now = func() time.Time { return time.UnixMilli(1700000000000) }

	first, err := repo.Create(context.Background(), Book{Title: "A", Author: "X"})
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), Book{Title: "B", Author: "Y"})
	require.NoError(t, err)

	assert.Equal(t, "1700000000000", first.ID)
	assert.Equal(t, "1700000000001", second.ID)
}

func TestFileRepositoryStoreFileIsPrettyPrinted(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Create(context.Background(), Book{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	data, err := os.ReadFile(repo.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[\n  {\n    \"id\"")
}

func TestFileRepositoryUpdate(t *testing.T) {
	repo := newTestRepo(t)
	created, err := repo.Create(context.Background(), Book{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	updated, err := repo.Update(context.Background(), created.ID, Payload{
		"description": json.RawMessage(`"Classic sci-fi"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "Herbert", updated.Author)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Classic sci-fi", *updated.Description)

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, updated, books[0])
}

func TestFileRepositoryUpdateUnknownIDLeavesStoreUntouched(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Create(context.Background(), Book{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	before, err := repo.List(context.Background())
	require.NoError(t, err)

	_, err = repo.Update(context.Background(), "missing", Payload{"title": json.RawMessage(`"X"`)})
	assert.ErrorIs(t, err, ErrNotFound)

	after, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFileRepositoryDelete(t *testing.T) {
	repo := newTestRepo(t)
	repo.now = func() time.Time { return time.UnixMilli(1700000000000) }

	keep, err := repo.Create(context.Background(), Book{Title: "Keep", Author: "A"})
	require.NoError(t, err)
	drop, err := repo.Create(context.Background(), Book{Title: "Drop", Author: "B"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), drop.ID))

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, keep, books[0])

	assert.ErrorIs(t, repo.Delete(context.Background(), drop.ID), ErrNotFound)
}

func TestFileRepositoryListIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Create(context.Background(), Book{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	first, err := repo.List(context.Background())
	require.NoError(t, err)
	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
