package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/conduit/internal/common"
)

type testDoc struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Marks []string `json:"marks"`
}

func testStore(t *testing.T) *Store {
	dsn := common.TestPostgres("file://../../migrations", t)

	store, err := Open(dsn, 10, 5, 15*time.Minute)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func TestStoreGetInsert(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	doc := testDoc{ID: "1", Name: "first", Marks: []string{"a", "b"}}

	err := store.Insert(ctx, ArticleCollection, "key-1", doc)
	assert.NoError(t, err)

	var got testDoc
	err = store.Get(ctx, ArticleCollection, "key-1", &got)
	assert.NoError(t, err)
	assert.Equal(t, doc, got)

	// same key in a different collection is a distinct document
	err = store.Get(ctx, CommentCollection, "key-1", &got)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	// inserting on an existing key is rejected
	err = store.Insert(ctx, ArticleCollection, "key-1", doc)
	assert.ErrorIs(t, err, ErrDocumentExists)
}

func TestStoreUpsert(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, ArticleCollection, "key-1", testDoc{ID: "1", Name: "created"})
	assert.NoError(t, err)

	err = store.Upsert(ctx, ArticleCollection, "key-1", testDoc{ID: "1", Name: "replaced"})
	assert.NoError(t, err)

	var got testDoc
	err = store.Get(ctx, ArticleCollection, "key-1", &got)
	assert.NoError(t, err)
	assert.Equal(t, "replaced", got.Name)
}

func TestStoreDelete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	err := store.Insert(ctx, CommentCollection, "key-1", testDoc{ID: "1"})
	assert.NoError(t, err)

	err = store.Delete(ctx, CommentCollection, "key-1")
	assert.NoError(t, err)

	err = store.Delete(ctx, CommentCollection, "key-1")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestStoreQuery(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	err := store.Insert(ctx, ArticleCollection, "key-1", testDoc{ID: "1", Name: "target"})
	require.NoError(t, err)
	err = store.Insert(ctx, ArticleCollection, "key-2", testDoc{ID: "2", Name: "other"})
	require.NoError(t, err)

	rows, err := store.Query(ctx, `
		SELECT doc ->> 'id'
		FROM documents
		WHERE collection = $1 AND doc ->> 'name' = $2`, ArticleCollection, "target")
	require.NoError(t, err)
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{"1"}, ids)
}

func TestStoreUniqueUserFields(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	type userDoc struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	err := store.Insert(ctx, UserCollection, "id-1", userDoc{ID: "id-1", Username: "testuser", Email: "testuser@example.com"})
	assert.NoError(t, err)

	// distinct key, duplicate username
	err = store.Insert(ctx, UserCollection, "id-2", userDoc{ID: "id-2", Username: "testuser", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrDocumentExists)

	// distinct key, duplicate email
	err = store.Insert(ctx, UserCollection, "id-3", userDoc{ID: "id-3", Username: "other", Email: "testuser@example.com"})
	assert.ErrorIs(t, err, ErrDocumentExists)
}

func TestStoreQueryTimeout(t *testing.T) {
	store := testStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()

	var got testDoc
	err := store.Get(ctx, ArticleCollection, "key-1", &got)
	assert.ErrorIs(t, err, ErrQueryTimeout)
}
