package articleservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/conduit/internal/userservice"
)

func testAuthor() *userservice.User {
	return &userservice.User{
		ID:       "author-id",
		Username: "jake",
	}
}

func TestNewArticleSlug(t *testing.T) {
	a := NewArticle(testAuthor(), "How to Train Your Dragon", "desc", "body", nil)

	assert.True(t, strings.HasPrefix(a.Slug, "how-to-train-your-dragon"), "got slug %q", a.Slug)

	suffix := strings.TrimPrefix(a.Slug, "how-to-train-your-dragon")
	assert.Len(t, suffix, 8)

	// two articles with the same title get distinct slugs
	b := NewArticle(testAuthor(), "How to Train Your Dragon", "desc", "body", nil)
	assert.NotEqual(t, a.Slug, b.Slug)
}

func TestNewArticleTags(t *testing.T) {
	a := NewArticle(testAuthor(), "title", "desc", "body", []string{"reactjs", "angularjs", "dragons", "angularjs"})

	assert.Equal(t, []string{"angularjs", "dragons", "reactjs"}, a.TagList)

	b := NewArticle(testAuthor(), "title", "desc", "body", nil)
	assert.NotNil(t, b.TagList)
	assert.Empty(t, b.TagList)
}

func TestNewArticleAuthorSnapshot(t *testing.T) {
	author := testAuthor()
	a := NewArticle(author, "title", "desc", "body", nil)

	assert.Equal(t, author.ID, a.Author.ID)
	assert.Equal(t, author.Username, a.Author.Username)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Empty(t, a.FavoritedUserIDs)
}

func TestFavoriteUnfavorite(t *testing.T) {
	a := NewArticle(testAuthor(), "title", "desc", "body", nil)

	a.Favorite("user-1")
	a.Favorite("user-2")
	a.Favorite("user-1") // idempotent
	assert.Equal(t, 2, a.FavoritesCount())
	assert.True(t, a.IsFavoritedBy("user-1"))

	a.Unfavorite("user-1")
	a.Unfavorite("user-1") // idempotent
	assert.Equal(t, 1, a.FavoritesCount())
	assert.False(t, a.IsFavoritedBy("user-1"))
}

func TestNewArticleResponse(t *testing.T) {
	a := NewArticle(testAuthor(), "title", "desc", "body", []string{"go"})
	a.Favorite("viewer-id")

	viewer := &userservice.User{ID: "viewer-id", FollowingIDs: []string{"author-id"}}
	res := NewArticleResponse(a, viewer)

	assert.True(t, res.Favorited)
	assert.Equal(t, 1, res.FavoritesCount)
	assert.True(t, res.Author.Following)
	assert.Equal(t, "jake", res.Author.Username)

	// anonymous viewers never see favorited or following set
	res = NewArticleResponse(a, &userservice.AnonymousUser)
	assert.False(t, res.Favorited)
	assert.Equal(t, 1, res.FavoritesCount)
	assert.False(t, res.Author.Following)

	res = NewArticleResponse(a, nil)
	assert.False(t, res.Favorited)
	assert.False(t, res.Author.Following)
}
