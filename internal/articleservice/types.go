package articleservice

import (
	"slices"
	"time"

	"github.com/gosimple/slug"

	"github.com/sushihentaime/conduit/internal/common"
	"github.com/sushihentaime/conduit/internal/docstore"
	"github.com/sushihentaime/conduit/internal/userservice"
)

type ArticleService struct {
	m     *DBModel
	users *userservice.UserService
	cache *common.Cache
}

type DBModel struct {
	store *docstore.Store
}

// Author is the snapshot of the writing user embedded in the article
// document at creation time. It is not refreshed when the user later edits
// their profile.
type Author struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// Article is the stored document, keyed by its slug. The slug is derived
// from the title once and stays stable across edits.
type Article struct {
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Body             string    `json:"body"`
	TagList          []string  `json:"tagList"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Author           Author    `json:"author"`
	FavoritedUserIDs []string  `json:"favoritedUserIds"`
}

// NewArticle builds a fresh article for the given author. The tag list is
// deduplicated and kept sorted, and the slug gets a random suffix so that
// two articles may share a title.
func NewArticle(author *userservice.User, title, description, body string, tags []string) *Article {
	if tags == nil {
		tags = []string{}
	}
	slices.Sort(tags)
	tags = slices.Compact(tags)

	now := time.Now().UTC()

	return &Article{
		Slug:        slug.Make(title) + common.RandomSuffix(),
		Title:       title,
		Description: description,
		Body:        body,
		TagList:     tags,
		CreatedAt:   now,
		UpdatedAt:   now,
		Author: Author{
			ID:       author.ID,
			Username: author.Username,
			Bio:      author.Bio,
			Image:    author.Image,
		},
		FavoritedUserIDs: []string{},
	}
}

func (a *Article) IsAuthor(u *userservice.User) bool {
	return a.Author.ID == u.ID
}

func (a *Article) IsFavoritedBy(userID string) bool {
	return slices.Contains(a.FavoritedUserIDs, userID)
}

// Favorite marks the article as favorited by the user. It is idempotent.
func (a *Article) Favorite(userID string) {
	if !a.IsFavoritedBy(userID) {
		a.FavoritedUserIDs = append(a.FavoritedUserIDs, userID)
	}
}

// Unfavorite removes the user from the favoriting set. It is idempotent.
func (a *Article) Unfavorite(userID string) {
	a.FavoritedUserIDs = slices.DeleteFunc(a.FavoritedUserIDs, func(id string) bool {
		return id == userID
	})
}

func (a *Article) FavoritesCount() int {
	return len(a.FavoritedUserIDs)
}

// Comment is stored in its own collection keyed by id and references its
// article by slug and its author by id.
type Comment struct {
	ID          string    `json:"id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ArticleSlug string    `json:"articleSlug"`
	AuthorID    string    `json:"authorId"`
}

func NewComment(author *userservice.User, articleSlug, body string) *Comment {
	now := time.Now().UTC()

	return &Comment{
		ID:          common.NewID(),
		Body:        body,
		CreatedAt:   now,
		UpdatedAt:   now,
		ArticleSlug: articleSlug,
		AuthorID:    author.ID,
	}
}

type CreateArticleParams struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// UpdateArticleParams is a partial patch: nil fields are left untouched.
// Only title, description and body may change.
type UpdateArticleParams struct {
	Title       *string
	Description *string
	Body        *string
}

// ListFilters narrows and pages the article listing.
type ListFilters struct {
	Author    string
	Favorited string
	Tag       string
	Limit     int
	Offset    int
}

func (f *ListFilters) normalize() {
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// ArticleResponse is the API-facing representation of an article, with
// favorited and favoritesCount derived relative to the viewer.
type ArticleResponse struct {
	Slug           string              `json:"slug"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Body           string              `json:"body"`
	TagList        []string            `json:"tagList"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	Favorited      bool                `json:"favorited"`
	FavoritesCount int                 `json:"favoritesCount"`
	Author         userservice.Profile `json:"author"`
}

func NewArticleResponse(a *Article, viewer *userservice.User) ArticleResponse {
	favorited := false
	following := false
	if viewer != nil && !viewer.IsAnonymous() {
		favorited = a.IsFavoritedBy(viewer.ID)
		following = viewer.IsFollowing(a.Author.ID)
	}

	return ArticleResponse{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        a.TagList,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: a.FavoritesCount(),
		Author: userservice.Profile{
			Username:  a.Author.Username,
			Bio:       a.Author.Bio,
			Image:     a.Author.Image,
			Following: following,
		},
	}
}

func NewArticleResponses(articles []Article, viewer *userservice.User) []ArticleResponse {
	responses := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, NewArticleResponse(&articles[i], viewer))
	}
	return responses
}

// CommentResponse pairs a comment with its resolved author profile.
type CommentResponse struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Body      string              `json:"body"`
	Author    userservice.Profile `json:"author"`
}

func NewCommentResponse(c *Comment, author *userservice.User, viewer *userservice.User) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Body:      c.Body,
		Author:    userservice.NewProfile(author, viewer),
	}
}
