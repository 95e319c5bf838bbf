package articleservice

import (
	"context"
	"errors"
	"time"

	"github.com/sushihentaime/conduit/internal/common"
	"github.com/sushihentaime/conduit/internal/docstore"
	"github.com/sushihentaime/conduit/internal/userservice"
)

const tagsCacheTTL = time.Minute

func NewArticleService(store *docstore.Store, users *userservice.UserService, cache *common.Cache) *ArticleService {
	return &ArticleService{
		m:     newArticleModel(store),
		users: users,
		cache: cache,
	}
}

// Create inserts a new article authored by the given user. The slug doubles
// as the document key, so a slug collision surfaces as a duplicate key.
func (s *ArticleService) Create(ctx context.Context, author *userservice.User, params CreateArticleParams) (*Article, error) {
	v := common.NewValidator()
	validateTitle(v, params.Title)
	validateDescription(v, params.Description)
	validateBody(v, params.Body)
	validateTags(v, params.TagList)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	a := NewArticle(author, params.Title, params.Description, params.Body, params.TagList)

	if err := s.m.insert(ctx, a); err != nil {
		return nil, err
	}

	s.cache.Delete(common.CacheKeyTags)

	return a, nil
}

func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	return s.m.getBySlug(ctx, slug)
}

// List returns one page of articles matching the filters plus the total
// match count. An unknown user in the favorited filter matches nothing.
func (s *ArticleService) List(ctx context.Context, f ListFilters) ([]Article, int, error) {
	f.normalize()

	var favoritedID string
	if f.Favorited != "" {
		u, err := s.users.GetByUsername(ctx, f.Favorited)
		if err != nil {
			if errors.Is(err, userservice.ErrNotFound) {
				return []Article{}, 0, nil
			}
			return nil, 0, err
		}
		favoritedID = u.ID
	}

	return s.m.list(ctx, f, favoritedID)
}

// Feed returns one page of articles written by the users the viewer follows.
func (s *ArticleService) Feed(ctx context.Context, viewer *userservice.User, limit, offset int) ([]Article, int, error) {
	f := ListFilters{Limit: limit, Offset: offset}
	f.normalize()

	if len(viewer.FollowingIDs) == 0 {
		return []Article{}, 0, nil
	}

	return s.m.feed(ctx, viewer.FollowingIDs, f.Limit, f.Offset)
}

// Update applies a partial patch to the article and bumps its updated
// timestamp. Only the author may update, and the slug stays stable.
func (s *ArticleService) Update(ctx context.Context, u *userservice.User, slug string, params UpdateArticleParams) (*Article, error) {
	a, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !a.IsAuthor(u) {
		return nil, ErrNotAuthor
	}

	v := common.NewValidator()
	if params.Title != nil {
		validateTitle(v, *params.Title)
	}
	if params.Description != nil {
		validateDescription(v, *params.Description)
	}
	if params.Body != nil {
		validateBody(v, *params.Body)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if params.Title != nil {
		a.Title = *params.Title
	}
	if params.Description != nil {
		a.Description = *params.Description
	}
	if params.Body != nil {
		a.Body = *params.Body
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.m.upsert(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Delete removes the article and its comments. Only the author may delete.
func (s *ArticleService) Delete(ctx context.Context, u *userservice.User, slug string) error {
	a, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if !a.IsAuthor(u) {
		return ErrNotAuthor
	}

	if err := s.m.delete(ctx, a.Slug); err != nil {
		return err
	}

	if err := s.m.deleteCommentsBySlug(ctx, a.Slug); err != nil {
		return err
	}

	s.cache.Delete(common.CacheKeyTags)

	return nil
}

// Favorite adds the user to the article's favoriting set and writes the
// whole document back. Favoriting twice is a no-op.
func (s *ArticleService) Favorite(ctx context.Context, u *userservice.User, slug string) (*Article, error) {
	a, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	a.Favorite(u.ID)

	if err := s.m.upsert(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Unfavorite removes the user from the article's favoriting set.
func (s *ArticleService) Unfavorite(ctx context.Context, u *userservice.User, slug string) (*Article, error) {
	a, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	a.Unfavorite(u.ID)

	if err := s.m.upsert(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// AddComment appends a comment to the article's comment collection.
func (s *ArticleService) AddComment(ctx context.Context, u *userservice.User, slug, body string) (*Comment, error) {
	v := common.NewValidator()
	validateCommentBody(v, body)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	a, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	c := NewComment(u, a.Slug, body)

	if err := s.m.insertComment(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Comments returns the article's comments joined with their resolved author
// profiles, oldest first. Each distinct author is looked up once.
func (s *ArticleService) Comments(ctx context.Context, slug string, viewer *userservice.User) ([]CommentResponse, error) {
	a, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.m.commentsBySlug(ctx, a.Slug)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]*userservice.User)
	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]

		author, ok := authors[c.AuthorID]
		if !ok {
			author, err = s.users.GetByID(ctx, c.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[c.AuthorID] = author
		}

		responses = append(responses, NewCommentResponse(c, author, viewer))
	}

	return responses, nil
}

// DeleteComment removes a comment by id. Only the comment's author may
// delete it, and the comment must belong to the named article.
func (s *ArticleService) DeleteComment(ctx context.Context, u *userservice.User, slug, commentID string) error {
	c, err := s.m.getComment(ctx, commentID)
	if err != nil {
		return err
	}

	if c.ArticleSlug != slug {
		return ErrCommentNotFound
	}

	if c.AuthorID != u.ID {
		return ErrNotAuthor
	}

	return s.m.deleteComment(ctx, c.ID)
}

// Tags returns the distinct tag list aggregated across all articles. The
// result is cached briefly and invalidated when articles change.
func (s *ArticleService) Tags(ctx context.Context) ([]string, error) {
	if cached, ok := s.cache.Get(common.CacheKeyTags); ok {
		if tags, ok := cached.([]string); ok {
			return tags, nil
		}
	}

	tags, err := s.m.tags(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(common.CacheKeyTags, tags, tagsCacheTTL)

	return tags, nil
}
