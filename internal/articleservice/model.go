package articleservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/sushihentaime/conduit/internal/docstore"
)

var (
	ErrNotFound        = errors.New("article not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotAuthor       = errors.New("user is not the author")
)

func newArticleModel(store *docstore.Store) *DBModel {
	return &DBModel{store: store}
}

func (m *DBModel) insert(ctx context.Context, a *Article) error {
	return m.store.Insert(ctx, docstore.ArticleCollection, a.Slug, a)
}

func (m *DBModel) upsert(ctx context.Context, a *Article) error {
	return m.store.Upsert(ctx, docstore.ArticleCollection, a.Slug, a)
}

func (m *DBModel) delete(ctx context.Context, slug string) error {
	err := m.store.Delete(ctx, docstore.ArticleCollection, slug)
	if errors.Is(err, docstore.ErrDocumentNotFound) {
		return ErrNotFound
	}
	return err
}

// getBySlug looks the article up by its slug field and maps the first row
// into an Article. An empty result set reports ErrNotFound.
func (m *DBModel) getBySlug(ctx context.Context, slug string) (*Article, error) {
	query := `
		SELECT doc
		FROM documents
		WHERE collection = 'article' AND doc ->> 'slug' = $1
		ORDER BY (doc ->> 'createdAt')::timestamptz`

	rows, err := m.store.Query(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNotFound
	}

	return &articles[0], nil
}

// list returns one page of articles matching the filters, newest first,
// together with the total match count. favoritedID is the resolved id of the
// user named by the favorited filter, or empty when the filter is unset.
func (m *DBModel) list(ctx context.Context, f ListFilters, favoritedID string) ([]Article, int, error) {
	conditions := []string{"collection = 'article'"}
	var args []any

	if f.Author != "" {
		args = append(args, f.Author)
		conditions = append(conditions, fmt.Sprintf("doc -> 'author' ->> 'username' = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		conditions = append(conditions, fmt.Sprintf("doc -> 'tagList' ? $%d", len(args)))
	}
	if favoritedID != "" {
		args = append(args, favoritedID)
		conditions = append(conditions, fmt.Sprintf("doc -> 'favoritedUserIds' ? $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	err := m.store.QueryRow(ctx, "SELECT count(*) FROM documents WHERE "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, docstore.TranslateError(err)
	}

	query := fmt.Sprintf(`
		SELECT doc
		FROM documents
		WHERE %s
		ORDER BY (doc ->> 'createdAt')::timestamptz DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := m.store.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// feed returns one page of articles written by the given authors, newest
// first, together with the total count.
func (m *DBModel) feed(ctx context.Context, authorIDs []string, limit, offset int) ([]Article, int, error) {
	var total int
	err := m.store.QueryRow(ctx, `
		SELECT count(*)
		FROM documents
		WHERE collection = 'article' AND doc -> 'author' ->> 'id' = ANY($1)`, pq.Array(authorIDs)).Scan(&total)
	if err != nil {
		return nil, 0, docstore.TranslateError(err)
	}

	query := `
		SELECT doc
		FROM documents
		WHERE collection = 'article' AND doc -> 'author' ->> 'id' = ANY($1)
		ORDER BY (doc ->> 'createdAt')::timestamptz DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.store.Query(ctx, query, pq.Array(authorIDs), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (m *DBModel) insertComment(ctx context.Context, c *Comment) error {
	return m.store.Insert(ctx, docstore.CommentCollection, c.ID, c)
}

func (m *DBModel) getComment(ctx context.Context, id string) (*Comment, error) {
	var c Comment
	err := m.store.Get(ctx, docstore.CommentCollection, id, &c)
	if err != nil {
		if errors.Is(err, docstore.ErrDocumentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (m *DBModel) deleteComment(ctx context.Context, id string) error {
	err := m.store.Delete(ctx, docstore.CommentCollection, id)
	if errors.Is(err, docstore.ErrDocumentNotFound) {
		return ErrCommentNotFound
	}
	return err
}

func (m *DBModel) commentsBySlug(ctx context.Context, slug string) ([]Comment, error) {
	query := `
		SELECT doc
		FROM documents
		WHERE collection = 'comment' AND doc ->> 'articleSlug' = $1
		ORDER BY (doc ->> 'createdAt')::timestamptz`

	rows, err := m.store.Query(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, docstore.TranslateError(err)
		}

		var c Comment
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, docstore.TranslateError(err)
	}

	return comments, nil
}

// deleteCommentsBySlug removes every comment referencing the article. Used
// when the article itself is deleted.
func (m *DBModel) deleteCommentsBySlug(ctx context.Context, slug string) error {
	query := `
		DELETE FROM documents
		WHERE collection = 'comment' AND doc ->> 'articleSlug' = $1`

	return m.store.Exec(ctx, query, slug)
}

// tags aggregates the distinct tags across all articles, sorted.
func (m *DBModel) tags(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT tag
		FROM documents, jsonb_array_elements_text(doc -> 'tagList') AS tag
		WHERE collection = 'article'
		ORDER BY tag`

	rows, err := m.store.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, docstore.TranslateError(err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, docstore.TranslateError(err)
	}

	return tags, nil
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	articles := []Article{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, docstore.TranslateError(err)
		}

		var a Article
		if err := json.Unmarshal(doc, &a); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, docstore.TranslateError(err)
	}

	return articles, nil
}
