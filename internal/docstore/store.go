package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document already exists")
	ErrQueryTimeout     = errors.New("query timeout")
)

// Collections used by the application. A document is addressed by
// (collection, key) and holds a schema-flexible JSON body.
const (
	UserCollection    = "user"
	ArticleCollection = "article"
	CommentCollection = "comment"
)

type Store struct {
	db *sql.DB
}

// Open connects to the backing database and returns a store handle. The
// handle is constructed explicitly and passed to the services that need it;
// there is no package-level singleton.
func Open(dsn string, maxOpenConns, maxIdleConns int, maxIdleTime time.Duration) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get loads the document stored under (collection, key) into dest.
func (s *Store) Get(ctx context.Context, collection, key string, dest any) error {
	query := `
		SELECT doc
		FROM documents
		WHERE collection = $1 AND key = $2`

	var doc []byte
	err := s.db.QueryRowContext(ctx, query, collection, key).Scan(&doc)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrDocumentNotFound
		default:
			return translateError(err)
		}
	}

	return json.Unmarshal(doc, dest)
}

// Insert stores a new document and fails with ErrDocumentExists if the key,
// or any unique field enforced by the store, is already taken.
func (s *Store) Insert(ctx context.Context, collection, key string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (collection, key, doc)
		VALUES ($1, $2, $3)`

	_, err = s.db.ExecContext(ctx, query, collection, key, body)
	return translateError(err)
}

// Upsert creates or replaces the whole document. There is no concurrency
// token: concurrent writers to the same key follow last-write-wins.
func (s *Store) Upsert(ctx context.Context, collection, key string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (collection, key, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, key) DO UPDATE SET doc = EXCLUDED.doc`

	_, err = s.db.ExecContext(ctx, query, collection, key, body)
	return translateError(err)
}

func (s *Store) Delete(ctx context.Context, collection, key string) error {
	query := `
		DELETE FROM documents
		WHERE collection = $1 AND key = $2`

	res, err := s.db.ExecContext(ctx, query, collection, key)
	if err != nil {
		return translateError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

// Query is the raw parameterized entry point for everything the keyed
// operations cannot express (lookups by document field, filtered listings,
// aggregations).
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// QueryRow runs a parameterized query expected to return a single row.
func (s *Store) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

// Exec runs a parameterized statement against the document table.
func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, query, args...)
	return translateError(err)
}

// TranslateError maps driver-level failures onto the store's error kinds so
// that callers scanning rows themselves report them consistently.
func TranslateError(err error) error {
	return translateError(err)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrQueryTimeout
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrDocumentExists
		case "57014": // query_canceled
			return ErrQueryTimeout
		}
	}

	return err
}
