package userservice

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sushihentaime/conduit/internal/docstore"
)

var ErrNotFound = errors.New("user not found")

func newUserModel(store *docstore.Store) *DBModel {
	return &DBModel{store: store}
}

func (m *DBModel) insert(ctx context.Context, u *User) error {
	return m.store.Insert(ctx, docstore.UserCollection, u.ID, u)
}

func (m *DBModel) upsert(ctx context.Context, u *User) error {
	return m.store.Upsert(ctx, docstore.UserCollection, u.ID, u)
}

func (m *DBModel) getByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT doc
		FROM documents
		WHERE collection = 'user' AND doc ->> 'id' = $1`

	return m.queryOne(ctx, query, id)
}

func (m *DBModel) getByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT doc
		FROM documents
		WHERE collection = 'user' AND doc ->> 'username' = $1`

	return m.queryOne(ctx, query, username)
}

func (m *DBModel) getByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT doc
		FROM documents
		WHERE collection = 'user' AND doc ->> 'email' = $1`

	return m.queryOne(ctx, query, email)
}

// queryOne runs a parameterized user lookup and maps the first row into a
// User. An empty result set reports ErrNotFound.
func (m *DBModel) queryOne(ctx context.Context, query string, arg any) (*User, error) {
	rows, err := m.store.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, docstore.TranslateError(err)
		}
		return nil, ErrNotFound
	}

	var doc []byte
	if err := rows.Scan(&doc); err != nil {
		return nil, docstore.TranslateError(err)
	}

	var u User
	if err := json.Unmarshal(doc, &u); err != nil {
		return nil, err
	}

	return &u, nil
}
