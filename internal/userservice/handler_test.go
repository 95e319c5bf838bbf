package userservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/conduit/internal/common"
	"github.com/sushihentaime/conduit/internal/docstore"
)

func strptr(s string) *string {
	return &s
}

func setupTestService(t *testing.T) *UserService {
	dsn := common.TestPostgres("file://../../migrations", t)

	store, err := docstore.Open(dsn, 10, 5, 15*time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	connURL := common.TestRabbitMQ(t)
	mb, err := common.NewMessageBroker(connURL)
	require.NoError(t, err)

	err = common.SetupUserExchange(mb)
	require.NoError(t, err)

	return NewUserService(store, mb)
}

func TestRegister(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, "testuser", "testuser@example.com", "securepassword")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "testuser", u.Username)
	assert.Equal(t, "testuser@example.com", u.Email)
	assert.NotEmpty(t, u.HashedPassword)
	assert.NotEqual(t, "securepassword", u.HashedPassword)
	assert.Nil(t, u.Bio)
	assert.Nil(t, u.Image)
	assert.Empty(t, u.FollowingIDs)

	// second registration under the same username is a duplicate key
	_, err = s.Register(ctx, "testuser", "other@example.com", "securepassword")
	assert.ErrorIs(t, err, docstore.ErrDocumentExists)

	// and so is the same email under a new username
	_, err = s.Register(ctx, "otheruser", "testuser@example.com", "securepassword")
	assert.ErrorIs(t, err, docstore.ErrDocumentExists)
}

func TestRegisterValidation(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		username string
		email    string
		password string
		field    string
	}{
		{name: "empty username", username: "", email: "a@example.com", password: "securepassword", field: "username"},
		{name: "bad email", username: "testuser", email: "not-an-email", password: "securepassword", field: "email"},
		{name: "short password", username: "testuser", email: "a@example.com", password: "short", field: "password"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(ctx, tc.username, tc.email, tc.password)

			var validationErr common.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Errors, tc.field)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "testuser", "testuser@example.com", "securepassword")
	require.NoError(t, err)

	u, err := s.Authenticate(ctx, "testuser@example.com", "securepassword")
	assert.NoError(t, err)
	assert.Equal(t, "testuser", u.Username)

	_, err = s.Authenticate(ctx, "testuser@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "unknown@example.com", "securepassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdate(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, "testuser", "testuser@example.com", "securepassword")
	require.NoError(t, err)

	err = s.Update(ctx, u, UpdateUserParams{
		Bio:   strptr("I work at statefarm"),
		Image: strptr("https://example.com/avatar.png"),
	})
	require.NoError(t, err)

	got, err := s.GetByUsername(ctx, "testuser")
	require.NoError(t, err)
	assert.Equal(t, strptr("I work at statefarm"), got.Bio)
	assert.Equal(t, strptr("https://example.com/avatar.png"), got.Image)
	// untouched fields survive the patch
	assert.Equal(t, "testuser@example.com", got.Email)

	// password patches are rehashed
	err = s.Update(ctx, u, UpdateUserParams{Password: strptr("newsecurepassword")})
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "testuser@example.com", "newsecurepassword")
	assert.NoError(t, err)
}

func TestFollowUnfollow(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	follower, err := s.Register(ctx, "follower", "follower@example.com", "securepassword")
	require.NoError(t, err)
	target, err := s.Register(ctx, "target", "target@example.com", "securepassword")
	require.NoError(t, err)

	got, err := s.Follow(ctx, follower, "target")
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ID)
	assert.True(t, follower.IsFollowing(target.ID))

	// following twice does not duplicate the membership
	_, err = s.Follow(ctx, follower, "target")
	require.NoError(t, err)
	assert.Len(t, follower.FollowingIDs, 1)

	// persisted
	reloaded, err := s.GetByUsername(ctx, "follower")
	require.NoError(t, err)
	assert.True(t, reloaded.IsFollowing(target.ID))

	_, err = s.Unfollow(ctx, follower, "target")
	require.NoError(t, err)
	assert.False(t, follower.IsFollowing(target.ID))

	_, err = s.Follow(ctx, follower, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewProfile(t *testing.T) {
	target := &User{ID: "id-1", Username: "target", Bio: strptr("bio")}

	viewer := &User{ID: "id-2", Username: "viewer", FollowingIDs: []string{"id-1"}}
	p := NewProfile(target, viewer)
	assert.True(t, p.Following)
	assert.Equal(t, "target", p.Username)

	p = NewProfile(target, &AnonymousUser)
	assert.False(t, p.Following)

	p = NewProfile(target, nil)
	assert.False(t, p.Following)
}
