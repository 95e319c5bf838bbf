package userservice

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sushihentaime/conduit/internal/common"
	"github.com/sushihentaime/conduit/internal/docstore"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")

func NewUserService(store *docstore.Store, mb common.MessageProducer) *UserService {
	return &UserService{
		m:  newUserModel(store),
		mb: mb,
	}
}

// Register creates a new user account and publishes a user.registered event.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		ID:           common.NewID(),
		Username:     username,
		Email:        email,
		FollowingIDs: []string{},
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.m.insert(ctx, &u); err != nil {
		return nil, err
	}

	data, err := json.Marshal(struct {
		Username string
		Email    string
	}{
		Username: u.Username,
		Email:    u.Email,
	})
	if err != nil {
		return nil, err
	}

	if err := s.mb.Publish(ctx, data, common.UserRegisteredKey, common.UserExchange); err != nil {
		return nil, err
	}

	return &u, nil
}

// Authenticate verifies the email and password pair and returns the matching
// user. A missing user and a wrong password are reported identically.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u, err := s.m.getByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	ok, err := u.PasswordMatches(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.m.getByUsername(ctx, username)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*User, error) {
	return s.m.getByID(ctx, id)
}

// Update applies a partial patch to the user and writes the whole document
// back. Nil fields in the patch are left untouched.
func (s *UserService) Update(ctx context.Context, u *User, params UpdateUserParams) error {
	v := common.NewValidator()
	if params.Username != nil {
		validateUsername(v, *params.Username)
	}
	if params.Email != nil {
		validateEmail(v, *params.Email)
	}
	if params.Password != nil {
		validatePassword(v, *params.Password)
	}
	if !v.Valid() {
		return v.ValidationError()
	}

	if params.Username != nil {
		u.Username = *params.Username
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.Bio != nil {
		u.Bio = params.Bio
	}
	if params.Image != nil {
		u.Image = params.Image
	}
	if params.Password != nil {
		if err := u.SetPassword(*params.Password); err != nil {
			return err
		}
	}

	return s.m.upsert(ctx, u)
}

// Follow adds the named user to the follower's following set and persists
// the follower. Following an already-followed user is a no-op.
func (s *UserService) Follow(ctx context.Context, follower *User, username string) (*User, error) {
	target, err := s.m.getByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	follower.Follow(target.ID)

	if err := s.m.upsert(ctx, follower); err != nil {
		return nil, err
	}

	return target, nil
}

// Unfollow removes the named user from the follower's following set.
func (s *UserService) Unfollow(ctx context.Context, follower *User, username string) (*User, error) {
	target, err := s.m.getByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	follower.Unfollow(target.ID)

	if err := s.m.upsert(ctx, follower); err != nil {
		return nil, err
	}

	return target, nil
}
