package userservice

import (
	"slices"

	"github.com/sushihentaime/conduit/internal/common"
	"github.com/sushihentaime/conduit/internal/docstore"
)

// AnonymousUser stands in for the requesting user on endpoints that
// personalize output for authenticated and anonymous callers alike.
var AnonymousUser = User{}

type UserService struct {
	m  *DBModel
	mb common.MessageProducer
}

type DBModel struct {
	store *docstore.Store
}

// User is the stored document. The author snapshot embedded in articles and
// the profile responses are derived from it.
type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	HashedPassword string   `json:"hashed_password"`
	Bio            *string  `json:"bio"`
	Image          *string  `json:"image"`
	FollowingIDs   []string `json:"following_ids"`
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) IsFollowing(id string) bool {
	return slices.Contains(u.FollowingIDs, id)
}

// Follow adds id to the following set. It is idempotent.
func (u *User) Follow(id string) {
	if !u.IsFollowing(id) {
		u.FollowingIDs = append(u.FollowingIDs, id)
	}
}

// Unfollow removes id from the following set. It is idempotent.
func (u *User) Unfollow(id string) {
	u.FollowingIDs = slices.DeleteFunc(u.FollowingIDs, func(fid string) bool {
		return fid == id
	})
}

// UpdateUserParams is a partial patch: nil fields are left untouched.
type UpdateUserParams struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// Profile is the API-facing representation of another user, with the
// following flag derived relative to the viewer.
type Profile struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

func NewProfile(target *User, viewer *User) Profile {
	following := false
	if viewer != nil && !viewer.IsAnonymous() && viewer.IsFollowing(target.ID) {
		following = true
	}

	return Profile{
		Username:  target.Username,
		Bio:       target.Bio,
		Image:     target.Image,
		Following: following,
	}
}

// AuthUser is the API-facing representation of the requesting user itself,
// carrying the issued token.
type AuthUser struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

func NewAuthUser(u *User, token string) AuthUser {
	return AuthUser{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}
}
