package repository

import (
	"context"
	"time"

	"github.com/Izrekatel/Yatube/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *model.User) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context) ([]model.Group, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id int64) error
	// List returns posts matching the filter, newest-first.
	List(ctx context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error)
	Count(ctx context.Context, filter model.PostFilter) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id int64) error
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
}

type FollowRepository interface {
	// Create inserts the edge as a single constrained insert. Returns false
	// (and no error) when the pair already exists.
	Create(ctx context.Context, followerID, followeeID int64) (*model.Follow, bool, error)
	// Delete removes the edge owned by followerID. Returns
	// model.ErrNotFollowing when no edge matched.
	Delete(ctx context.Context, followerID, followeeID int64) error
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	// List returns edges where followerID is the follower, optionally
	// narrowed by a substring match over the followee's username.
	List(ctx context.Context, followerID int64, search string, limit, offset int) ([]model.Follow, error)
	Count(ctx context.Context, followerID int64, search string) (int, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}
