package model

import (
	"errors"
	"time"
)

// Follow is a directed edge: User (the follower) subscribes to Author's
// posts. The (follower, followee) pair is unique at the storage layer;
// self-follow is rejected at validation time.
type Follow struct {
	ID         int64     `db:"id" json:"id"`
	FollowerID int64     `db:"follower_id" json:"-"`
	FolloweeID int64     `db:"followee_id" json:"-"`
	User       string    `db:"user" json:"user"`     // follower username, read-only
	Author     string    `db:"author" json:"author"` // followee username
	CreatedAt  time.Time `db:"created_at" json:"-"`
}

// FollowRequest creates an edge from the authenticated actor to Author.
// The follower side is never client-supplied.
type FollowRequest struct {
	Author string `json:"author"`
}

var (
	ErrAlreadyFollowing = errors.New("already following this author")
	ErrNotFollowing     = errors.New("not following this author")
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
