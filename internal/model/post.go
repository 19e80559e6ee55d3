package model

import (
	"errors"
	"time"
)

// Post represents an authored entry. The author and creation timestamp are
// immutable after creation; the group reference is optional.
type Post struct {
	ID         int64     `db:"id" json:"id"`
	AuthorID   int64     `db:"author_id" json:"-"`
	Author     string    `db:"author" json:"author"` // joined username, read-only on the wire
	Text       string    `db:"text" json:"text"`
	ImageURL   *string   `db:"image_url" json:"image"`
	ImageKey   *string   `db:"image_key" json:"-"`
	GroupID    *int64    `db:"group_id" json:"group"`
	GroupSlug  *string   `db:"group_slug" json:"-"`
	GroupTitle *string   `db:"group_title" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created"`
}

// PostRequest is the write body for posts on the API. Image carries an
// optional base64-encoded payload which is decoded into a stored blob.
type PostRequest struct {
	Text  string  `json:"text"`
	Image *string `json:"image"`
	Group *int64  `json:"group"`
}

// PostFilter narrows a post listing. At most one of the fields is set by
// each feed; zero-value means the global feed.
type PostFilter struct {
	AuthorID   *int64
	GroupID    *int64
	FollowedBy *int64 // posts authored by anyone this user follows
}

// PostListResponse is the paginated API listing envelope.
type PostListResponse struct {
	Count   int    `json:"count"`
	Results []Post `json:"results"`
}

const MaxPostTextLength = 10000

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("not the author of this post")
	ErrTextRequired  = errors.New("text is required")
	ErrTextTooLong   = errors.New("text too long")
)
