package model

import (
	"errors"
	"time"
)

// Comment belongs to exactly one post. The parent post always comes from the
// URL path at creation, never from the submitted body, and the author is
// always the authenticated actor.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post"`
	AuthorID  int64     `db:"author_id" json:"-"`
	Author    string    `db:"author" json:"author"` // joined username, read-only
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created"`
}

// CommentRequest is the write body for comments.
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentListResponse is the paginated API listing envelope.
type CommentListResponse struct {
	Count   int       `json:"count"`
	Results []Comment `json:"results"`
}

const MaxCommentTextLength = 2000

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("not the author of this comment")
)
