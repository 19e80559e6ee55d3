package model

import "errors"

// Group is an administrator-curated category a post may belong to.
// Groups are referenced by posts, never owned by them.
type Group struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}

// CreateGroupRequest is the request body for creating a group.
// The slug is always derived from the title server-side; a client-supplied
// slug is ignored.
type CreateGroupRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MaxSlugLength caps derived slugs at the column width.
const MaxSlugLength = 100

var (
	ErrGroupNotFound = errors.New("group not found")

	// ErrSlugTaken is returned when the slug derived from a title collides
	// with an existing group. Collisions are rejected, not silently reused.
	ErrSlugTaken = errors.New("group slug already taken")

	ErrTitleRequired = errors.New("group title is required")
)
