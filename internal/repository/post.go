package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Izrekatel/Yatube/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `
	p.id, p.author_id, u.username AS author, p.text, p.image_url, p.image_key, p.group_id,
	g.slug AS group_slug, g.title AS group_title, p.created_at
`

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (author_id, text, image_url, image_key, group_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		post.AuthorID,
		post.Text,
		post.ImageURL,
		post.ImageKey,
		post.GroupID,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		LEFT JOIN groups g ON g.id = p.group_id
		WHERE p.id = $1
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// Update rewrites the mutable fields only. Author and creation timestamp
// never change.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	query := `
		UPDATE posts
		SET text = $2, image_url = $3, image_key = $4, group_id = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		post.ID,
		post.Text,
		post.ImageURL,
		post.ImageKey,
		post.GroupID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error) {
	where, args := buildPostFilter(filter)
	query := fmt.Sprintf(`
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		LEFT JOIN groups g ON g.id = p.group_id
		%s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	where, args := buildPostFilter(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM posts p %s`, where)

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func buildPostFilter(filter model.PostFilter) (string, []interface{}) {
	var args []interface{}
	where := ""
	add := func(clause string) {
		if where == "" {
			where = "WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		add(fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		add(fmt.Sprintf("p.group_id = $%d", len(args)))
	}
	if filter.FollowedBy != nil {
		args = append(args, *filter.FollowedBy)
		add(fmt.Sprintf("p.author_id IN (SELECT followee_id FROM follows WHERE follower_id = $%d)", len(args)))
	}
	return where, args
}
