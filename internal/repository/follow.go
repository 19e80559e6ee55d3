package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Izrekatel/Yatube/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge relying on the UNIQUE(follower_id, followee_id)
// constraint to reject duplicates atomically. Concurrent duplicate requests
// never race a read-then-write sequence.
func (r *followRepository) Create(ctx context.Context, followerID, followeeID int64) (*model.Follow, bool, error) {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
		RETURNING id, created_at
	`
	follow := &model.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	err := r.db.QueryRowxContext(ctx, query, followerID, followeeID).Scan(&follow.ID, &follow.CreatedAt)
	if err == sql.ErrNoRows {
		// Conflict: the pair already exists.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create follow: %w", err)
	}
	return follow, true, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`
	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFollowing
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

func (r *followRepository) List(ctx context.Context, followerID int64, search string, limit, offset int) ([]model.Follow, error) {
	query := `
		SELECT f.id, f.follower_id, f.followee_id,
		       uf.username AS "user", ua.username AS author, f.created_at
		FROM follows f
		JOIN users uf ON uf.id = f.follower_id
		JOIN users ua ON ua.id = f.followee_id
		WHERE f.follower_id = $1 AND ($2 = '' OR ua.username ILIKE '%' || $2 || '%')
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $3 OFFSET $4
	`
	follows := []model.Follow{}
	err := r.db.SelectContext(ctx, &follows, query, followerID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list follows: %w", err)
	}
	return follows, nil
}

func (r *followRepository) Count(ctx context.Context, followerID int64, search string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM follows f
		JOIN users ua ON ua.id = f.followee_id
		WHERE f.follower_id = $1 AND ($2 = '' OR ua.username ILIKE '%' || $2 || '%')
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, followerID, search)
	if err != nil {
		return 0, fmt.Errorf("failed to count follows: %w", err)
	}
	return count, nil
}
