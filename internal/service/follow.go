package service

import (
	"context"

	"github.com/Izrekatel/Yatube/internal/model"
	"github.com/Izrekatel/Yatube/internal/repository"
)

// FollowService maintains the directed follow graph. Edges are owned by the
// follower: only the follower side may delete, and the follower is always
// the authenticated actor, never a client-supplied id.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates an edge from the actor to the named author. Duplicates are
// rejected by the storage constraint, not a read-then-write check, so
// concurrent requests cannot race in a second edge.
func (s *FollowService) Follow(ctx context.Context, followerID int64, authorUsername string) (*model.Follow, error) {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}
	if author.ID == followerID {
		return nil, model.ErrCannotFollowSelf
	}

	follow, inserted, err := s.followRepo.Create(ctx, followerID, author.ID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, model.ErrAlreadyFollowing
	}

	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err == nil {
		follow.User = follower.Username
	}
	follow.Author = author.Username
	return follow, nil
}

// Unfollow deletes the actor's edge to the named author if present.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, authorUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, followerID, author.ID)
}

// IsFollowing reports whether the viewer follows the author.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followeeID)
}

// List returns the actor's own edges, optionally narrowed by a substring
// search over the followee's username. A non-positive limit returns every
// matching edge.
func (s *FollowService) List(ctx context.Context, followerID int64, search string, limit, offset int) ([]model.Follow, error) {
	if limit <= 0 {
		count, err := s.followRepo.Count(ctx, followerID, search)
		if err != nil {
			return nil, err
		}
		limit = count
	}
	return s.followRepo.List(ctx, followerID, search, limit, offset)
}
