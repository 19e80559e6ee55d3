package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Izrekatel/Yatube/internal/model"
)

func followTestUsers() *mockUserRepository {
	users := map[string]*model.User{
		"alice": {ID: 1, Username: "alice"},
		"bob":   {ID: 2, Username: "bob"},
	}
	return &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if u, ok := users[username]; ok {
				return u, nil
			}
			return nil, model.ErrUserNotFound
		},
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, model.ErrUserNotFound
		},
	}
}

func TestFollowService_Follow_Success(t *testing.T) {
	followRepo := &mockFollowRepository{}
	svc := NewFollowService(followRepo, followTestUsers())

	follow, err := svc.Follow(context.Background(), 1, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if follow.User != "alice" || follow.Author != "bob" {
		t.Errorf("follow = %q -> %q, want alice -> bob", follow.User, follow.Author)
	}
	if followRepo.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", followRepo.createCalls)
	}
}

func TestFollowService_Follow_Self(t *testing.T) {
	followRepo := &mockFollowRepository{}
	svc := NewFollowService(followRepo, followTestUsers())

	_, err := svc.Follow(context.Background(), 1, "alice")
	if !errors.Is(err, model.ErrCannotFollowSelf) {
		t.Errorf("error = %v, want %v", err, model.ErrCannotFollowSelf)
	}
	if followRepo.createCalls != 0 {
		t.Error("Create should not be called for a self-follow")
	}
}

// The duplicate is detected by the constrained insert reporting no row, not
// by a prior existence check.
func TestFollowService_Follow_Duplicate(t *testing.T) {
	followRepo := &mockFollowRepository{
		createFn: func(ctx context.Context, followerID, followeeID int64) (*model.Follow, bool, error) {
			return nil, false, nil
		},
	}
	svc := NewFollowService(followRepo, followTestUsers())

	_, err := svc.Follow(context.Background(), 1, "bob")
	if !errors.Is(err, model.ErrAlreadyFollowing) {
		t.Errorf("error = %v, want %v", err, model.ErrAlreadyFollowing)
	}
}

func TestFollowService_Follow_UnknownAuthor(t *testing.T) {
	svc := NewFollowService(&mockFollowRepository{}, followTestUsers())

	_, err := svc.Follow(context.Background(), 1, "nobody")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

func TestFollowService_Unfollow(t *testing.T) {
	t.Run("removes existing edge", func(t *testing.T) {
		var deletedFollower, deletedFollowee int64
		followRepo := &mockFollowRepository{
			deleteFn: func(ctx context.Context, followerID, followeeID int64) error {
				deletedFollower, deletedFollowee = followerID, followeeID
				return nil
			},
		}
		svc := NewFollowService(followRepo, followTestUsers())

		if err := svc.Unfollow(context.Background(), 1, "bob"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deletedFollower != 1 || deletedFollowee != 2 {
			t.Errorf("deleted edge %d -> %d, want 1 -> 2", deletedFollower, deletedFollowee)
		}
	})

	t.Run("no edge to remove", func(t *testing.T) {
		followRepo := &mockFollowRepository{
			deleteFn: func(ctx context.Context, followerID, followeeID int64) error {
				return model.ErrNotFollowing
			},
		}
		svc := NewFollowService(followRepo, followTestUsers())

		err := svc.Unfollow(context.Background(), 1, "bob")
		if !errors.Is(err, model.ErrNotFollowing) {
			t.Errorf("error = %v, want %v", err, model.ErrNotFollowing)
		}
	})
}

func TestFollowService_List_DefaultLimitReturnsAll(t *testing.T) {
	edges := []model.Follow{
		{ID: 2, FollowerID: 1, FolloweeID: 3, User: "alice", Author: "carol"},
		{ID: 1, FollowerID: 1, FolloweeID: 2, User: "alice", Author: "bob"},
	}
	followRepo := &mockFollowRepository{
		countFn: func(ctx context.Context, followerID int64, search string) (int, error) {
			return len(edges), nil
		},
		// LIMIT semantics: a zero window selects no rows.
		listFn: func(ctx context.Context, followerID int64, search string, limit, offset int) ([]model.Follow, error) {
			if limit <= 0 {
				return []model.Follow{}, nil
			}
			if limit > len(edges) {
				limit = len(edges)
			}
			return edges[:limit], nil
		},
	}
	svc := NewFollowService(followRepo, followTestUsers())

	follows, err := svc.List(context.Background(), 1, "", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(follows) != 2 {
		t.Fatalf("got %d follows, want 2", len(follows))
	}
}

func TestFollowService_List_ExplicitLimit(t *testing.T) {
	var gotLimit int
	followRepo := &mockFollowRepository{
		countFn: func(ctx context.Context, followerID int64, search string) (int, error) {
			t.Error("count should not run when the caller supplies a limit")
			return 0, nil
		},
		listFn: func(ctx context.Context, followerID int64, search string, limit, offset int) ([]model.Follow, error) {
			gotLimit = limit
			return []model.Follow{{ID: 1}}, nil
		},
	}
	svc := NewFollowService(followRepo, followTestUsers())

	if _, err := svc.List(context.Background(), 1, "", 5, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 5 {
		t.Errorf("limit passed to repository = %d, want 5", gotLimit)
	}
}
