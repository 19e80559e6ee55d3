package service

import (
	"context"

	"github.com/Izrekatel/Yatube/internal/model"
	"github.com/Izrekatel/Yatube/internal/repository"
)

// FeedService composes the four paginated listings: global, per-group,
// per-author and per-subscriber. All feeds are newest-first with a fixed
// page size of ten posts.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Global returns one page of all posts, unfiltered.
func (s *FeedService) Global(ctx context.Context, page int) (*model.FeedPage, error) {
	return s.page(ctx, model.PostFilter{}, page)
}

// Group returns one page of a group's posts. Unknown slugs are
// ErrGroupNotFound (a 404 at both front-ends).
func (s *FeedService) Group(ctx context.Context, slug string, page int) (*model.Group, *model.FeedPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	feed, err := s.page(ctx, model.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return group, feed, nil
}

// Profile returns one page of an author's posts plus their total post count
// and, for an authenticated viewer, the follow affordance.
func (s *FeedService) Profile(ctx context.Context, username string, page int, viewerID *int64) (*model.ProfilePage, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	feed, err := s.page(ctx, model.PostFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}

	profile := &model.ProfilePage{
		Author:    author,
		PostCount: feed.Pagination.Count,
		Feed:      *feed,
	}

	if viewerID != nil && *viewerID != author.ID {
		following, err := s.followRepo.Exists(ctx, *viewerID, author.ID)
		if err == nil {
			profile.Following = following
		}
	}

	return profile, nil
}

// Subscriptions returns one page of posts by authors the viewer follows.
// Following nobody yields an empty page, not an error.
func (s *FeedService) Subscriptions(ctx context.Context, viewerID int64, page int) (*model.FeedPage, error) {
	return s.page(ctx, model.PostFilter{FollowedBy: &viewerID}, page)
}

func (s *FeedService) page(ctx context.Context, filter model.PostFilter, page int) (*model.FeedPage, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	numPages := (count + model.FeedPageSize - 1) / model.FeedPageSize
	if numPages < 1 {
		numPages = 1
	}
	if page > numPages {
		page = numPages
	}

	offset := (page - 1) * model.FeedPageSize
	posts, err := s.postRepo.List(ctx, filter, model.FeedPageSize, offset)
	if err != nil {
		return nil, err
	}

	return &model.FeedPage{
		Posts: posts,
		Pagination: model.Pagination{
			Page:     page,
			NumPages: numPages,
			Count:    count,
		},
	}, nil
}
