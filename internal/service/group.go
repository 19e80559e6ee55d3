package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"github.com/Izrekatel/Yatube/internal/model"
	"github.com/Izrekatel/Yatube/internal/repository"
)

// GroupService handles group administration and lookups. Groups are created
// by staff users only and referenced, never owned, by posts.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// Create derives the slug from the title and inserts the group. A slug
// collision is an explicit error; a colliding title is never silently
// remapped onto the existing group.
func (s *GroupService) Create(ctx context.Context, actorID int64, req *model.CreateGroupRequest) (*model.Group, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff {
		return nil, model.ErrStaffOnly
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.ErrTitleRequired
	}

	group := &model.Group{
		Title:       title,
		Slug:        DeriveSlug(title),
		Description: req.Description,
	}

	// The unique constraint is the authority; the repository maps the
	// violation to ErrSlugTaken.
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeriveSlug builds a URL-safe identifier from a title, capped at the slug
// column width. Cyrillic and other non-ASCII titles are transliterated.
func DeriveSlug(title string) string {
	derived := slug.Make(title)
	if len(derived) > model.MaxSlugLength {
		derived = strings.Trim(derived[:model.MaxSlugLength], "-")
	}
	return derived
}

func (s *GroupService) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

func (s *GroupService) GetBySlug(ctx context.Context, slugValue string) (*model.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slugValue)
}

func (s *GroupService) List(ctx context.Context) ([]model.Group, error) {
	return s.groupRepo.List(ctx)
}
