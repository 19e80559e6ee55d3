package service

import (
	"context"

	"github.com/Izrekatel/Yatube/internal/model"
)

// The services depend on repository interfaces, so tests swap in mocks with
// per-test function fields instead of touching a database.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	updateFn           func(ctx context.Context, user *model.User) error

	createCalls int
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

type mockGroupRepository struct {
	createFn       func(ctx context.Context, group *model.Group) error
	getByIDFn      func(ctx context.Context, id int64) (*model.Group, error)
	getBySlugFn    func(ctx context.Context, slug string) (*model.Group, error)
	existsBySlugFn func(ctx context.Context, slug string) (bool, error)
	listFn         func(ctx context.Context) ([]model.Group, error)
}

func (m *mockGroupRepository) Create(ctx context.Context, group *model.Group) error {
	if m.createFn != nil {
		return m.createFn(ctx, group)
	}
	return nil
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.existsBySlugFn != nil {
		return m.existsBySlugFn(ctx, slug)
	}
	return false, nil
}

func (m *mockGroupRepository) List(ctx context.Context) ([]model.Group, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockPostRepository struct {
	createFn  func(ctx context.Context, post *model.Post) error
	getByIDFn func(ctx context.Context, id int64) (*model.Post, error)
	updateFn  func(ctx context.Context, post *model.Post) error
	deleteFn  func(ctx context.Context, id int64) error
	listFn    func(ctx context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error)
	countFn   func(ctx context.Context, filter model.PostFilter) (int, error)
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Update(ctx context.Context, post *model.Post) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPostRepository) List(ctx context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, filter)
	}
	return 0, nil
}

type mockCommentRepository struct {
	createFn      func(ctx context.Context, comment *model.Comment) error
	getByIDFn     func(ctx context.Context, id int64) (*model.Comment, error)
	updateFn      func(ctx context.Context, comment *model.Comment) error
	deleteFn      func(ctx context.Context, id int64) error
	listByPostFn  func(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error)
	countByPostFn func(ctx context.Context, postID int64) (int, error)

	createCalls int
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID, limit, offset)
	}
	return nil, nil
}

func (m *mockCommentRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	if m.countByPostFn != nil {
		return m.countByPostFn(ctx, postID)
	}
	return 0, nil
}

type mockFollowRepository struct {
	createFn func(ctx context.Context, followerID, followeeID int64) (*model.Follow, bool, error)
	deleteFn func(ctx context.Context, followerID, followeeID int64) error
	existsFn func(ctx context.Context, followerID, followeeID int64) (bool, error)
	listFn   func(ctx context.Context, followerID int64, search string, limit, offset int) ([]model.Follow, error)
	countFn  func(ctx context.Context, followerID int64, search string) (int, error)

	createCalls int
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followeeID int64) (*model.Follow, bool, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, followerID, followeeID)
	}
	return &model.Follow{ID: 1, FollowerID: followerID, FolloweeID: followeeID}, true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followeeID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followeeID)
	}
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followeeID)
	}
	return false, nil
}

func (m *mockFollowRepository) List(ctx context.Context, followerID int64, search string, limit, offset int) ([]model.Follow, error) {
	if m.listFn != nil {
		return m.listFn(ctx, followerID, search, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepository) Count(ctx context.Context, followerID int64, search string) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, followerID, search)
	}
	return 0, nil
}
