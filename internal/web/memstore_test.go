package web_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Izrekatel/Yatube/internal/model"
)

// memStore is an in-memory stand-in for the database, shared by all the
// repository fakes so route tests can observe state across requests.
type memStore struct {
	mu       sync.Mutex
	seq      map[string]int64
	users    map[int64]*model.User
	groups   map[int64]*model.Group
	posts    map[int64]*model.Post
	comments map[int64]*model.Comment
	follows  map[int64]*model.Follow
	tokens   map[string]*model.RefreshToken
}

func newMemStore() *memStore {
	return &memStore{
		seq:      map[string]int64{},
		users:    map[int64]*model.User{},
		groups:   map[int64]*model.Group{},
		posts:    map[int64]*model.Post{},
		comments: map[int64]*model.Comment{},
		follows:  map[int64]*model.Follow{},
		tokens:   map[string]*model.RefreshToken{},
	}
}

// id hands out per-entity sequences, mirroring per-table serial columns.
func (s *memStore) id(entity string) int64 {
	s.seq[entity]++
	return s.seq[entity]
}

func (s *memStore) postCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *memStore) commentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

func (s *memStore) followCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.follows)
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return model.ErrUsernameExists
		}
		if u.Email == user.Email {
			return model.ErrEmailExists
		}
	}
	user.ID = r.s.id("users")
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = user
	return nil
}

func (r memUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, model.ErrUserNotFound
}

func (r memUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r memUserRepo) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	copied := *user
	r.s.users[user.ID] = &copied
	return nil
}

type memGroupRepo struct{ s *memStore }

func (r memGroupRepo) Create(_ context.Context, group *model.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groups {
		if g.Slug == group.Slug {
			return model.ErrSlugTaken
		}
	}
	group.ID = r.s.id("groups")
	r.s.groups[group.ID] = group
	return nil
}

func (r memGroupRepo) GetByID(_ context.Context, id int64) (*model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g, ok := r.s.groups[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, model.ErrGroupNotFound
}

func (r memGroupRepo) GetBySlug(_ context.Context, slug string) (*model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groups {
		if g.Slug == slug {
			copied := *g
			return &copied, nil
		}
	}
	return nil, model.ErrGroupNotFound
}

func (r memGroupRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (r memGroupRepo) List(_ context.Context) ([]model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	groups := make([]model.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

type memPostRepo struct{ s *memStore }

func (r memPostRepo) Create(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post.ID = r.s.id("posts")
	post.CreatedAt = time.Now()
	copied := *post
	r.s.posts[post.ID] = &copied
	return nil
}

func (r memPostRepo) join(p *model.Post) model.Post {
	copied := *p
	if u, ok := r.s.users[p.AuthorID]; ok {
		copied.Author = u.Username
	}
	if p.GroupID != nil {
		if g, ok := r.s.groups[*p.GroupID]; ok {
			copied.GroupSlug = &g.Slug
			copied.GroupTitle = &g.Title
		}
	}
	return copied
}

func (r memPostRepo) GetByID(_ context.Context, id int64) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.posts[id]; ok {
		joined := r.join(p)
		return &joined, nil
	}
	return nil, model.ErrPostNotFound
}

func (r memPostRepo) Update(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[post.ID]; !ok {
		return model.ErrPostNotFound
	}
	copied := *post
	r.s.posts[post.ID] = &copied
	return nil
}

func (r memPostRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return model.ErrPostNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r memPostRepo) matches(p *model.Post, filter model.PostFilter) bool {
	if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
		return false
	}
	if filter.GroupID != nil && (p.GroupID == nil || *p.GroupID != *filter.GroupID) {
		return false
	}
	if filter.FollowedBy != nil {
		for _, f := range r.s.follows {
			if f.FollowerID == *filter.FollowedBy && f.FolloweeID == p.AuthorID {
				return true
			}
		}
		return false
	}
	return true
}

func (r memPostRepo) List(_ context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var posts []model.Post
	for _, p := range r.s.posts {
		if r.matches(p, filter) {
			posts = append(posts, r.join(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	if offset >= len(posts) {
		return nil, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (r memPostRepo) Count(_ context.Context, filter model.PostFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, p := range r.s.posts {
		if r.matches(p, filter) {
			count++
		}
	}
	return count, nil
}

type memCommentRepo struct{ s *memStore }

func (r memCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	comment.ID = r.s.id("comments")
	comment.CreatedAt = time.Now()
	copied := *comment
	r.s.comments[comment.ID] = &copied
	return nil
}

func (r memCommentRepo) join(c *model.Comment) model.Comment {
	copied := *c
	if u, ok := r.s.users[c.AuthorID]; ok {
		copied.Author = u.Username
	}
	return copied
}

func (r memCommentRepo) GetByID(_ context.Context, id int64) (*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.comments[id]; ok {
		joined := r.join(c)
		return &joined, nil
	}
	return nil, model.ErrCommentNotFound
}

func (r memCommentRepo) Update(_ context.Context, comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[comment.ID]; !ok {
		return model.ErrCommentNotFound
	}
	copied := *comment
	r.s.comments[comment.ID] = &copied
	return nil
}

func (r memCommentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return model.ErrCommentNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r memCommentRepo) ListByPost(_ context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var comments []model.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			comments = append(comments, r.join(c))
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	if offset >= len(comments) {
		return nil, nil
	}
	end := offset + limit
	if end > len(comments) {
		end = len(comments)
	}
	return comments[offset:end], nil
}

func (r memCommentRepo) CountByPost(_ context.Context, postID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, c := range r.s.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

type memFollowRepo struct{ s *memStore }

func (r memFollowRepo) Create(_ context.Context, followerID, followeeID int64) (*model.Follow, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FolloweeID == followeeID {
			return nil, false, nil
		}
	}
	follow := &model.Follow{
		ID:         r.s.id("follows"),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	}
	r.s.follows[follow.ID] = follow
	copied := *follow
	return &copied, true, nil
}

func (r memFollowRepo) Delete(_ context.Context, followerID, followeeID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, f := range r.s.follows {
		if f.FollowerID == followerID && f.FolloweeID == followeeID {
			delete(r.s.follows, id)
			return nil
		}
	}
	return model.ErrNotFollowing
}

func (r memFollowRepo) Exists(_ context.Context, followerID, followeeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.follows {
		if f.FollowerID == followerID && f.FolloweeID == followeeID {
			return true, nil
		}
	}
	return false, nil
}

// matching requires the store lock and mirrors the SQL query's filter:
// the search narrows by followee username only.
func (r memFollowRepo) matching(followerID int64, search string) []model.Follow {
	var follows []model.Follow
	for _, f := range r.s.follows {
		if f.FollowerID != followerID {
			continue
		}
		copied := *f
		if u, ok := r.s.users[f.FollowerID]; ok {
			copied.User = u.Username
		}
		if u, ok := r.s.users[f.FolloweeID]; ok {
			copied.Author = u.Username
		}
		if search != "" && !strings.Contains(strings.ToLower(copied.Author), strings.ToLower(search)) {
			continue
		}
		follows = append(follows, copied)
	}
	sort.Slice(follows, func(i, j int) bool { return follows[i].ID < follows[j].ID })
	return follows
}

func (r memFollowRepo) List(_ context.Context, followerID int64, search string, limit, offset int) ([]model.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	follows := r.matching(followerID, search)
	// Same window semantics as LIMIT/OFFSET: a zero limit selects no rows.
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(follows) {
		return []model.Follow{}, nil
	}
	follows = follows[offset:]
	if len(follows) > limit {
		follows = follows[:limit]
	}
	return follows, nil
}

func (r memFollowRepo) Count(_ context.Context, followerID int64, search string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.matching(followerID, search)), nil
}

type memRefreshTokenRepo struct{ s *memStore }

func (r memRefreshTokenRepo) Create(_ context.Context, token *model.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	r.s.tokens[token.TokenHash] = token
	return nil
}

func (r memRefreshTokenRepo) FindByTokenHash(_ context.Context, tokenHash string) (*model.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tokens[tokenHash]; ok {
		return t, nil
	}
	return nil, model.ErrRefreshTokenNotFound
}

func (r memRefreshTokenRepo) Revoke(_ context.Context, id string, replacedBy *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tokens {
		if t.ID == id {
			now := time.Now()
			t.RevokedAt = &now
			t.ReplacedBy = replacedBy
			return nil
		}
	}
	return model.ErrRefreshTokenNotFound
}

func (r memRefreshTokenRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for _, t := range r.s.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r memRefreshTokenRepo) DeleteExpired(_ context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}
