package service

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Izrekatel/Yatube/internal/cache"
	"github.com/Izrekatel/Yatube/internal/model"
	"github.com/Izrekatel/Yatube/internal/repository"
)

// PostService handles authoring operations. Mutations are author-only; the
// author and creation timestamp are fixed at creation. Every successful
// mutation drops the rendered-page cache so the index never serves a stale
// page past the write.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	media     *MediaService
	pages     cache.PageCache
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, media *MediaService, pages cache.PageCache) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		media:     media,
		pages:     pages,
	}
}

// Create inserts a post for the authenticated author. The image, when
// present, has already been stored and is passed as its upload result.
func (s *PostService) Create(ctx context.Context, authorID int64, text string, groupID *int64, image *model.UploadResult) (*model.Post, error) {
	if err := validatePostText(text); err != nil {
		return nil, err
	}
	if groupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
			return nil, err
		}
	}

	post := &model.Post{
		AuthorID: authorID,
		Text:     text,
		GroupID:  groupID,
	}
	if image != nil {
		post.ImageURL = &image.URL
		post.ImageKey = &image.Key
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.clearPages(ctx)
	return s.postRepo.GetByID(ctx, post.ID)
}

// Update edits text, group and image of an existing post. Only the author
// may mutate; anyone else gets ErrNotPostAuthor.
func (s *PostService) Update(ctx context.Context, postID, actorID int64, text string, groupID *int64, image *model.UploadResult) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, model.ErrNotPostAuthor
	}

	if err := validatePostText(text); err != nil {
		return nil, err
	}
	if groupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
			return nil, err
		}
	}

	post.Text = text
	post.GroupID = groupID
	if image != nil {
		if post.ImageKey != nil {
			s.deleteBlob(ctx, *post.ImageKey)
		}
		post.ImageURL = &image.URL
		post.ImageKey = &image.Key
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.clearPages(ctx)
	return s.postRepo.GetByID(ctx, post.ID)
}

// Delete removes the actor's own post and its stored image.
func (s *PostService) Delete(ctx context.Context, postID, actorID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return model.ErrNotPostAuthor
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	s.clearPages(ctx)
	if post.ImageKey != nil {
		s.deleteBlob(ctx, *post.ImageKey)
	}
	return nil
}

func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// List exposes limit/offset listing for the API. A non-positive limit
// returns every matching post.
func (s *PostService) List(ctx context.Context, filter model.PostFilter, limit, offset int) (*model.PostListResponse, error) {
	count, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = count
	}
	posts, err := s.postRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return &model.PostListResponse{Count: count, Results: posts}, nil
}

// clearPages invalidates cached pages after a write. Failures are logged
// only; the TTL bounds staleness when the cache backend is unreachable.
func (s *PostService) clearPages(ctx context.Context) {
	if s.pages == nil {
		return
	}
	if err := s.pages.Clear(ctx); err != nil {
		log.WithError(err).Warn("failed to clear page cache")
	}
}

func (s *PostService) deleteBlob(ctx context.Context, key string) {
	if s.media == nil {
		return
	}
	if err := s.media.DeleteObject(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to delete post image blob")
	}
}

func validatePostText(text string) error {
	if strings.TrimSpace(text) == "" {
		return model.ErrTextRequired
	}
	if len(text) > model.MaxPostTextLength {
		return model.ErrTextTooLong
	}
	return nil
}
