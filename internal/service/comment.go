package service

import (
	"context"
	"strings"

	"github.com/Izrekatel/Yatube/internal/model"
	"github.com/Izrekatel/Yatube/internal/repository"
)

// CommentService handles comments nested under posts. The parent post id
// always comes from the URL path and the author from the authenticated
// actor, so a client can never attach a comment elsewhere by spoofing a
// field.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Create adds a comment to the post named by the URL path.
func (s *CommentService) Create(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error) {
	if err := validateCommentText(text); err != nil {
		return nil, err
	}

	// A comment cannot exist without a valid parent post.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Update edits the actor's own comment. The comment must belong to the post
// named in the path.
func (s *CommentService) Update(ctx context.Context, postID, commentID, actorID int64, text string) (*model.Comment, error) {
	comment, err := s.getForPost(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, model.ErrNotCommentAuthor
	}
	if err := validateCommentText(text); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Delete removes the actor's own comment.
func (s *CommentService) Delete(ctx context.Context, postID, commentID, actorID int64) error {
	comment, err := s.getForPost(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return model.ErrNotCommentAuthor
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *CommentService) GetByID(ctx context.Context, postID, commentID int64) (*model.Comment, error) {
	return s.getForPost(ctx, postID, commentID)
}

// ListByPost returns a post's comments, oldest first, with the API's
// limit/offset envelope.
func (s *CommentService) ListByPost(ctx context.Context, postID int64, limit, offset int) (*model.CommentListResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = count
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &model.CommentListResponse{Count: count, Results: comments}, nil
}

func (s *CommentService) getForPost(ctx context.Context, postID, commentID int64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, model.ErrCommentNotFound
	}
	return comment, nil
}

func validateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return model.ErrTextRequired
	}
	if len(text) > model.MaxCommentTextLength {
		return model.ErrTextTooLong
	}
	return nil
}
