package services

import (
	"context"
	"fmt"

	"postboard/app/errs"
	"postboard/app/models"
	"postboard/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// ListPostComments returns the comments of a post. A post without comments
// is indistinguishable from a missing post and yields a 404.
func (s *CommentService) ListPostComments(ctx context.Context, postID int) ([]models.Comment, error) {
	comments, err := s.commentRepo.FindPostComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments of post %d: %w", postID, err)
	}
	if len(comments) == 0 {
		return nil, errs.NewNotFoundError(MsgPostNotFound)
	}
	return comments, nil
}

// CreateComment stores a comment after checking that its post exists.
// Nothing prevents the post from being deleted between the check and the
// insert.
func (s *CommentService) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	if err := comment.Validate(); err != nil {
		return models.Comment{}, errs.NewBadRequestError(MsgCommentTextRequired)
	}

	posts, err := s.postRepo.FindByID(ctx, comment.PostID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("failed to find post %d: %w", comment.PostID, err)
	}
	if len(posts) == 0 {
		return models.Comment{}, errs.NewNotFoundError(MsgPostNotFound)
	}
	if err := comment.SetPost(&posts[0]); err != nil {
		return models.Comment{}, err
	}

	created, err := s.commentRepo.InsertComment(ctx, comment)
	if err != nil {
		return models.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}
	return created, nil
}
