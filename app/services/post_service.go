package services

import (
	"context"
	"fmt"

	"postboard/app/errs"
	"postboard/app/models"
	"postboard/app/repositories"
)

// Client-facing messages for domain errors.
const (
	MsgPostNotFound        = "The post with the specified ID does not exist."
	MsgPostFieldsRequired  = "Please provide title and contents for the post."
	MsgCommentTextRequired = "Please provide text for the comment."
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns every post.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns the post with id or a 404 domain error.
func (s *PostService) GetPost(ctx context.Context, id int) (models.Post, error) {
	posts, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to find post %d: %w", id, err)
	}
	if len(posts) == 0 {
		return models.Post{}, errs.NewNotFoundError(MsgPostNotFound)
	}
	return posts[0], nil
}

// CreatePost validates and stores a new post.
func (s *PostService) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	if err := post.Validate(); err != nil {
		return models.Post{}, errs.NewBadRequestError(MsgPostFieldsRequired)
	}

	created, err := s.postRepo.Insert(ctx, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}
	return created, nil
}

// UpdatePost replaces title and contents of the post with id and returns
// the post as stored afterwards.
//
// The existence check and the update are separate store calls; a delete in
// between surfaces as a 404 from the final read.
func (s *PostService) UpdatePost(ctx context.Context, id int, patch models.Post) (models.Post, error) {
	if err := patch.Validate(); err != nil {
		return models.Post{}, errs.NewBadRequestError(MsgPostFieldsRequired)
	}

	if _, err := s.GetPost(ctx, id); err != nil {
		return models.Post{}, err
	}

	if _, err := s.postRepo.Update(ctx, id, patch); err != nil {
		return models.Post{}, fmt.Errorf("failed to update post %d: %w", id, err)
	}

	return s.GetPost(ctx, id)
}

// DeletePost removes the post with id and returns it as it was before the
// delete.
func (s *PostService) DeletePost(ctx context.Context, id int) (models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return models.Post{}, err
	}

	if _, err := s.postRepo.Remove(ctx, id); err != nil {
		return models.Post{}, fmt.Errorf("failed to remove post %d: %w", id, err)
	}
	return post, nil
}
