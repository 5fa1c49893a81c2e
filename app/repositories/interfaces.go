package repositories

import (
	"context"

	"postboard/app/models"
)

// PostRepository defines the interface for post data access.
//
// FindByID signals "not found" with an empty slice and a nil error. An
// error is only returned when the store itself fails.
type PostRepository interface {
	Find(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id int) ([]models.Post, error)
	Insert(ctx context.Context, post models.Post) (models.Post, error)
	// Update and Remove return the number of posts affected.
	Update(ctx context.Context, id int, patch models.Post) (int, error)
	Remove(ctx context.Context, id int) (int, error)
}

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	FindPostComments(ctx context.Context, postID int) ([]models.Comment, error)
	InsertComment(ctx context.Context, comment models.Comment) (models.Comment, error)
}

// Store is a complete backing store for the API.
type Store interface {
	PostRepository
	CommentRepository
	Ping(ctx context.Context) error
	Close() error
}
