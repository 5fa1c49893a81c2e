package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Post represents a blog post.
type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID     int    `json:"id"`
	Text   string `json:"text" validate:"required"`
	PostID int    `json:"post_id"`
}
