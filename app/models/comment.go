package models

import "errors"

// Validate reports an error when the comment has no text.
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// SetPost points the comment at post.
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.PostID = post.ID
	return nil
}
