package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	assert.NoError(t, (&Comment{Text: "Nice post", PostID: 1}).Validate())
	assert.NoError(t, (&Comment{Text: "No post id yet"}).Validate())
	assert.Error(t, (&Comment{PostID: 1}).Validate())
}

func TestCommentSetPost(t *testing.T) {
	comment := &Comment{ID: 1, Text: "Test Comment"}

	t.Run("set valid post", func(t *testing.T) {
		err := comment.SetPost(&Post{ID: 4, Title: "Test Post", Contents: "Test Contents"})
		assert.NoError(t, err)
		assert.Equal(t, 4, comment.PostID)
	})

	t.Run("set nil post", func(t *testing.T) {
		err := comment.SetPost(nil)
		assert.Error(t, err)
	})
}
