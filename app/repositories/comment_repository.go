package repositories

import (
	"context"
	"fmt"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// FindPostComments returns the comments of a post ordered by id. A missing
// post yields an empty slice.
func (s *BadgerStore) FindPostComments(ctx context.Context, postID int) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := s.view(ctx, func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := commentPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			comments = append(comments, comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// InsertComment stores a new comment and returns it with its generated id.
// The referenced post is not checked here.
func (s *BadgerStore) InsertComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	err := s.update(ctx, func(txn *badger.Txn) error {
		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(commentKey(comment.PostID, comment.ID), data)
	})
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}
