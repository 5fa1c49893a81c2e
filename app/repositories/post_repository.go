package repositories

import (
	"context"
	"errors"
	"fmt"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// Find returns every post ordered by id.
func (s *BadgerStore) Find(ctx context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := s.view(ctx, func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID returns a one-element slice, or an empty one if no post has id.
func (s *BadgerStore) FindByID(ctx context.Context, id int) ([]models.Post, error) {
	posts := make([]models.Post, 0, 1)
	err := s.view(ctx, func(txn *badger.Txn) error {
		post, err := getPost(txn, id)
		if err != nil || post == nil {
			return err
		}
		posts = append(posts, *post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Insert stores a new post and returns it with its generated id.
func (s *BadgerStore) Insert(ctx context.Context, post models.Post) (models.Post, error) {
	err := s.update(ctx, func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// Update replaces title and contents of the post with id.
func (s *BadgerStore) Update(ctx context.Context, id int, patch models.Post) (int, error) {
	var updated int
	err := s.update(ctx, func(txn *badger.Txn) error {
		updated = 0
		post, err := getPost(txn, id)
		if err != nil || post == nil {
			return err
		}
		post.Apply(patch)

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(id), data); err != nil {
			return err
		}
		updated = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// Remove deletes the post with id together with its comments.
func (s *BadgerStore) Remove(ctx context.Context, id int) (int, error) {
	var removed int
	err := s.update(ctx, func(txn *badger.Txn) error {
		removed = 0
		_, err := txn.Get(postKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		for _, key := range keysWithPrefix(txn, commentPrefix(id)) {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		if err := txn.Delete(postKey(id)); err != nil {
			return err
		}
		removed = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// getPost returns nil without error when the post does not exist.
func getPost(txn *badger.Txn, id int) (*models.Post, error) {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	}); err != nil {
		return nil, err
	}
	return &post, nil
}
