package mock

import (
	"context"
	"sort"
	"sync"

	"postboard/app/models"
	"postboard/app/repositories"
)

// Operation names accepted by FailWith.
const (
	OpFind             = "Find"
	OpFindByID         = "FindByID"
	OpInsert           = "Insert"
	OpUpdate           = "Update"
	OpRemove           = "Remove"
	OpFindPostComments = "FindPostComments"
	OpInsertComment    = "InsertComment"
	OpPing             = "Ping"
)

// Store is an in-memory repositories.Store for tests.
type Store struct {
	posts         map[int]models.Post
	comments      map[int]models.Comment
	nextPostID    int
	nextCommentID int
	failures      map[string]error
	mutex         sync.RWMutex
}

var _ repositories.Store = (*Store)(nil)

func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// Clear drops all data and configured failures.
func (m *Store) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[int]models.Post)
	m.comments = make(map[int]models.Comment)
	m.nextPostID = 1
	m.nextCommentID = 1
	m.failures = make(map[string]error)
}

// FailWith makes every later call of op return err. A nil err clears it.
func (m *Store) FailWith(op string, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

func (m *Store) failure(op string) error {
	return m.failures[op]
}

func (m *Store) Find(ctx context.Context) ([]models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if err := m.failure(OpFind); err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *Store) FindByID(ctx context.Context, id int) ([]models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if err := m.failure(OpFindByID); err != nil {
		return nil, err
	}

	post, exists := m.posts[id]
	if !exists {
		return []models.Post{}, nil
	}
	return []models.Post{post}, nil
}

func (m *Store) Insert(ctx context.Context, post models.Post) (models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.failure(OpInsert); err != nil {
		return models.Post{}, err
	}

	post.ID = m.nextPostID
	m.nextPostID++
	m.posts[post.ID] = post
	return post, nil
}

func (m *Store) Update(ctx context.Context, id int, patch models.Post) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.failure(OpUpdate); err != nil {
		return 0, err
	}

	post, exists := m.posts[id]
	if !exists {
		return 0, nil
	}
	post.Apply(patch)
	m.posts[id] = post
	return 1, nil
}

func (m *Store) Remove(ctx context.Context, id int) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.failure(OpRemove); err != nil {
		return 0, err
	}

	if _, exists := m.posts[id]; !exists {
		return 0, nil
	}
	delete(m.posts, id)
	for commentID, comment := range m.comments {
		if comment.PostID == id {
			delete(m.comments, commentID)
		}
	}
	return 1, nil
}

func (m *Store) FindPostComments(ctx context.Context, postID int) ([]models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if err := m.failure(OpFindPostComments); err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0)
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (m *Store) InsertComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.failure(OpInsertComment); err != nil {
		return models.Comment{}, err
	}

	comment.ID = m.nextCommentID
	m.nextCommentID++
	m.comments[comment.ID] = comment
	return comment, nil
}

func (m *Store) Ping(ctx context.Context) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.failure(OpPing)
}

func (m *Store) Close() error {
	return nil
}

// PostCount returns the number of stored posts.
func (m *Store) PostCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.posts)
}

// CommentCount returns the number of stored comments.
func (m *Store) CommentCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.comments)
}
