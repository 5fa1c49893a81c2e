package repositories

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"postboard/app/models"
)

// Supported database/sql drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	tablePosts    = "posts"
	tableComments = "comments"

	fieldID       = "id"
	fieldTitle    = "title"
	fieldContents = "contents"
	fieldText     = "text"
	fieldPostID   = "post_id"
)

//go:embed migrations
var migrationsFS embed.FS

// SQLStore implements Store on sqlite or postgres through database/sql.
type SQLStore struct {
	db      *sql.DB
	driver  string
	builder sq.StatementBuilderType
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps an open database. driver selects the placeholder
// format and the migration set.
func NewSQLStore(db *sql.DB, driver string) (*SQLStore, error) {
	builder := sq.StatementBuilder
	switch driver {
	case DriverSQLite:
		builder = builder.PlaceholderFormat(sq.Question)
	case DriverPostgres:
		builder = builder.PlaceholderFormat(sq.Dollar)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	return &SQLStore{db: db, driver: driver, builder: builder}, nil
}

// OpenSQL opens and pings the database at dsn.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sql db: %w", err)
	}

	// sqlite serializes writers anyway; one connection avoids SQLITE_BUSY.
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sql db: %w", err)
	}

	store, err := NewSQLStore(db, driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Migrate applies every pending up migration and returns the resulting
// schema version.
func (s *SQLStore) Migrate(ctx context.Context) (uint, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m, err := s.migrateInstance()
	if err != nil {
		return 0, fmt.Errorf("failed to get migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to apply migration: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("migration %d is dirty", version)
	}
	return version, nil
}

func (s *SQLStore) migrateInstance() (*migrate.Migrate, error) {
	var (
		driver database.Driver
		err    error
	)
	switch s.driver {
	case DriverSQLite:
		driver, err = sqlite.WithInstance(s.db, &sqlite.Config{})
	case DriverPostgres:
		driver, err = postgres.WithInstance(s.db, &postgres.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migration driver: %w", s.driver, err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+s.driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, s.driver, driver)
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func postColumns() []string {
	return []string{fieldID, fieldTitle, fieldContents}
}

func commentColumns() []string {
	return []string{fieldID, fieldText, fieldPostID}
}

func scanPost(row sq.RowScanner) (models.Post, error) {
	var post models.Post
	if err := row.Scan(&post.ID, &post.Title, &post.Contents); err != nil {
		return models.Post{}, fmt.Errorf("failed to scan post: %w", err)
	}
	return post, nil
}

func scanComment(row sq.RowScanner) (models.Comment, error) {
	var comment models.Comment
	if err := row.Scan(&comment.ID, &comment.Text, &comment.PostID); err != nil {
		return models.Comment{}, fmt.Errorf("failed to scan comment: %w", err)
	}
	return comment, nil
}

func (s *SQLStore) Find(ctx context.Context) ([]models.Post, error) {
	q := s.builder.Select(postColumns()...).
		From(tablePosts).
		OrderBy(fieldID).
		RunWith(s.db)

	return queryPosts(ctx, q)
}

func (s *SQLStore) FindByID(ctx context.Context, id int) ([]models.Post, error) {
	q := s.builder.Select(postColumns()...).
		From(tablePosts).
		Where(sq.Eq{fieldID: id}).
		RunWith(s.db)

	return queryPosts(ctx, q)
}

func queryPosts(ctx context.Context, q sq.SelectBuilder) (posts []models.Post, err error) {
	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close rows: %w", cerr)
		}
	}()

	posts = make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

func (s *SQLStore) Insert(ctx context.Context, post models.Post) (models.Post, error) {
	q := s.builder.Insert(tablePosts).
		Columns(fieldTitle, fieldContents).
		Values(post.Title, post.Contents).
		Suffix("RETURNING " + fieldID).
		RunWith(s.db)

	if err := q.QueryRowContext(ctx).Scan(&post.ID); err != nil {
		return models.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

func (s *SQLStore) Update(ctx context.Context, id int, patch models.Post) (int, error) {
	q := s.builder.Update(tablePosts).
		Set(fieldTitle, patch.Title).
		Set(fieldContents, patch.Contents).
		Where(sq.Eq{fieldID: id}).
		RunWith(s.db)

	res, err := q.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to update post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated posts: %w", err)
	}
	return int(n), nil
}

// Remove deletes the post and its comments in one transaction.
func (s *SQLStore) Remove(ctx context.Context, id int) (removed int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = s.builder.Delete(tableComments).
		Where(sq.Eq{fieldPostID: id}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments: %w", err)
	}

	res, err := s.builder.Delete(tablePosts).
		Where(sq.Eq{fieldID: id}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted posts: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(n), nil
}

func (s *SQLStore) FindPostComments(ctx context.Context, postID int) (comments []models.Comment, err error) {
	rows, err := s.builder.Select(commentColumns()...).
		From(tableComments).
		Where(sq.Eq{fieldPostID: postID}).
		OrderBy(fieldID).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close rows: %w", cerr)
		}
	}()

	comments = make([]models.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}

func (s *SQLStore) InsertComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	q := s.builder.Insert(tableComments).
		Columns(fieldText, fieldPostID).
		Values(comment.Text, comment.PostID).
		Suffix("RETURNING " + fieldID).
		RunWith(s.db)

	if err := q.QueryRowContext(ctx).Scan(&comment.ID); err != nil {
		return models.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}
	return comment, nil
}
