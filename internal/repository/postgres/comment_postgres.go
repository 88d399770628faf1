package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// foreignKeyViolation is the SQLSTATE raised when comments.article_id points at a missing article.
const foreignKeyViolation = "23503"

// CommentPostgres is a PostgreSQL implementation of repository.CommentRepository.
type CommentPostgres struct {
	db *sql.DB
}

// NewCommentPostgres creates a new CommentPostgres repository.
func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CommentRepository = (*CommentPostgres)(nil)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanComment(row rowScanner) (*model.Comment, error) {
	var c model.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.ArticleID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a comment row. A foreign key violation means the parent article
// was removed after the caller checked it, and is reported as repository.ErrNotFound.
func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (content, article_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, content, article_id, created_at
	`
	out, err := scanComment(r.db.QueryRowContext(ctx, q, c.Content, c.ArticleID, c.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return out, nil
}

// FindByID fetches a single comment by its ID.
func (r *CommentPostgres) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	const q = `
		SELECT id, content, article_id, created_at
		FROM comments
		WHERE id = $1
	`
	c, err := scanComment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find comment %d: %w", id, err)
	}
	return c, nil
}

// ListByArticleID returns the comments of one article ordered by ID.
func (r *CommentPostgres) ListByArticleID(ctx context.Context, articleID int64) ([]model.Comment, error) {
	return listComments(ctx, r.db, articleID)
}

// CountByArticleID counts the comments of one article.
func (r *CommentPostgres) CountByArticleID(ctx context.Context, articleID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM comments WHERE article_id = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, articleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments of article %d: %w", articleID, err)
	}
	return n, nil
}

func listComments(ctx context.Context, q queryer, articleID int64) ([]model.Comment, error) {
	const qList = `
		SELECT id, content, article_id, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, qList, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments of article %d: %w", articleID, err)
	}
	defer rows.Close()

	items := make([]model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("list comments of article %d: scan: %w", articleID, err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments of article %d: %w", articleID, err)
	}
	return items, nil
}
