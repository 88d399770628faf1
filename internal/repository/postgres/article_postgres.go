package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogapi/internal/database"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// ArticlePostgres is a PostgreSQL implementation of repository.ArticleRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ArticlePostgres struct {
	db *sql.DB
}

// NewArticlePostgres creates a new ArticlePostgres repository.
func NewArticlePostgres(db *sql.DB) *ArticlePostgres {
	return &ArticlePostgres{db: db}
}

var _ repository.ArticleRepository = (*ArticlePostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*model.Article, error) {
	var a model.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new article row and returns the stored record with its generated ID.
func (r *ArticlePostgres) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	const q = `
		INSERT INTO articles (title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, created_at, updated_at
	`
	out, err := scanArticle(r.db.QueryRowContext(ctx, q, a.Title, a.Content, a.CreatedAt, a.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return out, nil
}

// Update overwrites title, content and updated_at. created_at is never written.
func (r *ArticlePostgres) Update(ctx context.Context, a *model.Article) (*model.Article, error) {
	const q = `
		UPDATE articles
		SET title = $2, content = $3, updated_at = $4
		WHERE id = $1
		RETURNING id, title, content, created_at, updated_at
	`
	out, err := scanArticle(r.db.QueryRowContext(ctx, q, a.ID, a.Title, a.Content, a.UpdatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update article %d: %w", a.ID, err)
	}
	return out, nil
}

// FindByID fetches a single article by its ID.
func (r *ArticlePostgres) FindByID(ctx context.Context, id int64) (*model.Article, error) {
	const q = `
		SELECT id, title, content, created_at, updated_at
		FROM articles
		WHERE id = $1
	`
	a, err := scanArticle(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}
	return a, nil
}

// FindWithComments loads the article and its comments inside one read-only
// REPEATABLE READ transaction so both reads see the same snapshot.
func (r *ArticlePostgres) FindWithComments(ctx context.Context, id int64) (*model.Article, error) {
	const qArticle = `
		SELECT id, title, content, created_at, updated_at
		FROM articles
		WHERE id = $1
	`
	var out *model.Article
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := database.WithTx(ctx, r.db, opts, func(tx *sql.Tx) error {
		a, err := scanArticle(tx.QueryRowContext(ctx, qArticle, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("find article %d: %w", id, err)
		}

		comments, err := listComments(ctx, tx, id)
		if err != nil {
			return err
		}
		a.Comments = comments
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsByID reports whether the article row exists.
func (r *ArticlePostgres) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("article exists %d: %w", id, err)
	}
	return exists, nil
}

// List returns all articles with comment counts computed by the same query.
func (r *ArticlePostgres) List(ctx context.Context) ([]repository.ArticleWithCommentCount, error) {
	const q = `
		SELECT a.id, a.title, a.content, a.created_at, a.updated_at, COUNT(c.id) AS comment_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.id
		GROUP BY a.id
		ORDER BY a.id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	items := make([]repository.ArticleWithCommentCount, 0)
	for rows.Next() {
		var it repository.ArticleWithCommentCount
		if err := rows.Scan(
			&it.Article.ID,
			&it.Article.Title,
			&it.Article.Content,
			&it.Article.CreatedAt,
			&it.Article.UpdatedAt,
			&it.CommentCount,
		); err != nil {
			return nil, fmt.Errorf("list articles: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return items, nil
}

// DeleteCascade removes the comments and then the article in one transaction.
// The article row is locked first so no comment can be attached while the delete runs.
func (r *ArticlePostgres) DeleteCascade(ctx context.Context, id int64) (int64, error) {
	const (
		qLock           = `SELECT id FROM articles WHERE id = $1 FOR UPDATE`
		qDeleteComments = `DELETE FROM comments WHERE article_id = $1`
		qDeleteArticle  = `DELETE FROM articles WHERE id = $1`
	)

	var removed int64
	err := database.WithTx(ctx, r.db, nil, func(tx *sql.Tx) error {
		var locked int64
		if err := tx.QueryRowContext(ctx, qLock, id).Scan(&locked); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("lock article %d: %w", id, err)
		}

		res, err := tx.ExecContext(ctx, qDeleteComments, id)
		if err != nil {
			return fmt.Errorf("delete comments of article %d: %w", id, err)
		}
		if removed, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("delete comments of article %d: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, qDeleteArticle, id); err != nil {
			return fmt.Errorf("delete article %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
