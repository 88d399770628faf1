package repository

import (
	"context"

	"blogapi/internal/model"
)

// CommentRepository defines data access for comments.
// Comments are only ever removed through ArticleRepository.DeleteCascade.
type CommentRepository interface {
	// Create inserts a comment. Returns ErrNotFound if the parent article no longer exists.
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)

	// FindByID returns a single comment, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Comment, error)

	// ListByArticleID returns the comments of an article in insertion order.
	ListByArticleID(ctx context.Context, articleID int64) ([]model.Comment, error)

	// CountByArticleID returns the number of comments of an article.
	CountByArticleID(ctx context.Context, articleID int64) (int, error)
}
