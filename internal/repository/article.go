package repository

import (
	"context"

	"blogapi/internal/model"
)

// ArticleRepository defines data access for articles using SQL queries only.
// No business logic here, strictly persistence operations.
type ArticleRepository interface {
	// Create inserts a new article. The database assigns the ID.
	Create(ctx context.Context, a *model.Article) (*model.Article, error)

	// Update replaces title, content and updated_at of an existing article.
	// Returns ErrNotFound when no row matched.
	Update(ctx context.Context, a *model.Article) (*model.Article, error)

	// FindByID returns an article without its comments, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Article, error)

	// FindWithComments returns an article and all of its comments read from one snapshot, or ErrNotFound.
	FindWithComments(ctx context.Context, id int64) (*model.Article, error)

	// ExistsByID reports whether an article with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// List returns every article together with its current comment count.
	List(ctx context.Context) ([]ArticleWithCommentCount, error)

	// DeleteCascade removes the article and all of its comments in a single transaction
	// and returns how many comments were removed. Returns ErrNotFound, with nothing removed,
	// when the article does not exist.
	DeleteCascade(ctx context.Context, id int64) (int64, error)
}

// ArticleWithCommentCount pairs an article with the number of comments referencing it.
type ArticleWithCommentCount struct {
	Article      model.Article
	CommentCount int
}
