package service

import (
	"context"
	"errors"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

// ArticleInput carries the client-supplied fields of an article.
type ArticleInput struct {
	Title   string `json:"title" validate:"required,notblank,min=3,max=100"`
	Content string `json:"content" validate:"required,notblank"`
}

// ArticleService defines the use cases for articles and owns the article/comment aggregate.
type ArticleService interface {
	// List returns every article with its current comment count. An empty store yields an empty slice.
	List(ctx context.Context) ([]ArticleSummary, error)

	// GetDetailed returns one article with all of its comments.
	GetDetailed(ctx context.Context, id int64) (*ArticleDetail, error)

	// Create validates and stores a new article.
	Create(ctx context.Context, in ArticleInput) (*ArticleSummary, error)

	// Update replaces title and content of an existing article and refreshes updatedAt.
	Update(ctx context.Context, id int64, in ArticleInput) (*ArticleSummary, error)

	// Delete removes the article and all of its comments atomically.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether the article exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

// articleService is a concrete implementation of ArticleService.
type articleService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	now      func() time.Time
}

// NewArticleService constructs a new ArticleService.
func NewArticleService(articles repository.ArticleRepository, comments repository.CommentRepository) ArticleService {
	return &articleService{articles: articles, comments: comments, now: defaultNow}
}

// defaultNow is truncated to microseconds, the resolution of a Postgres timestamptz.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s *articleService) List(ctx context.Context) ([]ArticleSummary, error) {
	rows, err := s.articles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ArticleSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewArticleSummary(r.Article, r.CommentCount))
	}
	return out, nil
}

func (s *articleService) GetDetailed(ctx context.Context, id int64) (*ArticleDetail, error) {
	if id <= 0 {
		return nil, ErrArticleNotFound
	}
	a, err := s.articles.FindWithComments(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	detail := NewArticleDetail(*a)
	return &detail, nil
}

func (s *articleService) Create(ctx context.Context, in ArticleInput) (*ArticleSummary, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	stored, err := s.articles.Create(ctx, &model.Article{
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	summary := NewArticleSummary(*stored, 0)
	return &summary, nil
}

func (s *articleService) Update(ctx context.Context, id int64, in ArticleInput) (*ArticleSummary, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrArticleNotFound
	}

	current, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	current.Title = in.Title
	current.Content = in.Content
	current.UpdatedAt = nextUpdatedAt(s.now(), current.CreatedAt, current.UpdatedAt)

	stored, err := s.articles.Update(ctx, current)
	if err != nil {
		return nil, mapNotFound(err)
	}

	count, err := s.comments.CountByArticleID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := NewArticleSummary(*stored, count)
	return &summary, nil
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrArticleNotFound
	}
	_, err := s.articles.DeleteCascade(ctx, id)
	return mapNotFound(err)
}

func (s *articleService) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return s.articles.ExistsByID(ctx, id)
}

// nextUpdatedAt keeps updatedAt >= createdAt and strictly after the previous value,
// even when the wall clock stepped backwards.
func nextUpdatedAt(now, createdAt, prev time.Time) time.Time {
	if floor := prev.Add(time.Microsecond); now.Before(floor) {
		now = floor
	}
	if now.Before(createdAt) {
		now = createdAt
	}
	return now
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrArticleNotFound
	}
	return err
}
