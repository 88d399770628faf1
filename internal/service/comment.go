package service

import (
	"context"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

// CommentInput carries the client-supplied fields of a comment.
type CommentInput struct {
	Content string `json:"content" validate:"required,notblank"`
}

// CommentService defines the use cases for comments. Every operation checks the parent
// article before any comment is read or written.
type CommentService interface {
	// ListForArticle returns all comments of an existing article.
	ListForArticle(ctx context.Context, articleID int64) ([]CommentResponse, error)

	// Create attaches a new comment to an existing article.
	Create(ctx context.Context, articleID int64, in CommentInput) (*CommentResponse, error)
}

type commentService struct {
	articles ArticleService
	comments repository.CommentRepository
	now      func() time.Time
}

// NewCommentService constructs a new CommentService.
func NewCommentService(articles ArticleService, comments repository.CommentRepository) CommentService {
	return &commentService{articles: articles, comments: comments, now: defaultNow}
}

func (s *commentService) ListForArticle(ctx context.Context, articleID int64) ([]CommentResponse, error) {
	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticleID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c, articleID))
	}
	return out, nil
}

func (s *commentService) Create(ctx context.Context, articleID int64, in CommentInput) (*CommentResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}

	stored, err := s.comments.Create(ctx, &model.Comment{
		Content:   in.Content,
		ArticleID: articleID,
		CreatedAt: s.now(),
	})
	if err != nil {
		// The article can still disappear between the check and the insert.
		return nil, mapNotFound(err)
	}
	res := NewCommentResponse(*stored, articleID)
	return &res, nil
}

func (s *commentService) requireArticle(ctx context.Context, articleID int64) error {
	ok, err := s.articles.Exists(ctx, articleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrArticleNotFound
	}
	return nil
}
