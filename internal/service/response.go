package service

import (
	"time"

	"blogapi/internal/model"
)

// ArticleSummary is the list/create/update view of an article.
type ArticleSummary struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	CommentCount int       `json:"commentCount"`
}

// ArticleDetail is the single-article view including every comment.
type ArticleDetail struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Comments  []CommentResponse `json:"comments"`
}

// CommentResponse is the view of a single comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	ArticleID int64     `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewArticleSummary projects an article with the live number of its comments.
func NewArticleSummary(a model.Article, commentCount int) ArticleSummary {
	return ArticleSummary{
		ID:           a.ID,
		Title:        a.Title,
		Content:      a.Content,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
		CommentCount: commentCount,
	}
}

// NewArticleDetail projects an article loaded together with its comments.
// Comments is never nil so it always encodes as a JSON array.
func NewArticleDetail(a model.Article) ArticleDetail {
	comments := make([]CommentResponse, 0, len(a.Comments))
	for _, c := range a.Comments {
		comments = append(comments, NewCommentResponse(c, a.ID))
	}
	return ArticleDetail{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Comments:  comments,
	}
}

// NewCommentResponse projects a comment owned by articleID.
// The owner passed in wins over c.ArticleID.
func NewCommentResponse(c model.Comment, articleID int64) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		ArticleID: articleID,
		CreatedAt: c.CreatedAt,
	}
}
