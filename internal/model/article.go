package model

import "time"

// Article is a blog article and the root of the article/comment aggregate.
// This is a pure domain model with no database-specific dependencies or tags.
// Comments is only populated when the aggregate is loaded as a whole.
type Article struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Comments  []Comment
}

// Comment belongs to exactly one Article and is never mutated after creation.
type Comment struct {
	ID        int64
	Content   string
	ArticleID int64
	CreatedAt time.Time
}
