package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

var (
	articleCols = []string{"id", "title", "content", "created_at", "updated_at"}
	commentCols = []string{"id", "content", "article_id", "created_at"}
	created     = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	updated     = created.Add(time.Hour)
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestArticlePostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticlePostgres(db)

	in := &model.Article{Title: "Hello World", Content: "First post", CreatedAt: created, UpdatedAt: created}

	mock.ExpectQuery("INSERT INTO articles").
		WithArgs(in.Title, in.Content, in.CreatedAt, in.UpdatedAt).
		WillReturnRows(sqlmock.NewRows(articleCols).AddRow(int64(1), in.Title, in.Content, created, created))

	got, err := repo.Create(context.Background(), in)

	require.NoError(t, err)
	want := &model.Article{ID: 1, Title: "Hello World", Content: "First post", CreatedAt: created, UpdatedAt: created}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Create() mismatch (-want +got):\n%s", diff)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlePostgres_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewArticlePostgres(db)

		mock.ExpectQuery("UPDATE articles").
			WithArgs(int64(1), "New", "Body", updated).
			WillReturnRows(sqlmock.NewRows(articleCols).AddRow(int64(1), "New", "Body", created, updated))

		got, err := repo.Update(ctx, &model.Article{ID: 1, Title: "New", Content: "Body", UpdatedAt: updated})

		require.NoError(t, err)
		assert.Equal(t, created, got.CreatedAt)
		assert.Equal(t, updated, got.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewArticlePostgres(db)

		mock.ExpectQuery("UPDATE articles").
			WithArgs(int64(9), "New", "Body", updated).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Update(ctx, &model.Article{ID: 9, Title: "New", Content: "Body", UpdatedAt: updated})

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestArticlePostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticlePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM articles WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(articleCols).AddRow(int64(1), "T", "C", created, updated))

		a, err := repo.FindByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), a.ID)
		assert.Nil(t, a.Comments)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM articles WHERE id = ?").
			WithArgs(int64(2)).
			WillReturnError(sql.ErrNoRows)

		a, err := repo.FindByID(ctx, 2)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, a)
	})

	t.Run("driver error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM articles WHERE id = ?").
			WithArgs(int64(3)).
			WillReturnError(errors.New("conn reset"))

		_, err := repo.FindByID(ctx, 3)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
		assert.Contains(t, err.Error(), "conn reset")
	})
}

func TestArticlePostgres_FindWithComments(t *testing.T) {
	ctx := context.Background()

	t.Run("article with comments in one snapshot", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewArticlePostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM articles WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(articleCols).AddRow(int64(1), "T", "C", created, updated))
		mock.ExpectQuery("SELECT (.+) FROM comments WHERE article_id = ?").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(commentCols).
				AddRow(int64(1), "Nice!", int64(1), created).
				AddRow(int64(2), "Agreed", int64(1), updated))
		mock.ExpectCommit()

		got, err := repo.FindWithComments(ctx, 1)

		require.NoError(t, err)
		want := &model.Article{
			ID: 1, Title: "T", Content: "C", CreatedAt: created, UpdatedAt: updated,
			Comments: []model.Comment{
				{ID: 1, Content: "Nice!", ArticleID: 1, CreatedAt: created},
				{ID: 2, Content: "Agreed", ArticleID: 1, CreatedAt: updated},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("FindWithComments() mismatch (-want +got):\n%s", diff)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no comments yields empty slice", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewArticlePostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM articles WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(articleCols).AddRow(int64(1), "T", "C", created, created))
		mock.ExpectQuery("SELECT (.+) FROM comments WHERE article_id = ?").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(commentCols))
		mock.ExpectCommit()

		got, err := repo.FindWithComments(ctx, 1)

		require.NoError(t, err)
		assert.NotNil(t, got.Comments)
		assert.Empty(t, got.Comments)
	})

	t.Run("missing article rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewArticlePostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM articles WHERE id = ?").
			WithArgs(int64(5)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		got, err := repo.FindWithComments(ctx, 5)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestArticlePostgres_ExistsByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticlePostgres(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := repo.ExistsByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByID(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlePostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewArticlePostgres(db)

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM articles a LEFT JOIN comments c").
			WillReturnRows(sqlmock.NewRows(append(articleCols, "comment_count")).
				AddRow(int64(1), "A", "a", created, created, 2).
				AddRow(int64(2), "B", "b", created, updated, 0))

		got, err := repo.List(context.Background())

		require.NoError(t, err)
		want := []repository.ArticleWithCommentCount{
			{Article: model.Article{ID: 1, Title: "A", Content: "a", CreatedAt: created, UpdatedAt: created}, CommentCount: 2},
			{Article: model.Article{ID: 2, Title: "B", Content: "b", CreatedAt: created, UpdatedAt: updated}, CommentCount: 0},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("List() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM articles a LEFT JOIN comments c").
			WillReturnRows(sqlmock.NewRows(append(articleCols, "comment_count")))

		got, err := repo.List(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM articles a LEFT JOIN comments c").
			WillReturnError(errors.New("db fail"))

		_, err := repo.List(context.Background())

		assert.ErrorContains(t, err, "db fail")
	})
}

func TestArticlePostgres_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	lockQ := regexp.QuoteMeta("SELECT id FROM articles WHERE id = $1 FOR UPDATE")
	delCommentsQ := regexp.QuoteMeta("DELETE FROM comments WHERE article_id = $1")
	delArticleQ := regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")

	t.Run("removes comments and article in one transaction", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewArticlePostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQ).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectExec(delCommentsQ).WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(delArticleQ).WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		n, err := repo.DeleteCascade(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing article touches nothing", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewArticlePostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQ).WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		n, err := repo.DeleteCascade(ctx, 7)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("article delete failure rolls back comment delete", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewArticlePostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQ).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectExec(delCommentsQ).WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(delArticleQ).WithArgs(int64(1)).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		n, err := repo.DeleteCascade(ctx, 1)

		assert.ErrorContains(t, err, "disk full")
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewArticlePostgres(db)

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		_, err := repo.DeleteCascade(ctx, 1)

		assert.ErrorContains(t, err, "begin tx: too many connections")
	})
}
