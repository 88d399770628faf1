package mocks

import (
	"context"

	"blogapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByArticleID(ctx context.Context, articleID int64) ([]model.Comment, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByArticleID(ctx context.Context, articleID int64) (int, error) {
	args := m.Called(ctx, articleID)
	return args.Int(0), args.Error(1)
}
