package mocks

import (
	"context"

	"blogapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) List(ctx context.Context) ([]service.ArticleSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ArticleSummary), args.Error(1)
}

func (m *MockArticleService) GetDetailed(ctx context.Context, id int64) (*service.ArticleDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleDetail), args.Error(1)
}

func (m *MockArticleService) Create(ctx context.Context, in service.ArticleInput) (*service.ArticleSummary, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleSummary), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, id int64, in service.ArticleInput) (*service.ArticleSummary, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleSummary), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleService) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
