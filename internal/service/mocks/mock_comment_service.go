package mocks

import (
	"context"

	"blogapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListForArticle(ctx context.Context, articleID int64) ([]service.CommentResponse, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, articleID int64, in service.CommentInput) (*service.CommentResponse, error) {
	args := m.Called(ctx, articleID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommentResponse), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, id int64) (*service.ExportResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
