package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/toonkeep/toonkeep-server/internal/notion"
)

// MockClient notion.Client 인터페이스의 테스트용 Mock 구현체입니다.
type MockClient struct {
	mock.Mock
}

var _ notion.Client = (*MockClient)(nil)

func (m *MockClient) DescribeSchema(ctx context.Context, databaseID string) (notion.Schema, error) {
	args := m.Called(ctx, databaseID)

	var schema notion.Schema
	if args.Get(0) != nil {
		schema = args.Get(0).(notion.Schema)
	}
	return schema, args.Error(1)
}

func (m *MockClient) CreatePage(ctx context.Context, databaseID string, input *notion.CreateInput) (*notion.CreatedPage, error) {
	args := m.Called(ctx, databaseID, input)

	var page *notion.CreatedPage
	if args.Get(0) != nil {
		page = args.Get(0).(*notion.CreatedPage)
	}
	return page, args.Error(1)
}
