package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"noteapi/internal/model"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) List(ctx context.Context, folderID, callerID string) ([]model.Note, error) {
	args := m.Called(ctx, folderID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteService) Create(ctx context.Context, folderID, callerID, title, content string) (*model.Note, error) {
	args := m.Called(ctx, folderID, callerID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Update(ctx context.Context, folderID, noteID, callerID, title, content string) error {
	args := m.Called(ctx, folderID, noteID, callerID, title, content)
	return args.Error(0)
}

func (m *MockNoteService) Delete(ctx context.Context, folderID, noteID, callerID string) error {
	args := m.Called(ctx, folderID, noteID, callerID)
	return args.Error(0)
}
