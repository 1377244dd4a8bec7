package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"noteapi/internal/model"
)

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, folderID, noteID string) (*model.Note, error) {
	args := m.Called(ctx, folderID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) ListByFolder(ctx context.Context, folderID string) ([]model.Note, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, folderID, noteID, title, content string, editedAt time.Time) error {
	args := m.Called(ctx, folderID, noteID, title, content, editedAt)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, folderID, noteID string) error {
	args := m.Called(ctx, folderID, noteID)
	return args.Error(0)
}

func (m *MockNoteRepository) DeleteByFolder(ctx context.Context, folderID string) error {
	args := m.Called(ctx, folderID)
	return args.Error(0)
}
