package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"noteapi/internal/model"
)

type MockFolderService struct {
	mock.Mock
}

func (m *MockFolderService) ListAccessible(ctx context.Context, userID string) ([]model.Folder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderService) Create(ctx context.Context, name, ownerID string) (*model.Folder, error) {
	args := m.Called(ctx, name, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderService) Get(ctx context.Context, folderID, callerID string) (*model.Folder, error) {
	args := m.Called(ctx, folderID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderService) Share(ctx context.Context, folderID, callerID, collaboratorID string) error {
	args := m.Called(ctx, folderID, callerID, collaboratorID)
	return args.Error(0)
}

func (m *MockFolderService) Delete(ctx context.Context, folderID, callerID string) error {
	args := m.Called(ctx, folderID, callerID)
	return args.Error(0)
}
