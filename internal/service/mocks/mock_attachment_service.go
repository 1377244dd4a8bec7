package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"noteapi/internal/model"
)

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, folderID, noteID, callerID string, r io.Reader, filename, contentType string, size int64) (*model.Attachment, error) {
	args := m.Called(ctx, folderID, noteID, callerID, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) List(ctx context.Context, folderID, noteID, callerID string) ([]model.Attachment, error) {
	args := m.Called(ctx, folderID, noteID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) DownloadURL(ctx context.Context, folderID, noteID, attID, callerID string) (string, error) {
	args := m.Called(ctx, folderID, noteID, attID, callerID)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentService) Delete(ctx context.Context, folderID, noteID, attID, callerID string) error {
	args := m.Called(ctx, folderID, noteID, attID, callerID)
	return args.Error(0)
}
