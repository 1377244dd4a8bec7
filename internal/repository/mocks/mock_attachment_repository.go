package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"noteapi/internal/model"
)

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, att *model.Attachment) (*model.Attachment, error) {
	args := m.Called(ctx, att)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, noteID, attID string) (*model.Attachment, error) {
	args := m.Called(ctx, noteID, attID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListByNote(ctx context.Context, noteID string) ([]model.Attachment, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
