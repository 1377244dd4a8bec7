package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"noteapi/internal/model"
	repoMocks "noteapi/internal/repository/mocks"
	"noteapi/internal/storage"
	storeMocks "noteapi/internal/storage/mocks"
)

type attachmentMocks struct {
	store   *storeMocks.MockStorage
	folders *repoMocks.MockFolderRepository
	notes   *repoMocks.MockNoteRepository
	atts    *repoMocks.MockAttachmentRepository
}

func newAttachmentFixture() (AttachmentService, *attachmentMocks) {
	m := &attachmentMocks{
		store:   new(storeMocks.MockStorage),
		folders: new(repoMocks.MockFolderRepository),
		notes:   new(repoMocks.MockNoteRepository),
		atts:    new(repoMocks.MockAttachmentRepository),
	}
	return NewAttachmentService(m.store, m.folders, m.notes, m.atts), m
}

func (m *attachmentMocks) expectNoteAccess(ctx context.Context) {
	m.folders.On("FindByID", ctx, "f1").Return(folderFixture(), nil)
	m.notes.On("FindByID", ctx, "f1", "n1").Return(&model.Note{ID: "n1", FolderID: "f1"}, nil)
}

func TestAttachmentService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, m := newAttachmentFixture()
		m.expectNoteAccess(ctx)

		r := strings.NewReader("hello world")
		m.store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "attachments/n1/") && strings.HasSuffix(key, ".txt")
		}), r, storage.PutObjectOptions{
			Size:        11,
			ContentType: "text/plain",
			Metadata:    map[string]string{"original-filename": "notes.txt"},
		}).Return(storage.ObjectInfo{Key: "attachments/n1/uuid.txt", Size: 11, ContentType: "text/plain"}, nil)

		m.atts.On("Create", ctx, mock.MatchedBy(func(a *model.Attachment) bool {
			return a.NoteID == "n1" && a.Filename == "notes.txt" && a.StoragePath == "attachments/n1/uuid.txt"
		})).Return(&model.Attachment{ID: "gen-id"}, nil)

		att, err := svc.Upload(ctx, "f1", "n1", "u1", r, "notes.txt", "text/plain", 11)

		assert.NoError(t, err)
		assert.NotNil(t, att)
		m.store.AssertExpectations(t)
		m.atts.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		svc, _ := newAttachmentFixture()
		_, err := svc.Upload(ctx, "f1", "n1", "u1", nil, "notes.txt", "text/plain", 11)
		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("stranger rejected before any write", func(t *testing.T) {
		svc, m := newAttachmentFixture()
		m.folders.On("FindByID", ctx, "f1").Return(folderFixture(), nil)

		_, err := svc.Upload(ctx, "f1", "n1", "u9", strings.NewReader("x"), "notes.txt", "text/plain", 1)
		assert.ErrorIs(t, err, ErrForbidden)
		m.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("row insert failure rolls back the object", func(t *testing.T) {
		svc, m := newAttachmentFixture()
		m.expectNoteAccess(ctx)

		r := strings.NewReader("hello")
		m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
			Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
				return storage.ObjectInfo{Key: key}
			}, nil)
		m.atts.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		m.store.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := svc.Upload(ctx, "f1", "n1", "u1", r, "notes.txt", "text/plain", 5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "record attachment failed")
		m.store.AssertExpectations(t)
	})
}

func TestAttachmentService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("presigns the stored object", func(t *testing.T) {
		svc, m := newAttachmentFixture()
		m.expectNoteAccess(ctx)
		m.atts.On("FindByID", ctx, "n1", "a1").
			Return(&model.Attachment{ID: "a1", NoteID: "n1", StoragePath: "attachments/n1/uuid.txt"}, nil)
		m.store.On("PresignGet", ctx, "attachments/n1/uuid.txt", mock.AnythingOfType("time.Duration")).
			Return("https://store/presigned", nil)

		url, err := svc.DownloadURL(ctx, "f1", "n1", "a1", "u2")
		assert.NoError(t, err)
		assert.Equal(t, "https://store/presigned", url)
	})

	t.Run("attachment missing", func(t *testing.T) {
		svc, m := newAttachmentFixture()
		m.expectNoteAccess(ctx)
		m.atts.On("FindByID", ctx, "n1", "gone").Return(nil, sql.ErrNoRows)

		_, err := svc.DownloadURL(ctx, "f1", "n1", "gone", "u1")
		assert.ErrorIs(t, err, ErrAttachmentNotFound)
	})
}

func TestAttachmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("object removed before row", func(t *testing.T) {
		svc, m := newAttachmentFixture()
		m.expectNoteAccess(ctx)
		m.atts.On("FindByID", ctx, "n1", "a1").
			Return(&model.Attachment{ID: "a1", NoteID: "n1", StoragePath: "attachments/n1/uuid.txt"}, nil)
		m.store.On("Delete", ctx, "attachments/n1/uuid.txt").Return(nil)
		m.atts.On("Delete", ctx, "a1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "f1", "n1", "a1", "u1"))
		m.store.AssertExpectations(t)
		m.atts.AssertExpectations(t)
	})

	t.Run("object delete failure keeps the row", func(t *testing.T) {
		svc, m := newAttachmentFixture()
		m.expectNoteAccess(ctx)
		m.atts.On("FindByID", ctx, "n1", "a1").
			Return(&model.Attachment{ID: "a1", NoteID: "n1", StoragePath: "p"}, nil)
		m.store.On("Delete", ctx, "p").Return(errors.New("storage fail"))

		assert.Error(t, svc.Delete(ctx, "f1", "n1", "a1", "u1"))
		m.atts.AssertNotCalled(t, "Delete", ctx, "a1")
	})
}

func TestAttachmentService_List(t *testing.T) {
	ctx := context.Background()

	svc, m := newAttachmentFixture()
	m.expectNoteAccess(ctx)
	m.atts.On("ListByNote", ctx, "n1").Return([]model.Attachment{
		{ID: "a2", CreatedAt: time.Now()},
		{ID: "a1"},
	}, nil)

	atts, err := svc.List(ctx, "f1", "n1", "u2")
	assert.NoError(t, err)
	assert.Len(t, atts, 2)
}
