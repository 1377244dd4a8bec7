package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"noteapi/internal/model"
	"noteapi/internal/repository"
	"noteapi/internal/storage"
)

const presignExpiry = 15 * time.Minute

// AttachmentService defines the use cases for note attachments. Binary
// content goes to object storage; metadata rows go next to notes. Folder
// authorization applies to every operation.
type AttachmentService interface {
	// Upload streams the content to object storage and records a metadata
	// row. If the row insert fails the object is removed again.
	Upload(ctx context.Context, folderID, noteID, callerID string, r io.Reader, filename, contentType string, size int64) (*model.Attachment, error)

	// List returns the note's attachments, newest first.
	List(ctx context.Context, folderID, noteID, callerID string) ([]model.Attachment, error)

	// DownloadURL returns a time-limited presigned URL for the attachment.
	DownloadURL(ctx context.Context, folderID, noteID, attID, callerID string) (string, error)

	// Delete removes the object first and the metadata row second.
	Delete(ctx context.Context, folderID, noteID, attID, callerID string) error
}

type attachmentService struct {
	store   storage.Storage
	folders repository.FolderRepository
	notes   repository.NoteRepository
	atts    repository.AttachmentRepository
}

// NewAttachmentService constructs a new AttachmentService.
func NewAttachmentService(store storage.Storage, folders repository.FolderRepository, notes repository.NoteRepository, atts repository.AttachmentRepository) AttachmentService {
	return &attachmentService{store: store, folders: folders, notes: notes, atts: atts}
}

// noteInFolder verifies folder access and that the note belongs to the folder.
func (s *attachmentService) noteInFolder(ctx context.Context, folderID, noteID, callerID string) error {
	if folderID == "" || noteID == "" {
		return ErrIDRequired
	}
	if err := authorize(ctx, s.folders, folderID, callerID); err != nil {
		return err
	}
	if _, err := s.notes.FindByID(ctx, folderID, noteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoteNotFound
		}
		return err
	}
	return nil
}

func (s *attachmentService) Upload(ctx context.Context, folderID, noteID, callerID string, r io.Reader, filename, contentType string, size int64) (*model.Attachment, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if err := s.noteInFolder(ctx, folderID, noteID, callerID); err != nil {
		return nil, err
	}

	// Stored object name is a UUID plus the original extension; the original
	// filename survives only as metadata.
	ext := filepath.Ext(filename)
	key := filepath.ToSlash(filepath.Join("attachments", noteID, uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	att := &model.Attachment{
		ID:          uuid.New().String(),
		NoteID:      noteID,
		Filename:    filename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.atts.Create(ctx, att)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("record attachment failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("record attachment failed: %w", err)
	}
	return stored, nil
}

func (s *attachmentService) List(ctx context.Context, folderID, noteID, callerID string) ([]model.Attachment, error) {
	if err := s.noteInFolder(ctx, folderID, noteID, callerID); err != nil {
		return nil, err
	}
	atts, err := s.atts.ListByNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return atts, nil
}

func (s *attachmentService) DownloadURL(ctx context.Context, folderID, noteID, attID, callerID string) (string, error) {
	att, err := s.find(ctx, folderID, noteID, attID, callerID)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, att.StoragePath, presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign attachment: %w", err)
	}
	return url, nil
}

func (s *attachmentService) Delete(ctx context.Context, folderID, noteID, attID, callerID string) error {
	att, err := s.find(ctx, folderID, noteID, attID, callerID)
	if err != nil {
		return err
	}
	// Object first: losing the row while the object lingers orphans storage,
	// losing the object while the row lingers breaks reads.
	if err := s.store.Delete(ctx, att.StoragePath); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	if err := s.atts.Delete(ctx, att.ID); err != nil {
		return fmt.Errorf("delete attachment row: %w", err)
	}
	return nil
}

func (s *attachmentService) find(ctx context.Context, folderID, noteID, attID, callerID string) (*model.Attachment, error) {
	if attID == "" {
		return nil, ErrIDRequired
	}
	if err := s.noteInFolder(ctx, folderID, noteID, callerID); err != nil {
		return nil, err
	}
	att, err := s.atts.FindByID(ctx, noteID, attID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return att, nil
}
