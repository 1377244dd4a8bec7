package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"noteapi/internal/model"
	"noteapi/internal/repository"
)

// NoteService defines the use cases for notes within a folder. Every
// operation verifies the caller is the folder's owner or a collaborator
// before touching any note.
type NoteService interface {
	// List returns the folder's notes, most recently edited first.
	List(ctx context.Context, folderID, callerID string) ([]model.Note, error)

	// Create adds a note authored by the caller.
	Create(ctx context.Context, folderID, callerID, title, content string) (*model.Note, error)

	// Update overwrites the note's title and content and refreshes its edit
	// time. Author and IDs are immutable. Concurrent updates of the same note
	// are last-write-wins.
	Update(ctx context.Context, folderID, noteID, callerID, title, content string) error

	// Delete removes a note. Deleting an already-deleted note is success.
	Delete(ctx context.Context, folderID, noteID, callerID string) error
}

type noteService struct {
	folders repository.FolderRepository
	notes   repository.NoteRepository
}

// NewNoteService constructs a new NoteService.
func NewNoteService(folders repository.FolderRepository, notes repository.NoteRepository) NoteService {
	return &noteService{folders: folders, notes: notes}
}

// authorize checks that the folder exists and the caller may act on it.
func authorize(ctx context.Context, folders repository.FolderRepository, folderID, callerID string) error {
	folder, err := folders.FindByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		return err
	}
	if !folder.AccessibleBy(callerID) {
		return ErrForbidden
	}
	return nil
}

func (s *noteService) List(ctx context.Context, folderID, callerID string) ([]model.Note, error) {
	if folderID == "" {
		return nil, ErrIDRequired
	}
	if err := authorize(ctx, s.folders, folderID, callerID); err != nil {
		return nil, err
	}
	notes, err := s.notes.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) Create(ctx context.Context, folderID, callerID, title, content string) (*model.Note, error) {
	if folderID == "" {
		return nil, ErrIDRequired
	}
	if err := authorize(ctx, s.folders, folderID, callerID); err != nil {
		return nil, err
	}

	note := &model.Note{
		ID:           uuid.New().String(),
		FolderID:     folderID,
		Title:        title,
		Content:      content,
		AuthorID:     callerID,
		LastEditedAt: time.Now().UTC(),
	}
	stored, err := s.notes.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return stored, nil
}

func (s *noteService) Update(ctx context.Context, folderID, noteID, callerID, title, content string) error {
	if folderID == "" || noteID == "" {
		return ErrIDRequired
	}
	if err := authorize(ctx, s.folders, folderID, callerID); err != nil {
		return err
	}
	err := s.notes.Update(ctx, folderID, noteID, title, content, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (s *noteService) Delete(ctx context.Context, folderID, noteID, callerID string) error {
	if folderID == "" || noteID == "" {
		return ErrIDRequired
	}
	if err := authorize(ctx, s.folders, folderID, callerID); err != nil {
		return err
	}
	// The repository delete is idempotent; a missing note still reports
	// success.
	if err := s.notes.Delete(ctx, folderID, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
