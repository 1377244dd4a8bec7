package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"noteapi/internal/model"
	"noteapi/internal/repository"
)

// FolderService defines the use cases around folders and their access lists.
type FolderService interface {
	// ListAccessible returns every folder the user owns or is a collaborator
	// of, deduplicated by ID and ordered by creation time descending.
	ListAccessible(ctx context.Context, userID string) ([]model.Folder, error)

	// Create makes a new folder owned by ownerID with an empty access list.
	Create(ctx context.Context, name, ownerID string) (*model.Folder, error)

	// Get returns a single folder the caller has access to.
	Get(ctx context.Context, folderID, callerID string) (*model.Folder, error)

	// Share grants the collaborator access to the folder. Owner only.
	// Granting access twice, or to the owner, is a no-op success.
	Share(ctx context.Context, folderID, callerID, collaboratorID string) error

	// Delete removes the folder and its notes. Owner only. Notes are deleted
	// first and the folder row last; the sequence is not atomic but is
	// idempotently retriable, and a crash in between leaves an empty folder
	// rather than orphaned notes.
	Delete(ctx context.Context, folderID, callerID string) error
}

type folderService struct {
	folders repository.FolderRepository
	notes   repository.NoteRepository
}

// NewFolderService constructs a new FolderService.
func NewFolderService(folders repository.FolderRepository, notes repository.NoteRepository) FolderService {
	return &folderService{folders: folders, notes: notes}
}

// ListAccessible merges the owned and shared sets. The two queries are
// independent; a folder can show up in both only under data corruption
// (owner erroneously listed as collaborator), so the merge deduplicates by
// ID before sorting.
func (s *folderService) ListAccessible(ctx context.Context, userID string) ([]model.Folder, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}

	owned, err := s.folders.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned folders: %w", err)
	}
	shared, err := s.folders.ListSharedWith(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shared folders: %w", err)
	}

	seen := make(map[string]struct{}, len(owned)+len(shared))
	merged := make([]model.Folder, 0, len(owned)+len(shared))
	for _, f := range append(owned, shared...) {
		if _, ok := seen[f.ID]; ok {
			continue
		}
		seen[f.ID] = struct{}{}
		merged = append(merged, f)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

func (s *folderService) Create(ctx context.Context, name, ownerID string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if ownerID == "" {
		return nil, ErrIDRequired
	}

	folder := &model.Folder{
		ID:         uuid.New().String(),
		Name:       name,
		OwnerID:    ownerID,
		SharedWith: []string{},
		CreatedAt:  time.Now().UTC(),
	}
	stored, err := s.folders.Create(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return stored, nil
}

func (s *folderService) Get(ctx context.Context, folderID, callerID string) (*model.Folder, error) {
	if folderID == "" {
		return nil, ErrIDRequired
	}
	folder, err := s.folders.FindByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	if !folder.AccessibleBy(callerID) {
		return nil, ErrForbidden
	}
	return folder, nil
}

func (s *folderService) Share(ctx context.Context, folderID, callerID, collaboratorID string) error {
	if folderID == "" || collaboratorID == "" {
		return ErrIDRequired
	}

	folder, err := s.folders.FindByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		return err
	}
	if folder.OwnerID != callerID {
		return ErrForbidden
	}
	// The owner already has full access; listing it as its own collaborator
	// would only create the duplicate-membership corruption ListAccessible
	// has to defend against.
	if collaboratorID == folder.OwnerID {
		return nil
	}

	if err := s.folders.AddCollaborator(ctx, folderID, collaboratorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		return fmt.Errorf("share folder: %w", err)
	}
	return nil
}

func (s *folderService) Delete(ctx context.Context, folderID, callerID string) error {
	if folderID == "" {
		return ErrIDRequired
	}
	folder, err := s.folders.FindByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		return err
	}
	if folder.OwnerID != callerID {
		return ErrForbidden
	}

	// Notes first, folder last. No multi-row transaction covers both steps;
	// a failure after the first leaves an empty folder that a retry cleans up.
	if err := s.notes.DeleteByFolder(ctx, folderID); err != nil {
		return fmt.Errorf("delete folder notes: %w", err)
	}
	if err := s.folders.Delete(ctx, folderID); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}
