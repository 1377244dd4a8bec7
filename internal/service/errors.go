package service

import "errors"

// Sentinel errors returned by the services. The HTTP layer maps these to
// status codes; anything else is treated as a store failure.
var (
	ErrFolderNotFound     = errors.New("folder not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrForbidden means the caller is neither the owner nor a collaborator
	// of the folder, or attempted an owner-only operation.
	ErrForbidden = errors.New("caller has no access to this folder")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")

	ErrIDRequired       = errors.New("id is required")
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrReaderNil        = errors.New("reader is nil")
)
