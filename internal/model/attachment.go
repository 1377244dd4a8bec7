package model

import "time"

// Attachment is a file attached to a note. The binary content lives in object
// storage under StoragePath; this row carries only metadata.
type Attachment struct {
	ID          string    `json:"id"`
	NoteID      string    `json:"note_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
