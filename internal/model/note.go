package model

import "time"

// Note is a plain-text note inside a folder. Notes are always addressed
// through their folder; they never move between folders.
type Note struct {
	ID           string    `json:"id"`
	FolderID     string    `json:"folder_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	AuthorID     string    `json:"author_id"`
	LastEditedAt time.Time `json:"last_edited_at"`
}
