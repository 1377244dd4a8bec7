package model

import "time"

// Folder is a shared container of notes. The owner has full control; users in
// SharedWith may read and write notes but cannot share or delete the folder.
//
// SharedWith is semantically a set of user IDs. It is stored as an ordered
// text array for storage compatibility, and the repository guarantees no
// duplicates are ever appended.
type Folder struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerID    string    `json:"owner_id"`
	SharedWith []string  `json:"shared_with"`
	CreatedAt  time.Time `json:"created_at"`
}

// AccessibleBy reports whether the user is the owner or a collaborator.
func (f *Folder) AccessibleBy(userID string) bool {
	if f.OwnerID == userID {
		return true
	}
	for _, id := range f.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}
