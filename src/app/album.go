package app

import "time"

// Lifecycle is the explicit entity state; a trashed record keeps its
// data and a deletion timestamp so it can be restored.
type Lifecycle string

const (
	StateActive  Lifecycle = "active"
	StateTrashed Lifecycle = "trashed"
)

type AccessLevel string

const (
	LevelView AccessLevel = "view"
	LevelEdit AccessLevel = "edit"
)

type (
	// ShareEntry grants a non-owner collaborator a level on an album.
	// Entries are unique per email and never contain the owner.
	ShareEntry struct {
		Email       string      `bson:"email" json:"email"`
		AccessLevel AccessLevel `bson:"accessLevel" json:"accessLevel"`
	}

	Album struct {
		AlbumID     string       `bson:"albumId" json:"albumId"`
		Name        string       `bson:"name" json:"name"`
		Description string       `bson:"description,omitempty" json:"description,omitempty"`
		OwnerID     string       `bson:"ownerId" json:"ownerId"`
		SharedWith  []ShareEntry `bson:"sharedWith" json:"sharedWith"`
		State       Lifecycle    `bson:"state" json:"state"`
		DeletedAt   *time.Time   `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
		CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
		UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
	}
)

func (a *Album) Trashed() bool { return a.State == StateTrashed }

// SharedLevel returns the level stored for the email, or false if the
// email is not on the share list. Owner access is implicit and never
// stored here.
func (a *Album) SharedLevel(email string) (AccessLevel, bool) {
	for _, entry := range a.SharedWith {
		if entry.Email == email {
			return entry.AccessLevel, true
		}
	}
	return "", false
}
