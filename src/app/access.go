package app

import "fmt"

// LevelNone is returned for identities with no relation to the album.
// It is never stored on a share list.
const LevelNone AccessLevel = ""

func levelRank(l AccessLevel) int {
	switch l {
	case LevelEdit:
		return 2
	case LevelView:
		return 1
	}
	return 0
}

// CanAccess resolves the caller's level on an album: the owner holds
// edit implicitly, a share-list entry holds its stored level, everyone
// else none.
func CanAccess(user *User, album *Album) AccessLevel {
	if album == nil {
		return LevelNone
	}
	if album.OwnerID == user.UserID {
		return LevelEdit
	}
	if level, ok := album.SharedLevel(user.Email); ok {
		return level
	}
	return LevelNone
}

// RequireAccess gates an operation on an album. A missing album is
// reported as not found; a caller with no relation to it, or with a
// level below min, gets forbidden.
func RequireAccess(user *User, album *Album, min AccessLevel) error {
	if album == nil {
		return fmt.Errorf("album: %w", ErrNotFound)
	}
	level := CanAccess(user, album)
	if level == LevelNone {
		return fmt.Errorf("album %s: %w", album.AlbumID, ErrForbidden)
	}
	if levelRank(level) < levelRank(min) {
		return fmt.Errorf("album %s needs %s access: %w", album.AlbumID, min, ErrForbidden)
	}
	return nil
}

// RequireOwner gates operations reserved to the album owner: rename,
// describe, share, trash, restore.
func RequireOwner(user *User, album *Album) error {
	if album == nil {
		return fmt.Errorf("album: %w", ErrNotFound)
	}
	if album.OwnerID != user.UserID {
		return fmt.Errorf("album %s is not owned by caller: %w", album.AlbumID, ErrForbidden)
	}
	return nil
}

// RequireImageDelete restricts image deletion to the album owner.
// Share-list edit access lets a collaborator add and modify content,
// not remove it.
func RequireImageDelete(user *User, album *Album) error {
	if album == nil {
		return fmt.Errorf("album: %w", ErrNotFound)
	}
	if album.OwnerID != user.UserID {
		return fmt.Errorf("only the album owner can delete images: %w", ErrForbidden)
	}
	return nil
}
