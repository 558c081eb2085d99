package app

import (
	"context"
	"time"
)

// ImageFilter narrows an album listing. Tags matches images carrying
// any of the requested tags.
type ImageFilter struct {
	Tags          []string
	FavoritesOnly bool
}

type (
	// Store lookups return (nil, nil) when the record is absent; the
	// services translate that to ErrNotFound with context.
	UserStore interface {
		Insert(ctx context.Context, user *User) error
		Update(ctx context.Context, user *User) error
		FindByID(ctx context.Context, userID string) (*User, error)
		FindByEmail(ctx context.Context, email string) (*User, error)
		FindByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*User, error)
		FindByEmails(ctx context.Context, emails []string) ([]User, error)
	}

	AlbumStore interface {
		Insert(ctx context.Context, album *Album) error
		Update(ctx context.Context, album *Album) error
		Delete(ctx context.Context, albumID string) error
		FindByID(ctx context.Context, albumID string) (*Album, error)
		// ListVisible returns active albums the user owns or is shared
		// on, newest created first.
		ListVisible(ctx context.Context, userID, email string) ([]Album, error)
		// ListAccessibleIDs returns ids of every album the user owns or
		// is shared on regardless of state; the trash aggregator uses it
		// to scope image visibility.
		ListAccessibleIDs(ctx context.Context, userID, email string) ([]string, error)
		// ListTrashedOwned returns the user's own trashed albums, most
		// recently deleted first.
		ListTrashedOwned(ctx context.Context, userID string) ([]Album, error)
	}

	ImageStore interface {
		Insert(ctx context.Context, image *Image) error
		Update(ctx context.Context, image *Image) error
		Delete(ctx context.Context, imageID string) error
		FindByID(ctx context.Context, imageID string) (*Image, error)
		// ListActive returns non-trashed images of an album matching the
		// filter, newest uploaded first.
		ListActive(ctx context.Context, albumID string, filter ImageFilter) ([]Image, error)
		// TrashByAlbum transitions every active image of the album to
		// trashed, stamping the backreference. Returns how many records
		// were updated even when it errors partway.
		TrashByAlbum(ctx context.Context, albumID, albumName string, at time.Time) (int64, error)
		// RestoreByOriginalAlbum reverses TrashByAlbum for every trashed
		// image backreferencing the album.
		RestoreByOriginalAlbum(ctx context.Context, albumID string) (int64, error)
		// ListTrashedByOriginalAlbum returns trashed images that came
		// from the album, for purge enumeration.
		ListTrashedByOriginalAlbum(ctx context.Context, albumID string) ([]Image, error)
		// ListTrashedVisible returns trashed images uploaded by the user
		// or originating from any of the given albums, most recently
		// deleted first.
		ListTrashedVisible(ctx context.Context, userID string, albumIDs []string) ([]Image, error)
	}
)
