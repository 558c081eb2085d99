package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// AlbumService owns the album lifecycle: creation, owner-only mutation
// and the trash cascade over the album's images.
type AlbumService struct {
	albums AlbumStore
	images ImageStore
	users  UserStore
}

func NewAlbumService(albums AlbumStore, images ImageStore, users UserStore) *AlbumService {
	return &AlbumService{albums: albums, images: images, users: users}
}

type AlbumPatch struct {
	Name        *string
	Description *string
}

func (s *AlbumService) Create(ctx context.Context, owner *User, name, description string) (*Album, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: album name is required", ErrInvalidInput)
	}
	now := time.Now()
	album := &Album{
		AlbumID:     uuid.NewString(),
		Name:        name,
		Description: description,
		OwnerID:     owner.UserID,
		SharedWith:  []ShareEntry{},
		State:       StateActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.albums.Insert(ctx, album); err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}
	return album, nil
}

func (s *AlbumService) Update(ctx context.Context, caller *User, albumID string, patch AlbumPatch) (*Album, error) {
	album, err := s.ownedActiveAlbum(ctx, caller, albumID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil && *patch.Name != "" {
		album.Name = *patch.Name
	}
	if patch.Description != nil {
		album.Description = *patch.Description
	}
	album.UpdatedAt = time.Now()
	if err := s.albums.Update(ctx, album); err != nil {
		return nil, fmt.Errorf("update album: %w", err)
	}
	return album, nil
}

// Share grants view access to the listed emails. Every email must
// resolve to an account or the whole request is rejected naming the
// unknown ones; the owner's own email and already-present entries are
// skipped silently.
func (s *AlbumService) Share(ctx context.Context, caller *User, albumID string, emails []string) (*Album, error) {
	if len(emails) == 0 {
		return nil, fmt.Errorf("%w: emails array is required", ErrInvalidInput)
	}
	album, err := s.ownedActiveAlbum(ctx, caller, albumID)
	if err != nil {
		return nil, err
	}

	normalized := make([]string, 0, len(emails))
	for _, email := range emails {
		normalized = append(normalized, normalizeEmail(email))
	}

	known, err := s.users.FindByEmails(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("resolve recipients: %w", err)
	}
	exists := make(map[string]bool, len(known))
	for _, u := range known {
		exists[u.Email] = true
	}
	var unknown []string
	for _, email := range normalized {
		if !exists[email] {
			unknown = append(unknown, email)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownRecipientsError{Emails: unknown}
	}

	for _, email := range normalized {
		if email == caller.Email {
			continue
		}
		if _, ok := album.SharedLevel(email); ok {
			continue
		}
		album.SharedWith = append(album.SharedWith, ShareEntry{Email: email, AccessLevel: LevelView})
	}
	album.UpdatedAt = time.Now()
	if err := s.albums.Update(ctx, album); err != nil {
		return nil, fmt.Errorf("share album: %w", err)
	}
	return album, nil
}

// SoftDelete trashes the album and cascades to every image still
// referencing it, stamping each with the album's id and name so the
// cascade can be reversed. The cascade is not transactional; a failure
// partway is surfaced as a PartialFailureError and re-running is safe.
func (s *AlbumService) SoftDelete(ctx context.Context, caller *User, albumID string) error {
	album, err := s.ownedActiveAlbum(ctx, caller, albumID)
	if err != nil {
		return err
	}

	now := time.Now()
	album.State = StateTrashed
	album.DeletedAt = &now
	album.UpdatedAt = now
	if err := s.albums.Update(ctx, album); err != nil {
		return fmt.Errorf("trash album: %w", err)
	}

	applied, err := s.images.TrashByAlbum(ctx, album.AlbumID, album.Name, now)
	if err != nil {
		return &PartialFailureError{Op: "trash album " + album.AlbumID, Applied: applied, Err: err}
	}
	log.Infof("album %s moved to trash with %d images", album.AlbumID, applied)
	return nil
}

// Restore reverses SoftDelete: clears the album's trash state, then
// reactivates every image whose backreference points at it.
func (s *AlbumService) Restore(ctx context.Context, caller *User, albumID string) error {
	album, err := s.albums.FindByID(ctx, albumID)
	if err != nil {
		return fmt.Errorf("find album: %w", err)
	}
	if album == nil || !album.Trashed() {
		return fmt.Errorf("deleted album %s: %w", albumID, ErrNotFound)
	}
	if err := RequireOwner(caller, album); err != nil {
		return err
	}

	album.State = StateActive
	album.DeletedAt = nil
	album.UpdatedAt = time.Now()
	if err := s.albums.Update(ctx, album); err != nil {
		return fmt.Errorf("restore album: %w", err)
	}

	applied, err := s.images.RestoreByOriginalAlbum(ctx, album.AlbumID)
	if err != nil {
		return &PartialFailureError{Op: "restore album " + album.AlbumID, Applied: applied, Err: err}
	}
	log.Infof("album %s restored with %d images", album.AlbumID, applied)
	return nil
}

// List returns the caller's visible active albums, newest first.
func (s *AlbumService) List(ctx context.Context, caller *User) ([]Album, error) {
	albums, err := s.albums.ListVisible(ctx, caller.UserID, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// ActiveAlbum fetches an album visible to ≥view callers; trashed albums
// are reported as not found.
func (s *AlbumService) ActiveAlbum(ctx context.Context, caller *User, albumID string) (*Album, error) {
	album, err := s.albums.FindByID(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("find album: %w", err)
	}
	if album == nil || album.Trashed() {
		return nil, fmt.Errorf("album %s: %w", albumID, ErrNotFound)
	}
	if err := RequireAccess(caller, album, LevelView); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *AlbumService) ownedActiveAlbum(ctx context.Context, caller *User, albumID string) (*Album, error) {
	album, err := s.albums.FindByID(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("find album: %w", err)
	}
	if album == nil || album.Trashed() {
		return nil, fmt.Errorf("album %s: %w", albumID, ErrNotFound)
	}
	if err := RequireOwner(caller, album); err != nil {
		return nil, err
	}
	return album, nil
}
