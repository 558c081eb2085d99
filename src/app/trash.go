package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

// TrashKind tags a trash listing entry with its entity type.
type TrashKind string

const (
	TrashImage TrashKind = "image"
	TrashAlbum TrashKind = "album"
)

type (
	TrashItem struct {
		ID                string        `json:"id"`
		Kind              TrashKind     `json:"type"`
		Name              string        `json:"name"`
		ThumbnailURL      string        `json:"thumbnailUrl,omitempty"`
		Size              int64         `json:"size"`
		DeletedAt         time.Time     `json:"deletedAt"`
		OriginalAlbum     string        `json:"originalAlbum,omitempty"`
		OriginalAlbumID   string        `json:"originalAlbumId,omitempty"`
		Tags              []string      `json:"tags,omitempty"`
		IsFavorite        bool          `json:"isFavorite,omitempty"`
		Metadata          ImageMetadata `json:"metadata,omitempty"`
	}

	// PurgeReport counts what EmptyTrash removed.
	PurgeReport struct {
		Images int `json:"deletedImages"`
		Albums int `json:"deletedAlbums"`
	}
)

// TrashService surfaces and permanently removes trashed entities.
// Object-host deletions are best-effort throughout: a host failure is
// logged and the record is removed anyway, never surfaced to the
// caller. That log-and-continue policy is applied uniformly here.
type TrashService struct {
	albums AlbumStore
	images ImageStore
	host   ObjectHost
}

func NewTrashService(albums AlbumStore, images ImageStore, host ObjectHost) *TrashService {
	return &TrashService{albums: albums, images: images, host: host}
}

// List merges the caller's visible trashed images and owned trashed
// albums into one sequence, most recently deleted first. A shared
// collaborator sees images trashed from albums they can access, but a
// trashed album itself is visible only to its owner.
func (s *TrashService) List(ctx context.Context, caller *User) ([]TrashItem, error) {
	albumIDs, err := s.albums.ListAccessibleIDs(ctx, caller.UserID, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve accessible albums: %w", err)
	}
	images, err := s.images.ListTrashedVisible(ctx, caller.UserID, albumIDs)
	if err != nil {
		return nil, fmt.Errorf("list trashed images: %w", err)
	}
	albums, err := s.albums.ListTrashedOwned(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list trashed albums: %w", err)
	}

	items := make([]TrashItem, 0, len(images)+len(albums))
	for _, image := range images {
		items = append(items, TrashItem{
			ID:              image.ImageID,
			Kind:            TrashImage,
			Name:            image.Name,
			ThumbnailURL:    image.ThumbnailURL,
			Size:            image.Size,
			DeletedAt:       deletedAt(image.DeletedAt),
			OriginalAlbum:   image.OriginalAlbumName,
			OriginalAlbumID: image.OriginalAlbumID,
			Tags:            image.Tags,
			IsFavorite:      image.IsFavorite,
			Metadata:        image.Metadata,
		})
	}
	for _, album := range albums {
		items = append(items, TrashItem{
			ID:        album.AlbumID,
			Kind:      TrashAlbum,
			Name:      album.Name,
			DeletedAt: deletedAt(album.DeletedAt),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DeletedAt.After(items[j].DeletedAt)
	})
	return items, nil
}

// PurgeImage permanently removes a single trashed image: best-effort
// asset deletion, then unconditional record removal. Terminal.
func (s *TrashService) PurgeImage(ctx context.Context, caller *User, imageID string) error {
	image, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return fmt.Errorf("find image: %w", err)
	}
	if image == nil || !image.Trashed() {
		return fmt.Errorf("deleted image %s: %w", imageID, ErrNotFound)
	}
	if err := requireImageTrashAccess(ctx, s.albums, caller, image); err != nil {
		return err
	}
	s.removeAsset(ctx, image)
	if err := s.images.Delete(ctx, image.ImageID); err != nil {
		return fmt.Errorf("purge image record: %w", err)
	}
	return nil
}

// PurgeAlbum permanently removes a trashed album the caller owns and
// every trashed image that came from it.
func (s *TrashService) PurgeAlbum(ctx context.Context, caller *User, albumID string) error {
	album, err := s.trashedOwnedAlbum(ctx, caller, albumID)
	if err != nil {
		return err
	}
	images, err := s.images.ListTrashedByOriginalAlbum(ctx, album.AlbumID)
	if err != nil {
		return fmt.Errorf("enumerate album trash: %w", err)
	}
	for i := range images {
		s.removeAsset(ctx, &images[i])
		if err := s.images.Delete(ctx, images[i].ImageID); err != nil {
			return fmt.Errorf("purge image record %s: %w", images[i].ImageID, err)
		}
	}
	if err := s.albums.Delete(ctx, album.AlbumID); err != nil {
		return fmt.Errorf("purge album record: %w", err)
	}
	log.Infof("album %s permanently deleted with %d images", album.AlbumID, len(images))
	return nil
}

// EmptyAll purges everything visible to the caller under the same
// rules as List. Per-item object-host failures never abort the sweep.
func (s *TrashService) EmptyAll(ctx context.Context, caller *User) (PurgeReport, error) {
	var report PurgeReport

	albumIDs, err := s.albums.ListAccessibleIDs(ctx, caller.UserID, caller.Email)
	if err != nil {
		return report, fmt.Errorf("resolve accessible albums: %w", err)
	}
	images, err := s.images.ListTrashedVisible(ctx, caller.UserID, albumIDs)
	if err != nil {
		return report, fmt.Errorf("list trashed images: %w", err)
	}
	for i := range images {
		s.removeAsset(ctx, &images[i])
		if err := s.images.Delete(ctx, images[i].ImageID); err != nil {
			return report, fmt.Errorf("purge image record %s: %w", images[i].ImageID, err)
		}
		report.Images++
	}

	albums, err := s.albums.ListTrashedOwned(ctx, caller.UserID)
	if err != nil {
		return report, fmt.Errorf("list trashed albums: %w", err)
	}
	for _, album := range albums {
		if err := s.albums.Delete(ctx, album.AlbumID); err != nil {
			return report, fmt.Errorf("purge album record %s: %w", album.AlbumID, err)
		}
		report.Albums++
	}
	return report, nil
}

// removeAsset applies the log-and-continue policy for the object host.
func (s *TrashService) removeAsset(ctx context.Context, image *Image) {
	if image.Metadata.PublicID == "" {
		return
	}
	if err := s.host.Delete(ctx, image.Metadata.PublicID); err != nil {
		log.Warnf("object host delete failed for %s: %v", image.Metadata.PublicID, err)
	}
}

func (s *TrashService) trashedOwnedAlbum(ctx context.Context, caller *User, albumID string) (*Album, error) {
	album, err := s.albums.FindByID(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("find album: %w", err)
	}
	if album == nil || !album.Trashed() {
		return nil, fmt.Errorf("deleted album %s: %w", albumID, ErrNotFound)
	}
	if err := RequireOwner(caller, album); err != nil {
		return nil, err
	}
	return album, nil
}

// requireImageTrashAccess is the rule shared by single-image restore
// and purge: the uploader always may act, otherwise the caller needs
// current access to the album the image came from.
func requireImageTrashAccess(ctx context.Context, albums AlbumStore, caller *User, image *Image) error {
	if image.UploadedBy == caller.UserID {
		return nil
	}
	album, err := albums.FindByID(ctx, image.OriginalAlbumID)
	if err != nil {
		return fmt.Errorf("find original album: %w", err)
	}
	if album == nil || CanAccess(caller, album) == LevelNone {
		return fmt.Errorf("image %s: %w", image.ImageID, ErrForbidden)
	}
	return nil
}

func deletedAt(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
