package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ImageService owns the single-image lifecycle. Album-level access is
// resolved through the central rules in access.go; the only stricter
// path is deletion, which is owner-only.
type ImageService struct {
	albums AlbumStore
	images ImageStore
	host   ObjectHost
}

func NewImageService(albums AlbumStore, images ImageStore, host ObjectHost) *ImageService {
	return &ImageService{albums: albums, images: images, host: host}
}

type UploadRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	Tags        []string
	People      []string
	IsFavorite  bool
}

// Upload delegates the bytes to the object host and persists the
// record. Any collaborator with at least view access may upload.
func (s *ImageService) Upload(ctx context.Context, caller *User, albumID string, req UploadRequest) (*Image, error) {
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: no image file provided", ErrInvalidInput)
	}
	album, err := s.visibleAlbum(ctx, caller, albumID, LevelView)
	if err != nil {
		return nil, err
	}

	result, err := s.host.Upload(ctx, req.Data, req.ContentType, "albums/"+album.AlbumID)
	if err != nil {
		return nil, err
	}

	image := &Image{
		ImageID:      uuid.NewString(),
		AlbumID:      album.AlbumID,
		Name:         req.FileName,
		OriginalName: req.FileName,
		URL:          result.URL,
		ThumbnailURL: result.ThumbnailURL,
		Tags:         NormalizeLabels(req.Tags),
		People:       NormalizeLabels(req.People),
		IsFavorite:   req.IsFavorite,
		Comments:     []Comment{},
		Size:         result.Bytes,
		UploadedBy:   caller.UserID,
		UploadedAt:   time.Now(),
		Metadata: ImageMetadata{
			Format:   result.Format,
			Width:    result.Width,
			Height:   result.Height,
			PublicID: result.PublicID,
			Bytes:    result.Bytes,
		},
		State: StateActive,
	}
	if err := s.images.Insert(ctx, image); err != nil {
		return nil, fmt.Errorf("persist image: %w", err)
	}
	log.Infof("image %s uploaded to album %s (%d bytes)", image.ImageID, album.AlbumID, image.Size)
	return image, nil
}

func (s *ImageService) ToggleFavorite(ctx context.Context, caller *User, albumID, imageID string, value bool) (*Image, error) {
	_, image, err := s.visibleImage(ctx, caller, albumID, imageID, LevelView)
	if err != nil {
		return nil, err
	}
	image.IsFavorite = value
	if err := s.images.Update(ctx, image); err != nil {
		return nil, fmt.Errorf("update favorite: %w", err)
	}
	return image, nil
}

// AddComment appends a comment; comments are never edited or removed.
func (s *ImageService) AddComment(ctx context.Context, caller *User, albumID, imageID, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrInvalidInput)
	}
	_, image, err := s.visibleImage(ctx, caller, albumID, imageID, LevelView)
	if err != nil {
		return nil, err
	}
	comment := Comment{
		CommentID: uuid.NewString(),
		UserID:    caller.UserID,
		UserEmail: caller.Email,
		Comment:   text,
		CreatedAt: time.Now(),
	}
	image.Comments = append(image.Comments, comment)
	if err := s.images.Update(ctx, image); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return &comment, nil
}

// SoftDelete trashes a single image. Only the album owner may delete;
// share-list edit access is not enough. AlbumID keeps its historical
// value, the backreference drives restore.
func (s *ImageService) SoftDelete(ctx context.Context, caller *User, albumID, imageID string) error {
	album, image, err := s.visibleImage(ctx, caller, albumID, imageID, LevelView)
	if err != nil {
		return err
	}
	if err := RequireImageDelete(caller, album); err != nil {
		return err
	}

	now := time.Now()
	image.State = StateTrashed
	image.DeletedAt = &now
	image.OriginalAlbumID = image.AlbumID
	image.OriginalAlbumName = album.Name
	if err := s.images.Update(ctx, image); err != nil {
		return fmt.Errorf("trash image: %w", err)
	}
	log.Infof("image %s moved to trash from album %s", image.ImageID, album.AlbumID)
	return nil
}

// Restore reactivates a single trashed image. Allowed for the original
// uploader, or anyone currently holding at least view access on the
// album the image came from.
func (s *ImageService) Restore(ctx context.Context, caller *User, imageID string) error {
	image, err := s.trashedImage(ctx, imageID)
	if err != nil {
		return err
	}
	if err := requireImageTrashAccess(ctx, s.albums, caller, image); err != nil {
		return err
	}

	image.State = StateActive
	image.AlbumID = image.OriginalAlbumID
	image.DeletedAt = nil
	image.OriginalAlbumID = ""
	image.OriginalAlbumName = ""
	if err := s.images.Update(ctx, image); err != nil {
		return fmt.Errorf("restore image: %w", err)
	}
	return nil
}

// List returns the album's active images, newest first, optionally
// narrowed to any-of-tags and favorites.
func (s *ImageService) List(ctx context.Context, caller *User, albumID string, filter ImageFilter) ([]Image, error) {
	album, err := s.visibleAlbum(ctx, caller, albumID, LevelView)
	if err != nil {
		return nil, err
	}
	images, err := s.images.ListActive(ctx, album.AlbumID, filter)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

func (s *ImageService) ListFavorites(ctx context.Context, caller *User, albumID string) ([]Image, error) {
	return s.List(ctx, caller, albumID, ImageFilter{FavoritesOnly: true})
}

// NormalizeLabels flattens tag/person inputs: each value may itself be
// a comma-delimited list; entries are trimmed and empties dropped.
// Duplicates are permitted.
func NormalizeLabels(values []string) []string {
	labels := []string{}
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				labels = append(labels, trimmed)
			}
		}
	}
	return labels
}

func (s *ImageService) visibleAlbum(ctx context.Context, caller *User, albumID string, min AccessLevel) (*Album, error) {
	album, err := s.albums.FindByID(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("find album: %w", err)
	}
	if album == nil || album.Trashed() {
		return nil, fmt.Errorf("album %s: %w", albumID, ErrNotFound)
	}
	if err := RequireAccess(caller, album, min); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *ImageService) visibleImage(ctx context.Context, caller *User, albumID, imageID string, min AccessLevel) (*Album, *Image, error) {
	album, err := s.visibleAlbum(ctx, caller, albumID, min)
	if err != nil {
		return nil, nil, err
	}
	image, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return nil, nil, fmt.Errorf("find image: %w", err)
	}
	if image == nil || image.Trashed() || image.AlbumID != album.AlbumID {
		return nil, nil, fmt.Errorf("image %s: %w", imageID, ErrNotFound)
	}
	return album, image, nil
}

func (s *ImageService) trashedImage(ctx context.Context, imageID string) (*Image, error) {
	image, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("find image: %w", err)
	}
	if image == nil || !image.Trashed() {
		return nil, fmt.Errorf("deleted image %s: %w", imageID, ErrNotFound)
	}
	return image, nil
}
