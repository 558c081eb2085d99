package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	app "kaviospix/src/app"
)

// In-memory stores backing the service tests and local development.
// All methods copy records on the way in and out so callers never
// share memory with the store.

type InMemoryUsers struct {
	mu    sync.RWMutex
	users map[string]*app.User
}

func NewInMemoryUsers() *InMemoryUsers {
	return &InMemoryUsers{users: make(map[string]*app.User)}
}

func (s *InMemoryUsers) Insert(ctx context.Context, user *app.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users[user.UserID] = &copied
	return nil
}

func (s *InMemoryUsers) Update(ctx context.Context, user *app.User) error {
	return s.Insert(ctx, user)
}

func (s *InMemoryUsers) FindByID(ctx context.Context, userID string) (*app.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *InMemoryUsers) FindByEmail(ctx context.Context, email string) (*app.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *InMemoryUsers) FindByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*app.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if (googleID != "" && user.GoogleID == googleID) || user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *InMemoryUsers) FindByEmails(ctx context.Context, emails []string) ([]app.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(emails))
	for _, email := range emails {
		wanted[email] = true
	}
	result := []app.User{}
	for _, user := range s.users {
		if wanted[user.Email] {
			result = append(result, *user)
		}
	}
	return result, nil
}

type InMemoryAlbums struct {
	mu     sync.RWMutex
	albums map[string]*app.Album
}

func NewInMemoryAlbums() *InMemoryAlbums {
	return &InMemoryAlbums{albums: make(map[string]*app.Album)}
}

func (s *InMemoryAlbums) Insert(ctx context.Context, album *app.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums[album.AlbumID] = copyAlbum(album)
	return nil
}

func (s *InMemoryAlbums) Update(ctx context.Context, album *app.Album) error {
	return s.Insert(ctx, album)
}

func (s *InMemoryAlbums) Delete(ctx context.Context, albumID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.albums, albumID)
	return nil
}

func (s *InMemoryAlbums) FindByID(ctx context.Context, albumID string) (*app.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	album, ok := s.albums[albumID]
	if !ok {
		return nil, nil
	}
	return copyAlbum(album), nil
}

func (s *InMemoryAlbums) ListVisible(ctx context.Context, userID, email string) ([]app.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []app.Album{}
	for _, album := range s.albums {
		if album.Trashed() {
			continue
		}
		if accessible(album, userID, email) {
			result = append(result, *copyAlbum(album))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *InMemoryAlbums) ListAccessibleIDs(ctx context.Context, userID, email string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for _, album := range s.albums {
		if accessible(album, userID, email) {
			ids = append(ids, album.AlbumID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *InMemoryAlbums) ListTrashedOwned(ctx context.Context, userID string) ([]app.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []app.Album{}
	for _, album := range s.albums {
		if album.Trashed() && album.OwnerID == userID {
			result = append(result, *copyAlbum(album))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return laterDeleted(result[i].DeletedAt, result[j].DeletedAt)
	})
	return result, nil
}

type InMemoryImages struct {
	mu     sync.RWMutex
	images map[string]*app.Image
}

func NewInMemoryImages() *InMemoryImages {
	return &InMemoryImages{images: make(map[string]*app.Image)}
}

func (s *InMemoryImages) Insert(ctx context.Context, image *app.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[image.ImageID] = copyImage(image)
	return nil
}

func (s *InMemoryImages) Update(ctx context.Context, image *app.Image) error {
	return s.Insert(ctx, image)
}

func (s *InMemoryImages) Delete(ctx context.Context, imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, imageID)
	return nil
}

func (s *InMemoryImages) FindByID(ctx context.Context, imageID string) (*app.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	image, ok := s.images[imageID]
	if !ok {
		return nil, nil
	}
	return copyImage(image), nil
}

func (s *InMemoryImages) ListActive(ctx context.Context, albumID string, filter app.ImageFilter) ([]app.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []app.Image{}
	for _, image := range s.images {
		if image.AlbumID != albumID || image.Trashed() {
			continue
		}
		if filter.FavoritesOnly && !image.IsFavorite {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(image.Tags, filter.Tags) {
			continue
		}
		result = append(result, *copyImage(image))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result, nil
}

func (s *InMemoryImages) TrashByAlbum(ctx context.Context, albumID, albumName string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var applied int64
	for _, image := range s.images {
		if image.AlbumID != albumID || image.Trashed() {
			continue
		}
		when := at
		image.State = app.StateTrashed
		image.DeletedAt = &when
		image.OriginalAlbumID = albumID
		image.OriginalAlbumName = albumName
		applied++
	}
	return applied, nil
}

func (s *InMemoryImages) RestoreByOriginalAlbum(ctx context.Context, albumID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var applied int64
	for _, image := range s.images {
		if image.OriginalAlbumID != albumID || !image.Trashed() {
			continue
		}
		image.State = app.StateActive
		image.AlbumID = albumID
		image.DeletedAt = nil
		image.OriginalAlbumID = ""
		image.OriginalAlbumName = ""
		applied++
	}
	return applied, nil
}

func (s *InMemoryImages) ListTrashedByOriginalAlbum(ctx context.Context, albumID string) ([]app.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []app.Image{}
	for _, image := range s.images {
		if image.Trashed() && image.OriginalAlbumID == albumID {
			result = append(result, *copyImage(image))
		}
	}
	return result, nil
}

func (s *InMemoryImages) ListTrashedVisible(ctx context.Context, userID string, albumIDs []string) ([]app.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visible := make(map[string]bool, len(albumIDs))
	for _, id := range albumIDs {
		visible[id] = true
	}
	result := []app.Image{}
	for _, image := range s.images {
		if !image.Trashed() {
			continue
		}
		if image.UploadedBy == userID || visible[image.OriginalAlbumID] {
			result = append(result, *copyImage(image))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return laterDeleted(result[i].DeletedAt, result[j].DeletedAt)
	})
	return result, nil
}

func accessible(album *app.Album, userID, email string) bool {
	if album.OwnerID == userID {
		return true
	}
	_, shared := album.SharedLevel(email)
	return shared
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func laterDeleted(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

func copyAlbum(album *app.Album) *app.Album {
	copied := *album
	copied.SharedWith = append([]app.ShareEntry(nil), album.SharedWith...)
	if album.DeletedAt != nil {
		t := *album.DeletedAt
		copied.DeletedAt = &t
	}
	return &copied
}

func copyImage(image *app.Image) *app.Image {
	copied := *image
	copied.Tags = append([]string(nil), image.Tags...)
	copied.People = append([]string(nil), image.People...)
	copied.Comments = append([]app.Comment(nil), image.Comments...)
	if image.DeletedAt != nil {
		t := *image.DeletedAt
		copied.DeletedAt = &t
	}
	return &copied
}
