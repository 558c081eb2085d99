package app_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	app "kaviospix/src/app"
	"kaviospix/src/repository"
)

// fakeHost records object-host calls so tests can assert delete
// attempts and simulate host outages.
type fakeHost struct {
	mu         sync.Mutex
	uploads    int
	deletes    []string
	failDelete bool
}

func (f *fakeHost) Upload(ctx context.Context, data []byte, contentType, folder string) (*app.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	publicID := fmt.Sprintf("%s/%s", folder, uuid.NewString())
	return &app.UploadResult{
		URL:          "https://images.test/" + publicID,
		ThumbnailURL: "https://images.test/" + publicID + "_400x300.jpg",
		PublicID:     publicID,
		Format:       "jpeg",
		Width:        1200,
		Height:       800,
		Bytes:        int64(len(data)),
	}, nil
}

func (f *fakeHost) DerivedURL(publicID string, width, height int) string {
	return fmt.Sprintf("https://images.test/%s_%dx%d.jpg", publicID, width, height)
}

func (f *fakeHost) Delete(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, publicID)
	if f.failDelete {
		return fmt.Errorf("%w: host unavailable", app.ErrUpstream)
	}
	return nil
}

func (f *fakeHost) deleteCount(publicID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, id := range f.deletes {
		if id == publicID {
			n++
		}
	}
	return n
}

type fixture struct {
	users  *repository.InMemoryUsers
	albums *repository.InMemoryAlbums
	images *repository.InMemoryImages
	host   *fakeHost

	auth     *app.AuthService
	albumSvc *app.AlbumService
	imageSvc *app.ImageService
	trashSvc *app.TrashService
}

func newFixture() *fixture {
	users := repository.NewInMemoryUsers()
	albums := repository.NewInMemoryAlbums()
	images := repository.NewInMemoryImages()
	host := &fakeHost{}
	tokens := app.NewTokenIssuer("test-secret", time.Hour)
	return &fixture{
		users:    users,
		albums:   albums,
		images:   images,
		host:     host,
		auth:     app.NewAuthService(users, tokens),
		albumSvc: app.NewAlbumService(albums, images, users),
		imageSvc: app.NewImageService(albums, images, host),
		trashSvc: app.NewTrashService(albums, images, host),
	}
}

func (f *fixture) user(t *testing.T, email string) *app.User {
	t.Helper()
	user := &app.User{
		UserID:    uuid.NewString(),
		Email:     email,
		Name:      email,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.users.Insert(context.Background(), user))
	return user
}

func (f *fixture) album(t *testing.T, owner *app.User, name string) *app.Album {
	t.Helper()
	album, err := f.albumSvc.Create(context.Background(), owner, name, "")
	require.NoError(t, err)
	return album
}

func (f *fixture) share(t *testing.T, owner *app.User, albumID string, level app.AccessLevel, emails ...string) {
	t.Helper()
	_, err := f.albumSvc.Share(context.Background(), owner, albumID, emails)
	require.NoError(t, err)
	if level == app.LevelView {
		return
	}
	// Share grants view by default; lift to the requested level directly.
	album, err := f.albums.FindByID(context.Background(), albumID)
	require.NoError(t, err)
	for i := range album.SharedWith {
		for _, email := range emails {
			if album.SharedWith[i].Email == email {
				album.SharedWith[i].AccessLevel = level
			}
		}
	}
	require.NoError(t, f.albums.Update(context.Background(), album))
}

func (f *fixture) upload(t *testing.T, caller *app.User, albumID, name string, tags ...string) *app.Image {
	t.Helper()
	image, err := f.imageSvc.Upload(context.Background(), caller, albumID, app.UploadRequest{
		FileName:    name,
		ContentType: "image/jpeg",
		Data:        []byte("not really a jpeg"),
		Tags:        tags,
	})
	require.NoError(t, err)
	return image
}
