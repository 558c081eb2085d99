package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "kaviospix/src/app"
)

func TestNormalizeLabels(t *testing.T) {
	assert.Equal(t, []string{"beach", "sunset"}, app.NormalizeLabels([]string{"beach, sunset"}))
	assert.Equal(t, []string{"beach", "sunset"}, app.NormalizeLabels([]string{"beach", "sunset"}))
	assert.Equal(t, []string{"a", "b", "c"}, app.NormalizeLabels([]string{" a ,b", "", "c"}))
	// Duplicates are permitted.
	assert.Equal(t, []string{"x", "x"}, app.NormalizeLabels([]string{"x,x"}))
	assert.Empty(t, app.NormalizeLabels(nil))
}

func TestImageUpload(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	viewer := f.user(t, "viewer@example.com")
	album := f.album(t, owner, "Trip")
	f.share(t, owner, album.AlbumID, app.LevelView, viewer.Email)

	t.Run("view access is enough to upload", func(t *testing.T) {
		image, err := f.imageSvc.Upload(ctx, viewer, album.AlbumID, app.UploadRequest{
			FileName:    "beach.jpg",
			ContentType: "image/jpeg",
			Data:        []byte("bytes"),
			Tags:        []string{"beach,sunset"},
		})
		require.NoError(t, err)
		assert.Equal(t, viewer.UserID, image.UploadedBy)
		assert.Equal(t, []string{"beach", "sunset"}, image.Tags)
		assert.NotEmpty(t, image.URL)
		assert.NotEmpty(t, image.ThumbnailURL)
		assert.NotEmpty(t, image.Metadata.PublicID)
		assert.Equal(t, app.StateActive, image.State)
	})

	t.Run("strangers cannot upload", func(t *testing.T) {
		stranger := f.user(t, "stranger@example.com")
		_, err := f.imageSvc.Upload(ctx, stranger, album.AlbumID, app.UploadRequest{
			FileName: "x.jpg", Data: []byte("bytes"),
		})
		assert.True(t, errors.Is(err, app.ErrForbidden))
	})

	t.Run("empty file is invalid", func(t *testing.T) {
		_, err := f.imageSvc.Upload(ctx, owner, album.AlbumID, app.UploadRequest{FileName: "x.jpg"})
		assert.True(t, errors.Is(err, app.ErrInvalidInput))
	})
}

func TestImageMutations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	viewer := f.user(t, "viewer@example.com")
	album := f.album(t, owner, "Trip")
	f.share(t, owner, album.AlbumID, app.LevelView, viewer.Email)
	image := f.upload(t, owner, album.AlbumID, "beach.jpg")

	t.Run("viewer can toggle favorite", func(t *testing.T) {
		updated, err := f.imageSvc.ToggleFavorite(ctx, viewer, album.AlbumID, image.ImageID, true)
		require.NoError(t, err)
		assert.True(t, updated.IsFavorite)
	})

	t.Run("viewer can comment and the comment carries their email", func(t *testing.T) {
		comment, err := f.imageSvc.AddComment(ctx, viewer, album.AlbumID, image.ImageID, " nice shot ")
		require.NoError(t, err)
		assert.Equal(t, "nice shot", comment.Comment)
		assert.Equal(t, viewer.Email, comment.UserEmail)

		stored, err := f.images.FindByID(ctx, image.ImageID)
		require.NoError(t, err)
		require.Len(t, stored.Comments, 1)
		assert.Equal(t, comment.CommentID, stored.Comments[0].CommentID)
	})

	t.Run("empty comment is invalid", func(t *testing.T) {
		_, err := f.imageSvc.AddComment(ctx, viewer, album.AlbumID, image.ImageID, "   ")
		assert.True(t, errors.Is(err, app.ErrInvalidInput))
	})

	t.Run("viewer cannot delete", func(t *testing.T) {
		err := f.imageSvc.SoftDelete(ctx, viewer, album.AlbumID, image.ImageID)
		assert.True(t, errors.Is(err, app.ErrForbidden))
	})

	t.Run("owner delete stamps the backreference", func(t *testing.T) {
		require.NoError(t, f.imageSvc.SoftDelete(ctx, owner, album.AlbumID, image.ImageID))

		trashed, err := f.images.FindByID(ctx, image.ImageID)
		require.NoError(t, err)
		assert.True(t, trashed.Trashed())
		assert.Equal(t, album.AlbumID, trashed.AlbumID, "albumId keeps its historical value")
		assert.Equal(t, album.AlbumID, trashed.OriginalAlbumID)
		assert.Equal(t, "Trip", trashed.OriginalAlbumName)
	})

	t.Run("trashed image is not found for mutation", func(t *testing.T) {
		_, err := f.imageSvc.ToggleFavorite(ctx, owner, album.AlbumID, image.ImageID, false)
		assert.True(t, errors.Is(err, app.ErrNotFound))
	})
}

func TestImageRestore(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	uploader := f.user(t, "uploader@example.com")
	album := f.album(t, owner, "Trip")
	f.share(t, owner, album.AlbumID, app.LevelView, uploader.Email)

	image := f.upload(t, uploader, album.AlbumID, "beach.jpg")
	require.NoError(t, f.imageSvc.SoftDelete(ctx, owner, album.AlbumID, image.ImageID))

	t.Run("a stranger cannot restore", func(t *testing.T) {
		stranger := f.user(t, "stranger@example.com")
		err := f.imageSvc.Restore(ctx, stranger, image.ImageID)
		assert.True(t, errors.Is(err, app.ErrForbidden))
	})

	t.Run("the uploader can restore", func(t *testing.T) {
		require.NoError(t, f.imageSvc.Restore(ctx, uploader, image.ImageID))

		restored, err := f.images.FindByID(ctx, image.ImageID)
		require.NoError(t, err)
		assert.False(t, restored.Trashed())
		assert.Equal(t, album.AlbumID, restored.AlbumID)
		assert.Empty(t, restored.OriginalAlbumID)
		assert.Empty(t, restored.OriginalAlbumName)
		assert.Nil(t, restored.DeletedAt)
	})

	t.Run("restoring an active image is not found", func(t *testing.T) {
		err := f.imageSvc.Restore(ctx, uploader, image.ImageID)
		assert.True(t, errors.Is(err, app.ErrNotFound))
	})
}

func TestImageList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	album := f.album(t, owner, "Trip")

	first := f.upload(t, owner, album.AlbumID, "first.jpg", "beach")
	// Uploads need distinct timestamps for the ordering assertion.
	aged, err := f.images.FindByID(ctx, first.ImageID)
	require.NoError(t, err)
	aged.UploadedAt = aged.UploadedAt.Add(-time.Hour)
	require.NoError(t, f.images.Update(ctx, aged))

	second := f.upload(t, owner, album.AlbumID, "second.jpg", "sunset")
	_, err = f.imageSvc.ToggleFavorite(ctx, owner, album.AlbumID, second.ImageID, true)
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		images, err := f.imageSvc.List(ctx, owner, album.AlbumID, app.ImageFilter{})
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Equal(t, "second.jpg", images[0].Name)
	})

	t.Run("any-tag filter", func(t *testing.T) {
		images, err := f.imageSvc.List(ctx, owner, album.AlbumID, app.ImageFilter{Tags: []string{"beach", "nope"}})
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, "first.jpg", images[0].Name)
	})

	t.Run("favorites only", func(t *testing.T) {
		images, err := f.imageSvc.ListFavorites(ctx, owner, album.AlbumID)
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, "second.jpg", images[0].Name)
	})

	t.Run("trashed images are excluded", func(t *testing.T) {
		require.NoError(t, f.imageSvc.SoftDelete(ctx, owner, album.AlbumID, second.ImageID))
		images, err := f.imageSvc.List(ctx, owner, album.AlbumID, app.ImageFilter{})
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, "first.jpg", images[0].Name)
	})
}
