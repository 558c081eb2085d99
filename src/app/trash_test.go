package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "kaviospix/src/app"
)

func TestTrashListVisibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	viewer := f.user(t, "viewer@example.com")

	album := f.album(t, owner, "Trip")
	f.share(t, owner, album.AlbumID, app.LevelView, viewer.Email)
	image := f.upload(t, owner, album.AlbumID, "beach.jpg")

	require.NoError(t, f.albumSvc.SoftDelete(ctx, owner, album.AlbumID))

	t.Run("owner sees the album and its image", func(t *testing.T) {
		items, err := f.trashSvc.List(ctx, owner)
		require.NoError(t, err)
		require.Len(t, items, 2)

		kinds := map[app.TrashKind]string{}
		for _, item := range items {
			kinds[item.Kind] = item.ID
		}
		assert.Equal(t, album.AlbumID, kinds[app.TrashAlbum])
		assert.Equal(t, image.ImageID, kinds[app.TrashImage])
	})

	t.Run("viewer sees the image but not the album", func(t *testing.T) {
		items, err := f.trashSvc.List(ctx, viewer)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, app.TrashImage, items[0].Kind)
		assert.Equal(t, "Trip", items[0].OriginalAlbum)
	})

	t.Run("a stranger sees nothing", func(t *testing.T) {
		stranger := f.user(t, "stranger@example.com")
		items, err := f.trashSvc.List(ctx, stranger)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestTrashScenarioRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := f.user(t, "u@example.com")

	album := f.album(t, user, "Trip")
	img1 := f.upload(t, user, album.AlbumID, "img1.jpg", "beach", "sunset")

	require.NoError(t, f.albumSvc.SoftDelete(ctx, user, album.AlbumID))

	items, err := f.trashSvc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		if item.Kind == app.TrashImage {
			assert.Equal(t, img1.ImageID, item.ID)
			assert.Equal(t, "Trip", item.OriginalAlbum)
			assert.Equal(t, []string{"beach", "sunset"}, item.Tags)
		} else {
			assert.Equal(t, album.AlbumID, item.ID)
		}
	}

	require.NoError(t, f.albumSvc.Restore(ctx, user, album.AlbumID))

	images, err := f.imageSvc.List(ctx, user, album.AlbumID, app.ImageFilter{})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, img1.ImageID, images[0].ImageID)
	assert.False(t, images[0].Trashed())
}

func TestPurgeImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	album := f.album(t, owner, "Trip")
	image := f.upload(t, owner, album.AlbumID, "beach.jpg")

	t.Run("an active image cannot be purged", func(t *testing.T) {
		err := f.trashSvc.PurgeImage(ctx, owner, image.ImageID)
		assert.True(t, errors.Is(err, app.ErrNotFound))
	})

	require.NoError(t, f.imageSvc.SoftDelete(ctx, owner, album.AlbumID, image.ImageID))

	t.Run("purge removes record and attempts asset deletion once", func(t *testing.T) {
		require.NoError(t, f.trashSvc.PurgeImage(ctx, owner, image.ImageID))

		assert.Equal(t, 1, f.host.deleteCount(image.Metadata.PublicID))

		stored, err := f.images.FindByID(ctx, image.ImageID)
		require.NoError(t, err)
		assert.Nil(t, stored)

		err = f.trashSvc.PurgeImage(ctx, owner, image.ImageID)
		assert.True(t, errors.Is(err, app.ErrNotFound))
	})
}

func TestPurgeSwallowsHostFailures(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	album := f.album(t, owner, "Trip")
	image := f.upload(t, owner, album.AlbumID, "beach.jpg")
	require.NoError(t, f.imageSvc.SoftDelete(ctx, owner, album.AlbumID, image.ImageID))

	f.host.failDelete = true
	require.NoError(t, f.trashSvc.PurgeImage(ctx, owner, image.ImageID),
		"object host failure must not surface to the caller")

	stored, err := f.images.FindByID(ctx, image.ImageID)
	require.NoError(t, err)
	assert.Nil(t, stored, "record removal is unconditional")
}

func TestPurgeAlbum(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	album := f.album(t, owner, "Trip")
	img1 := f.upload(t, owner, album.AlbumID, "one.jpg")
	img2 := f.upload(t, owner, album.AlbumID, "two.jpg")
	require.NoError(t, f.albumSvc.SoftDelete(ctx, owner, album.AlbumID))

	t.Run("only the owner may purge the album", func(t *testing.T) {
		other := f.user(t, "other@example.com")
		err := f.trashSvc.PurgeAlbum(ctx, other, album.AlbumID)
		assert.True(t, errors.Is(err, app.ErrForbidden))
	})

	t.Run("purge removes the album and all its trashed images", func(t *testing.T) {
		require.NoError(t, f.trashSvc.PurgeAlbum(ctx, owner, album.AlbumID))

		storedAlbum, err := f.albums.FindByID(ctx, album.AlbumID)
		require.NoError(t, err)
		assert.Nil(t, storedAlbum)

		for _, image := range []*app.Image{img1, img2} {
			stored, err := f.images.FindByID(ctx, image.ImageID)
			require.NoError(t, err)
			assert.Nil(t, stored)
			assert.Equal(t, 1, f.host.deleteCount(image.Metadata.PublicID))
		}
	})
}

func TestEmptyTrash(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")

	kept := f.album(t, owner, "Kept")
	f.upload(t, owner, kept.AlbumID, "keep.jpg")

	doomed := f.album(t, owner, "Doomed")
	f.upload(t, owner, doomed.AlbumID, "a.jpg")
	f.upload(t, owner, doomed.AlbumID, "b.jpg")
	require.NoError(t, f.albumSvc.SoftDelete(ctx, owner, doomed.AlbumID))

	report, err := f.trashSvc.EmptyAll(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Images)
	assert.Equal(t, 1, report.Albums)

	items, err := f.trashSvc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Active content is untouched.
	images, err := f.imageSvc.List(ctx, owner, kept.AlbumID, app.ImageFilter{})
	require.NoError(t, err)
	assert.Len(t, images, 1)
}
