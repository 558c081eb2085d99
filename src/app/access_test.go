package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	app "kaviospix/src/app"
)

func TestCanAccess(t *testing.T) {
	owner := &app.User{UserID: "owner-1", Email: "owner@example.com"}
	viewer := &app.User{UserID: "viewer-1", Email: "viewer@example.com"}
	editor := &app.User{UserID: "editor-1", Email: "editor@example.com"}
	stranger := &app.User{UserID: "stranger-1", Email: "stranger@example.com"}

	album := &app.Album{
		AlbumID: "album-1",
		OwnerID: owner.UserID,
		SharedWith: []app.ShareEntry{
			{Email: viewer.Email, AccessLevel: app.LevelView},
			{Email: editor.Email, AccessLevel: app.LevelEdit},
		},
	}

	t.Run("owner has edit regardless of share list", func(t *testing.T) {
		assert.Equal(t, app.LevelEdit, app.CanAccess(owner, album))
	})

	t.Run("share list entries hold their stored level", func(t *testing.T) {
		assert.Equal(t, app.LevelView, app.CanAccess(viewer, album))
		assert.Equal(t, app.LevelEdit, app.CanAccess(editor, album))
	})

	t.Run("everyone else has none", func(t *testing.T) {
		assert.Equal(t, app.LevelNone, app.CanAccess(stranger, album))
	})

	t.Run("require access enforces minimum level", func(t *testing.T) {
		assert.NoError(t, app.RequireAccess(viewer, album, app.LevelView))
		err := app.RequireAccess(viewer, album, app.LevelEdit)
		assert.True(t, errors.Is(err, app.ErrForbidden))
	})

	t.Run("missing album is not found", func(t *testing.T) {
		err := app.RequireAccess(viewer, nil, app.LevelView)
		assert.True(t, errors.Is(err, app.ErrNotFound))
	})

	t.Run("image delete is owner only", func(t *testing.T) {
		assert.NoError(t, app.RequireImageDelete(owner, album))
		err := app.RequireImageDelete(editor, album)
		assert.True(t, errors.Is(err, app.ErrForbidden), "edit access must not permit image deletion")
	})
}
