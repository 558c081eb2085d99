package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "kaviospix/src/app"
)

type TrashHandler struct {
	trash  *app.TrashService
	albums *app.AlbumService
	images *app.ImageService
}

func NewTrashHandler(trash *app.TrashService, albums *app.AlbumService, images *app.ImageService) *TrashHandler {
	return &TrashHandler{trash: trash, albums: albums, images: images}
}

func (h *TrashHandler) List(c *gin.Context) {
	items, err := h.trash.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

func (h *TrashHandler) RestoreAlbum(c *gin.Context) {
	if err := h.albums.Restore(c.Request.Context(), currentUser(c), c.Param("albumId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "album and all images restored successfully"})
}

func (h *TrashHandler) RestoreImage(c *gin.Context) {
	if err := h.images.Restore(c.Request.Context(), currentUser(c), c.Param("imageId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "image restored successfully"})
}

func (h *TrashHandler) PurgeAlbum(c *gin.Context) {
	if err := h.trash.PurgeAlbum(c.Request.Context(), currentUser(c), c.Param("albumId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "album and all images permanently deleted"})
}

func (h *TrashHandler) PurgeImage(c *gin.Context) {
	if err := h.trash.PurgeImage(c.Request.Context(), currentUser(c), c.Param("imageId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "image permanently deleted"})
}

func (h *TrashHandler) Empty(c *gin.Context) {
	report, err := h.trash.EmptyAll(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "trash emptied successfully",
		"deletedImages": report.Images,
		"deletedAlbums": report.Albums,
	})
}
