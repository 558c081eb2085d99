package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "kaviospix/src/app"
)

type (
	AlbumHandler struct {
		albums *app.AlbumService
	}

	CreateAlbumBody struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	UpdateAlbumBody struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	ShareAlbumBody struct {
		Emails []string `json:"emails"`
	}
)

func NewAlbumHandler(albums *app.AlbumService) *AlbumHandler {
	return &AlbumHandler{albums: albums}
}

func (h *AlbumHandler) Create(c *gin.Context) {
	var body CreateAlbumBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "malformed request body"})
		return
	}
	album, err := h.albums.Create(c.Request.Context(), currentUser(c), body.Name, body.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "album": album})
}

func (h *AlbumHandler) Update(c *gin.Context) {
	var body UpdateAlbumBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "malformed request body"})
		return
	}
	album, err := h.albums.Update(c.Request.Context(), currentUser(c), c.Param("albumId"),
		app.AlbumPatch{Name: body.Name, Description: body.Description})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "album": album})
}

func (h *AlbumHandler) Share(c *gin.Context) {
	var body ShareAlbumBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "emails array is required"})
		return
	}
	album, err := h.albums.Share(c.Request.Context(), currentUser(c), c.Param("albumId"), body.Emails)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "album shared successfully",
		"sharedWith": album.SharedWith,
	})
}

func (h *AlbumHandler) Delete(c *gin.Context) {
	if err := h.albums.SoftDelete(c.Request.Context(), currentUser(c), c.Param("albumId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "album and all associated images moved to trash"})
}

func (h *AlbumHandler) List(c *gin.Context) {
	albums, err := h.albums.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "albums": albums})
}
