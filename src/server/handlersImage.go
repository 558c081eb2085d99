package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	app "kaviospix/src/app"
)

type (
	ImageHandler struct {
		images *app.ImageService
	}

	FavoriteBody struct {
		IsFavorite bool `json:"isFavorite"`
	}

	CommentBody struct {
		Comment string `json:"comment"`
	}
)

func NewImageHandler(images *app.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload accepts a multipart form: the file plus optional tags, person
// and isFavorite fields. Tag and person values may repeat or arrive
// comma-delimited; the service normalizes both.
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no image file provided"})
		return
	}
	defer file.Close()

	var buffer bytes.Buffer
	if _, err := io.Copy(&buffer, file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to read file"})
		return
	}

	image, err := h.images.Upload(c.Request.Context(), currentUser(c), c.Param("albumId"), app.UploadRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        buffer.Bytes(),
		Tags:        c.PostFormArray("tags"),
		People:      c.PostFormArray("person"),
		IsFavorite:  c.PostForm("isFavorite") == "true",
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "image": image})
}

func (h *ImageHandler) ToggleFavorite(c *gin.Context) {
	var body FavoriteBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "malformed request body"})
		return
	}
	image, err := h.images.ToggleFavorite(c.Request.Context(), currentUser(c),
		c.Param("albumId"), c.Param("imageId"), body.IsFavorite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "image": gin.H{
		"imageId":    image.ImageID,
		"isFavorite": image.IsFavorite,
	}})
}

func (h *ImageHandler) AddComment(c *gin.Context) {
	var body CommentBody
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "comment is required"})
		return
	}
	comment, err := h.images.AddComment(c.Request.Context(), currentUser(c),
		c.Param("albumId"), c.Param("imageId"), body.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": comment})
}

func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.images.SoftDelete(c.Request.Context(), currentUser(c),
		c.Param("albumId"), c.Param("imageId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "image moved to trash"})
}

func (h *ImageHandler) List(c *gin.Context) {
	filter := app.ImageFilter{
		Tags:          c.QueryArray("tags"),
		FavoritesOnly: c.Query("favorites") == "true",
	}
	images, err := h.images.List(c.Request.Context(), currentUser(c), c.Param("albumId"), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "images": images})
}

func (h *ImageHandler) ListFavorites(c *gin.Context) {
	images, err := h.images.ListFavorites(c.Request.Context(), currentUser(c), c.Param("albumId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "images": images})
}
