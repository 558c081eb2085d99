package app

import "time"

type (
	Comment struct {
		CommentID string    `bson:"commentId" json:"commentId"`
		UserID    string    `bson:"userId" json:"userId"`
		UserEmail string    `bson:"userEmail" json:"userEmail"`
		Comment   string    `bson:"comment" json:"comment"`
		CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	}

	// ImageMetadata is what the object host reported at upload time.
	// PublicID is the host-side identifier used for deletion.
	ImageMetadata struct {
		Format   string `bson:"format" json:"format"`
		Width    int    `bson:"width" json:"width"`
		Height   int    `bson:"height" json:"height"`
		PublicID string `bson:"publicId" json:"publicId"`
		Bytes    int64  `bson:"bytes" json:"bytes"`
	}

	// Image references its album by id. While trashed, AlbumID keeps its
	// historical value for traceability and the OriginalAlbum* fields
	// record where the image must be restored to.
	Image struct {
		ImageID      string        `bson:"imageId" json:"imageId"`
		AlbumID      string        `bson:"albumId" json:"albumId"`
		Name         string        `bson:"name" json:"name"`
		OriginalName string        `bson:"originalName" json:"originalName"`
		URL          string        `bson:"url" json:"url"`
		ThumbnailURL string        `bson:"thumbnailUrl" json:"thumbnailUrl"`
		Tags         []string      `bson:"tags" json:"tags"`
		People       []string      `bson:"person" json:"person"`
		IsFavorite   bool          `bson:"isFavorite" json:"isFavorite"`
		Comments     []Comment     `bson:"comments" json:"comments"`
		Size         int64         `bson:"size" json:"size"`
		UploadedBy   string        `bson:"uploadedBy" json:"uploadedBy"`
		UploadedAt   time.Time     `bson:"uploadedAt" json:"uploadedAt"`
		Metadata     ImageMetadata `bson:"metadata" json:"metadata"`

		State             Lifecycle  `bson:"state" json:"state"`
		DeletedAt         *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
		OriginalAlbumID   string     `bson:"originalAlbumId,omitempty" json:"originalAlbumId,omitempty"`
		OriginalAlbumName string     `bson:"originalAlbumName,omitempty" json:"originalAlbumName,omitempty"`
	}
)

func (i *Image) Trashed() bool { return i.State == StateTrashed }
