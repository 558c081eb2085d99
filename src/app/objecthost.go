package app

import "context"

// UploadResult is the object host's report of a stored image.
type UploadResult struct {
	URL          string
	ThumbnailURL string
	PublicID     string
	Format       string
	Width        int
	Height       int
	Bytes        int64
}

// ObjectHost is the binary-object collaborator holding image bytes.
// Delete failures are non-fatal to purge callers; they log and continue.
type ObjectHost interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (*UploadResult, error)
	DerivedURL(publicID string, width, height int) string
	Delete(ctx context.Context, publicID string) error
}
