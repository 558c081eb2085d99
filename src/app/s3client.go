package app

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
)

// ClientMinio is the slice of the minio client the adapter uses; tests
// substitute a fake.
type ClientMinio interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (info minio.UploadInfo, err error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioS3Client stores originals and derived thumbnails in a single
// bucket. The public id of an image is its object key without
// extension; the derived thumbnail lives next to it under a
// size-suffixed key, so DerivedURL stays a pure string computation.
type MinioS3Client struct {
	endpoint   string
	bucketName string
	publicURL  string
	client     ClientMinio
}

const (
	defaultContentType = "application/octet-stream"
	thumbWidth         = 400
	thumbHeight        = 300
)

func NewMinioS3Client(endpoint, accessKeyID, secretAccessKey, bucketName, publicURL string, useSSL bool) (*MinioS3Client, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio s3 client: %w", err)
	}

	return &MinioS3Client{
		endpoint:   endpoint,
		bucketName: bucketName,
		publicURL:  strings.TrimRight(publicURL, "/"),
		client:     minioClient,
	}, nil
}

// Upload stores the original bytes and a derived thumbnail, returning
// the canonical URLs and what the host learned about the image.
func (s3 *MinioS3Client) Upload(ctx context.Context, data []byte, contentType, folder string) (*UploadResult, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not a decodable image: %v", ErrInvalidInput, err)
	}
	bounds := img.Bounds()

	publicID := fmt.Sprintf("%s/%s", strings.Trim(folder, "/"), uuid.NewString())
	if contentType == "" {
		contentType = defaultContentType
	}

	if _, err := s3.client.PutObject(ctx, s3.bucketName, publicID,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return nil, fmt.Errorf("%w: put object %s: %v", ErrUpstream, publicID, err)
	}

	thumb := resize.Thumbnail(thumbWidth, thumbHeight, img, resize.Lanczos3)
	var thumbBuf bytes.Buffer
	if err := jpeg.Encode(&thumbBuf, thumb, nil); err != nil {
		return nil, fmt.Errorf("encode thumbnail for %s: %w", publicID, err)
	}
	thumbKey := derivedKey(publicID, thumbWidth, thumbHeight)
	if _, err := s3.client.PutObject(ctx, s3.bucketName, thumbKey,
		bytes.NewReader(thumbBuf.Bytes()), int64(thumbBuf.Len()),
		minio.PutObjectOptions{ContentType: "image/jpeg"}); err != nil {
		return nil, fmt.Errorf("%w: put thumbnail %s: %v", ErrUpstream, thumbKey, err)
	}

	return &UploadResult{
		URL:          s3.objectURL(publicID),
		ThumbnailURL: s3.DerivedURL(publicID, thumbWidth, thumbHeight),
		PublicID:     publicID,
		Format:       format,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		Bytes:        int64(len(data)),
	}, nil
}

// DerivedURL composes the public URL of the size-suffixed derived
// object. No I/O; the thumbnail was materialized at upload time.
func (s3 *MinioS3Client) DerivedURL(publicID string, width, height int) string {
	return s3.objectURL(derivedKey(publicID, width, height))
}

// Delete removes the original and its derived thumbnail.
func (s3 *MinioS3Client) Delete(ctx context.Context, publicID string) error {
	opts := minio.RemoveObjectOptions{}
	if err := s3.client.RemoveObject(ctx, s3.bucketName, publicID, opts); err != nil {
		return fmt.Errorf("%w: remove object %s: %v", ErrUpstream, publicID, err)
	}
	thumbKey := derivedKey(publicID, thumbWidth, thumbHeight)
	if err := s3.client.RemoveObject(ctx, s3.bucketName, thumbKey, opts); err != nil {
		// The original is already gone; an orphaned thumbnail is not
		// worth failing the purge over.
		log.Warnf("remove thumbnail %s: %v", thumbKey, err)
	}
	return nil
}

func (s3 *MinioS3Client) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s3.publicURL, s3.bucketName, key)
}

func derivedKey(publicID string, width, height int) string {
	return fmt.Sprintf("%s_%dx%d.jpg", publicID, width, height)
}
