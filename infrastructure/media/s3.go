// Package media implements the upload collaborator: store bytes,
// return a stable absolute URL. The mutation service calls it before
// any store write; the query service never does.
package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/ports"
)

// allowedExtensions are the media formats uploads may carry. Anything
// else is an invalid-format failure before bytes leave the process.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
	".flac": true,
}

// ErrInvalidFormat is returned for uploads whose extension is not a
// recognized media format.
var ErrInvalidFormat = fmt.Errorf("invalid media format")

// S3Store uploads media to an S3 bucket and returns its public URL.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
	folder string
	logger *zap.Logger
}

var _ ports.MediaStore = (*S3Store)(nil)

// NewS3Store creates an S3-backed media store.
func NewS3Store(client *s3.Client, bucket, region, folder string, logger *zap.Logger) *S3Store {
	return &S3Store{client: client, bucket: bucket, region: region, folder: folder, logger: logger}
}

// Put uploads data and returns its durable URL. The object key embeds
// a fresh UUID: uploads never overwrite each other, so a returned URL
// stays valid for the lifetime of the row referencing it.
func (s *S3Store) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	ext, err := checkFormat(filename, data)
	if err != nil {
		return "", err
	}

	key := path.Join(s.folder, uuid.New().String()+ext)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	s.logger.Debug("media uploaded",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return url, nil
}

func checkFormat(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrInvalidFormat)
	}
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, ext)
	}
	return ext, nil
}
