package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Upload is an incoming file decoupled from the HTTP layer.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// IsAllowedImageType reports whether the content type is accepted for
// activity images and avatars.
func IsAllowedImageType(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png"
}

// ImageStorage puts uploaded images somewhere reachable by URL.
type ImageStorage interface {
	UploadImage(upload *Upload) (string, error)
	DefaultActivityImage() string
	DefaultAvatarImage() string
}

type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Storage builds a client from S3_* environment variables. The endpoint
// may point at any S3-compatible store (MinIO in development).
func NewS3Storage() (*S3Storage, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not set")
	}

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			os.Getenv("S3_ACCESS_KEY_ID"),
			os.Getenv("S3_SECRET_ACCESS_KEY"),
			"",
		),
		Region:       region,
		UsePathStyle: true,
	})

	return &S3Storage{
		client:    client,
		bucket:    bucket,
		publicURL: fmt.Sprintf("%s/%s", endpoint, bucket),
	}, nil
}

func (s *S3Storage) UploadImage(upload *Upload) (string, error) {
	key := fmt.Sprintf("images/%s%s", uuid.NewString(), filepath.Ext(upload.FileName))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          upload.Reader,
		ContentType:   aws.String(upload.ContentType),
		ContentLength: aws.Int64(upload.Size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

func (s *S3Storage) DefaultActivityImage() string {
	return fmt.Sprintf("%s/default-image.jpg", s.publicURL)
}

func (s *S3Storage) DefaultAvatarImage() string {
	return fmt.Sprintf("%s/default-avatar.jpg", s.publicURL)
}
