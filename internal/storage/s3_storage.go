package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/localconnect/localconnect-backend/config"
)

// Listing photos only; nothing else is user-uploadable.
const (
	MaxImageSize   = 5 << 20 // 5 MiB
	uploadFolder   = "listings"
	presignExpires = 15 * time.Minute
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("content type is not an accepted image format")
)

// S3Storage issues presigned PUT URLs so clients upload listing images
// directly to the bucket; image bytes never pass through this server.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// PresignedUpload is handed to the client: PUT the file to UploadURL,
// then store FileURL on the listing.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

func NewS3Storage(cfg config.S3Config) *S3Storage {
	var awsCfg aws.Config

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		// Fall back to the default chain (env, shared config, IAM role).
		loaded, err := awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
		)
		if err != nil {
			loaded = aws.Config{Region: cfg.Region}
		}
		awsCfg = loaded
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: cfg.BaseURL,
	}
}

// PresignImageUpload validates the declared size and content type and
// returns a presigned PUT URL under a random key. The original filename
// contributes only its extension.
func (s *S3Storage) PresignImageUpload(ctx context.Context, filename, contentType string, size int64) (*PresignedUpload, error) {
	if size > MaxImageSize {
		return nil, ErrFileTooLarge
	}
	if !contains(allowedImageTypes, contentType) {
		return nil, ErrUnsupportedType
	}

	key := fmt.Sprintf("%s/%s%s", uploadFolder, uuid.NewString(), filepath.Ext(filename))

	presignClient := s3.NewPresignClient(s.client)
	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileURL:   s.fileURL(key),
		Key:       key,
	}, nil
}

func (s *S3Storage) fileURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
