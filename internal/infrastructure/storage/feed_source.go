package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/application/importer"
	"github.com/vendorhub/backend/internal/infrastructure/config"
)

const s3Scheme = "s3"

// ObjectGetter is the part of the S3 client the feed reader needs
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// FileFeedSource reads the feed from the local filesystem
type FileFeedSource struct {
	Path string
}

// Open opens the file for reading
func (f FileFeedSource) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// Location returns the file path
func (f FileFeedSource) Location() string {
	return f.Path
}

// S3FeedSource streams the feed from an S3 object
type S3FeedSource struct {
	client ObjectGetter
	bucket string
	key    string
}

// NewS3FeedSource creates a source for s3://bucket/key
func NewS3FeedSource(client ObjectGetter, bucket, key string) *S3FeedSource {
	return &S3FeedSource{client: client, bucket: bucket, key: key}
}

// Open starts the download; the caller closes the body
func (s *S3FeedSource) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return nil, fmt.Errorf("%s: %w", s.Location(), os.ErrNotExist)
		}
		return nil, fmt.Errorf("get %s: %w", s.Location(), err)
	}
	return out.Body, nil
}

// Location returns the s3:// URL
func (s *S3FeedSource) Location() string {
	return s3Scheme + "://" + s.bucket + "/" + s.key
}

// ParseS3Location splits s3://bucket/key. ok is false for anything that is
// not an s3 URL.
func ParseS3Location(location string) (bucket, key string, ok bool, err error) {
	if !strings.HasPrefix(location, s3Scheme+"://") {
		return "", "", false, nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", "", true, fmt.Errorf("invalid feed location %q: %w", location, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", true, fmt.Errorf("feed location %q must be s3://bucket/key", location)
	}
	return u.Host, key, true, nil
}

// NewFeedSource resolves the configured feed location to a source
func NewFeedSource(ctx context.Context, location string, cfg config.StorageConfig, logger *zap.Logger) (importer.FeedSource, error) {
	if location == "" {
		return nil, errors.New("import.products_feed is not configured")
	}
	bucket, key, isS3, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}
	if !isS3 {
		logger.Info("Reading product feed from file", zap.String("path", location))
		return FileFeedSource{Path: location}, nil
	}

	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Reading product feed from object storage",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("endpoint", cfg.Endpoint))
	return NewS3FeedSource(NewS3Client(awsCfg, cfg), bucket, key), nil
}

var (
	_ importer.FeedSource = FileFeedSource{}
	_ importer.FeedSource = (*S3FeedSource)(nil)
)
