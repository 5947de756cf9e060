// Package s3 implements the object store port on Amazon S3.
package s3

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/logger"
)

// Ensure Store and Factory implement the interfaces.
var (
	_ driven.ObjectStore        = (*Store)(nil)
	_ driven.ObjectStoreFactory = (*Factory)(nil)
)

// API is the subset of the S3 client used by Store.
type API interface {
	HeadObject(ctx context.Context, params *awss3.HeadObjectInput, optFns ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Store is an S3-backed object store.
type Store struct {
	client API
}

// New creates a store with static credentials from settings.
func New(settings domain.StorageSettings) (*Store, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: storage region and credentials are required", domain.ErrInvalidInput)
	}
	cfg := aws.Config{
		Region: settings.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			settings.AccessKeyID, settings.SecretAccessKey, "",
		),
	}
	return NewWithClient(awss3.NewFromConfig(cfg)), nil
}

// NewWithClient creates a store over an existing client.
func NewWithClient(client API) *Store {
	return &Store{client: client}
}

// Exists reports whether key is present in bucket.
// A missing object is (false, nil).
func (s *Store) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("head %s/%s: %w", bucket, key, err)
}

// Upload copies the local file to bucket/key.
func (s *Store) Upload(ctx context.Context, localPath, bucket, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer file.Close()

	input := &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	logger.Debug("uploaded %s to s3://%s/%s", localPath, bucket, key)
	return nil
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// Factory creates S3 stores from storage settings.
type Factory struct{}

// NewFactory creates a new S3 store factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns a new store for settings.
func (f *Factory) Create(_ context.Context, settings domain.StorageSettings) (driven.ObjectStore, error) {
	return New(settings)
}
