package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Strategy implements Strategy for s3:// uris
type S3Strategy struct {
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Strategy creates a Strategy backed by AWS S3 (or any S3-compatible
// endpoint set through AWS_ENDPOINT_URL). Credentials come from the default
// chain, or from AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY when both are set.
func NewS3Strategy(ctx context.Context) (*S3Strategy, error) {
	var optFns []func(*awsconfig.LoadOptions) error
	if region := os.Getenv("AWS_REGION"); region != "" {
		optFns = append(optFns, awsconfig.WithRegion(region))
	}
	if keyID, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"); keyID != "" && secret != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(keyID, secret, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("NewS3Strategy.LoadDefaultConfig: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := os.Getenv("AWS_ENDPOINT_URL"); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Strategy{client: client, uploader: manager.NewUploader(client)}, nil
}

// UploadFile implements Strategy
func (s *S3Strategy) UploadFile(ctx context.Context, uri string, data io.Reader) error {
	bucket, object, err := parseBucket(uri)
	if err != nil {
		return fmt.Errorf("UploadFile.%w", err)
	}
	if _, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(object),
		Body:   data,
	}); err != nil {
		return fmt.Errorf("UploadFile.Upload: %w", err)
	}
	return nil
}

// DownloadToFile implements Strategy
func (s *S3Strategy) DownloadToFile(ctx context.Context, uri, dstPath string) error {
	bucket, object, err := parseBucket(uri)
	if err != nil {
		return fmt.Errorf("DownloadToFile.%w", err)
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(object),
	})
	if err != nil {
		if isNotFound(err) {
			return ErrFileNotFound{uri}
		}
		return fmt.Errorf("DownloadToFile.GetObject: %w", err)
	}
	defer out.Body.Close()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0766); err != nil {
		return fmt.Errorf("DownloadToFile.MkdirAll: %w", err)
	}
	f, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("DownloadToFile.Create: %w", err)
	}
	if _, err := io.Copy(f, out.Body); err != nil {
		f.Close()
		return fmt.Errorf("DownloadToFile.Copy: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("DownloadToFile.Close: %w", err)
	}
	return nil
}

// Delete implements Strategy
func (s *S3Strategy) Delete(ctx context.Context, uri string) error {
	bucket, object, err := parseBucket(uri)
	if err != nil {
		return fmt.Errorf("Delete.%w", err)
	}
	// DeleteObject succeeds on missing keys, check first to honor ErrFileNotFound
	exists, err := s.Exists(ctx, uri)
	if err != nil {
		return fmt.Errorf("Delete.%w", err)
	}
	if !exists {
		return ErrFileNotFound{uri}
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(object),
	}); err != nil {
		return fmt.Errorf("Delete.DeleteObject: %w", err)
	}
	return nil
}

// Exists implements Strategy
func (s *S3Strategy) Exists(ctx context.Context, uri string) (bool, error) {
	bucket, object, err := parseBucket(uri)
	if err != nil {
		return false, fmt.Errorf("Exists.%w", err)
	}
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(object),
	}); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("Exists.HeadObject: %w", err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
