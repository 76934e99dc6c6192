package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gstorage "cloud.google.com/go/storage"
)

// GSStrategy implements Strategy for gs:// uris
type GSStrategy struct {
	client *gstorage.Client
}

// NewGSStrategy creates a Strategy backed by Google Cloud Storage, using the
// application default credentials.
func NewGSStrategy(ctx context.Context) (*GSStrategy, error) {
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewGSStrategy.NewClient: %w", err)
	}
	return &GSStrategy{client: client}, nil
}

func (s *GSStrategy) object(uri string) (*gstorage.ObjectHandle, error) {
	bucket, object, err := parseBucket(uri)
	if err != nil {
		return nil, err
	}
	return s.client.Bucket(bucket).Object(object), nil
}

// UploadFile implements Strategy
func (s *GSStrategy) UploadFile(ctx context.Context, uri string, data io.Reader) error {
	o, err := s.object(uri)
	if err != nil {
		return fmt.Errorf("UploadFile.%w", err)
	}
	w := o.NewWriter(ctx)
	if _, err := io.Copy(w, data); err != nil {
		w.Close()
		return fmt.Errorf("UploadFile.Copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("UploadFile.Close: %w", err)
	}
	return nil
}

// DownloadToFile implements Strategy
func (s *GSStrategy) DownloadToFile(ctx context.Context, uri, dstPath string) error {
	o, err := s.object(uri)
	if err != nil {
		return fmt.Errorf("DownloadToFile.%w", err)
	}
	r, err := o.NewReader(ctx)
	if err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return ErrFileNotFound{uri}
		}
		return fmt.Errorf("DownloadToFile.NewReader: %w", err)
	}
	defer r.Close()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0766); err != nil {
		return fmt.Errorf("DownloadToFile.MkdirAll: %w", err)
	}
	f, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("DownloadToFile.Create: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("DownloadToFile.Copy: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("DownloadToFile.Close: %w", err)
	}
	return nil
}

// Delete implements Strategy
func (s *GSStrategy) Delete(ctx context.Context, uri string) error {
	o, err := s.object(uri)
	if err != nil {
		return fmt.Errorf("Delete.%w", err)
	}
	if err := o.Delete(ctx); err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return ErrFileNotFound{uri}
		}
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// Exists implements Strategy
func (s *GSStrategy) Exists(ctx context.Context, uri string) (bool, error) {
	o, err := s.object(uri)
	if err != nil {
		return false, fmt.Errorf("Exists.%w", err)
	}
	if _, err := o.Attrs(ctx); err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("Exists.Attrs: %w", err)
	}
	return true, nil
}
