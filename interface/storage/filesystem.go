package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileSystemStrategy implements Strategy for plain paths and file:// uris
type FileSystemStrategy struct{}

func localPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// UploadFile implements Strategy
func (FileSystemStrategy) UploadFile(ctx context.Context, uri string, data io.Reader) error {
	dst := localPath(uri)
	if err := os.MkdirAll(filepath.Dir(dst), 0766); err != nil {
		return fmt.Errorf("UploadFile.MkdirAll: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("UploadFile.Create: %w", err)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		return fmt.Errorf("UploadFile.Copy: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("UploadFile.Close: %w", err)
	}
	return nil
}

// DownloadToFile implements Strategy
func (FileSystemStrategy) DownloadToFile(ctx context.Context, uri, dstPath string) error {
	src, err := os.Open(localPath(uri))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFileNotFound{localPath(uri)}
		}
		return fmt.Errorf("DownloadToFile.Open: %w", err)
	}
	defer src.Close()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0766); err != nil {
		return fmt.Errorf("DownloadToFile.MkdirAll: %w", err)
	}
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("DownloadToFile.Create: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("DownloadToFile.Copy: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("DownloadToFile.Close: %w", err)
	}
	return nil
}

// Delete implements Strategy
func (FileSystemStrategy) Delete(ctx context.Context, uri string) error {
	if err := os.Remove(localPath(uri)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFileNotFound{localPath(uri)}
		}
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// Exists implements Strategy
func (FileSystemStrategy) Exists(ctx context.Context, uri string) (bool, error) {
	if _, err := os.Stat(localPath(uri)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("Exists: %w", err)
	}
	return true, nil
}
