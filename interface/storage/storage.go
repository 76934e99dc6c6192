// Package storage stores and retrieves files addressed by URI.
package storage

import (
	"context"
	"fmt"
	"io"
	neturl "net/url"
	"strings"
)

// ErrFileNotFound is an error returned by DownloadToFile or Delete
type ErrFileNotFound struct {
	File string
}

func (e ErrFileNotFound) Error() string {
	return fmt.Sprintf("File not found: %s", e.File)
}

// Strategy persists, retrieves and deletes files addressed by URI.
type Strategy interface {
	// UploadFile persists the content of data at the given uri
	UploadFile(ctx context.Context, uri string, data io.Reader) error
	// DownloadToFile retrieves the file at the given uri into localPath
	// Raise ErrFileNotFound
	DownloadToFile(ctx context.Context, uri, localPath string) error
	// Delete the file at the given uri
	// Raise ErrFileNotFound
	Delete(ctx context.Context, uri string) error
	// Exists returns true if a file exists at the given uri
	Exists(ctx context.Context, uri string) (bool, error)
}

// NewStrategy returns the Strategy handling the scheme of the given uri.
// Plain paths and file:// are served by the local filesystem, gs:// by
// Google Cloud Storage and s3:// by AWS S3.
func NewStrategy(ctx context.Context, uri string) (Strategy, error) {
	switch Scheme(uri) {
	case "", "file":
		return FileSystemStrategy{}, nil
	case "gs":
		return NewGSStrategy(ctx)
	case "s3":
		return NewS3Strategy(ctx)
	}
	return nil, fmt.Errorf("NewStrategy[%s]: unsupported scheme", uri)
}

// Scheme of the uri, empty for plain paths
func Scheme(uri string) string {
	if i := strings.Index(uri, "://"); i != -1 {
		return uri[:i]
	}
	return ""
}

// parseBucket splits a scheme://bucket/object uri
func parseBucket(uri string) (bucket, object string, err error) {
	u, err := neturl.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parseBucket[%s]: %w", uri, err)
	}
	object = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || object == "" {
		return "", "", fmt.Errorf("parseBucket[%s]: missing bucket or object", uri)
	}
	return u.Host, object, nil
}
