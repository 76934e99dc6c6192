package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path"
	"strings"
	"testing"
)

func initLocalDirs() (string, string, error) {
	srcdir, err := os.MkdirTemp("", "src")
	if err != nil {
		return "", "", err
	}
	dstdir, err := os.MkdirTemp("", "dst")
	return srcdir, dstdir, err
}

func TestScheme(t *testing.T) {
	for uri, scheme := range map[string]string{
		"gs://bucket/object.tif":    "gs",
		"s3://bucket/a/b/c.tif":     "s3",
		"file:///tmp/object.tif":    "file",
		"/tmp/object.tif":           "",
		"C:/Users/me/downloads.tif": "",
	} {
		if s := Scheme(uri); s != scheme {
			t.Errorf("Scheme(%s): expected %q found %q", uri, scheme, s)
		}
	}
}

func TestParseBucket(t *testing.T) {
	bucket, object, err := parseBucket("gs://my-bucket/some/deep/object.tif")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "my-bucket" || object != "some/deep/object.tif" {
		t.Errorf("found %s %s", bucket, object)
	}
	if _, _, err := parseBucket("gs://bucketonly"); err == nil {
		t.Error("expected error on missing object")
	}
}

func TestFileSystemStrategy(t *testing.T) {
	ctx := context.Background()

	srcdir, dstdir, err := initLocalDirs()
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(srcdir)
	defer os.RemoveAll(dstdir)

	strategy, err := NewStrategy(ctx, srcdir)
	if err != nil {
		t.Fatal(err)
	}

	uri := path.Join(srcdir, "sub", "image.tif")
	if err := strategy.UploadFile(ctx, uri, strings.NewReader("pixels")); err != nil {
		t.Error(err)
	}

	if exists, err := strategy.Exists(ctx, uri); err != nil || !exists {
		t.Errorf("expected %s to exist (%v)", uri, err)
	}

	local := path.Join(dstdir, "sub2", "image.tif")
	if err := strategy.DownloadToFile(ctx, uri, local); err != nil {
		t.Error(err)
	}
	b, err := os.ReadFile(local)
	if err != nil {
		t.Error(err)
	}
	if !bytes.Equal(b, []byte("pixels")) {
		t.Errorf("expected pixels found %s", b)
	}

	if err := strategy.Delete(ctx, uri); err != nil {
		t.Error(err)
	}
	if exists, err := strategy.Exists(ctx, uri); err != nil || exists {
		t.Errorf("expected %s to be deleted (%v)", uri, err)
	}

	var notFound ErrFileNotFound
	if err := strategy.Delete(ctx, uri); !errors.As(err, &notFound) {
		t.Errorf("expected ErrFileNotFound, found %v", err)
	}
	if err := strategy.DownloadToFile(ctx, uri, local); !errors.As(err, &notFound) {
		t.Errorf("expected ErrFileNotFound, found %v", err)
	}
}

func TestGStorageStrategy(t *testing.T) {
	bucket := os.Getenv("EEFETCH_TEST_BUCKET")
	if bucket == "" {
		t.Skip("EEFETCH_TEST_BUCKET not set")
	}
	ctx := context.Background()

	strategy, err := NewStrategy(ctx, "gs://"+bucket)
	if err != nil {
		t.Fatal(err)
	}

	dstdir, err := os.MkdirTemp("", "dst")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dstdir)

	uri := "gs://" + bucket + "/eefetch_test/image.tif"
	if err := strategy.UploadFile(ctx, uri, strings.NewReader("pixels")); err != nil {
		t.Error(err)
	}
	if err := strategy.DownloadToFile(ctx, uri, path.Join(dstdir, "image.tif")); err != nil {
		t.Error(err)
	}
	if err := strategy.Delete(ctx, uri); err != nil {
		t.Error(err)
	}
}

func TestS3StorageStrategy(t *testing.T) {
	bucket := os.Getenv("EEFETCH_TEST_S3_BUCKET")
	if bucket == "" {
		t.Skip("EEFETCH_TEST_S3_BUCKET not set")
	}
	ctx := context.Background()

	strategy, err := NewStrategy(ctx, "s3://"+bucket)
	if err != nil {
		t.Fatal(err)
	}

	dstdir, err := os.MkdirTemp("", "dst")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dstdir)

	uri := "s3://" + bucket + "/eefetch_test/image.tif"
	if exists, err := strategy.Exists(ctx, uri); err != nil {
		t.Error(err)
	} else if exists {
		t.Errorf("%s already exists", uri)
	}
	if err := strategy.UploadFile(ctx, uri, strings.NewReader("pixels")); err != nil {
		t.Error(err)
	}
	if err := strategy.DownloadToFile(ctx, uri, path.Join(dstdir, "image.tif")); err != nil {
		t.Error(err)
	}
	if err := strategy.Delete(ctx, uri); err != nil {
		t.Error(err)
	}
}
