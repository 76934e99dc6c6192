package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/geopull/eefetch/interface/storage"
	"github.com/geopull/eefetch/service"
)

const timestampLayout = "2006-01-02_15-04-05"

// defaultOutput builds <home>/Downloads/<prefix>_<timestamp>[.ext], the
// prefix being the head of the asset reference.
func defaultOutput(asset, ext string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("defaultOutput.UserHomeDir: %w", err)
	}
	name := assetPrefix(asset) + "_" + time.Now().Format(timestampLayout)
	if ext != "" {
		name += "." + ext
	}
	dir := filepath.Join(home, "Downloads")
	if err := os.MkdirAll(dir, 0766); err != nil {
		return "", service.MakeTemporary(fmt.Errorf("defaultOutput.MkdirAll: %w", err))
	}
	return filepath.Join(dir, name), nil
}

// assetPrefix returns the reference up to its first path separator.
func assetPrefix(asset string) string {
	if i := strings.Index(asset, "/"); i != -1 {
		return asset[:i]
	}
	return asset
}

// ensureParentDir creates the parent of a local destination file. Bucket
// destinations need no preparation.
func ensureParentDir(dest string) error {
	if storage.Scheme(dest) != "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0766); err != nil {
		return service.MakeTemporary(fmt.Errorf("ensureParentDir: %w", err))
	}
	return nil
}

// ensureDir creates a local destination directory. Bucket destinations need
// no preparation.
func ensureDir(dir string) error {
	if storage.Scheme(dir) != "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0766); err != nil {
		return service.MakeTemporary(fmt.Errorf("ensureDir: %w", err))
	}
	return nil
}
