package downloader

import (
	"context"

	"github.com/go-spatial/geom"

	"github.com/geopull/eefetch/ee"
)

// Engine downloads through a platform session.
type Engine struct {
	c *ee.Client
}

// New returns an engine downloading through the session.
func New(c *ee.Client) *Engine {
	return &Engine{c: c}
}

func (e *Engine) DownloadImage(ctx context.Context, img ee.Image, region geom.Geometry, scale float64, dest string, opts Options) error {
	return DownloadImage(ctx, e.c, img, region, scale, dest, opts)
}

func (e *Engine) DownloadImageCollection(ctx context.Context, col ee.ImageCollection, region geom.Geometry, scale float64, destDir string, opts Options) ([]string, error) {
	return DownloadImageCollection(ctx, e.c, col, region, scale, destDir, opts)
}
