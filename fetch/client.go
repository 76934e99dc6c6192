// Package fetch is the high-level entry point of the module: one call
// downloads an image or an image collection to disk, or assembles an
// interactive preview map. It resolves regions, scales and output locations,
// then delegates the pixel transfer to the downloader package.
package fetch

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-spatial/geom"
	"go.uber.org/zap"

	"github.com/geopull/eefetch/downloader"
	"github.com/geopull/eefetch/ee"
	"github.com/geopull/eefetch/service/log"
)

// ErrorLogFile is where fetch failures are appended, relative to the working
// directory.
const ErrorLogFile = "error_log.log"

// Downloader transfers rendered pixels to their destination.
type Downloader interface {
	DownloadImage(ctx context.Context, img ee.Image, region geom.Geometry, scale float64, dest string, opts downloader.Options) error
	DownloadImageCollection(ctx context.Context, col ee.ImageCollection, region geom.Geometry, scale float64, destDir string, opts downloader.Options) ([]string, error)
}

// Client fetches images and collections on behalf of an initialized session.
type Client struct {
	ee *ee.Client
	dl Downloader

	errlogPath string
	errlogOnce sync.Once
	errlog     *zap.Logger
	errlogErr  error
}

// ClientOption configures the client at construction.
type ClientOption func(*Client)

// WithDownloader replaces the transfer engine.
func WithDownloader(d Downloader) ClientOption {
	return func(c *Client) { c.dl = d }
}

// WithErrorLog moves the error log to another file.
func WithErrorLog(path string) ClientOption {
	return func(c *Client) { c.errlogPath = path }
}

// New returns a client fetching through the given session.
func New(eeClient *ee.Client, opts ...ClientOption) *Client {
	c := &Client{
		ee:         eeClient,
		dl:         downloader.New(eeClient),
		errlogPath: ErrorLogFile,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// logError appends one entry naming the asset to ErrorLogFile and returns err
// unchanged. When the log file cannot be opened, the failure is reported to
// the main logger only.
func (c *Client) logError(ctx context.Context, asset string, err error) error {
	c.errlogOnce.Do(func() {
		c.errlog, c.errlogErr = log.ErrorFile(c.errlogPath)
	})
	if c.errlogErr != nil {
		log.Logger(ctx).Sugar().Warnf("[Fetch] error log unavailable: %v", c.errlogErr)
		return err
	}
	c.errlog.Sugar().Errorf("fetching %s: %v", asset, err)
	return err
}

// resolveRegion returns the request geometry, falling back to the footprint
// of the configured region asset.
func (c *Client) resolveRegion(ctx context.Context, r request) (geom.Geometry, error) {
	if r.region != nil {
		return r.region, nil
	}
	g, err := c.ee.AssetGeometry(ctx, r.regionAsset)
	if err != nil {
		return nil, fmt.Errorf("resolveRegion[%s].%w", r.regionAsset, err)
	}
	return g, nil
}
