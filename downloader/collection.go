package downloader

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/go-spatial/geom"
	"golang.org/x/sync/errgroup"

	"github.com/geopull/eefetch/ee"
	"github.com/geopull/eefetch/service/log"
)

// DownloadImageCollection exports every image of the collection under
// destDir, opts.NumThreads at a time. Files are named after the member asset
// unless opts.Filenames is set. Returns the destination of every member, in
// collection order.
func DownloadImageCollection(ctx context.Context, c *ee.Client, col ee.ImageCollection, region geom.Geometry, scale float64, destDir string, opts Options) ([]string, error) {
	assets, err := col.List(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("DownloadImageCollection.%w", err)
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("DownloadImageCollection: empty collection %s", col.Asset())
	}
	if opts.Filenames != nil && len(opts.Filenames) != len(assets) {
		return nil, fmt.Errorf("DownloadImageCollection: %d filenames for %d images", len(opts.Filenames), len(assets))
	}

	log.Logger(ctx).Sugar().Infof("downloading %d images to %s", len(assets), destDir)
	dests := make([]string, len(assets))
	wg, gctx := errgroup.WithContext(ctx)
	wg.SetLimit(opts.numThreads())
	for i, a := range assets {
		name := path.Base(a.Name) + ".tif"
		if opts.Filenames != nil {
			name = opts.Filenames[i]
		}
		dests[i] = strings.TrimSuffix(destDir, "/") + "/" + name
		img := col.Image(a)
		wg.Go(func() error {
			if err := DownloadImage(gctx, c, img, region, scale, dests[i], opts); err != nil {
				return fmt.Errorf("[%s] %w", a.Name, err)
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, fmt.Errorf("DownloadImageCollection.%w", err)
	}
	return dests, nil
}
