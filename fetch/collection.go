package fetch

import (
	"context"
	"fmt"

	"github.com/araddon/dateparse"

	"github.com/geopull/eefetch/ee"
	"github.com/geopull/eefetch/service/geometry"
	"github.com/geopull/eefetch/service/log"
)

// ImageCollection fetches every image of a collection acquired in
// [startDate, endDate) into a directory and returns it. Dates are YYYY-MM-DD
// strings, endDate excluded. The pixel size comes from the first image of
// the filtered collection unless WithScale is given. Failures are appended
// to ErrorLogFile and returned unchanged.
func (c *Client) ImageCollection(ctx context.Context, asset, startDate, endDate string, opts ...Option) (string, error) {
	ctx = log.With(ctx, "asset", asset)
	destDir, err := c.collection(ctx, asset, startDate, endDate, newRequest(opts))
	if err != nil {
		return "", c.logError(ctx, asset, err)
	}
	return destDir, nil
}

func (c *Client) collection(ctx context.Context, asset, startDate, endDate string, r request) (string, error) {
	start, err := dateparse.ParseAny(startDate)
	if err != nil {
		return "", fmt.Errorf("ImageCollection.ParseStartDate[%s]: %w", startDate, err)
	}
	end, err := dateparse.ParseAny(endDate)
	if err != nil {
		return "", fmt.Errorf("ImageCollection.ParseEndDate[%s]: %w", endDate, err)
	}
	region, err := c.resolveRegion(ctx, r)
	if err != nil {
		return "", fmt.Errorf("ImageCollection.%w", err)
	}
	hull, err := geometry.ConvexHull(region)
	if err != nil {
		return "", fmt.Errorf("ImageCollection.%w", err)
	}

	col := ee.Col(asset).FilterBounds(hull).FilterDate(start.UTC(), end.UTC())
	if r.clip {
		col = col.ClipAll(region)
	}

	// Pixel size of the first image
	scale := r.scale
	if scale <= 0 {
		first, err := col.First(ctx, c.ee)
		if err != nil {
			return "", fmt.Errorf("ImageCollection.%w", err)
		}
		proj, err := first.Projection()
		if err != nil {
			return "", fmt.Errorf("ImageCollection.%w", err)
		}
		scale = proj.NominalScale()
	}

	destDir := r.output
	if destDir == "" {
		if destDir, err = defaultOutput(asset, ""); err != nil {
			return "", fmt.Errorf("ImageCollection.%w", err)
		}
	}
	if err = ensureDir(destDir); err != nil {
		return "", fmt.Errorf("ImageCollection.%w", err)
	}

	log.Logger(ctx).Sugar().Debugf("[Fetch] collection %s (%s to %s) at %gm to %s", asset, startDate, endDate, scale, destDir)
	if _, err = c.dl.DownloadImageCollection(ctx, col, region, scale, destDir, r.dl); err != nil {
		return "", fmt.Errorf("ImageCollection.%w", err)
	}
	return destDir, nil
}
