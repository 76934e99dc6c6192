package fetch

import (
	"context"
	"fmt"

	"github.com/geopull/eefetch/ee"
	"github.com/geopull/eefetch/service/log"
)

// Image fetches a single image asset as a GeoTIFF and returns the file it
// was written to. With WithMosaic the asset is read as a collection and
// flattened into one image reprojected to EPSG:4326. Unless WithOutput is
// given the file lands in the user's Downloads directory. Failures are
// appended to ErrorLogFile and returned unchanged.
func (c *Client) Image(ctx context.Context, asset string, opts ...Option) (string, error) {
	ctx = log.With(ctx, "asset", asset)
	dest, err := c.image(ctx, asset, newRequest(opts))
	if err != nil {
		return "", c.logError(ctx, asset, err)
	}
	return dest, nil
}

func (c *Client) image(ctx context.Context, asset string, r request) (string, error) {
	region, err := c.resolveRegion(ctx, r)
	if err != nil {
		return "", fmt.Errorf("Image.%w", err)
	}

	// Construct the image and resolve its native scale
	var img ee.Image
	scale := r.scale
	dlOpts := r.dl
	if r.mosaic {
		col := ee.Col(asset)
		if scale <= 0 {
			first, err := col.First(ctx, c.ee)
			if err != nil {
				return "", fmt.Errorf("Image.%w", err)
			}
			proj, err := first.Projection()
			if err != nil {
				return "", fmt.Errorf("Image.%w", err)
			}
			scale = proj.NominalScale()
		}
		if img, err = col.Mosaic(ctx, c.ee); err != nil {
			return "", fmt.Errorf("Image.%w", err)
		}
		// A mosaic has no native projection of its own
		dlOpts.CRS = "EPSG:4326"
	} else {
		img = ee.Img(asset)
		if scale <= 0 {
			proj, err := c.ee.Projection(ctx, asset)
			if err != nil {
				return "", fmt.Errorf("Image.%w", err)
			}
			scale = proj.NominalScale()
		}
	}
	if r.clip {
		img = img.Clip(region)
	}

	dest := r.output
	if dest == "" {
		if dest, err = defaultOutput(asset, "tif"); err != nil {
			return "", fmt.Errorf("Image.%w", err)
		}
	} else if err = ensureParentDir(dest); err != nil {
		return "", fmt.Errorf("Image.%w", err)
	}

	log.Logger(ctx).Sugar().Debugf("[Fetch] image %s at %gm to %s", asset, scale, dest)
	if err = c.dl.DownloadImage(ctx, img, region, scale, dest, dlOpts); err != nil {
		return "", fmt.Errorf("Image.%w", err)
	}
	return dest, nil
}
