// Package downloader exports pixels from the platform into GeoTIFF files,
// locally or on a remote storage. Exports are rendered server side, fetched
// as zipped archives and unpacked before delivery.
package downloader

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-spatial/geom"
	"github.com/google/uuid"

	"github.com/geopull/eefetch/ee"
	"github.com/geopull/eefetch/interface/storage"
	"github.com/geopull/eefetch/service"
	"github.com/geopull/eefetch/service/log"
)

const (
	createRetryDelay    = 15 * time.Second
	createRetryAttempts = 3
)

// DownloadImage exports an image as a GeoTIFF at dest. region bounds the
// export and scale sets the pixel size in meters; a nil region exports the
// full image on its native grid. dest may be a local path or a gs:// or
// s3:// uri. Unless opts.Overwrite is set, an existing destination is kept
// and the download is skipped.
func DownloadImage(ctx context.Context, c *ee.Client, img ee.Image, region geom.Geometry, scale float64, dest string, opts Options) error {
	if !opts.Overwrite {
		strategy, err := storage.NewStrategy(ctx, dest)
		if err != nil {
			return fmt.Errorf("DownloadImage.%w", err)
		}
		switch exists, err := strategy.Exists(ctx, dest); {
		case err != nil:
			return fmt.Errorf("DownloadImage.Exists: %w", err)
		case exists:
			log.Logger(ctx).Sugar().Infof("skipping %s (already exists)", dest)
			return nil
		}
	}

	if err := checkSize(region, scale, opts); err != nil {
		return fmt.Errorf("DownloadImage.%w", err)
	}
	req, err := exportRequest(img, region, scale, opts)
	if err != nil {
		return fmt.Errorf("DownloadImage.%w", err)
	}

	// Working dir
	workdir := filepath.Join(os.TempDir(), uuid.New().String())
	if err := os.MkdirAll(workdir, 0766); err != nil {
		return service.MakeTemporary(fmt.Errorf("make directory %s: %w", workdir, err))
	}
	defer os.RemoveAll(workdir)

	log.Logger(ctx).Sugar().Infof("exporting %s", displayName(img, dest))
	var thumb *ee.Thumbnail
	if err := service.Retriable(ctx, func() error {
		var e error
		thumb, e = c.CreateThumbnail(ctx, req)
		return e
	}, createRetryDelay, createRetryAttempts); err != nil {
		return fmt.Errorf("DownloadImage.CreateThumbnail: %w", err)
	}

	tif, err := fetchZip(ctx, c, thumb, workdir, displayName(img, dest))
	if err != nil {
		return fmt.Errorf("DownloadImage.%w", err)
	}

	if err := deliver(ctx, tif, dest); err != nil {
		return fmt.Errorf("DownloadImage.%w", err)
	}
	log.Logger(ctx).Sugar().Infof("downloaded %s", dest)
	return nil
}

// exportRequest folds the options into the expression and builds the export
// request.
func exportRequest(img ee.Image, region geom.Geometry, scale float64, opts Options) (*ee.ThumbnailRequest, error) {
	if opts.Resampling != Nearest {
		img = img.Resample(opts.Resampling.String())
	}
	if opts.UnmaskValue != nil {
		img = img.Unmask(*opts.UnmaskValue)
	}
	if opts.ScaleOffset != nil {
		img = img.ScaleOffset(opts.ScaleOffset[0], opts.ScaleOffset[1])
	}
	if opts.DType != Auto {
		var err error
		if img, err = img.Cast(opts.DType.String()); err != nil {
			return nil, fmt.Errorf("exportRequest.%w", err)
		}
	}

	grid, err := opts.grid()
	if err != nil {
		return nil, fmt.Errorf("exportRequest.%w", err)
	}
	if region != nil && opts.CRSTransform == nil {
		if opts.Shape != nil {
			img = img.ClipToBoundsAndShape(region, opts.Shape[0], opts.Shape[1])
		} else if scale > 0 {
			img = img.ClipToBoundsAndScale(region, scale)
		} else {
			img = img.Clip(region)
		}
	}

	return &ee.ThumbnailRequest{
		Expression: img.Expression(),
		FileFormat: ee.ZippedGeoTIFF,
		Grid:       grid,
		BandIDs:    opts.BandIDs,
	}, nil
}

// grid builds the explicit export grid when the options define one.
func (o Options) grid() (*ee.PixelGrid, error) {
	if o.CRSTransform != nil {
		if len(o.CRSTransform) != 6 {
			return nil, fmt.Errorf("grid: CRSTransform must hold 6 values, got %d", len(o.CRSTransform))
		}
		if o.Shape == nil {
			return nil, fmt.Errorf("grid: CRSTransform requires Shape")
		}
		t := o.CRSTransform
		return &ee.PixelGrid{
			CRSCode:         o.CRS,
			AffineTransform: &ee.AffineTransform{ScaleX: t[0], ShearX: t[1], TranslateX: t[2], ShearY: t[3], ScaleY: t[4], TranslateY: t[5]},
			Dimensions:      &ee.GridDimensions{Width: o.Shape[0], Height: o.Shape[1]},
		}, nil
	}
	if o.CRS != "" {
		return &ee.PixelGrid{CRSCode: o.CRS}, nil
	}
	return nil, nil
}

// checkSize estimates the export dimensions and rejects exports exceeding the
// limits with a fatal error. Region coordinates are expected in degrees.
func checkSize(region geom.Geometry, scale float64, opts Options) error {
	var width, height int
	if opts.Shape != nil {
		width, height = opts.Shape[0], opts.Shape[1]
	} else {
		if region == nil || scale <= 0 {
			return nil
		}
		ext, err := geom.NewExtentFromGeometry(region)
		if err != nil {
			return fmt.Errorf("checkSize.Extent: %w", err)
		}
		width = int(math.Ceil((ext.MaxX() - ext.MinX()) * ee.MetersPerDegree / scale))
		height = int(math.Ceil((ext.MaxY() - ext.MinY()) * ee.MetersPerDegree / scale))
	}
	if width > opts.maxDim() || height > opts.maxDim() {
		return service.MakeFatal(fmt.Errorf("checkSize: %dx%d pixels exceeds the maximum dimension (%d), increase the scale", width, height, opts.maxDim()))
	}
	if size := int64(width) * int64(height) * opts.DType.Size(); size > opts.maxSize() {
		return service.MakeFatal(fmt.Errorf("checkSize: ~%s per band exceeds the maximum size (%s), increase the scale", fmtBytes(size), fmtBytes(opts.maxSize())))
	}
	return nil
}

// deliver moves the local file to its destination.
func deliver(ctx context.Context, localFile, dest string) error {
	strategy, err := storage.NewStrategy(ctx, dest)
	if err != nil {
		return fmt.Errorf("deliver.%w", err)
	}
	f, err := os.Open(localFile)
	if err != nil {
		return service.MakeTemporary(fmt.Errorf("deliver.Open: %w", err))
	}
	defer f.Close()
	if err := strategy.UploadFile(ctx, dest, f); err != nil {
		return fmt.Errorf("deliver.UploadFile: %w", err)
	}
	return nil
}

func displayName(img ee.Image, dest string) string {
	if img.Asset() != "" {
		return img.Asset()
	}
	return filepath.Base(dest)
}
