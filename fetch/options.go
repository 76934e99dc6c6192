package fetch

import (
	"github.com/go-spatial/geom"

	"github.com/geopull/eefetch/downloader"
)

// DefaultRegionAsset bounds fetches when no region is given.
var DefaultRegionAsset = "projects/ee-joshisur231/assets/pa_effectiveness/nepal_boundary"

// request collects the options of a single fetch.
type request struct {
	clip        bool
	mosaic      bool
	region      geom.Geometry
	regionAsset string
	scale       float64
	output      string
	dl          downloader.Options
}

func newRequest(opts []Option) request {
	r := request{clip: true, regionAsset: DefaultRegionAsset}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Option tunes a single fetch.
type Option func(*request)

// WithoutClip keeps the full footprint of the fetched images instead of
// clipping them to the region.
func WithoutClip() Option {
	return func(r *request) { r.clip = false }
}

// WithMosaic treats the asset as a collection and flattens it into a single
// image before the download.
func WithMosaic() Option {
	return func(r *request) { r.mosaic = true }
}

// WithRegion bounds the fetch with an explicit geometry (lon/lat degrees).
func WithRegion(g geom.Geometry) Option {
	return func(r *request) { r.region = g }
}

// WithRegionAsset bounds the fetch with the footprint of another asset.
func WithRegionAsset(ref string) Option {
	return func(r *request) { r.regionAsset = ref }
}

// WithScale overrides the pixel size in meters.
func WithScale(scale float64) Option {
	return func(r *request) { r.scale = scale }
}

// WithOutput sets the destination: a file path for an image, a directory for
// a collection.
func WithOutput(path string) Option {
	return func(r *request) { r.output = path }
}

// WithDownloadOptions tunes the underlying transfer.
func WithDownloadOptions(opts downloader.Options) Option {
	return func(r *request) { r.dl = opts }
}
