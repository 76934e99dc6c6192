package downloader

const (
	defaultNumThreads = 4
	defaultMaxDim     = 10000
	defaultMaxSize    = 32 << 20
)

// Options tune how pixels are exported and delivered. The zero value exports
// at the native resampling and pixel type, four collection downloads at a
// time, and never overwrites an existing destination.
type Options struct {
	// Resampling mode applied when the image is reprojected.
	Resampling Resampling
	// DType casts every band to this pixel type before export.
	DType DType
	// Overwrite an existing destination instead of skipping the download.
	Overwrite bool
	// NumThreads bounds the parallel downloads of a collection.
	NumThreads int
	// MaxDim rejects exports wider or taller than this many pixels.
	MaxDim int
	// MaxSize rejects exports with a larger estimated band size in bytes.
	MaxSize int64
	// Shape forces the width and height in pixels of the export.
	Shape *[2]int
	// CRS of the exported pixels, e.g. "EPSG:4326". Empty keeps the native
	// reference system of the image.
	CRS string
	// CRSTransform exports on an explicit grid, given as
	// [scaleX, shearX, translateX, shearY, scaleY, translateY]. Requires Shape.
	CRSTransform []float64
	// UnmaskValue fills masked pixels.
	UnmaskValue *float64
	// ScaleOffset multiplies the pixels by [0] then adds [1].
	ScaleOffset *[2]float64
	// BandIDs keeps only the named bands.
	BandIDs []string
	// Filenames names the files of a collection download, aligned with the
	// members. Files are named after the member asset otherwise.
	Filenames []string
}

func (o Options) numThreads() int {
	if o.NumThreads <= 0 {
		return defaultNumThreads
	}
	return o.NumThreads
}

func (o Options) maxDim() int {
	if o.MaxDim <= 0 {
		return defaultMaxDim
	}
	return o.MaxDim
}

func (o Options) maxSize() int64 {
	if o.MaxSize <= 0 {
		return defaultMaxSize
	}
	return o.MaxSize
}
