package downloader

//go:generate go run github.com/dmarkham/enumer -json -type Resampling -transform lower

// Resampling mode applied server side when an image is reprojected.
type Resampling int32

const (
	Nearest Resampling = iota
	Bilinear
	Bicubic
)
