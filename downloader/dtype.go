package downloader

//go:generate go run github.com/dmarkham/enumer -json -type DType -transform lower

// DType is the pixel type bands are cast to before export. Auto keeps the
// native type of each band.
type DType int32

const (
	Auto DType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Float32
	Float64
)

// Size returns the storage size in bytes of one pixel of one band.
func (d DType) Size() int64 {
	switch d {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int64, Float64:
		return 8
	}
	return 4
}
