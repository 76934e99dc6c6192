package preview

//go:generate go run github.com/dmarkham/enumer -json -type LayerKind -transform lower

// LayerKind tells the page how to mount a layer.
type LayerKind int32

const (
	// Tile layers are streamed from a {z}/{x}/{y} template URL.
	Tile LayerKind = iota
	// Overlay layers are a single georeferenced image.
	Overlay
)
