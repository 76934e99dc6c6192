// Package preview assembles interactive web maps from fetched rasters and
// from imagery rendered by the platform, and serves them over HTTP.
package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/geopull/eefetch/ee"
	"github.com/geopull/eefetch/service"
)

const (
	defaultZoom    = 2
	centeredZoom   = 8
	defaultMaxSize = 1024
)

// Layer is a single entry of the map: either a tile layer streamed from the
// platform or an image overlay rendered from a local raster.
type Layer struct {
	Name    string    `json:"name"`
	Kind    LayerKind `json:"kind"`
	URL     string    `json:"url"`
	Bounds  *Bounds   `json:"bounds,omitempty"`
	Opacity float64   `json:"opacity"`
}

// Bounds is a lon/lat extent, marshalled as [west, south, east, north].
type Bounds [4]float64

// Map is a set of layers over a base map. A map with no layers is valid and
// renders the bare base map.
type Map struct {
	mu       sync.Mutex
	layers   []Layer
	scratch  string
	center   [2]float64
	zoom     int
	centered bool
}

// MapOption tunes the initial view.
type MapOption func(*Map)

// WithCenter sets the initial view center.
func WithCenter(lon, lat float64) MapOption {
	return func(m *Map) { m.setCenter(lon, lat) }
}

// WithZoom sets the initial zoom level, disabling the automatic zoom on the
// first layer.
func WithZoom(zoom int) MapOption {
	return func(m *Map) {
		m.zoom = zoom
		m.centered = true
	}
}

// NewMap returns an empty map.
func NewMap(opts ...MapOption) *Map {
	m := &Map{zoom: defaultZoom}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Layers returns a copy of the current layers.
func (m *Map) Layers() []Layer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Layer(nil), m.layers...)
}

// Center returns the current view center as lon, lat.
func (m *Map) Center() (lon, lat float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.center[0], m.center[1]
}

// Close removes the rendered previews from disk. The map can no longer be
// served afterwards.
func (m *Map) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scratch == "" {
		return nil
	}
	dir := m.scratch
	m.scratch = ""
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("Close: %w", err)
	}
	return nil
}

// add appends the layer, suffixing its name if it is already taken.
func (m *Map) add(l Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	base := l.Name
	for n := 2; m.hasLayerLocked(l.Name); n++ {
		l.Name = fmt.Sprintf("%s %d", base, n)
	}
	m.layers = append(m.layers, l)
}

func (m *Map) hasLayerLocked(name string) bool {
	for _, l := range m.layers {
		if l.Name == name {
			return true
		}
	}
	return false
}

// setCenter moves the view, zooming in the first time.
func (m *Map) setCenter(lon, lat float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = [2]float64{lon, lat}
	if !m.centered {
		m.centered = true
		m.zoom = centeredZoom
	}
}

// scratchDir returns the directory holding rendered previews, creating it on
// first use.
func (m *Map) scratchDir() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scratch != "" {
		return m.scratch, nil
	}
	dir := filepath.Join(os.TempDir(), uuid.New().String())
	if err := os.MkdirAll(dir, 0766); err != nil {
		return "", service.MakeTemporary(fmt.Errorf("scratchDir: %w", err))
	}
	m.scratch = dir
	return dir, nil
}

// LayerOption tunes a layer before it is added to the map.
type LayerOption func(*layerConfig)

type layerConfig struct {
	opacity float64
	vis     *ee.VisOptions
	maxSize int
}

func newLayerConfig(opts []LayerOption) layerConfig {
	cfg := layerConfig{opacity: 1, maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithOpacity makes the layer translucent, 0 hidden to 1 opaque.
func WithOpacity(opacity float64) LayerOption {
	return func(cfg *layerConfig) { cfg.opacity = opacity }
}

// WithVis controls how the platform stretches bands into display colors.
// Only tile layers honor it.
func WithVis(vis ee.VisOptions) LayerOption {
	return func(cfg *layerConfig) { cfg.vis = &vis }
}

// WithPreviewSize caps the longest side of a rendered overlay in pixels.
func WithPreviewSize(pixels int) LayerOption {
	return func(cfg *layerConfig) { cfg.maxSize = pixels }
}
