package preview

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/airbusgeo/osio"
	osioGcs "github.com/airbusgeo/osio/gcs"
	"github.com/google/uuid"
)

var registerOnce sync.Once

func registerDrivers() {
	registerOnce.Do(godal.RegisterAll)
}

// RegisterGSHandler lets AddRaster open rasters straight from gs:// buckets.
func RegisterGSHandler(ctx context.Context) error {
	gsr, err := osioGcs.Handle(ctx)
	if err != nil {
		return fmt.Errorf("RegisterGSHandler.Handle: %w", err)
	}
	adapter, err := osio.NewAdapter(gsr)
	if err != nil {
		return fmt.Errorf("RegisterGSHandler.NewAdapter: %w", err)
	}
	registerDrivers()
	if err := godal.RegisterVSIHandler("gs://", adapter); err != nil {
		return fmt.Errorf("RegisterGSHandler.RegisterVSIHandler: %w", err)
	}
	return nil
}

// AddRaster renders a georeferenced raster file as an image overlay and
// centers the map on it. An empty name defaults to the file name.
func (m *Map) AddRaster(ctx context.Context, file, name string, opts ...LayerOption) error {
	cfg := newLayerConfig(opts)
	dir, err := m.scratchDir()
	if err != nil {
		return fmt.Errorf("AddRaster.%w", err)
	}
	rendered, bounds, err := renderOverlay(file, dir, cfg.maxSize)
	if err != nil {
		return fmt.Errorf("AddRaster[%s].%w", file, err)
	}

	if name == "" {
		base := filepath.Base(file)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	m.add(Layer{
		Name:    name,
		Kind:    Overlay,
		URL:     "/layers/" + filepath.Base(rendered),
		Bounds:  &bounds,
		Opacity: cfg.opacity,
	})
	m.setCenter((bounds[0]+bounds[2])/2, (bounds[1]+bounds[3])/2)
	return nil
}

// renderOverlay converts a raster to a lon/lat PNG in dir and returns the
// file with its bounds. Swapped out in tests.
var renderOverlay = godalRenderOverlay

func godalRenderOverlay(file, dir string, maxSize int) (string, Bounds, error) {
	registerDrivers()
	ds, err := godal.Open(file)
	if err != nil {
		return "", Bounds{}, fmt.Errorf("renderOverlay.Open: %w", err)
	}
	defer ds.Close()

	// Reproject to lon/lat, the only grid a web overlay can mount
	warped, err := ds.Warp("", []string{"-of", "MEM", "-t_srs", "EPSG:4326"})
	if err != nil {
		return "", Bounds{}, fmt.Errorf("renderOverlay.Warp: %w", err)
	}
	defer warped.Close()

	bounds, err := warped.Bounds()
	if err != nil {
		return "", Bounds{}, fmt.Errorf("renderOverlay.Bounds: %w", err)
	}

	switches := []string{"-of", "PNG", "-ot", "Byte", "-scale"}
	st := warped.Structure()
	if st.NBands > 4 {
		switches = append(switches, "-b", "1", "-b", "2", "-b", "3")
	}
	if st.SizeX > maxSize || st.SizeY > maxSize {
		if st.SizeX >= st.SizeY {
			switches = append(switches, "-outsize", strconv.Itoa(maxSize), "0")
		} else {
			switches = append(switches, "-outsize", "0", strconv.Itoa(maxSize))
		}
	}
	rendered := filepath.Join(dir, uuid.New().String()+".png")
	out, err := warped.Translate(rendered, switches)
	if err != nil {
		return "", Bounds{}, fmt.Errorf("renderOverlay.Translate: %w", err)
	}
	out.Close()
	return rendered, Bounds(bounds), nil
}
