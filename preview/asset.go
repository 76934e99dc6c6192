package preview

import (
	"context"
	"fmt"
	"path"

	"github.com/geopull/eefetch/ee"
	"github.com/geopull/eefetch/service/geometry"
	"github.com/geopull/eefetch/service/log"
)

// AddAsset mounts a tile layer rendered by the platform for the asset and
// centers the map on its footprint. An empty name defaults to the asset id.
func (m *Map) AddAsset(ctx context.Context, c *ee.Client, asset, name string, opts ...LayerOption) error {
	cfg := newLayerConfig(opts)
	req := ee.MapRequest{
		Expression:           ee.Img(asset).Expression(),
		FileFormat:           ee.PNG,
		VisualizationOptions: cfg.vis,
	}
	sess, err := c.CreateMap(ctx, &req)
	if err != nil {
		return fmt.Errorf("AddAsset[%s].%w", asset, err)
	}

	if name == "" {
		name = path.Base(ee.NormalizeAsset(asset))
	}
	m.add(Layer{
		Name:    name,
		Kind:    Tile,
		URL:     sess.TileURL(),
		Opacity: cfg.opacity,
	})

	// Center on the footprint when the asset has one
	if g, err := c.AssetGeometry(ctx, asset); err != nil {
		log.Logger(ctx).Sugar().Debugf("[Preview] no footprint for %s: %v", asset, err)
	} else if lon, lat, err := geometry.Centroid(g); err != nil {
		log.Logger(ctx).Sugar().Debugf("[Preview] centroid of %s: %v", asset, err)
	} else {
		m.setCenter(lon, lat)
	}
	return nil
}
