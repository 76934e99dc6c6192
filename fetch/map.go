package fetch

import (
	"context"
	"fmt"

	"github.com/geopull/eefetch/preview"
)

// AddImageToMap assembles a preview map from a local raster file and from an
// asset rendered by the platform. Both are optional: with neither, a valid
// empty map is returned. The layer name applies to whichever layers are
// added, empty for source-derived names.
func (c *Client) AddImageToMap(ctx context.Context, imagePath, imageAsset, layerName string, opts ...preview.LayerOption) (*preview.Map, error) {
	m := preview.NewMap()
	if imagePath != "" {
		if err := m.AddRaster(ctx, imagePath, layerName, opts...); err != nil {
			return nil, fmt.Errorf("AddImageToMap.%w", err)
		}
	}
	if imageAsset != "" {
		if err := m.AddAsset(ctx, c.ee, imageAsset, layerName, opts...); err != nil {
			return nil, fmt.Errorf("AddImageToMap.%w", err)
		}
	}
	return m, nil
}
