package ee

import (
	"context"
	"encoding/json"
	"fmt"
	neturl "net/url"
	"strconv"
	"time"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"

	"github.com/geopull/eefetch/service/log"
)

// listPageSize is the largest page the API serves on listImages.
const listPageSize = 1000

// ImageCollection is an immutable handle on an image collection, with
// optional bounds and acquisition date filters. Filters are applied server
// side when the collection is enumerated.
type ImageCollection struct {
	asset  string
	bounds geom.Geometry
	start  time.Time
	end    time.Time
	clipTo geom.Geometry
}

// Col returns a handle on an image collection asset.
func Col(asset string) ImageCollection {
	return ImageCollection{asset: NormalizeAsset(asset)}
}

// Asset returns the resource name of the collection.
func (col ImageCollection) Asset() string {
	return col.asset
}

// FilterBounds keeps the images intersecting the geometry.
func (col ImageCollection) FilterBounds(g geom.Geometry) ImageCollection {
	col.bounds = g
	return col
}

// FilterDate keeps the images acquired in [start, end), end excluded.
func (col ImageCollection) FilterDate(start, end time.Time) ImageCollection {
	col.start, col.end = start, end
	return col
}

// ClipAll clips every image of the collection to the geometry.
func (col ImageCollection) ClipAll(g geom.Geometry) ImageCollection {
	col.clipTo = g
	return col
}

// Bounds returns the FilterBounds geometry, nil when unfiltered.
func (col ImageCollection) Bounds() geom.Geometry {
	return col.bounds
}

// DateRange returns the FilterDate interval, zero times when unfiltered.
func (col ImageCollection) DateRange() (start, end time.Time) {
	return col.start, col.end
}

// ClipGeometry returns the geometry members are clipped to, nil unless
// ClipAll was set.
func (col ImageCollection) ClipGeometry() geom.Geometry {
	return col.clipTo
}

func (col ImageCollection) filtered() bool {
	return col.bounds != nil || !col.start.IsZero() || !col.end.IsZero() || col.clipTo != nil
}

func (col ImageCollection) query() (neturl.Values, error) {
	q := neturl.Values{}
	if !col.start.IsZero() {
		q.Set("startTime", col.start.UTC().Format(time.RFC3339))
	}
	if !col.end.IsZero() {
		q.Set("endTime", col.end.UTC().Format(time.RFC3339))
	}
	if col.bounds != nil {
		b, err := json.Marshal(geojson.Geometry{Geometry: col.bounds})
		if err != nil {
			return nil, fmt.Errorf("query.Marshal: %w", err)
		}
		q.Set("region", string(b))
	}
	return q, nil
}

type listImagesResponse struct {
	Images        []*Asset `json:"images"`
	NextPageToken string   `json:"nextPageToken"`
}

// List enumerates the images of the collection matching the filters.
func (col ImageCollection) List(ctx context.Context, c *Client) ([]*Asset, error) {
	q, err := col.query()
	if err != nil {
		return nil, fmt.Errorf("List.%w", err)
	}
	q.Set("pageSize", strconv.Itoa(listPageSize))

	var assets []*Asset
	for page := 1; ; page++ {
		log.Logger(ctx).Sugar().Debugf("[EE] list %s: page %d", col.asset, page)
		resp := listImagesResponse{}
		if err := c.getJSON(ctx, col.asset+":listImages", q, &resp); err != nil {
			return nil, fmt.Errorf("List.%w", err)
		}
		assets = append(assets, resp.Images...)
		if resp.NextPageToken == "" {
			break
		}
		q.Set("pageToken", resp.NextPageToken)
	}
	return assets, nil
}

// First returns the first image of the filtered collection. An empty
// collection is an error.
func (col ImageCollection) First(ctx context.Context, c *Client) (*Asset, error) {
	q, err := col.query()
	if err != nil {
		return nil, fmt.Errorf("First.%w", err)
	}
	q.Set("pageSize", "1")

	resp := listImagesResponse{}
	if err := c.getJSON(ctx, col.asset+":listImages", q, &resp); err != nil {
		return nil, fmt.Errorf("First.%w", err)
	}
	if len(resp.Images) == 0 {
		return nil, fmt.Errorf("First: empty collection %s", col.asset)
	}
	return resp.Images[0], nil
}

// Image returns a handle on one member of the collection, clipped if ClipAll
// was set.
func (col ImageCollection) Image(a *Asset) Image {
	img := Img(a.Name)
	if col.clipTo != nil {
		img = img.Clip(col.clipTo)
	}
	return img
}

// Mosaic flattens the collection into a single image. A filtered collection
// is enumerated and composited from its members; an unfiltered one is
// mosaicked server side in a single expression.
func (col ImageCollection) Mosaic(ctx context.Context, c *Client) (Image, error) {
	if !col.filtered() {
		return Image{node: Invoke("ImageCollection.mosaic", map[string]ValueNode{
			"collection": Invoke("ImageCollection.load", map[string]ValueNode{"id": Const(col.asset)}),
		})}, nil
	}

	assets, err := col.List(ctx, c)
	if err != nil {
		return Image{}, fmt.Errorf("Mosaic.%w", err)
	}
	if len(assets) == 0 {
		return Image{}, fmt.Errorf("Mosaic: empty collection %s", col.asset)
	}

	nodes := make([]ValueNode, len(assets))
	for i, a := range assets {
		nodes[i] = col.Image(a).node
	}
	return Image{node: Invoke("ImageCollection.mosaic", map[string]ValueNode{
		"collection": Invoke("ImageCollection.fromImages", map[string]ValueNode{
			"images": {Array: nodes},
		}),
	})}, nil
}
