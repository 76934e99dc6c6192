package ee

import (
	"context"
	"fmt"
)

// File formats accepted by CreateThumbnail.
const (
	ZippedGeoTIFF = "ZIPPED_GEO_TIFF"
	GeoTIFF       = "GEO_TIFF"
	PNG           = "PNG"
	JPEG          = "JPEG"
)

// ThumbnailRequest asks the server to render an expression into a file.
type ThumbnailRequest struct {
	Expression Expression `json:"expression"`
	FileFormat string     `json:"fileFormat"`
	Grid       *PixelGrid `json:"grid,omitempty"`
	BandIDs    []string   `json:"bandIds,omitempty"`
}

// Thumbnail is a rendered export, served at PixelsURL until it expires.
type Thumbnail struct {
	Name string `json:"name"`
}

// CreateThumbnail renders the expression server side and returns a handle on
// the produced file.
func (c *Client) CreateThumbnail(ctx context.Context, req *ThumbnailRequest) (*Thumbnail, error) {
	thumb := Thumbnail{}
	if err := c.postJSON(ctx, projectParent(c.project)+"/thumbnails", req, &thumb); err != nil {
		return nil, fmt.Errorf("CreateThumbnail.%w", err)
	}
	return &thumb, nil
}

// PixelsURL returns the address the thumbnail content is served at.
func (c *Client) PixelsURL(t *Thumbnail) string {
	return c.baseURL + "/" + t.Name + ":getPixels"
}
