package ee

import (
	"fmt"

	"github.com/go-spatial/geom"
)

// Image is an immutable handle on a server side image computation. Methods
// return a new handle wrapping the previous one; nothing is evaluated until
// the expression is sent with a thumbnail or map request.
type Image struct {
	node  ValueNode
	asset string
}

// Img returns a handle on a single image asset.
func Img(asset string) Image {
	name := NormalizeAsset(asset)
	return Image{
		node:  Invoke("Image.load", map[string]ValueNode{"id": Const(name)}),
		asset: name,
	}
}

// Asset returns the resource name the image was loaded from, or an empty
// string for composites.
func (img Image) Asset() string {
	return img.asset
}

// Clip restricts the image to the given geometry.
func (img Image) Clip(g geom.Geometry) Image {
	img.node = Invoke("Image.clip", map[string]ValueNode{
		"input":    img.node,
		"geometry": geometryValue(g),
	})
	return img
}

// ClipToBoundsAndScale clips the image to the bounds of the geometry and sets
// the scale in meters of the exported pixels.
func (img Image) ClipToBoundsAndScale(g geom.Geometry, scale float64) Image {
	img.node = Invoke("Image.clipToBoundsAndScale", map[string]ValueNode{
		"input":    img.node,
		"geometry": geometryValue(g),
		"scale":    Const(scale),
	})
	return img
}

// ClipToBoundsAndShape clips the image to the bounds of the geometry and sets
// the width and height in pixels of the export.
func (img Image) ClipToBoundsAndShape(g geom.Geometry, width, height int) Image {
	img.node = Invoke("Image.clipToBoundsAndScale", map[string]ValueNode{
		"input":    img.node,
		"geometry": geometryValue(g),
		"width":    Const(width),
		"height":   Const(height),
	})
	return img
}

// Resample sets the resampling mode used when the image is reprojected,
// "bilinear" or "bicubic". Images are resampled with nearest neighbor
// otherwise.
func (img Image) Resample(mode string) Image {
	img.node = Invoke("Image.resample", map[string]ValueNode{
		"image": img.node,
		"mode":  Const(mode),
	})
	return img
}

// Unmask replaces masked pixels of the image with a constant value.
func (img Image) Unmask(value float64) Image {
	img.node = Invoke("Image.unmask", map[string]ValueNode{
		"input":         img.node,
		"value":         constantImage(value),
		"sameFootprint": Const(true),
	})
	return img
}

// ScaleOffset multiplies the image by scale then adds offset, e.g. to convert
// integer pixels back to physical values.
func (img Image) ScaleOffset(scale, offset float64) Image {
	if scale != 1 {
		img.node = Invoke("Image.multiply", map[string]ValueNode{
			"image1": img.node,
			"image2": constantImage(scale),
		})
	}
	if offset != 0 {
		img.node = Invoke("Image.add", map[string]ValueNode{
			"image1": img.node,
			"image2": constantImage(offset),
		})
	}
	return img
}

var castFunctions = map[string]string{
	"int8":    "Image.toInt8",
	"int16":   "Image.toInt16",
	"int32":   "Image.toInt32",
	"int64":   "Image.toInt64",
	"uint8":   "Image.toUint8",
	"uint16":  "Image.toUint16",
	"uint32":  "Image.toUint32",
	"float32": "Image.toFloat",
	"float64": "Image.toDouble",
}

// Cast converts every band of the image to the named pixel type.
func (img Image) Cast(pixelType string) (Image, error) {
	fn, ok := castFunctions[pixelType]
	if !ok {
		return img, fmt.Errorf("Cast: unsupported pixel type: %s", pixelType)
	}
	img.node = Invoke(fn, map[string]ValueNode{"value": img.node})
	return img, nil
}

// Expression wraps the handle into an expression ready for transmission.
func (img Image) Expression() Expression {
	return Expression{
		Values: map[string]ValueNode{"0": img.node},
		Result: "0",
	}
}

func constantImage(value float64) ValueNode {
	return Invoke("Image.constant", map[string]ValueNode{"value": Const(value)})
}
