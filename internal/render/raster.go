package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Raster is an in-memory square image surface.
type Raster struct {
	img    *image.NRGBA
	colors palette
}

// NewRaster creates a transparent width x width raster.
func NewRaster(width int) (*Raster, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}

	return &Raster{
		img:    image.NewNRGBA(image.Rect(0, 0, width, width)),
		colors: make(palette),
	}, nil
}

// FillAll paints every pixel.
func (r *Raster) FillAll(c string) error {
	return r.fill(r.img.Bounds(), c)
}

// FillRect paints the w x h block at (x, y), clipped to the image.
func (r *Raster) FillRect(x, y, w, h int, c string) error {
	return r.fill(image.Rect(x, y, x+w, y+h), c)
}

func (r *Raster) fill(rect image.Rectangle, c string) error {
	col, err := r.colors.lookup(c)
	if err != nil {
		return err
	}

	draw.Draw(r.img, rect.Intersect(r.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
	return nil
}

// Image returns the painted image.
func (r *Raster) Image() *image.NRGBA {
	return r.img
}

// Upscale returns the image enlarged to px pixels per side with
// nearest-neighbour sampling, keeping cell edges sharp. px must be a
// positive multiple of the raster width.
func (r *Raster) Upscale(px int) (*image.NRGBA, error) {
	width := r.img.Bounds().Dx()
	if px <= 0 || px%width != 0 {
		return nil, fmt.Errorf("cannot upscale %dpx icon to %dpx: size must be a positive multiple", width, px)
	}
	if px == width {
		return r.img, nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, px, px))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), r.img, r.img.Bounds(), draw.Src, nil)
	return dst, nil
}

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return EncodePNG(w, r.img)
}

// EncodePNG writes img as a best-compression PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
