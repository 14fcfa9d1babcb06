package preprocess

import (
	"image"

	"github.com/nvr-ai/squarepad/images"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Pad places img on a size×size canvas filled with the background color.
//
// The image is anchored at the origin, so padding only ever appears on the
// right and bottom edges. An image that is already size×size is returned
// unchanged. The background is projected to the image's color mode, so a
// grayscale image is padded with a single intensity value. 16-bit images
// keep their depth.
//
// Arguments:
//   - img: The resized image; neither side should exceed size.
//   - size: The side length of the output square.
//   - bg: The padding color.
//
// Returns:
//   - *images.RasterImage: The square image.
//   - error: ErrInvalidImage, ErrInvalidTargetSize or images.ErrEmptyBackground.
//
// @example
// square, err := Pad(resized, 640, images.DefaultBackground)
func Pad(img *images.RasterImage, size int, bg images.BackgroundColor) (*images.RasterImage, error) {
	if img == nil || img.Image == nil {
		return nil, errors.Wrap(ErrInvalidImage, "image is nil")
	}
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidTargetSize, "%d", size)
	}

	if img.Width == size && img.Height == size {
		return img, nil
	}

	colorOf := bg.Color
	if img.Deep {
		colorOf = bg.Color16
	}
	fill, err := colorOf(img.ColorMode)
	if err != nil {
		return nil, err
	}

	canvas := images.NewCanvas(img.ColorMode, size, size, img.Deep)
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	// Copy the source over the top-left corner, keeping its own alpha.
	src := img.Image.Bounds()
	draw.Draw(canvas, image.Rect(0, 0, src.Dx(), src.Dy()), img.Image, src.Min, draw.Src)

	return img.WithImage(canvas), nil
}
