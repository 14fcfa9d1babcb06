package preprocess

import (
	"github.com/nfnt/resize"
	"github.com/nvr-ai/squarepad/images"
	"github.com/pkg/errors"
)

// ScaledSize computes the dimensions of an image scaled so that its longer
// side equals size, preserving the aspect ratio. The shorter side is
// truncated, never rounded up.
//
// Arguments:
//   - width: Source width in pixels.
//   - height: Source height in pixels.
//   - size: The target length of the longer side.
//
// Returns:
//   - int: The scaled width.
//   - int: The scaled height.
//   - error: ErrInvalidImage for non-positive source dimensions,
//     ErrInvalidTargetSize for a non-positive size.
//
// @example
// w, h, _ := ScaledSize(1000, 500, 640) // 640, 320
func ScaledSize(width, height, size int) (int, int, error) {
	if size <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidTargetSize, "%d", size)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidImage, "dimensions %dx%d", width, height)
	}

	// 64-bit products so large images cannot overflow on 32-bit platforms.
	switch {
	case width > height:
		return size, int(int64(height) * int64(size) / int64(width)), nil
	case width < height:
		return int(int64(width) * int64(size) / int64(height)), size, nil
	default:
		return size, size, nil
	}
}

// Resize scales img so that its longer side equals size.
//
// Images already at the target dimensions are returned as-is. A scaled
// dimension of zero, which only extreme aspect ratios produce, yields an
// empty image of that size.
//
// Arguments:
//   - img: The decoded source image.
//   - size: The target length of the longer side.
//   - filter: The resampling filter.
//
// Returns:
//   - *images.RasterImage: A new image with max(width, height) == size.
//   - error: ErrInvalidImage or ErrInvalidTargetSize.
//
// @example
// resized, err := Resize(img, 640, images.LanczosFilter)
func Resize(img *images.RasterImage, size int, filter images.ResampleFilter) (*images.RasterImage, error) {
	if img == nil || img.Image == nil {
		return nil, errors.Wrap(ErrInvalidImage, "image is nil")
	}

	newWidth, newHeight, err := ScaledSize(img.Width, img.Height, size)
	if err != nil {
		return nil, err
	}

	if newWidth == img.Width && newHeight == img.Height {
		return img, nil
	}

	if newWidth == 0 || newHeight == 0 {
		return img.WithImage(images.NewCanvas(img.ColorMode, newWidth, newHeight, img.Deep)), nil
	}

	resized := resize.Resize(uint(newWidth), uint(newHeight), img.Image, filter.Interpolation())

	return img.WithImage(resized), nil
}
