// Package images - raster image definitions, color handling and codecs used by
// the dataset preparation pipeline.
package images

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// ImageFormat represents supported image formats.
type ImageFormat string

// ImageFormat constants
const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
	// FormatGIF is the GIF image format.
	FormatGIF ImageFormat = "gif"
	// FormatBMP is the BMP image format.
	FormatBMP ImageFormat = "bmp"
	// FormatTIFF is the TIFF image format.
	FormatTIFF ImageFormat = "tiff"
	// FormatWebP is the WebP image format.
	FormatWebP ImageFormat = "webp"
)

// FormatFromPath infers the image format from a file name extension.
//
// Arguments:
//   - path: The file path or name.
//
// Returns:
//   - ImageFormat: The inferred format.
//   - bool: False if the extension is not a known image extension.
func FormatFromPath(path string) (ImageFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG, true
	case ".png":
		return FormatPNG, true
	case ".gif":
		return FormatGIF, true
	case ".bmp":
		return FormatBMP, true
	case ".tif", ".tiff":
		return FormatTIFF, true
	case ".webp":
		return FormatWebP, true
	default:
		return "", false
	}
}

// ColorMode is the number and semantics of the channels of a pixel.
type ColorMode int

const (
	// ColorModeGrayscale is a single intensity channel.
	ColorModeGrayscale ColorMode = iota
	// ColorModeRGB is three opaque color channels.
	ColorModeRGB
	// ColorModeRGBA is three color channels plus alpha.
	ColorModeRGBA
)

// Channels returns the number of channels per pixel for the mode.
func (m ColorMode) Channels() int {
	switch m {
	case ColorModeGrayscale:
		return 1
	case ColorModeRGBA:
		return 4
	default:
		return 3
	}
}

func (m ColorMode) String() string {
	switch m {
	case ColorModeGrayscale:
		return "grayscale"
	case ColorModeRGBA:
		return "rgba"
	default:
		return "rgb"
	}
}

// opaquer is implemented by the standard library image types that can report
// whether every pixel is fully opaque.
type opaquer interface {
	Opaque() bool
}

// ColorModeOf classifies a decoded image into a ColorMode.
//
// Gray models are grayscale. Images that report transparent pixels are RGBA.
// Everything else (YCbCr, CMYK, opaque RGBA and paletted images) is RGB.
func ColorModeOf(img image.Image) ColorMode {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return ColorModeGrayscale
	}
	if o, ok := img.(opaquer); ok && !o.Opaque() {
		return ColorModeRGBA
	}
	return ColorModeRGB
}

// HighBitDepth reports whether img stores 16 bits per channel.
func HighBitDepth(img image.Image) bool {
	switch img.ColorModel() {
	case color.Gray16Model, color.RGBA64Model, color.NRGBA64Model:
		return true
	}
	return false
}

// RasterImage is a decoded pixel buffer together with the attributes the
// transform steps need. Each step returns a new RasterImage and owns it until
// it is handed on.
type RasterImage struct {
	// Image holds the pixel data.
	Image image.Image
	// Format is the format the image was decoded from, if any.
	Format ImageFormat
	// Width of the image in pixels.
	Width int
	// Height of the image in pixels.
	Height int
	// ColorMode of the pixel data.
	ColorMode ColorMode
	// Deep is set when the pixel data stores 16 bits per channel.
	Deep bool
}

// NewRasterImage wraps a decoded image, deriving its size and color mode.
func NewRasterImage(img image.Image, format ImageFormat) *RasterImage {
	b := img.Bounds()
	return &RasterImage{
		Image:     img,
		Format:    format,
		Width:     b.Dx(),
		Height:    b.Dy(),
		ColorMode: ColorModeOf(img),
		Deep:      HighBitDepth(img),
	}
}

// WithImage returns a RasterImage carrying img but keeping the format and
// color mode of r. Width, height and depth are taken from img.
func (r *RasterImage) WithImage(img image.Image) *RasterImage {
	b := img.Bounds()
	return &RasterImage{
		Image:     img,
		Format:    r.Format,
		Width:     b.Dx(),
		Height:    b.Dy(),
		ColorMode: r.ColorMode,
		Deep:      HighBitDepth(img),
	}
}

// NewCanvas allocates an empty image of the given size whose pixel layout
// matches the color mode and bit depth.
//
// Arguments:
//   - mode: The color mode of the canvas.
//   - width: Canvas width in pixels.
//   - height: Canvas height in pixels.
//   - deep: Allocate 16 bits per channel instead of 8.
//
// Returns:
//   - A writable image: *image.Gray, *image.RGBA or *image.NRGBA, or their
//     16-bit counterparts when deep is set.
func NewCanvas(mode ColorMode, width, height int, deep bool) draw.Image {
	rect := image.Rect(0, 0, width, height)
	switch mode {
	case ColorModeGrayscale:
		if deep {
			return image.NewGray16(rect)
		}
		return image.NewGray(rect)
	case ColorModeRGBA:
		if deep {
			return image.NewNRGBA64(rect)
		}
		return image.NewNRGBA(rect)
	default:
		if deep {
			return image.NewRGBA64(rect)
		}
		return image.NewRGBA(rect)
	}
}
