package images

import (
	"bufio"
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/chai2010/webp"
	"github.com/nvr-ai/squarepad/util"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	// ErrDecode is returned when an image cannot be read or decoded.
	ErrDecode = errors.New("decode image")
	// ErrEncode is returned when an image cannot be encoded or written.
	ErrEncode = errors.New("encode image")
)

const (
	// DefaultJPEGQuality is the JPEG quality used when none is configured.
	DefaultJPEGQuality = 95
	// DefaultWebPQuality is the lossy WebP quality used when none is configured.
	DefaultWebPQuality float32 = 90
)

// CodecOptions tunes the encoders. Zero values select the defaults.
type CodecOptions struct {
	// JPEGQuality is the JPEG quality in [1, 100]; defaults to DefaultJPEGQuality.
	JPEGQuality int
	// WebPQuality is the lossy WebP quality in [0, 100]; defaults to DefaultWebPQuality.
	WebPQuality float32
	// WebPLossless selects lossless WebP encoding.
	WebPLossless bool
}

// Codec decodes images from disk and encodes them back, picking the output
// format from the destination extension.
type Codec struct {
	opts CodecOptions
}

// NewCodec creates a codec with the given options.
func NewCodec(opts CodecOptions) *Codec {
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = DefaultJPEGQuality
	}
	if opts.WebPQuality <= 0 || opts.WebPQuality > 100 {
		opts.WebPQuality = DefaultWebPQuality
	}
	return &Codec{opts: opts}
}

// webpMagic reports whether data starts with a RIFF/WEBP header.
func webpMagic(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

// Decode reads and decodes the image at path. The format is sniffed from the
// content, not the extension.
//
// Arguments:
//   - path: Path of the image file.
//
// Returns:
//   - *RasterImage: The decoded image.
//   - error: ErrDecode wrapping the cause.
func (c *Codec) Decode(path string) (*RasterImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%s: %v", path, err)
	}

	return c.DecodeBytes(data)
}

// DecodeBytes decodes an in-memory image.
func (c *Codec) DecodeBytes(data []byte) (*RasterImage, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrDecode, "image data is empty")
	}

	if webpMagic(data) {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(ErrDecode, "webp: %v", err)
		}
		return NewRasterImage(img, FormatWebP), nil
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%v", err)
	}
	if img.Bounds().Empty() {
		return nil, errors.Wrap(ErrDecode, "image has no pixels")
	}

	return NewRasterImage(img, ImageFormat(name)), nil
}

// Encode writes img to path in the format implied by the path extension.
// The file is written atomically, so a failure leaves no partial output.
//
// Arguments:
//   - img: The image to write.
//   - path: Destination path; its directory must exist.
//
// Returns:
//   - error: ErrEncode wrapping the cause.
func (c *Codec) Encode(img *RasterImage, path string) error {
	format, ok := FormatFromPath(path)
	if !ok {
		return errors.Wrapf(ErrEncode, "%s: unsupported output extension", path)
	}

	err := util.WriteFileAtomic(path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if err := c.EncodeTo(bw, img, format); err != nil {
			return err
		}
		return bw.Flush()
	})
	if err != nil {
		if errors.Is(err, ErrEncode) {
			return err
		}
		return errors.Wrapf(ErrEncode, "%s: %v", path, err)
	}
	return nil
}

// EncodeTo encodes img to w in the given format.
func (c *Codec) EncodeTo(w io.Writer, img *RasterImage, format ImageFormat) error {
	if img == nil || img.Image == nil {
		return errors.Wrap(ErrEncode, "image is nil")
	}

	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(w, img.Image, &jpeg.Options{Quality: c.opts.JPEGQuality})
	case FormatPNG:
		err = png.Encode(w, img.Image)
	case FormatGIF:
		err = gif.Encode(w, img.Image, nil)
	case FormatBMP:
		err = bmp.Encode(w, img.Image)
	case FormatTIFF:
		err = tiff.Encode(w, img.Image, &tiff.Options{Compression: tiff.Deflate})
	case FormatWebP:
		err = webp.Encode(w, img.Image, &webp.Options{
			Lossless: c.opts.WebPLossless,
			Quality:  c.opts.WebPQuality,
		})
	default:
		return errors.Wrapf(ErrEncode, "unsupported format %q", format)
	}
	if err != nil {
		return errors.Wrapf(ErrEncode, "%s: %v", format, err)
	}
	return nil
}
