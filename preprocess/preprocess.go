// Package preprocess turns decoded images into fixed-size squares: an
// aspect-preserving resize followed by bottom/right padding.
package preprocess

import (
	"fmt"

	"github.com/nvr-ai/squarepad/images"
	"github.com/pkg/errors"
)

// DefaultTargetSize is the side length of the output square when none is
// configured.
const DefaultTargetSize = 640

var (
	// ErrInvalidImage is returned for nil images or images with a zero dimension.
	ErrInvalidImage = errors.New("invalid image")
	// ErrInvalidTargetSize is returned for a non-positive target size.
	ErrInvalidTargetSize = errors.New("invalid target size")
)

// Config defines the transform applied to every image of a batch.
type Config struct {
	// TargetSize is the side length S of the output square.
	TargetSize int
	// Background is the padding color, as a per-channel vector.
	Background images.BackgroundColor
	// Filter is the resampling filter used when scaling.
	Filter images.ResampleFilter
}

// DefaultConfig returns a 640px square with grey (114) padding and Lanczos3
// resampling.
func DefaultConfig() Config {
	return Config{
		TargetSize: DefaultTargetSize,
		Background: append(images.BackgroundColor(nil), images.DefaultBackground...),
		Filter:     images.LanczosFilter,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.TargetSize <= 0 {
		return errors.Wrapf(ErrInvalidTargetSize, "%d", c.TargetSize)
	}
	if len(c.Background) == 0 {
		return images.ErrEmptyBackground
	}
	return nil
}

// Result describes the geometry of one transform.
type Result struct {
	// OriginalWidth is the image width before resizing.
	OriginalWidth int
	// OriginalHeight is the image height before resizing.
	OriginalHeight int
	// ResizedWidth is the width of the scaled content.
	ResizedWidth int
	// ResizedHeight is the height of the scaled content.
	ResizedHeight int
	// PadRight is the number of padding columns on the right.
	PadRight int
	// PadBottom is the number of padding rows at the bottom.
	PadBottom int
	// Scale is the factor applied to both dimensions.
	Scale float64
}

func (r Result) String() string {
	return fmt.Sprintf("%dx%d -> %dx%d (scale %.4f, pad right %d, bottom %d)",
		r.OriginalWidth, r.OriginalHeight, r.ResizedWidth, r.ResizedHeight,
		r.Scale, r.PadRight, r.PadBottom)
}

// Preprocessor applies the resize and pad steps with a fixed configuration.
// It holds no mutable state and may be shared.
type Preprocessor struct {
	config Config
}

// NewPreprocessor creates a new preprocessor with the given configuration.
//
// Arguments:
//   - config: The transform configuration. The background is copied.
//
// Returns:
//   - *Preprocessor: The configured preprocessor.
//   - error: If the configuration is invalid.
//
// @example
//
//	p, err := NewPreprocessor(DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewPreprocessor(config Config) (*Preprocessor, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "preprocess config")
	}
	config.Background = append(images.BackgroundColor(nil), config.Background...)
	return &Preprocessor{config: config}, nil
}

// Config returns a copy of the preprocessor configuration.
func (p *Preprocessor) Config() Config {
	c := p.config
	c.Background = append(images.BackgroundColor(nil), c.Background...)
	return c
}

// Process resizes img so that its longer side equals the target size and
// pads it to a square.
//
// Arguments:
//   - img: The decoded image.
//
// Returns:
//   - *images.RasterImage: The TargetSize×TargetSize image.
//   - Result: The geometry of the transform.
//   - error: ErrInvalidImage if img has a zero dimension.
func (p *Preprocessor) Process(img *images.RasterImage) (*images.RasterImage, Result, error) {
	if img == nil {
		return nil, Result{}, errors.Wrap(ErrInvalidImage, "image is nil")
	}

	resized, err := Resize(img, p.config.TargetSize, p.config.Filter)
	if err != nil {
		return nil, Result{}, errors.Wrap(err, "resize")
	}

	padded, err := Pad(resized, p.config.TargetSize, p.config.Background)
	if err != nil {
		return nil, Result{}, errors.Wrap(err, "pad")
	}

	size := p.config.TargetSize
	return padded, Result{
		OriginalWidth:  img.Width,
		OriginalHeight: img.Height,
		ResizedWidth:   resized.Width,
		ResizedHeight:  resized.Height,
		PadRight:       size - resized.Width,
		PadBottom:      size - resized.Height,
		Scale:          float64(size) / float64(max(img.Width, img.Height)),
	}, nil
}
