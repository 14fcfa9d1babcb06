package images

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyBackground is returned when a background color has no channels.
var ErrEmptyBackground = errors.New("background color has no channels")

// BackgroundColor is a per-channel fill value used for padding.
type BackgroundColor []uint8

// DefaultBackground is the grey commonly used to letterbox detector inputs.
var DefaultBackground = BackgroundColor{114, 114, 114}

// ParseBackground parses a comma separated list of channel values such as
// "114,114,114" or "0".
//
// Arguments:
//   - s: The textual color.
//
// Returns:
//   - BackgroundColor: The parsed color.
//   - error: If a value is not an integer in [0, 255] or the list is empty.
func ParseBackground(s string) (BackgroundColor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyBackground
	}

	parts := strings.Split(s, ",")
	bg := make(BackgroundColor, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid background channel %q", p)
		}
		bg = append(bg, uint8(v))
	}
	return bg, nil
}

// Project adapts the color to the channel count of a color mode.
//
// A multi-channel color reduces to its first channel for grayscale. A single
// value is replicated across color channels. Alpha is appended as 255 when
// missing and dropped when the mode has none.
//
// Arguments:
//   - mode: The target color mode.
//
// Returns:
//   - BackgroundColor: A new slice with mode.Channels() entries.
//   - error: ErrEmptyBackground if the color has no channels.
//
// @example
// DefaultBackground.Project(ColorModeGrayscale) // BackgroundColor{114}
func (c BackgroundColor) Project(mode ColorMode) (BackgroundColor, error) {
	if len(c) == 0 {
		return nil, ErrEmptyBackground
	}

	n := mode.Channels()
	if n == 1 {
		return BackgroundColor{c[0]}, nil
	}

	out := make(BackgroundColor, n)
	for i := 0; i < 3; i++ {
		if len(c) >= 3 {
			out[i] = c[i]
		} else {
			out[i] = c[0]
		}
	}
	if n == 4 {
		out[3] = 255
		if len(c) >= 4 {
			out[3] = c[3]
		}
	}
	return out, nil
}

// Color returns the projected background as a color.Color in the model the
// canvas for mode uses.
func (c BackgroundColor) Color(mode ColorMode) (color.Color, error) {
	p, err := c.Project(mode)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ColorModeGrayscale:
		return color.Gray{Y: p[0]}, nil
	case ColorModeRGBA:
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, nil
	default:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: 255}, nil
	}
}

// Color16 is Color for 16-bit canvases. Each 8-bit channel is widened so
// that v maps to v*257, which reads back as v at 8 bits.
func (c BackgroundColor) Color16(mode ColorMode) (color.Color, error) {
	p, err := c.Project(mode)
	if err != nil {
		return nil, err
	}

	wide := make([]uint16, len(p))
	for i, v := range p {
		wide[i] = uint16(v) * 0x101
	}

	switch mode {
	case ColorModeGrayscale:
		return color.Gray16{Y: wide[0]}, nil
	case ColorModeRGBA:
		return color.NRGBA64{R: wide[0], G: wide[1], B: wide[2], A: wide[3]}, nil
	default:
		return color.RGBA64{R: wide[0], G: wide[1], B: wide[2], A: 0xffff}, nil
	}
}

func (c BackgroundColor) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}
