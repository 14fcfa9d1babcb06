package images

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackground(t *testing.T) {
	bg, err := ParseBackground("114, 114,114")
	require.NoError(t, err)
	assert.Equal(t, BackgroundColor{114, 114, 114}, bg)

	bg, err = ParseBackground("0")
	require.NoError(t, err)
	assert.Equal(t, BackgroundColor{0}, bg)

	_, err = ParseBackground("")
	assert.True(t, errors.Is(err, ErrEmptyBackground))

	_, err = ParseBackground("1,256,3")
	assert.Error(t, err)

	_, err = ParseBackground("red")
	assert.Error(t, err)
}

func TestBackgroundProject(t *testing.T) {
	tests := []struct {
		name string
		bg   BackgroundColor
		mode ColorMode
		want BackgroundColor
	}{
		{"rgb to gray takes first channel", BackgroundColor{10, 20, 30}, ColorModeGrayscale, BackgroundColor{10}},
		{"default to gray", DefaultBackground, ColorModeGrayscale, BackgroundColor{114}},
		{"rgb to rgb", BackgroundColor{10, 20, 30}, ColorModeRGB, BackgroundColor{10, 20, 30}},
		{"gray to rgb replicates", BackgroundColor{7}, ColorModeRGB, BackgroundColor{7, 7, 7}},
		{"rgb to rgba adds opaque alpha", BackgroundColor{10, 20, 30}, ColorModeRGBA, BackgroundColor{10, 20, 30, 255}},
		{"rgba to rgb drops alpha", BackgroundColor{10, 20, 30, 40}, ColorModeRGB, BackgroundColor{10, 20, 30}},
		{"rgba to rgba", BackgroundColor{10, 20, 30, 40}, ColorModeRGBA, BackgroundColor{10, 20, 30, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.bg.Project(tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, tt.mode.Channels())
		})
	}

	_, err := BackgroundColor{}.Project(ColorModeRGB)
	assert.True(t, errors.Is(err, ErrEmptyBackground))
}

func TestBackgroundProjectDoesNotAlias(t *testing.T) {
	bg := BackgroundColor{1, 2, 3}
	p, err := bg.Project(ColorModeRGB)
	require.NoError(t, err)
	p[0] = 99
	assert.Equal(t, uint8(1), bg[0])
}

func TestBackgroundColor(t *testing.T) {
	c, err := DefaultBackground.Color(ColorModeGrayscale)
	require.NoError(t, err)
	assert.Equal(t, color.Gray{Y: 114}, c)

	c, err = DefaultBackground.Color(ColorModeRGB)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 114, G: 114, B: 114, A: 255}, c)

	c, err = DefaultBackground.Color(ColorModeRGBA)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 114, G: 114, B: 114, A: 255}, c)

	assert.Equal(t, "114,114,114", DefaultBackground.String())
}

func TestBackgroundColor16(t *testing.T) {
	c, err := DefaultBackground.Color16(ColorModeGrayscale)
	require.NoError(t, err)
	assert.Equal(t, color.Gray16{Y: 114 * 0x101}, c)

	c, err = BackgroundColor{1, 2, 3}.Color16(ColorModeRGB)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA64{R: 0x0101, G: 0x0202, B: 0x0303, A: 0xffff}, c)

	c, err = BackgroundColor{0, 0, 0, 0}.Color16(ColorModeRGBA)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA64{}, c)

	_, err = BackgroundColor{}.Color16(ColorModeRGB)
	assert.True(t, errors.Is(err, ErrEmptyBackground))
}
