package images

import (
	"strings"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// ResampleFilter defines the resampling algorithm used for image scaling.
type ResampleFilter int

const (
	// NearestNeighborFilter uses nearest-neighbor interpolation (fastest, lowest quality).
	NearestNeighborFilter ResampleFilter = iota
	// BilinearFilter uses bilinear interpolation (fast, good quality).
	BilinearFilter
	// BicubicFilter uses bicubic interpolation (slower, better quality).
	BicubicFilter
	// MitchellNetravaliFilter uses Mitchell-Netravali cubic filter (balanced).
	MitchellNetravaliFilter
	// Lanczos2Filter uses Lanczos resampling with a=2.
	Lanczos2Filter
	// LanczosFilter uses Lanczos resampling with a=3 (slowest, best quality).
	LanczosFilter
)

// filterNames maps the textual names accepted in configuration to filters.
var filterNames = map[string]ResampleFilter{
	"nearest":  NearestNeighborFilter,
	"bilinear": BilinearFilter,
	"bicubic":  BicubicFilter,
	"mitchell": MitchellNetravaliFilter,
	"lanczos2": Lanczos2Filter,
	"lanczos3": LanczosFilter,
	"lanczos":  LanczosFilter,
}

// ParseResampleFilter resolves a filter by name, case-insensitively.
func ParseResampleFilter(name string) (ResampleFilter, error) {
	f, ok := filterNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Errorf("unknown resample filter %q", name)
	}
	return f, nil
}

// Interpolation returns the nfnt/resize interpolation function for the filter.
// Unknown values fall back to Lanczos3.
func (f ResampleFilter) Interpolation() resize.InterpolationFunction {
	switch f {
	case NearestNeighborFilter:
		return resize.NearestNeighbor
	case BilinearFilter:
		return resize.Bilinear
	case BicubicFilter:
		return resize.Bicubic
	case MitchellNetravaliFilter:
		return resize.MitchellNetravali
	case Lanczos2Filter:
		return resize.Lanczos2
	default:
		return resize.Lanczos3
	}
}

func (f ResampleFilter) String() string {
	switch f {
	case NearestNeighborFilter:
		return "nearest"
	case BilinearFilter:
		return "bilinear"
	case BicubicFilter:
		return "bicubic"
	case MitchellNetravaliFilter:
		return "mitchell"
	case Lanczos2Filter:
		return "lanczos2"
	default:
		return "lanczos3"
	}
}
